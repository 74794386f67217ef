package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rshade/planetprint/internal/footprint"
)

const metricsNamespace = "planetprint"

// Metrics holds the Prometheus collectors of the HTTP API.
type Metrics struct {
	calculations    *prometheus.CounterVec
	totalScore      prometheus.Histogram
	requestDuration *prometheus.HistogramVec
}

// MustNewMetrics registers the collectors on reg. sessions reports the
// number of live sessions at scrape time. Registration errors panic, like
// the promauto helpers.
func MustNewMetrics(reg prometheus.Registerer, sessions func() int) *Metrics {
	m := &Metrics{
		calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "footprint_calculations_total",
				Help:      "Number of footprints scored, by category.",
			},
			[]string{"category"},
		),
		totalScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "footprint_total_score",
				Help:      "Distribution of scored total points.",
				Buckets:   []float64{1, 2, 3, 3.5, 4, 5, 6, 7, 8, 10, 12},
			},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method", "status"},
		),
	}

	collectors := []prometheus.Collector{m.calculations, m.totalScore, m.requestDuration}
	if sessions != nil {
		collectors = append(collectors, prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "sessions_active",
				Help:      "Number of live questionnaire sessions.",
			},
			func() float64 { return float64(sessions()) },
		))
	}
	reg.MustRegister(collectors...)

	// Pre-create every category so dashboards see zeroes.
	for _, c := range footprint.Categories() {
		m.calculations.WithLabelValues(string(c))
	}
	return m
}

// ObserveResult records one scored footprint.
func (m *Metrics) ObserveResult(r footprint.Result) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(string(r.Category)).Inc()
	m.totalScore.Observe(r.TotalScore)
}
