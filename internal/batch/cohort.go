package batch

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"github.com/rshade/planetprint/internal/footprint"
	"github.com/rshade/planetprint/internal/logging"
	"github.com/rshade/planetprint/internal/profile"
)

// CohortOptions tune ScoreCohort. The zero value scores with one worker
// per CPU and DefaultBatchSize.
type CohortOptions struct {
	Concurrency int
	BatchSize   int
	OnProgress  ProgressCallback
}

// Entry is the score of one profile of the cohort.
type Entry struct {
	Index  int              `json:"index" yaml:"index"`
	Result footprint.Result `json:"result" yaml:"result"`
	CO2Kg  int64            `json:"co2Kg" yaml:"co2Kg"`
}

// CohortStats summarises the total scores of a cohort.
type CohortStats struct {
	Count       int     `json:"count" yaml:"count"`
	MeanScore   float64 `json:"meanScore" yaml:"meanScore"`
	MinScore    float64 `json:"minScore" yaml:"minScore"`
	MaxScore    float64 `json:"maxScore" yaml:"maxScore"`
	MedianScore float64 `json:"medianScore" yaml:"medianScore"`
	MeanPlanets float64 `json:"meanPlanets" yaml:"meanPlanets"`
	MeanCO2Kg   float64 `json:"meanCo2Kg" yaml:"meanCo2Kg"`
}

// CohortReport is the outcome of ScoreCohort.
type CohortReport struct {
	// Entries are in input order.
	Entries      []Entry                    `json:"entries,omitempty" yaml:"entries,omitempty"`
	Distribution map[footprint.Category]int `json:"distribution" yaml:"distribution"`
	Stats        CohortStats                `json:"stats" yaml:"stats"`
}

// ScoreCohort scores every profile concurrently and summarises the results.
func ScoreCohort(ctx context.Context, profiles []profile.Profile, opts CohortOptions) (CohortReport, error) {
	log := logging.FromContext(ctx)

	proc := NewProcessorWithDefaults[profile.Profile]()
	if opts.BatchSize != 0 {
		var err error
		if proc, err = NewProcessor[profile.Profile](opts.BatchSize); err != nil {
			return CohortReport{}, err
		}
	}
	if opts.OnProgress != nil {
		proc.WithProgressCallback(opts.OnProgress)
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	log.Debug().Ctx(ctx).
		Str("component", "batch").
		Int("profiles", len(profiles)).
		Int("batch_size", proc.BatchSize()).
		Int("concurrency", concurrency).
		Msg("scoring cohort")

	// Each batch writes a disjoint range of entries.
	entries := make([]Entry, len(profiles))
	score := func(_ context.Context, batch []profile.Profile, offset int) error {
		for i, p := range batch {
			result := footprint.Calculate(p)
			entries[offset+i] = Entry{
				Index:  offset + i,
				Result: result,
				CO2Kg:  footprint.CO2Equivalent(result.TotalScore),
			}
		}
		return nil
	}

	var err error
	if concurrency == 1 {
		err = proc.Process(ctx, profiles, score)
	} else {
		err = proc.ProcessConcurrent(ctx, profiles, score, concurrency)
	}
	if err != nil {
		return CohortReport{}, fmt.Errorf("scoring cohort: %w", err)
	}

	report := Summarise(entries)
	log.Info().Ctx(ctx).
		Str("component", "batch").
		Int("profiles", report.Stats.Count).
		Float64("mean_score", report.Stats.MeanScore).
		Msg("cohort scored")
	return report, nil
}

// Summarise computes the distribution and statistics of scored entries.
func Summarise(entries []Entry) CohortReport {
	report := CohortReport{
		Entries:      entries,
		Distribution: make(map[footprint.Category]int, len(footprint.Categories())),
	}
	for _, c := range footprint.Categories() {
		report.Distribution[c] = 0
	}
	if len(entries) == 0 {
		return report
	}

	scores := make([]float64, 0, len(entries))
	var sumScore, sumPlanets, sumCO2 float64
	for _, e := range entries {
		report.Distribution[e.Result.Category]++
		scores = append(scores, e.Result.TotalScore)
		sumScore += e.Result.TotalScore
		sumPlanets += e.Result.PlanetsNeeded
		sumCO2 += float64(e.CO2Kg)
	}
	slices.Sort(scores)

	n := float64(len(entries))
	report.Stats = CohortStats{
		Count:       len(entries),
		MeanScore:   sumScore / n,
		MinScore:    scores[0],
		MaxScore:    scores[len(scores)-1],
		MedianScore: median(scores),
		MeanPlanets: sumPlanets / n,
		MeanCO2Kg:   sumCO2 / n,
	}
	return report
}

// median expects sorted, non-empty input.
func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
