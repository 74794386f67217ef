package demo

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Grid simulation parameters, in g CO2/kWh.
const (
	dayBaseIntensity   = 45
	dayAmplitude       = 15
	nightBaseIntensity = 35
	nightJitter        = 10

	cleanGridThreshold = 40
	goodTimeThreshold  = 50
)

// Advice strings shown next to a reading.
const (
	BestTimeNow   = "Maintenant ! Le mix électrique est très propre"
	BestTimeNight = "La nuit (plus de nucléaire, moins de CO2)"
	BestTimeSolar = "Entre 13h-15h (pic solaire)"
)

// GridReading is one simulated sample of the French electricity mix.
type GridReading struct {
	Time             time.Time `json:"time" yaml:"time"`
	IntensityGPerKWh int       `json:"intensityGPerKWh" yaml:"intensityGPerKWh"`
	NuclearPct       int       `json:"nuclearPct" yaml:"nuclearPct"`
	RenewablePct     int       `json:"renewablePct" yaml:"renewablePct"`
	FossilPct        int       `json:"fossilPct" yaml:"fossilPct"`
	BestTimeToUse    string    `json:"bestTimeToUse" yaml:"bestTimeToUse"`
	Tip              string    `json:"tip" yaml:"tip"`
	Simulated        bool      `json:"simulated" yaml:"simulated"`
}

// GridIntensity simulates the grid carbon intensity at t. Daytime hours
// (6h to 18h) follow a sine curve between 45 and 60 g/kWh; night hours
// draw uniformly from [35, 45).
func GridIntensity(t time.Time, r *rand.Rand) GridReading {
	hour := t.Hour()

	var intensity float64
	if hour >= 6 && hour <= 18 {
		intensity = dayBaseIntensity + math.Sin(float64(hour-6)*math.Pi/12)*dayAmplitude
	} else {
		intensity = nightBaseIntensity + r.Float64()*nightJitter
	}

	reading := GridReading{
		Time:             t,
		IntensityGPerKWh: int(math.Round(intensity)),
		NuclearPct:       65,
		RenewablePct:     15,
		FossilPct:        10,
		Simulated:        true,
	}
	if hour >= 22 || hour <= 6 {
		reading.NuclearPct = 75
	}
	if hour >= 10 && hour <= 16 {
		reading.RenewablePct = 25
	}
	if hour >= 18 && hour <= 21 {
		reading.FossilPct = 20
	}

	switch {
	case reading.IntensityGPerKWh < cleanGridThreshold:
		reading.BestTimeToUse = BestTimeNow
	case hour >= 22 || hour <= 6:
		reading.BestTimeToUse = BestTimeNight
	default:
		reading.BestTimeToUse = BestTimeSolar
	}

	verdict := "pas idéal"
	if reading.IntensityGPerKWh < goodTimeThreshold {
		verdict = "le bon moment"
	}
	reading.Tip = fmt.Sprintf("Avec %dg CO2/kWh actuellement, c'est %s pour utiliser vos appareils électriques",
		reading.IntensityGPerKWh, verdict)
	return reading
}

// GridDay simulates the 24 hourly readings of the day containing t.
func GridDay(t time.Time, r *rand.Rand) []GridReading {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	out := make([]GridReading, 0, 24)
	for h := range 24 {
		out = append(out, GridIntensity(start.Add(time.Duration(h)*time.Hour), r))
	}
	return out
}
