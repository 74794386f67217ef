package footprint

import "math"

// Category thresholds on the rounded total score. Each bound is inclusive.
const (
	excellentMax  = 2.0
	goodMax       = 3.5
	averageMax    = 5.0
	concerningMax = 7.0
)

// Planets per category. Only the critical tier grows with the score.
const (
	excellentPlanets  = 1.2
	goodPlanets       = 1.8
	averagePlanets    = 2.5
	concerningPlanets = 3.2

	criticalBasePlanets = 3.5
	criticalSlope       = 0.3
	criticalMaxPlanets  = 4.5
)

// KgCO2PerPoint converts one score point into kilograms of CO2 per year.
const KgCO2PerPoint = 1.8 * 1000

// Category titles, shown to the user.
const (
	TitleExcellent  = "Éco-héros galactique"
	TitleGood       = "Gardien des étoiles"
	TitleAverage    = "Explorateur modéré"
	TitleConcerning = "Colonisateur interstellaire"
	TitleCritical   = "Tyran cosmique du CO₂"
)

// Classify maps a total score onto its category, planets figure and title.
//
// The planets figure is a step function for the first four categories.
// Above 7 points it grows by 0.3 planet per point from 3.5, capped at 4.5,
// and is rounded to two decimals.
func Classify(totalScore float64) (Category, float64, string) {
	switch {
	case totalScore <= excellentMax:
		return CategoryExcellent, excellentPlanets, TitleExcellent
	case totalScore <= goodMax:
		return CategoryGood, goodPlanets, TitleGood
	case totalScore <= averageMax:
		return CategoryAverage, averagePlanets, TitleAverage
	case totalScore <= concerningMax:
		return CategoryConcerning, concerningPlanets, TitleConcerning
	default:
		planets := math.Min(criticalMaxPlanets, criticalBasePlanets+(totalScore-concerningMax)*criticalSlope)
		return CategoryCritical, round2(planets), TitleCritical
	}
}

// CO2Equivalent converts a total score into kilograms of CO2 per year.
// It is an illustrative linear scaling and never feeds back into scoring.
func CO2Equivalent(totalScore float64) int64 {
	return int64(math.Round(totalScore * KgCO2PerPoint))
}
