package footprint

import "github.com/rshade/planetprint/internal/profile"

// Scoring tables. Each closed enum maps every one of its values; a value
// outside the table (only reachable through a raw type conversion) scores 0.
//
//nolint:gochecknoglobals // Read-only lookup tables.
var (
	heatingPoints = map[profile.HeatingType]float64{
		profile.HeatingNone:        0.2,
		profile.HeatingHeatPump:    0.4,
		profile.HeatingWood:        0.6,
		profile.HeatingElectricity: 0.8,
		profile.HeatingGas:         0.9,
		profile.HeatingOil:         1.2,
	}

	insulationPoints = map[profile.Insulation]float64{
		profile.InsulationYes:     0,
		profile.InsulationUnknown: 0.2,
		profile.InsulationNo:      0.5,
	}

	carTypePoints = map[profile.CarType]float64{
		profile.CarElectric: 0.3,
		profile.CarPetrol:   0.6,
		profile.CarDiesel:   0.7,
	}

	flightPoints = map[profile.TripFrequency]float64{
		profile.TripsNever:     0,
		profile.TripsOneTwo:    0.6,
		profile.TripsThreeFive: 1.2,
		profile.TripsMoreThan5: 2.0,
	}

	// publicTransportPoints are discounts: the greener, the more negative.
	publicTransportPoints = map[profile.Usage]float64{
		profile.UsageNever:     0,
		profile.UsageSometimes: -0.1,
		profile.UsageOften:     -0.2,
		profile.UsageAlways:    -0.4,
	}

	cruisePoints = map[profile.TripFrequency]float64{
		profile.TripsNever:     0,
		profile.TripsOneTwo:    0.7,
		profile.TripsThreeFive: 1.5,
		profile.TripsMoreThan5: 2.5,
	}

	bioLocalPoints = map[profile.Usage]float64{
		profile.UsageAlways:    0,
		profile.UsageOften:     0.1,
		profile.UsageSometimes: 0.3,
		profile.UsageNever:     0.5,
	}

	foodWastePoints = map[profile.Occurrence]float64{
		profile.OccurrenceNever:     0,
		profile.OccurrenceSometimes: 0.2,
		profile.OccurrenceOften:     0.4,
	}

	clothingPoints = map[profile.ClothingFrequency]float64{
		profile.ClothingNever:      0.1,
		profile.ClothingYearly:     0.2,
		profile.ClothingQuarterly:  0.5,
		profile.ClothingEveryMonth: 0.8,
	}

	repairPoints = map[profile.Occurrence]float64{
		profile.OccurrenceOften:     0,
		profile.OccurrenceSometimes: 0.2,
		profile.OccurrenceNever:     0.4,
	}

	secondHandPoints = map[profile.Usage]float64{
		profile.UsageAlways:    0,
		profile.UsageOften:     0.1,
		profile.UsageSometimes: 0.2,
		profile.UsageNever:     0.4,
	}

	sortWastePoints = map[profile.SortPractice]float64{
		profile.SortYes:       0,
		profile.SortPartially: 0.2,
		profile.SortNo:        0.4,
	}

	lowPackagingPoints = map[profile.Usage]float64{
		profile.UsageAlways:    0,
		profile.UsageOften:     0.1,
		profile.UsageSometimes: 0.2,
		profile.UsageNever:     0.3,
	}
)

// Fixed contributions that do not come from an enum table.
const (
	carOwnershipPoints = 0.8

	animalProductsDailyPoints = 0.6
	animalProductsRarePoints  = 0.2

	newElectronicsPoints = 0.6
	noElectronicsPoints  = 0.2
)

// areaPerPersonPoints buckets the living area per household member.
func areaPerPersonPoints(area float64) float64 {
	switch {
	case area < 50:
		return 0.5
	case area <= 100:
		return 0.8
	default:
		return 1.2
	}
}

func weeklyKmPoints(km float64) float64 {
	switch {
	case km < 200:
		return 0.4
	case km <= 500:
		return 0.8
	default:
		return 1.2
	}
}

func meatMealsPoints(meals int) float64 {
	switch {
	case meals == 0:
		return 0.2
	case meals <= 5:
		return 0.6
	case meals <= 10:
		return 1.0
	default:
		return 1.5
	}
}

func trashBagsPoints(bags int) float64 {
	switch {
	case bags <= 1:
		return 0.1
	case bags <= 2:
		return 0.2
	case bags <= 4:
		return 0.3
	default:
		return 0.4
	}
}
