package footprint

import (
	"math"
	"strconv"

	"github.com/rshade/planetprint/internal/profile"
)

// Calculate scores p. It is a total function: unanswered fields add
// nothing and the result is always well formed.
//
// The transport sub-score is floored at 0 so that the public-transport
// discount can never make a domain negative. The total and each
// sub-score are rounded to one decimal, and the category is picked from
// the rounded total.
func Calculate(p profile.Profile) Result {
	var raw Breakdown
	for _, c := range Explain(p) {
		raw.add(c.Domain, c.Points)
	}
	raw.Transport = math.Max(raw.Transport, 0)

	total := round1(raw.Sum())
	category, planets, title := Classify(total)

	return Result{
		PlanetsNeeded: planets,
		Category:      category,
		Title:         title,
		TotalScore:    total,
		Breakdown: Breakdown{
			Housing:     round1(raw.Housing),
			Transport:   round1(raw.Transport),
			Food:        round1(raw.Food),
			Consumption: round1(raw.Consumption),
			Waste:       round1(raw.Waste),
		},
	}
}

// Explain lists every non-empty contribution of p in questionnaire order.
// Summing the points per domain gives the raw sub-scores before the
// transport floor and rounding.
func Explain(p profile.Profile) []Contribution {
	var out []Contribution
	add := func(d profile.Domain, f profile.Field, answer string, points float64, ok bool) {
		if ok {
			out = append(out, Contribution{Domain: d, Field: f, Answer: answer, Points: points})
		}
	}

	// Housing. Zero area or household size is skipped to avoid dividing by zero.
	if p.HomeArea != nil && p.HouseholdSize != nil && *p.HomeArea > 0 && *p.HouseholdSize > 0 {
		perPerson := *p.HomeArea / float64(*p.HouseholdSize)
		add(profile.DomainHousing, profile.FieldHomeArea,
			strconv.FormatFloat(perPerson, 'f', 1, 64)+" m²/pers", areaPerPersonPoints(perPerson), true)
	}
	if p.HeatingType != nil {
		pts, ok := heatingPoints[*p.HeatingType]
		add(profile.DomainHousing, profile.FieldHeatingType, string(*p.HeatingType), pts, ok)
	}
	if p.HomeInsulation != nil {
		pts, ok := insulationPoints[*p.HomeInsulation]
		add(profile.DomainHousing, profile.FieldHomeInsulation, string(*p.HomeInsulation), pts, ok)
	}

	// Transport. The car type only counts for car owners.
	if p.OwnsCar != nil && *p.OwnsCar {
		add(profile.DomainTransport, profile.FieldOwnsCar, "oui", carOwnershipPoints, true)
		if p.CarType != nil {
			pts, ok := carTypePoints[*p.CarType]
			add(profile.DomainTransport, profile.FieldCarType, string(*p.CarType), pts, ok)
		}
	}
	if p.WeeklyKm != nil && *p.WeeklyKm > 0 {
		add(profile.DomainTransport, profile.FieldWeeklyKm,
			strconv.FormatFloat(*p.WeeklyKm, 'f', -1, 64)+" km", weeklyKmPoints(*p.WeeklyKm), true)
	}
	if p.FlightFrequency != nil {
		pts, ok := flightPoints[*p.FlightFrequency]
		add(profile.DomainTransport, profile.FieldFlightFrequency, string(*p.FlightFrequency), pts, ok)
	}
	if p.PublicTransportUsage != nil {
		pts, ok := publicTransportPoints[*p.PublicTransportUsage]
		add(profile.DomainTransport, profile.FieldPublicTransportUsage, string(*p.PublicTransportUsage), pts, ok)
	}
	if p.CruiseFrequency != nil {
		pts, ok := cruisePoints[*p.CruiseFrequency]
		add(profile.DomainTransport, profile.FieldCruiseFrequency, string(*p.CruiseFrequency), pts, ok)
	}

	// Food.
	if p.MeatMealsPerWeek != nil {
		add(profile.DomainFood, profile.FieldMeatMealsPerWeek,
			strconv.Itoa(*p.MeatMealsPerWeek), meatMealsPoints(*p.MeatMealsPerWeek), true)
	}
	if p.DailyAnimalProducts != nil {
		pts, answer := animalProductsRarePoints, "non"
		if *p.DailyAnimalProducts {
			pts, answer = animalProductsDailyPoints, "oui"
		}
		add(profile.DomainFood, profile.FieldDailyAnimalProducts, answer, pts, true)
	}
	if p.BioLocalFrequency != nil {
		pts, ok := bioLocalPoints[*p.BioLocalFrequency]
		add(profile.DomainFood, profile.FieldBioLocalFrequency, string(*p.BioLocalFrequency), pts, ok)
	}
	if p.FoodWasteFrequency != nil {
		pts, ok := foodWastePoints[*p.FoodWasteFrequency]
		add(profile.DomainFood, profile.FieldFoodWasteFrequency, string(*p.FoodWasteFrequency), pts, ok)
	}

	// Consumption.
	if p.ClothingFrequency != nil {
		pts, ok := clothingPoints[*p.ClothingFrequency]
		add(profile.DomainConsumption, profile.FieldClothingFrequency, string(*p.ClothingFrequency), pts, ok)
	}
	if p.BuyNewElectronics != nil {
		pts, answer := noElectronicsPoints, "non"
		if *p.BuyNewElectronics {
			pts, answer = newElectronicsPoints, "oui"
		}
		add(profile.DomainConsumption, profile.FieldBuyNewElectronics, answer, pts, true)
	}
	if p.RepairFrequency != nil {
		pts, ok := repairPoints[*p.RepairFrequency]
		add(profile.DomainConsumption, profile.FieldRepairFrequency, string(*p.RepairFrequency), pts, ok)
	}
	if p.SecondHandFrequency != nil {
		pts, ok := secondHandPoints[*p.SecondHandFrequency]
		add(profile.DomainConsumption, profile.FieldSecondHandFrequency, string(*p.SecondHandFrequency), pts, ok)
	}

	// Waste.
	if p.SortWaste != nil {
		pts, ok := sortWastePoints[*p.SortWaste]
		add(profile.DomainWaste, profile.FieldSortWaste, string(*p.SortWaste), pts, ok)
	}
	if p.TrashBagsPerWeek != nil {
		add(profile.DomainWaste, profile.FieldTrashBagsPerWeek,
			strconv.Itoa(*p.TrashBagsPerWeek), trashBagsPoints(*p.TrashBagsPerWeek), true)
	}
	if p.LowPackagingFrequency != nil {
		pts, ok := lowPackagingPoints[*p.LowPackagingFrequency]
		add(profile.DomainWaste, profile.FieldLowPackagingFrequency, string(*p.LowPackagingFrequency), pts, ok)
	}

	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
