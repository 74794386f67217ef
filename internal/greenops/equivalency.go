package greenops

import (
	"fmt"
	"math"
	"strings"

	"github.com/rshade/planetprint/internal/footprint"
)

// Calculate translates a carbon mass into its four everyday equivalents.
//
// Inputs below MinEquivalencyThresholdKg yield an empty output with
// InputKg set and no error. Invalid units, negative values and a bad grid
// intensity return an error and an empty output.
func Calculate(input CarbonInput, opts Options) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	if opts.GridIntensity < 0 || math.IsNaN(opts.GridIntensity) || math.IsInf(opts.GridIntensity, 0) {
		return EquivalencyOutput{IsEmpty: true}, ErrInvalidGridIntensity
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	grid := opts.gridIntensity()
	values := []struct {
		kind        EquivalencyType
		value       float64
		label       string
		description string
		source      string
	}{
		{EquivalencyCarKmPerDay, kg * gramsPerKg / CarGramsPerKm / daysPerYear,
			"km/jour en voiture", "(120g CO2/km - ADEME)", "ADEME"},
		{EquivalencyFlights, kg / ParisNewYorkFlightKg,
			"vol(s) Paris-NY/an", "(2,3t CO2/vol - GIEC)", "GIEC"},
		{EquivalencyBeefPerWeek, kg / BeefKgPerKg / weeksPerYear,
			"kg de bœuf/semaine", "(35kg CO2/kg - ADEME)", "ADEME"},
		{EquivalencyElectricity, kg * gramsPerKg / grid,
			"kWh/an", fmt.Sprintf("(%sg CO2/kWh - RTE)", FormatFloat(grid, 0)), "RTE"},
	}

	results := make([]EquivalencyResult, 0, len(values))
	for _, v := range values {
		if math.IsInf(v.value, 0) || math.IsNaN(v.value) {
			return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
		}
		results = append(results, EquivalencyResult{
			Type:           v.kind,
			Value:          v.value,
			FormattedValue: formatEquivalencyValue(v.value),
			Label:          v.label,
			Description:    v.description,
			Source:         v.source,
		})
	}

	return EquivalencyOutput{
		InputKg:     kg,
		Results:     results,
		DisplayText: displayText(results),
		CompactText: compactText(results),
	}, nil
}

// FromScore chains footprint.CO2Equivalent into Calculate.
func FromScore(totalScore float64, opts Options) (EquivalencyOutput, error) {
	kg := footprint.CO2Equivalent(totalScore)
	return Calculate(CarbonInput{Value: float64(kg), Unit: "kg"}, opts)
}

// Get returns the result of one type, if present.
func (o EquivalencyOutput) Get(kind EquivalencyType) (EquivalencyResult, bool) {
	for _, r := range o.Results {
		if r.Type == kind {
			return r, true
		}
	}
	return EquivalencyResult{}, false
}

func displayText(results []EquivalencyResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, "~"+r.Text())
	}
	return "Équivaut à " + strings.Join(parts, ", ")
}

func compactText(results []EquivalencyResult) string {
	car, _ := findResult(results, EquivalencyCarKmPerDay)
	flights, _ := findResult(results, EquivalencyFlights)
	return fmt.Sprintf("(≈ %s km/j, %s vols)", car.FormattedValue, flights.FormattedValue)
}

func findResult(results []EquivalencyResult, kind EquivalencyType) (EquivalencyResult, bool) {
	return EquivalencyOutput{Results: results}.Get(kind)
}
