// Package greenops translates a yearly carbon footprint (kg CO2e) into
// everyday equivalents such as daily car kilometres or transatlantic
// flights, using French public-agency factors.
package greenops

import "fmt"

// EquivalencyType is one kind of everyday equivalent.
type EquivalencyType int

const (
	// EquivalencyCarKmPerDay is kilometres driven per day in an average car.
	EquivalencyCarKmPerDay EquivalencyType = iota

	// EquivalencyFlights is Paris-New York return flights per year.
	EquivalencyFlights

	// EquivalencyBeefPerWeek is kilograms of beef eaten per week.
	EquivalencyBeefPerWeek

	// EquivalencyElectricity is kWh of grid electricity per year. It is the
	// only equivalent that depends on a live-ish input, the grid intensity.
	EquivalencyElectricity
)

// String returns a stable identifier for the type.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyCarKmPerDay:
		return "car_km_per_day"
	case EquivalencyFlights:
		return "flights_per_year"
	case EquivalencyBeefPerWeek:
		return "beef_kg_per_week"
	case EquivalencyElectricity:
		return "electricity_kwh_per_year"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// MarshalText lets the type serialise as its identifier in JSON and YAML.
func (e EquivalencyType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// CarbonInput is a carbon mass with its unit (g, kg, t, lb or a CO2e variant).
type CarbonInput struct {
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit" yaml:"unit"`
}

// Options tune the calculation. The zero value uses the defaults.
type Options struct {
	// GridIntensity is the electricity carbon intensity in g CO2e/kWh.
	// Zero means DefaultGridIntensity.
	GridIntensity float64
}

func (o Options) gridIntensity() float64 {
	if o.GridIntensity > 0 {
		return o.GridIntensity
	}
	return DefaultGridIntensity
}

// EquivalencyResult is one calculated equivalent.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type" yaml:"type"`
	Value          float64         `json:"value" yaml:"value"`
	FormattedValue string          `json:"formattedValue" yaml:"formattedValue"`
	Label          string          `json:"label" yaml:"label"`
	// Description names the factor and its source, e.g. "(120g CO2/km - ADEME)".
	Description string `json:"description" yaml:"description"`
	Source      string `json:"source" yaml:"source"`
}

// Text renders the result as "411 km/jour en voiture".
func (r EquivalencyResult) Text() string {
	return r.FormattedValue + " " + r.Label
}

// EquivalencyOutput holds all equivalents for one carbon mass.
type EquivalencyOutput struct {
	InputKg float64             `json:"inputKg" yaml:"inputKg"`
	Results []EquivalencyResult `json:"results" yaml:"results"`

	// DisplayText is the full sentence for CLI and TUI output.
	DisplayText string `json:"displayText" yaml:"displayText"`

	// CompactText is the short form for tables, e.g. "(≈ 411 km/j, 7.8 vols)".
	CompactText string `json:"compactText" yaml:"compactText"`

	IsEmpty bool `json:"isEmpty" yaml:"isEmpty"`
}
