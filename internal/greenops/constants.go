package greenops

// ADEME, GIEC and RTE factors used to turn kg CO2e into everyday
// equivalents. Each equivalency divides the yearly carbon mass by one of
// these factors.
const (
	// CarGramsPerKm is the average emission of a French passenger car (ADEME).
	CarGramsPerKm = 120.0

	// ParisNewYorkFlightKg is one Paris-New York return flight per passenger (GIEC).
	ParisNewYorkFlightKg = 2300.0

	// BeefKgPerKg is kg CO2e per kg of beef (ADEME Base Carbone).
	BeefKgPerKg = 35.0

	// DefaultGridIntensity is the average French grid intensity in g CO2e/kWh (RTE).
	DefaultGridIntensity = 57.0

	daysPerYear  = 365.0
	weeksPerYear = 52.0
	gramsPerKg   = 1000.0
)

// Unit conversion factors to kilograms.
const (
	GramsToKg  = 0.001
	KgToKg     = 1.0
	TonsToKg   = 1000.0
	PoundsToKg = 0.453592
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the smallest mass worth translating.
	// Below it the equivalents are meaninglessly small and the output is empty.
	MinEquivalencyThresholdKg = 1.0

	// SmallValueThreshold switches formatting to one decimal so that
	// "0.4 vol" does not collapse to "0 vol".
	SmallValueThreshold = 10.0

	LargeNumberThreshold = 1_000_000
	BillionThreshold     = 1_000_000_000
)
