// Package insights derives the dashboard extras shown next to a score:
// regional comparison, personalised challenges, gamification rank and
// "did you know" facts. Everything here is a deterministic function of a
// profile and its result, except RandomFact which takes its source of
// randomness from the caller.
package insights

// Source is an official data provider quoted by the dashboard.
type Source struct {
	Name        string `json:"name" yaml:"name"`
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description" yaml:"description"`
}

// Averages are the reference values the results are compared against.
type Averages struct {
	WorldPlanets  float64 `json:"world" yaml:"world"`
	FrancePlanets float64 `json:"france" yaml:"france"`
	// TargetPlanets is the 2030 objective.
	TargetPlanets float64 `json:"target" yaml:"target"`
	// CO2FranceKg and CO2WorldKg are per person and per year.
	CO2FranceKg int64 `json:"co2France" yaml:"co2France"`
	CO2WorldKg  int64 `json:"co2World" yaml:"co2World"`
}

// ReferenceData bundles the sources and averages.
type ReferenceData struct {
	Sources  []Source `json:"sources" yaml:"sources"`
	Averages Averages `json:"averages" yaml:"averages"`
}

// AverageFrenchCO2Kg is the yearly footprint of an average French resident.
const AverageFrenchCO2Kg = 11000

// Reference returns the official sources and averages.
func Reference() ReferenceData {
	return ReferenceData{
		Sources: []Source{
			{
				Name:        "Global Footprint Network",
				URL:         "https://www.footprintnetwork.org/",
				Description: "Données officielles sur l'empreinte écologique mondiale",
			},
			{
				Name:        "ADEME - Agence de l'environnement",
				URL:         "https://www.ademe.fr/",
				Description: "Données françaises sur l'empreinte carbone",
			},
			{
				Name:        "Base Carbone ADEME",
				URL:         "https://www.bilans-ges.ademe.fr/",
				Description: "Facteurs d'émission officiels français",
			},
			{
				Name:        "GIEC - Groupe d'experts intergouvernemental",
				URL:         "https://www.ipcc.ch/",
				Description: "Données scientifiques internationales sur le climat",
			},
		},
		Averages: Averages{
			WorldPlanets:  1.75,
			FrancePlanets: 2.9,
			TargetPlanets: 1.0,
			CO2FranceKg:   AverageFrenchCO2Kg,
			CO2WorldKg:    4800,
		},
	}
}
