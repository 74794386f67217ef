package demo

// ModelCard describes one of the insight "models". None of them exists:
// the cards are fixed text shown for presentation.
type ModelCard struct {
	Name      string `json:"name" yaml:"name"`
	Domain    string `json:"domain" yaml:"domain"`
	Action    string `json:"action" yaml:"action"`
	Basis     string `json:"basis" yaml:"basis"`
	Simulated bool   `json:"simulated" yaml:"simulated"`
}

// Dataset describes a data source the insight panels cite.
type Dataset struct {
	Name      string `json:"name" yaml:"name"`
	Size      string `json:"size" yaml:"size"`
	Source    string `json:"source" yaml:"source"`
	Coverage  string `json:"coverage" yaml:"coverage"`
	Simulated bool   `json:"simulated" yaml:"simulated"`
}

// ModelCards returns the insight model descriptions.
func ModelCards() []ModelCard {
	return []ModelCard{
		{
			Name:      "Transport Emission Regression (ADEME factors)",
			Domain:    "transport",
			Action:    "Télétravail 2j/semaine + transports en commun",
			Basis:     "Facteurs ADEME 2024 + études mobilité CEREMA",
			Simulated: true,
		},
		{
			Name:      "Dietary Impact Calculator (GIEC AR6)",
			Domain:    "food",
			Action:    "Réduire à 4 repas carnés/semaine (flexitarien)",
			Basis:     "GIEC AR6 WG3 + Base Carbone ADEME alimentation",
			Simulated: true,
		},
		{
			Name:      "Building Energy Simulation (RT2012 + DPE)",
			Domain:    "housing",
			Action:    "Remplacement fioul → pompe à chaleur",
			Basis:     "Réglementation thermique + données DPE ADEME",
			Simulated: true,
		},
		{
			Name:      "K-Means Clustering + Demographic Weighting",
			Domain:    "behavioral",
			Action:    "Segmentation des profils similaires",
			Basis:     "Segmentation INSEE + études comportementales CREDOC",
			Simulated: true,
		},
	}
}

// Datasets returns the data sources cited by the insight panels.
func Datasets() []Dataset {
	return []Dataset{
		{Name: "ADEME Base Carbone 2024", Size: "12,847 facteurs d'émission", Source: "ADEME", Coverage: "Tous secteurs France", Simulated: true},
		{Name: "RTE eCO2mix Historical", Size: "2.1M points horaires", Source: "RTE", Coverage: "Mix électrique français", Simulated: true},
		{Name: "INSEE Logement & Transport", Size: "890K ménages", Source: "INSEE", Coverage: "Démographie française", Simulated: true},
		{Name: "Global Footprint Network", Size: "150 pays, 60 ans", Source: "GFN", Coverage: "Biocapacité mondiale", Simulated: true},
	}
}
