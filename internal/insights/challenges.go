package insights

import "github.com/rshade/planetprint/internal/profile"

// Difficulty grades a challenge.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Facile"
	DifficultyMedium Difficulty = "Moyen"
	DifficultyHard   Difficulty = "Difficile"
)

// Challenge is a short personal commitment with its expected saving.
type Challenge struct {
	ID          string         `json:"id" yaml:"id"`
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description" yaml:"description"`
	Duration    string         `json:"duration" yaml:"duration"`
	Difficulty  Difficulty     `json:"difficulty" yaml:"difficulty"`
	Impact      string         `json:"impact" yaml:"impact"`
	Domain      profile.Domain `json:"domain" yaml:"domain"`
	Icon        string         `json:"icon" yaml:"icon"`
}

const carFreeMinWeeklyKm = 100

// Challenges proposes challenges tailored to p. The energy-saver and
// zero-waste challenges are always included, after the tailored ones.
func Challenges(p profile.Profile) []Challenge {
	var out []Challenge

	if p.OwnsCar != nil && *p.OwnsCar && p.WeeklyKm != nil && *p.WeeklyKm > carFreeMinWeeklyKm {
		out = append(out, Challenge{
			ID:          "car-free-day",
			Title:       "Journée sans voiture",
			Description: "Essayez les transports en commun, vélo ou marche pendant une journée complète",
			Duration:    "1 jour",
			Difficulty:  DifficultyEasy,
			Impact:      "-2kg CO₂",
			Domain:      profile.DomainTransport,
			Icon:        "🚲",
		})
	}
	if p.MeatMealsPerWeek != nil && *p.MeatMealsPerWeek > 5 {
		out = append(out, Challenge{
			ID:          "veggie-week",
			Title:       "Semaine végétarienne",
			Description: "Remplacez tous vos repas carnés par des alternatives végétales",
			Duration:    "7 jours",
			Difficulty:  DifficultyMedium,
			Impact:      "-8kg CO₂",
			Domain:      profile.DomainFood,
			Icon:        "🌱",
		})
	}
	if p.ClothingFrequency != nil && *p.ClothingFrequency == profile.ClothingEveryMonth {
		out = append(out, Challenge{
			ID:          "no-buy-month",
			Title:       "Mois sans achat",
			Description: "Un mois complet sans acheter de vêtements neufs",
			Duration:    "30 jours",
			Difficulty:  DifficultyHard,
			Impact:      "-15kg CO₂",
			Domain:      profile.DomainConsumption,
			Icon:        "👕",
		})
	}

	return append(out,
		Challenge{
			ID:          "energy-saver",
			Title:       "Économiseur d'énergie",
			Description: "Réduisez votre consommation électrique de 20% cette semaine",
			Duration:    "7 jours",
			Difficulty:  DifficultyEasy,
			Impact:      "-3kg CO₂",
			Domain:      profile.DomainHousing,
			Icon:        "⚡",
		},
		Challenge{
			ID:          "zero-waste",
			Title:       "Zéro déchet",
			Description: "Une semaine sans produire de déchets non recyclables",
			Duration:    "7 jours",
			Difficulty:  DifficultyHard,
			Impact:      "-5kg CO₂",
			Domain:      profile.DomainWaste,
			Icon:        "♻️",
		},
	)
}
