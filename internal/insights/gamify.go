package insights

import (
	"fmt"
	"math"

	"github.com/rshade/planetprint/internal/footprint"
	"github.com/rshade/planetprint/internal/profile"
)

// Gamification is the rank, badge and achievements earned by a profile.
type Gamification struct {
	Rank         string   `json:"rank" yaml:"rank"`
	Badge        string   `json:"badge" yaml:"badge"`
	Achievements []string `json:"achievements" yaml:"achievements"`
	// Tips are one-line nudges, shorter than full challenges.
	Tips []string `json:"tips" yaml:"tips"`

	// CO2SavedToday is the daily saving in kg against the French average.
	CO2SavedToday         int64   `json:"co2SavedToday" yaml:"co2SavedToday"`
	PlanetsSavedVsAverage float64 `json:"planetsSavedVsAverage" yaml:"planetsSavedVsAverage"`
}

// kgPerPlanet turns a yearly saving into "planets saved".
const kgPerPlanet = 2000.0

type rankTier struct {
	below int64
	rank  string
	badge string
}

//nolint:gochecknoglobals // Static rank table, ascending.
var rankTiers = []rankTier{
	{2000, "Éco-Légende", "🌟"},
	{4000, "Gardien Vert", "🌱"},
	{6000, "Apprenti Écolo", "🌿"},
	{8000, "Citoyen Conscient", "♻️"},
}

const (
	defaultRank  = "Futur Éco-Héros"
	defaultBadge = "🌍"
)

// Gamify ranks a yearly footprint of co2KgPerYear and lists the
// achievements unlocked by p.
func Gamify(p profile.Profile, co2KgPerYear int64) Gamification {
	g := Gamification{Rank: defaultRank, Badge: defaultBadge}
	for _, tier := range rankTiers {
		if co2KgPerYear < tier.below {
			g.Rank, g.Badge = tier.rank, tier.badge
			break
		}
	}

	g.Achievements = []string{}
	if p.OwnsCar != nil && !*p.OwnsCar {
		g.Achievements = append(g.Achievements, "🚲 Mobilité Douce")
	}
	if p.MeatMealsPerWeek != nil && *p.MeatMealsPerWeek < 3 {
		g.Achievements = append(g.Achievements, "🥬 Flexitarien")
	}
	if p.SortWaste != nil && *p.SortWaste == profile.SortYes {
		g.Achievements = append(g.Achievements, "♻️ Maître du Tri")
	}
	if p.RepairFrequency != nil && *p.RepairFrequency == profile.OccurrenceOften {
		g.Achievements = append(g.Achievements, "🔧 Réparateur Pro")
	}

	g.Tips = []string{}
	if p.OwnsCar != nil && *p.OwnsCar {
		g.Tips = append(g.Tips, "Essayez 1 jour sans voiture cette semaine")
	}
	if p.MeatMealsPerWeek != nil && *p.MeatMealsPerWeek > 5 {
		g.Tips = append(g.Tips, "Tentez 2 repas végé cette semaine")
	}
	if p.ClothingFrequency != nil && *p.ClothingFrequency == profile.ClothingEveryMonth {
		g.Tips = append(g.Tips, "Explorez la seconde main ce mois-ci")
	}

	saved := math.Max(0, float64(AverageFrenchCO2Kg-co2KgPerYear))
	g.CO2SavedToday = int64(math.Round(saved / 365))
	g.PlanetsSavedVsAverage = math.Round(saved/kgPerPlanet*100) / 100
	return g
}

// ShareText is the sentence offered for sharing a result. The
// gamification part is omitted when g is nil.
func ShareText(result footprint.Result, g *Gamification) string {
	plural := "s"
	if result.PlanetsNeeded == 1 {
		plural = ""
	}
	text := fmt.Sprintf("Je suis %s ! Si tout le monde vivait comme moi, il faudrait %s planète%s !",
		result.Title, formatPlanets(result.PlanetsNeeded), plural)
	if g != nil {
		text += fmt.Sprintf(" Je suis %s %s et j'économise %dkg de CO₂ par jour !", g.Rank, g.Badge, g.CO2SavedToday)
	}
	return text + " 🌍 Et vous ? Faites le test !"
}

func formatPlanets(p float64) string {
	return fmt.Sprintf("%g", p)
}
