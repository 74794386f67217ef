package footprint

import (
	"math"

	"github.com/rshade/planetprint/internal/profile"
)

// MaxScores are the display maxima of each domain. They only size the
// progress bars of a breakdown and never feed back into scoring.
//
//nolint:gochecknoglobals // Static display table.
var MaxScores = map[profile.Domain]float64{
	profile.DomainHousing:     2.5,
	profile.DomainTransport:   4.5,
	profile.DomainFood:        2.5,
	profile.DomainConsumption: 1.5,
	profile.DomainWaste:       1.0,
}

// Percentages returns each sub-score as a share of its display maximum,
// clamped to [0, 100].
func (b Breakdown) Percentages() map[profile.Domain]float64 {
	out := make(map[profile.Domain]float64, len(MaxScores))
	b.Each(func(d profile.Domain, score float64) {
		out[d] = Percentage(d, score)
	})
	return out
}

// Percentage returns score as a share of the display maximum of d.
func Percentage(d profile.Domain, score float64) float64 {
	limit, ok := MaxScores[d]
	if !ok || limit <= 0 {
		return 0
	}
	return math.Max(0, math.Min(100, score/limit*100))
}

// Label returns the French label of a scored domain.
func Label(d profile.Domain) string {
	switch d {
	case profile.DomainHousing:
		return "Logement"
	case profile.DomainTransport:
		return "Transport"
	case profile.DomainFood:
		return "Alimentation"
	case profile.DomainConsumption:
		return "Consommation"
	case profile.DomainWaste:
		return "Déchets"
	case profile.DomainIdentity:
		return "Identité"
	}
	return string(d)
}

// Icon returns the emoji shown next to a domain.
func Icon(d profile.Domain) string {
	switch d {
	case profile.DomainHousing:
		return "🏠"
	case profile.DomainTransport:
		return "🚗"
	case profile.DomainFood:
		return "🍽️"
	case profile.DomainConsumption:
		return "🛍️"
	case profile.DomainWaste:
		return "♻️"
	case profile.DomainIdentity:
		return "👤"
	}
	return "📊"
}

// Message returns the sentence shown under the category title.
func (c Category) Message() string {
	switch c {
	case CategoryExcellent:
		return "Incroyable ! Vous êtes un véritable gardien de notre planète !"
	case CategoryGood:
		return "Bravo ! Vous montrez l'exemple avec un mode de vie responsable !"
	case CategoryAverage:
		return "Pas mal ! Quelques ajustements pourraient faire la différence !"
	case CategoryConcerning:
		return "Attention ! Il est temps de repenser certaines habitudes !"
	case CategoryCritical:
		return "Alerte rouge ! Des changements majeurs s'imposent !"
	}
	return ""
}
