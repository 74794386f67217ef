// Package footprint is the scoring engine: it turns a questionnaire
// profile into a category, a "planets needed" figure and a per-domain
// breakdown.
//
// Every function in this package is pure. Scoring never fails: an
// unanswered field simply contributes nothing.
package footprint

import (
	"fmt"

	"github.com/rshade/planetprint/internal/profile"
)

// Category is the qualitative bucket of a total score, ordered from the
// greenest to the most emitting.
type Category string

const (
	CategoryExcellent  Category = "excellent"
	CategoryGood       Category = "good"
	CategoryAverage    Category = "average"
	CategoryConcerning Category = "concerning"
	CategoryCritical   Category = "critical"
)

// Categories lists all categories in ascending order.
func Categories() []Category {
	return []Category{CategoryExcellent, CategoryGood, CategoryAverage, CategoryConcerning, CategoryCritical}
}

// Rank returns the position of c in the category order (0 = excellent),
// or -1 for an unknown category.
func (c Category) Rank() int {
	for i, candidate := range Categories() {
		if candidate == c {
			return i
		}
	}
	return -1
}

func (c Category) Valid() bool { return c.Rank() >= 0 }

// Breakdown holds the five sub-scores.
type Breakdown struct {
	Housing     float64 `json:"housing" yaml:"housing"`
	Transport   float64 `json:"transport" yaml:"transport"`
	Food        float64 `json:"food" yaml:"food"`
	Consumption float64 `json:"consumption" yaml:"consumption"`
	Waste       float64 `json:"waste" yaml:"waste"`
}

// Get returns the sub-score of a scored domain. Identity and unknown
// domains have no sub-score and return 0.
func (b Breakdown) Get(d profile.Domain) float64 {
	switch d {
	case profile.DomainHousing:
		return b.Housing
	case profile.DomainTransport:
		return b.Transport
	case profile.DomainFood:
		return b.Food
	case profile.DomainConsumption:
		return b.Consumption
	case profile.DomainWaste:
		return b.Waste
	case profile.DomainIdentity:
		return 0
	}
	return 0
}

// Each calls fn for every scored domain in display order.
func (b Breakdown) Each(fn func(d profile.Domain, score float64)) {
	for _, d := range profile.ScoredDomains() {
		fn(d, b.Get(d))
	}
}

// Sum adds the five sub-scores.
func (b Breakdown) Sum() float64 {
	return b.Housing + b.Transport + b.Food + b.Consumption + b.Waste
}

func (b *Breakdown) add(d profile.Domain, points float64) {
	switch d {
	case profile.DomainHousing:
		b.Housing += points
	case profile.DomainTransport:
		b.Transport += points
	case profile.DomainFood:
		b.Food += points
	case profile.DomainConsumption:
		b.Consumption += points
	case profile.DomainWaste:
		b.Waste += points
	case profile.DomainIdentity:
	}
}

// Result is the outcome of scoring one profile.
type Result struct {
	PlanetsNeeded float64   `json:"planetsNeeded" yaml:"planetsNeeded"`
	Category      Category  `json:"category" yaml:"category"`
	Title         string    `json:"title" yaml:"title"`
	TotalScore    float64   `json:"totalScore" yaml:"totalScore"`
	Breakdown     Breakdown `json:"breakdown" yaml:"breakdown"`
}

// String renders a one-line summary, handy in logs.
func (r Result) String() string {
	return fmt.Sprintf("%s (%s): %.1f points, %.2f planets", r.Title, r.Category, r.TotalScore, r.PlanetsNeeded)
}

// Contribution is the share of one answer in its domain sub-score.
type Contribution struct {
	Domain profile.Domain `json:"domain" yaml:"domain"`
	Field  profile.Field  `json:"field" yaml:"field"`
	Answer string         `json:"answer" yaml:"answer"`
	Points float64        `json:"points" yaml:"points"`
}
