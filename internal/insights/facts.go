package insights

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/rshade/planetprint/internal/profile"
)

//go:embed facts.yaml
var factsYAML []byte

// Fact is one "did you know" card.
type Fact struct {
	ID       string         `json:"id" yaml:"id"`
	Domain   profile.Domain `json:"domain" yaml:"domain"`
	Question string         `json:"question" yaml:"question"`
	Answer   string         `json:"answer" yaml:"answer"`
	Icon     string         `json:"icon" yaml:"icon"`
}

type factsFile struct {
	Facts []Fact `yaml:"facts"`
}

//nolint:gochecknoglobals // Decoded once from the embedded file.
var loadFacts = sync.OnceValues(func() ([]Fact, error) {
	var f factsFile
	if err := yaml.Unmarshal(factsYAML, &f); err != nil {
		return nil, fmt.Errorf("insights: parse facts: %w", err)
	}
	return f.Facts, nil
})

// Facts returns every fact in file order. The slice is a copy.
func Facts() ([]Fact, error) {
	facts, err := loadFacts()
	if err != nil {
		return nil, err
	}
	return append([]Fact(nil), facts...), nil
}

// FactsByDomain returns the facts of one domain. An empty domain returns all facts.
func FactsByDomain(d profile.Domain) ([]Fact, error) {
	facts, err := Facts()
	if err != nil || d == "" {
		return facts, err
	}
	out := facts[:0]
	for _, f := range facts {
		if f.Domain == d {
			out = append(out, f)
		}
	}
	return out, nil
}

// RandomFact picks one fact using r.
func RandomFact(r *rand.Rand) (Fact, error) {
	facts, err := loadFacts()
	if err != nil {
		return Fact{}, err
	}
	if len(facts) == 0 {
		return Fact{}, fmt.Errorf("insights: no facts available")
	}
	return facts[r.IntN(len(facts))], nil
}
