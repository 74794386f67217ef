package insights

import (
	"github.com/rshade/planetprint/internal/footprint"
	"github.com/rshade/planetprint/internal/profile"
)

// Report gathers every insight for one scored profile.
type Report struct {
	Comparison   Comparison   `json:"comparison" yaml:"comparison"`
	Challenges   []Challenge  `json:"challenges" yaml:"challenges"`
	Gamification Gamification `json:"gamification" yaml:"gamification"`
	ShareText    string       `json:"shareText" yaml:"shareText"`
}

// Build assembles the insights of p, whose score is result.
func Build(p profile.Profile, result footprint.Result, region Region) (Report, error) {
	cmp, err := Compare(result, region)
	if err != nil {
		return Report{}, err
	}
	g := Gamify(p, footprint.CO2Equivalent(result.TotalScore))
	return Report{
		Comparison:   cmp,
		Challenges:   Challenges(p),
		Gamification: g,
		ShareText:    ShareText(result, &g),
	}, nil
}
