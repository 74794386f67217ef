package insights

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rshade/planetprint/internal/footprint"
)

// ErrUnknownRegion is returned by Compare and ParseRegion.
var ErrUnknownRegion = errors.New("unknown region")

// Region is a comparison population.
type Region string

const (
	RegionFrance Region = "france"
	RegionEurope Region = "europe"
	RegionWorld  Region = "world"
)

// DefaultRegion is used when no region is requested.
const DefaultRegion = RegionFrance

// markerScalePlanets is the right edge of the comparison gauge.
const markerScalePlanets = 5.0

type regionStats struct {
	label     string
	average   float64
	top       float64
	userCount string
}

//nolint:gochecknoglobals // Static comparison table.
var regions = map[Region]regionStats{
	RegionFrance: {label: "🇫🇷 France", average: 2.9, top: 1.2, userCount: "2.3M"},
	RegionEurope: {label: "🇪🇺 Europe", average: 2.4, top: 1.1, userCount: "8.7M"},
	RegionWorld:  {label: "🌍 Monde", average: 1.75, top: 0.9, userCount: "45M"},
}

// Regions lists the supported regions in display order.
func Regions() []Region {
	return []Region{RegionFrance, RegionEurope, RegionWorld}
}

// ParseRegion accepts a region name case-insensitively. An empty string
// selects DefaultRegion.
func ParseRegion(raw string) (Region, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return DefaultRegion, nil
	}
	r := Region(s)
	if _, ok := regions[r]; !ok {
		names := make([]string, 0, len(regions))
		for _, known := range Regions() {
			names = append(names, string(known))
		}
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownRegion, raw, strings.Join(names, ", "))
	}
	return r, nil
}

// Comparison places a result within a region's population.
type Comparison struct {
	Region Region `json:"region" yaml:"region"`
	Label  string `json:"label" yaml:"label"`

	AveragePlanets float64 `json:"averagePlanets" yaml:"averagePlanets"`
	TopPlanets     float64 `json:"topPlanets" yaml:"topPlanets"`
	UserCount      string  `json:"userCount" yaml:"userCount"`

	// PercentileBetter is how much lighter than average the result is, in
	// percent. It is 0 for results at or above the average.
	PercentileBetter int  `json:"percentileBetter" yaml:"percentileBetter"`
	AboveAverage     bool `json:"aboveAverage" yaml:"aboveAverage"`
	TopPerformer     bool `json:"topPerformer" yaml:"topPerformer"`

	// MarkerPercent positions the result on a 0-5 planets gauge.
	MarkerPercent float64 `json:"markerPercent" yaml:"markerPercent"`
}

// Compare positions result against the population of region.
func Compare(result footprint.Result, region Region) (Comparison, error) {
	stats, ok := regions[region]
	if !ok {
		return Comparison{}, fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}

	planets := result.PlanetsNeeded
	better := int(math.Round((1 - planets/stats.average) * 100))

	return Comparison{
		Region:           region,
		Label:            stats.label,
		AveragePlanets:   stats.average,
		TopPlanets:       stats.top,
		UserCount:        stats.userCount,
		PercentileBetter: max(better, 0),
		AboveAverage:     planets > stats.average,
		TopPerformer:     planets <= stats.top,
		MarkerPercent:    math.Min(planets/markerScalePlanets*100, 100),
	}, nil
}
