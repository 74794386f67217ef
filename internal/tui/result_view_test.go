package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/planetprint/internal/footprint"
	"github.com/rshade/planetprint/internal/greenops"
	"github.com/rshade/planetprint/internal/insights"
	"github.com/rshade/planetprint/internal/profile"
)

func TestRenderResult(t *testing.T) {
	p := baselineProfile()
	result := footprint.Calculate(p)
	eq, err := greenops.FromScore(result.TotalScore, greenops.Options{})
	require.NoError(t, err)
	cmp, err := insights.Compare(result, insights.RegionFrance)
	require.NoError(t, err)

	out := RenderResult(result, &eq, &cmp, 0)

	assert.Contains(t, out, result.Title)
	assert.Contains(t, out, result.Category.Message())
	assert.Contains(t, out, "3.5 points")
	assert.Contains(t, out, "6.3 t CO₂/an")
	for _, d := range profile.ScoredDomains() {
		assert.Contains(t, out, footprint.Label(d))
	}
	assert.Contains(t, out, "Équivalences")
	assert.Contains(t, out, "Comparaison")
	assert.Contains(t, out, "Références")
}

func TestRenderResult_OptionalSections(t *testing.T) {
	result := footprint.Calculate(profile.New())
	out := RenderResult(result, &greenops.EquivalencyOutput{IsEmpty: true}, nil, 60)

	assert.NotContains(t, out, "Équivalences")
	assert.NotContains(t, out, "Comparaison")
	assert.Contains(t, out, footprint.TitleExcellent)
}

func TestRenderComparison(t *testing.T) {
	tests := []struct {
		name string
		cmp  insights.Comparison
		want string
	}{
		{name: "top performer", cmp: insights.Comparison{TopPerformer: true}, want: "meilleurs"},
		{name: "above average", cmp: insights.Comparison{AboveAverage: true}, want: "Au-dessus"},
		{name: "below average", cmp: insights.Comparison{PercentileBetter: 17}, want: "17% plus léger"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, renderComparison(tt.cmp), tt.want)
		})
	}
}

func TestRenderBreakdown(t *testing.T) {
	out := RenderBreakdown(footprint.Breakdown{Housing: 1.2, Transport: 4.5})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, len(profile.ScoredDomains()))
	assert.Contains(t, lines[0], "1.2 / 2.5")
	assert.Contains(t, lines[1], "4.5 / 4.5")
}

func TestNewContributionTable(t *testing.T) {
	contributions := footprint.Explain(baselineProfile())
	tbl := NewContributionTable(contributions)

	assert.Len(t, tbl.Rows(), len(contributions))
	view := tbl.View()
	assert.Contains(t, view, "Points")
	assert.Contains(t, view, "heatingType")
	assert.Contains(t, view, "+1.2")
}

func TestRenderScoreDelta(t *testing.T) {
	tests := []struct {
		delta float64
		want  string
	}{
		{1.25, "+1.3 " + IconArrowUp},
		{-0.5, "-0.5 " + IconArrowDown},
		{0.02, "0.0 " + IconArrowRight},
	}
	for _, tt := range tests {
		assert.Contains(t, RenderScoreDelta(tt.delta), tt.want)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "éèà...", truncate("éèàùûüÿ", 6))
}
