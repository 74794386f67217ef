package insights

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/planetprint/internal/footprint"
	"github.com/rshade/planetprint/internal/profile"
)

func resultWithPlanets(planets float64) footprint.Result {
	return footprint.Result{PlanetsNeeded: planets, Title: footprint.TitleGood, Category: footprint.CategoryGood}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name       string
		planets    float64
		region     Region
		wantBetter int
		wantAbove  bool
		wantTop    bool
		wantMarker float64
	}{
		{"excellent in france", 1.2, RegionFrance, 59, false, true, 24},
		{"good in europe", 1.8, RegionEurope, 25, false, false, 36},
		{"average in world", 2.5, RegionWorld, 0, true, false, 50},
		{"exactly the average", 2.9, RegionFrance, 0, false, false, 58},
		{"capped marker", 4.5, RegionFrance, 0, true, false, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(resultWithPlanets(tt.planets), tt.region)
			require.NoError(t, err)
			assert.Equal(t, tt.region, got.Region)
			assert.Equal(t, tt.wantBetter, got.PercentileBetter)
			assert.Equal(t, tt.wantAbove, got.AboveAverage)
			assert.Equal(t, tt.wantTop, got.TopPerformer)
			assert.InDelta(t, tt.wantMarker, got.MarkerPercent, 1e-9)
			assert.NotEmpty(t, got.UserCount)
		})
	}
}

func TestCompare_MarkerNeverExceeds100(t *testing.T) {
	got, err := Compare(resultWithPlanets(7), RegionWorld)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, got.MarkerPercent, 1e-9)
}

func TestCompare_UnknownRegion(t *testing.T) {
	_, err := Compare(resultWithPlanets(1.2), Region("mars"))
	require.ErrorIs(t, err, ErrUnknownRegion)
}

func TestParseRegion(t *testing.T) {
	r, err := ParseRegion("")
	require.NoError(t, err)
	assert.Equal(t, RegionFrance, r)

	r, err = ParseRegion(" Europe ")
	require.NoError(t, err)
	assert.Equal(t, RegionEurope, r)

	_, err = ParseRegion("asia")
	require.ErrorIs(t, err, ErrUnknownRegion)

	for _, r := range Regions() {
		_, err := ParseRegion(string(r))
		assert.NoError(t, err)
	}
}

func challengeIDs(cs []Challenge) []string {
	ids := make([]string, 0, len(cs))
	for _, c := range cs {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestChallenges(t *testing.T) {
	tests := []struct {
		name string
		p    profile.Profile
		want []string
	}{
		{"empty profile gets universal challenges", profile.New(), []string{"energy-saver", "zero-waste"}},
		{
			name: "heavy driver",
			p:    profile.Profile{OwnsCar: profile.Ptr(true), WeeklyKm: profile.Ptr(150.0)},
			want: []string{"car-free-day", "energy-saver", "zero-waste"},
		},
		{
			name: "light driver",
			p:    profile.Profile{OwnsCar: profile.Ptr(true), WeeklyKm: profile.Ptr(100.0)},
			want: []string{"energy-saver", "zero-waste"},
		},
		{
			name: "distance without a car",
			p:    profile.Profile{OwnsCar: profile.Ptr(false), WeeklyKm: profile.Ptr(300.0)},
			want: []string{"energy-saver", "zero-waste"},
		},
		{
			name: "everything",
			p: profile.Profile{
				OwnsCar:           profile.Ptr(true),
				WeeklyKm:          profile.Ptr(300.0),
				MeatMealsPerWeek:  profile.Ptr(6),
				ClothingFrequency: profile.Ptr(profile.ClothingEveryMonth),
			},
			want: []string{"car-free-day", "veggie-week", "no-buy-month", "energy-saver", "zero-waste"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, challengeIDs(Challenges(tt.p)))
		})
	}
}

func TestGamify_Ranks(t *testing.T) {
	tests := []struct {
		co2  int64
		want string
	}{
		{0, "Éco-Légende"},
		{1999, "Éco-Légende"},
		{2000, "Gardien Vert"},
		{5999, "Apprenti Écolo"},
		{7999, "Citoyen Conscient"},
		{8000, "Futur Éco-Héros"},
		{18000, "Futur Éco-Héros"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			g := Gamify(profile.New(), tt.co2)
			assert.Equal(t, tt.want, g.Rank)
			assert.NotEmpty(t, g.Badge)
		})
	}
}

func TestGamify_Savings(t *testing.T) {
	g := Gamify(profile.New(), 3780)
	assert.Equal(t, int64(20), g.CO2SavedToday) // (11000-3780)/365 = 19.78
	assert.InDelta(t, 3.61, g.PlanetsSavedVsAverage, 1e-9)

	heavy := Gamify(profile.New(), 18000)
	assert.Equal(t, int64(0), heavy.CO2SavedToday)
	assert.InDelta(t, 0.0, heavy.PlanetsSavedVsAverage, 1e-9)
}

func TestGamify_Achievements(t *testing.T) {
	p := profile.Profile{
		OwnsCar:          profile.Ptr(false),
		MeatMealsPerWeek: profile.Ptr(2),
		SortWaste:        profile.Ptr(profile.SortYes),
		RepairFrequency:  profile.Ptr(profile.OccurrenceOften),
	}
	g := Gamify(p, 1500)
	assert.Len(t, g.Achievements, 4)
	assert.Empty(t, g.Tips)

	none := Gamify(profile.New(), 1500)
	assert.NotNil(t, none.Achievements)
	assert.Empty(t, none.Achievements)
}

func TestShareText(t *testing.T) {
	result := footprint.Result{PlanetsNeeded: 4.4, Title: footprint.TitleCritical}
	assert.Equal(t,
		"Je suis Tyran cosmique du CO₂ ! Si tout le monde vivait comme moi, il faudrait 4.4 planètes ! 🌍 Et vous ? Faites le test !",
		ShareText(result, nil))

	g := Gamification{Rank: "Gardien Vert", Badge: "🌱", CO2SavedToday: 20}
	got := ShareText(footprint.Result{PlanetsNeeded: 1, Title: footprint.TitleExcellent}, &g)
	assert.Contains(t, got, "1 planète !")
	assert.Contains(t, got, "Je suis Gardien Vert 🌱 et j'économise 20kg de CO₂ par jour !")
}

func TestBuild(t *testing.T) {
	p := profile.Profile{OwnsCar: profile.Ptr(true), WeeklyKm: profile.Ptr(300.0)}
	result := footprint.Calculate(p)

	report, err := Build(p, result, RegionEurope)
	require.NoError(t, err)
	assert.Equal(t, RegionEurope, report.Comparison.Region)
	assert.Contains(t, challengeIDs(report.Challenges), "car-free-day")
	assert.Contains(t, report.ShareText, report.Gamification.Rank)

	_, err = Build(p, result, "moon")
	require.ErrorIs(t, err, ErrUnknownRegion)
}

func TestFacts(t *testing.T) {
	facts, err := Facts()
	require.NoError(t, err)
	require.Len(t, facts, 23)

	seen := map[string]bool{}
	for _, f := range facts {
		assert.False(t, seen[f.ID], "duplicate fact %s", f.ID)
		seen[f.ID] = true
		assert.NotEmpty(t, f.Question)
		assert.NotEmpty(t, f.Answer)
		assert.Contains(t, append(profile.ScoredDomains(), profile.DomainIdentity), f.Domain)
	}
}

func TestFactsByDomain(t *testing.T) {
	housing, err := FactsByDomain(profile.DomainHousing)
	require.NoError(t, err)
	assert.Len(t, housing, 4)
	for _, f := range housing {
		assert.Equal(t, profile.DomainHousing, f.Domain)
	}

	all, err := FactsByDomain("")
	require.NoError(t, err)
	assert.Len(t, all, 23)

	// Filtering must not corrupt the shared catalogue.
	again, err := Facts()
	require.NoError(t, err)
	assert.Equal(t, "gender-pollution", again[0].ID)
}

func TestRandomFact_Deterministic(t *testing.T) {
	a, err := RandomFact(rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	b, err := RandomFact(rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
