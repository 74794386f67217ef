// Package demo generates clearly labelled demonstration data: random
// respondents for the admin snapshot, a simulated electricity grid and the
// descriptions of the insight "models". Nothing here feeds the scoring
// engine; every value is reproducible from its seed.
package demo

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/planetprint/internal/batch"
	"github.com/rshade/planetprint/internal/footprint"
	"github.com/rshade/planetprint/internal/logging"
	"github.com/rshade/planetprint/internal/profile"
)

// MaxUsers bounds AdminSnapshot.
const MaxUsers = 10000

// NewRand returns the seeded generator used throughout the package.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

//nolint:gochecknoglobals // Fixed demo vocabularies.
var (
	countries = []string{"France", "Belgique", "Suisse", "Canada", "Maroc", "Sénégal"}
	cities    = []string{"Paris", "Lyon", "Marseille", "Toulouse", "Nice"}
)

// RandomProfile draws a plausible, fully answered profile.
func RandomProfile(r *rand.Rand) profile.Profile {
	gender := profile.GenderMale
	if r.Float64() > 0.5 {
		gender = profile.GenderFemale
	}
	relationship := profile.RelationshipSingle
	if r.Float64() > 0.6 {
		relationship = profile.RelationshipCouple
	}

	return profile.Profile{
		Gender:       &gender,
		Age:          profile.Ptr(18 + r.IntN(60)),
		Relationship: &relationship,

		HouseholdSize: profile.Ptr(1 + r.IntN(5)),
		HomeArea:      profile.Ptr(float64(30 + r.IntN(150))),
		HeatingType: pick(r, []profile.HeatingType{
			profile.HeatingElectricity, profile.HeatingGas, profile.HeatingOil, profile.HeatingHeatPump,
		}),
		HomeInsulation: pick(r, profile.Insulations()),

		OwnsCar:              profile.Ptr(r.Float64() > 0.3),
		CarType:              pick(r, profile.CarTypes()),
		WeeklyKm:             profile.Ptr(float64(r.IntN(500))),
		FlightFrequency:      pick(r, []profile.TripFrequency{profile.TripsNever, profile.TripsOneTwo, profile.TripsThreeFive}),
		PublicTransportUsage: pick(r, profile.Usages()),
		CruiseFrequency:      profile.Ptr(profile.TripsNever),

		MeatMealsPerWeek:    profile.Ptr(r.IntN(15)),
		DailyAnimalProducts: profile.Ptr(r.Float64() > 0.4),
		BioLocalFrequency:   pick(r, profile.Usages()),
		FoodWasteFrequency:  pick(r, profile.Occurrences()),

		ClothingFrequency:   pick(r, profile.ClothingFrequencies()),
		BuyNewElectronics:   profile.Ptr(r.Float64() > 0.6),
		RepairFrequency:     pick(r, profile.Occurrences()),
		SecondHandFrequency: pick(r, profile.Usages()),

		SortWaste:             pick(r, profile.SortPractices()),
		TrashBagsPerWeek:      profile.Ptr(1 + r.IntN(5)),
		LowPackagingFrequency: pick(r, profile.Usages()),
	}
}

func pick[T any](r *rand.Rand, values []T) *T {
	v := values[r.IntN(len(values))]
	return &v
}

// User is one generated respondent.
type User struct {
	ID        string           `json:"id" yaml:"id"`
	Demo      bool             `json:"demo" yaml:"demo"`
	Country   string           `json:"country" yaml:"country"`
	City      string           `json:"city" yaml:"city"`
	CreatedAt time.Time        `json:"createdAt" yaml:"createdAt"`
	Profile   profile.Profile  `json:"profile" yaml:"profile"`
	Result    footprint.Result `json:"result" yaml:"result"`
	CO2Kg     int64            `json:"co2Kg" yaml:"co2Kg"`
}

// AdminReport is a snapshot of the demo admin dashboard.
type AdminReport struct {
	Demo        bool                       `json:"demo" yaml:"demo"`
	Seed        uint64                     `json:"seed" yaml:"seed"`
	GeneratedAt time.Time                  `json:"generatedAt" yaml:"generatedAt"`
	Users       []User                     `json:"users" yaml:"users"`
	Stats       batch.CohortStats          `json:"stats" yaml:"stats"`
	Categories  map[footprint.Category]int `json:"categories" yaml:"categories"`
	CarOwners   GroupAverage               `json:"carOwners" yaml:"carOwners"`
	CarFree     GroupAverage               `json:"carFree" yaml:"carFree"`
}

// GroupAverage is the mean planets figure of a subset of users.
type GroupAverage struct {
	Users       int     `json:"users" yaml:"users"`
	MeanPlanets float64 `json:"meanPlanets" yaml:"meanPlanets"`
}

// AdminSnapshot generates n respondents from seed, scores them through
// the real engine and summarises the cohort. The same seed and now always
// give the same report.
func AdminSnapshot(ctx context.Context, n int, seed uint64, now time.Time) (AdminReport, error) {
	if n <= 0 || n > MaxUsers {
		return AdminReport{}, fmt.Errorf("demo users must be between 1 and %d, got %d", MaxUsers, n)
	}

	r := NewRand(seed)
	var entropySeed [32]byte
	binary.LittleEndian.PutUint64(entropySeed[:], seed)
	entropy := ulid.Monotonic(rand.NewChaCha8(entropySeed), 0)

	const window = 30 * 24 * time.Hour
	profiles := make([]profile.Profile, n)
	users := make([]User, n)
	for i := range n {
		profiles[i] = RandomProfile(r)
		created := now.Add(-time.Duration(r.Int64N(int64(window))))
		users[i] = User{
			ID:        ulid.MustNew(ulid.Timestamp(created), entropy).String(),
			Demo:      true,
			Country:   countries[r.IntN(len(countries))],
			City:      cities[r.IntN(len(cities))],
			CreatedAt: created,
			Profile:   profiles[i],
		}
	}

	cohort, err := batch.ScoreCohort(ctx, profiles, batch.CohortOptions{})
	if err != nil {
		return AdminReport{}, fmt.Errorf("scoring demo users: %w", err)
	}

	report := AdminReport{
		Demo:        true,
		Seed:        seed,
		GeneratedAt: now,
		Users:       users,
		Stats:       cohort.Stats,
		Categories:  cohort.Distribution,
	}
	var ownersSum, freeSum float64
	for i, e := range cohort.Entries {
		report.Users[i].Result = e.Result
		report.Users[i].CO2Kg = e.CO2Kg
		if p := profiles[i]; p.OwnsCar != nil && *p.OwnsCar {
			report.CarOwners.Users++
			ownersSum += e.Result.PlanetsNeeded
		} else {
			report.CarFree.Users++
			freeSum += e.Result.PlanetsNeeded
		}
	}
	report.CarOwners.MeanPlanets = mean(ownersSum, report.CarOwners.Users)
	report.CarFree.MeanPlanets = mean(freeSum, report.CarFree.Users)

	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("component", "demo").
		Int("users", n).
		Uint64("seed", seed).
		Msg("generated demo admin snapshot")
	return report, nil
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return math.Round(sum/float64(n)*10) / 10
}
