package cli_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/planetprint/internal/batch"
	"github.com/rshade/planetprint/internal/cli"
	"github.com/rshade/planetprint/internal/cli/pagination"
	"github.com/rshade/planetprint/internal/config"
	"github.com/rshade/planetprint/internal/demo"
	"github.com/rshade/planetprint/internal/footprint"
	"github.com/rshade/planetprint/internal/insights"
	"github.com/rshade/planetprint/internal/profile"
)

const cohortJSONL = `{"heatingType":"fioul","ownsCar":true,"carType":"diesel","weeklyKm":300}
{"heatingType":"pompe-chaleur"}
{}
`

func writeCohort(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cohort.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestBatch(t *testing.T) {
	t.Run("json with entries", func(t *testing.T) {
		setupCLITest(t)
		out, err := runCLI(t, "batch", "--input", writeCohort(t, cohortJSONL), "--entries", "-o", "json", "--batch-size", "1")
		require.NoError(t, err)

		var report batch.CohortReport
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, 3, report.Stats.Count)
		require.Len(t, report.Entries, 3)
		assert.InDelta(t, 3.5, report.Entries[0].Result.TotalScore, 1e-9)
		assert.Equal(t, 1, report.Distribution[footprint.CategoryGood])
		assert.Equal(t, 2, report.Distribution[footprint.CategoryExcellent])
	})

	t.Run("entries omitted by default", func(t *testing.T) {
		setupCLITest(t)
		out, err := runCLI(t, "batch", "-i", writeCohort(t, cohortJSONL), "-o", "json")
		require.NoError(t, err)
		assert.NotContains(t, out, `"entries"`)
	})

	t.Run("table", func(t *testing.T) {
		setupCLITest(t)
		out, err := runCLI(t, "batch", "-i", writeCohort(t, cohortJSONL))
		require.NoError(t, err)
		assert.Contains(t, out, "Profiles")
		assert.Contains(t, out, "excellent")
		assert.Contains(t, out, "67%")
	})

	t.Run("sorted and paged entries", func(t *testing.T) {
		setupCLITest(t)
		out, err := runCLI(t, "batch", "-i", writeCohort(t, cohortJSONL), "--entries",
			"--sort", "score:desc", "--limit", "2", "-o", "json")
		require.NoError(t, err)

		var report struct {
			batch.CohortReport
			Pagination pagination.PaginationMeta `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		require.Len(t, report.Entries, 2)
		assert.Equal(t, 0, report.Entries[0].Index)
		assert.Equal(t, 1, report.Entries[1].Index)
		assert.Equal(t, 3, report.Pagination.TotalItems)
		assert.Equal(t, 2, report.Pagination.TotalPages)
		assert.True(t, report.Pagination.HasNext)
		assert.Equal(t, 3, report.Stats.Count, "stats cover the whole cohort")
	})

	t.Run("paging errors", func(t *testing.T) {
		setupCLITest(t)
		input := writeCohort(t, cohortJSONL)

		_, err := runCLI(t, "batch", "-i", input, "--entries", "--sort", "name")
		require.ErrorIs(t, err, pagination.ErrInvalidSortField)

		_, err = runCLI(t, "batch", "-i", input, "--entries", "--page", "2")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "page-size must be specified")
	})

	t.Run("invalid profile aborts", func(t *testing.T) {
		setupCLITest(t)
		_, err := runCLI(t, "batch", "-i", writeCohort(t, `{"heatingType":"charbon"}`+"\n"))
		require.ErrorIs(t, err, profile.ErrUnknownValue)
	})

	t.Run("input is required", func(t *testing.T) {
		setupCLITest(t)
		_, err := runCLI(t, "batch")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "input")
	})
}

func TestQuestions(t *testing.T) {
	setupCLITest(t)

	out, err := runCLI(t, "questions")
	require.NoError(t, err)
	assert.Contains(t, out, "heatingType")
	assert.Contains(t, out, "fioul")

	out, err = runCLI(t, "questions", "-o", "json")
	require.NoError(t, err)
	var fields []profile.FieldSpec
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	assert.Len(t, fields, len(profile.Fields()))
}

func TestFacts(t *testing.T) {
	t.Run("by domain", func(t *testing.T) {
		setupCLITest(t)
		out, err := runCLI(t, "facts", "--domain", "food", "-o", "json")
		require.NoError(t, err)

		var facts []insights.Fact
		require.NoError(t, json.Unmarshal([]byte(out), &facts))
		require.NotEmpty(t, facts)
		for _, f := range facts {
			assert.Equal(t, profile.DomainFood, f.Domain)
		}
	})

	t.Run("random", func(t *testing.T) {
		setupCLITest(t)
		out, err := runCLI(t, "facts", "--random", "-o", "json")
		require.NoError(t, err)

		var facts []insights.Fact
		require.NoError(t, json.Unmarshal([]byte(out), &facts))
		assert.Len(t, facts, 1)
	})

	t.Run("table", func(t *testing.T) {
		setupCLITest(t)
		out, err := runCLI(t, "facts")
		require.NoError(t, err)
		all, err := insights.Facts()
		require.NoError(t, err)
		assert.Contains(t, out, all[0].Question)
	})

	t.Run("unknown domain", func(t *testing.T) {
		setupCLITest(t)
		_, err := runCLI(t, "facts", "--domain", "space")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "space")
	})

	t.Run("domain and random are exclusive", func(t *testing.T) {
		setupCLITest(t)
		_, err := runCLI(t, "facts", "--domain", "food", "--random")
		require.Error(t, err)
	})
}

func TestDemo(t *testing.T) {
	t.Run("admin is reproducible", func(t *testing.T) {
		setupCLITest(t)
		first, err := runCLI(t, "demo", "admin", "--users", "20", "--seed", "7", "-o", "json")
		require.NoError(t, err)

		var report demo.AdminReport
		require.NoError(t, json.Unmarshal([]byte(first), &report))
		assert.True(t, report.Demo)
		assert.Equal(t, uint64(7), report.Seed)
		assert.Len(t, report.Users, 20)
		assert.Equal(t, 20, report.CarOwners.Users+report.CarFree.Users)

		second, err := runCLI(t, "demo", "admin", "--users", "20", "--seed", "7", "-o", "json")
		require.NoError(t, err)
		var again demo.AdminReport
		require.NoError(t, json.Unmarshal([]byte(second), &again))
		assert.Equal(t, report.Stats, again.Stats)
		assert.Equal(t, report.Users[0].Profile, again.Users[0].Profile)
	})

	t.Run("admin table", func(t *testing.T) {
		setupCLITest(t)
		out, err := runCLI(t, "demo", "admin", "--users", "5")
		require.NoError(t, err)
		assert.Contains(t, out, "DEMO DATA")
		assert.Contains(t, out, "Seed")
		assert.Contains(t, out, "42")
	})

	t.Run("grid day", func(t *testing.T) {
		setupCLITest(t)
		out, err := runCLI(t, "demo", "grid", "--day", "-o", "json")
		require.NoError(t, err)

		var readings []demo.GridReading
		require.NoError(t, json.Unmarshal([]byte(out), &readings))
		assert.Len(t, readings, 24)
		for _, r := range readings {
			assert.True(t, r.Simulated)
		}
	})

	t.Run("grid now", func(t *testing.T) {
		setupCLITest(t)
		out, err := runCLI(t, "demo", "grid")
		require.NoError(t, err)
		assert.Contains(t, out, "gCO2/kWh")
	})

	t.Run("models", func(t *testing.T) {
		setupCLITest(t)
		out, err := runCLI(t, "demo", "models")
		require.NoError(t, err)
		assert.Contains(t, out, "DEMO DATA")
		assert.Contains(t, out, demo.ModelCards()[0].Name)
		assert.Contains(t, out, "ADEME")
	})
}

func TestWhatIf_RequiresTerminal(t *testing.T) {
	setupCLITest(t)
	_, err := runCLI(t, "whatif")
	require.ErrorIs(t, err, cli.ErrNotTerminal)
}

func TestServe(t *testing.T) {
	t.Run("invalid configuration", func(t *testing.T) {
		setupCLITest(t)
		t.Setenv(config.EnvSessionsMax, "0")
		_, err := runCLI(t, "serve")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sessions.max")
	})

	t.Run("stops when cancelled", func(t *testing.T) {
		setupCLITest(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var buf strings.Builder
		cmd := cli.NewRootCmd("test")
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs([]string{"serve", "--addr", "127.0.0.1:0", "--demo"})
		require.NoError(t, cmd.ExecuteContext(ctx))
		assert.Contains(t, buf.String(), "Listening on 127.0.0.1:0")
	})
}

func TestVersionFlag(t *testing.T) {
	setupCLITest(t)
	out, err := runCLI(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "test")
}
