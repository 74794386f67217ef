package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/planetprint/internal/config"
	"github.com/rshade/planetprint/internal/footprint"
	"github.com/rshade/planetprint/internal/greenops"
	"github.com/rshade/planetprint/internal/insights"
	"github.com/rshade/planetprint/internal/logging"
	"github.com/rshade/planetprint/internal/profile"
	"github.com/rshade/planetprint/internal/tui"
)

// ErrInvalidAnswer is returned for a --set value without "=".
var ErrInvalidAnswer = errors.New("answers must look like key=value")

// scoreParams holds the flags of the score command.
type scoreParams struct {
	profilePaths []string
	answers      []string
	output       string
	region       string
	explain      bool
}

// ScoreReport is the structured output of the score command.
type ScoreReport struct {
	Result        footprint.Result            `json:"result" yaml:"result"`
	CO2Kg         int64                       `json:"co2Kg" yaml:"co2Kg"`
	Percentages   map[profile.Domain]float64  `json:"percentages" yaml:"percentages"`
	Message       string                      `json:"message" yaml:"message"`
	Equivalencies *greenops.EquivalencyOutput `json:"equivalencies,omitempty" yaml:"equivalencies,omitempty"`
	Comparison    insights.Comparison         `json:"comparison" yaml:"comparison"`
	Contributions []footprint.Contribution    `json:"contributions,omitempty" yaml:"contributions,omitempty"`
}

func newScoreCmd() *cobra.Command {
	var params scoreParams

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a questionnaire",
		Long: `Scores a questionnaire into a category, a planets-needed figure and a
per-domain breakdown.

Answers come from profile files (YAML or JSON, "-" for stdin), from --set
key=value flags, or both. Later files override the answered fields of
earlier ones. --set answers are applied last and are normalised like any
other input: unparseable numbers become unanswered and an empty value
clears a field.`,
		Example: `  # Score answers given on the command line
  planetprint score --set heatingType=gaz --set homeArea=80 --set householdSize=2

  # Score a file and compare against the European average
  planetprint score --profile profile.yaml --region europe

  # Layer personal answers over a household template
  planetprint score --profile household.yaml --profile me.yaml

  # Show where every point comes from, as JSON
  planetprint score --profile profile.json --explain --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScore(cmd, params)
		},
	}

	cmd.Flags().StringArrayVarP(&params.profilePaths, "profile", "p", nil, "profile file (YAML or JSON, - for stdin, repeatable)")
	cmd.Flags().StringArrayVar(&params.answers, "set", nil, "answer as key=value (repeatable)")
	cmd.Flags().StringVarP(&params.output, "output", "o", "", "output format: table, json or yaml")
	cmd.Flags().StringVar(&params.region, "region", "", "comparison region: france, europe or world")
	cmd.Flags().BoolVar(&params.explain, "explain", false, "list the contribution of every answer")

	return cmd
}

func runScore(cmd *cobra.Command, params scoreParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	format, err := resolveFormat(params.output)
	if err != nil {
		return err
	}
	region, err := resolveRegion(params.region)
	if err != nil {
		return err
	}

	p, err := loadProfiles(cmd.InOrStdin(), params.profilePaths)
	if err != nil {
		return err
	}
	if p, err = applyAnswers(p, params.answers); err != nil {
		return err
	}

	result := footprint.Calculate(p)
	log.Debug().Ctx(ctx).
		Int("answered", p.Answered()).
		Float64("total_score", result.TotalScore).
		Str("category", string(result.Category)).
		Msg("profile scored")

	report, err := buildScoreReport(p, result, region, params.explain)
	if err != nil {
		return err
	}

	if format == formatTable {
		return renderScoreTable(cmd.OutOrStdout(), report)
	}
	return renderStructured(cmd.OutOrStdout(), format, report)
}

func buildScoreReport(p profile.Profile, result footprint.Result, region insights.Region, explain bool) (ScoreReport, error) {
	cmp, err := insights.Compare(result, region)
	if err != nil {
		return ScoreReport{}, err
	}
	eq, err := greenops.FromScore(result.TotalScore, config.GetGlobalConfig().GreenOps.Options())
	if err != nil {
		return ScoreReport{}, fmt.Errorf("computing equivalencies: %w", err)
	}

	report := ScoreReport{
		Result:      result,
		CO2Kg:       footprint.CO2Equivalent(result.TotalScore),
		Percentages: result.Breakdown.Percentages(),
		Message:     result.Category.Message(),
		Comparison:  cmp,
	}
	if !eq.IsEmpty {
		report.Equivalencies = &eq
	}
	if explain {
		report.Contributions = footprint.Explain(p)
	}
	return report, nil
}

func renderScoreTable(w io.Writer, report ScoreReport) error {
	cmp := report.Comparison
	if _, err := fmt.Fprintln(w, tui.RenderResult(report.Result, report.Equivalencies, &cmp, terminalWidth())); err != nil {
		return err
	}
	if len(report.Contributions) > 0 {
		table := tui.NewContributionTable(report.Contributions)
		if _, err := fmt.Fprintln(w, table.View()); err != nil {
			return err
		}
	}
	return nil
}

// loadProfile reads path, "-" meaning r. An empty path is an empty profile.
func loadProfile(r io.Reader, path string) (profile.Profile, error) {
	switch path {
	case "":
		return profile.New(), nil
	case "-":
		data, err := io.ReadAll(r)
		if err != nil {
			return profile.Profile{}, fmt.Errorf("reading profile from stdin: %w", err)
		}
		format := profile.FormatYAML
		if trimmed := strings.TrimSpace(string(data)); strings.HasPrefix(trimmed, "{") {
			format = profile.FormatJSON
		}
		return profile.LoadBytes(data, format)
	default:
		return profile.LoadFile(path)
	}
}

// loadProfiles merges the profiles at paths in order.
func loadProfiles(r io.Reader, paths []string) (profile.Profile, error) {
	merged := profile.New()
	for _, path := range paths {
		p, err := loadProfile(r, path)
		if err != nil {
			return profile.Profile{}, err
		}
		merged = merged.Merge(p)
	}
	return merged, nil
}

// applyAnswers parses and applies key=value answers in order.
func applyAnswers(p profile.Profile, answers []string) (profile.Profile, error) {
	if len(answers) == 0 {
		return p, nil
	}
	parsed := make([]profile.Answer, 0, len(answers))
	for _, kv := range answers {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return p, fmt.Errorf("%w: %q", ErrInvalidAnswer, kv)
		}
		spec, err := profile.Lookup(strings.TrimSpace(key))
		if err != nil {
			return p, err
		}
		answer, err := profile.ParseAnswer(spec.Field, value)
		if err != nil {
			return p, err
		}
		parsed = append(parsed, answer)
	}
	return p.Apply(parsed...)
}

// resolveRegion returns flagValue or the configured region.
func resolveRegion(flagValue string) (insights.Region, error) {
	if flagValue == "" {
		flagValue = config.GetRegion()
	}
	return insights.ParseRegion(flagValue)
}
