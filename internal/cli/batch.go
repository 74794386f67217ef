package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/planetprint/internal/batch"
	"github.com/rshade/planetprint/internal/cli/pagination"
	"github.com/rshade/planetprint/internal/footprint"
	"github.com/rshade/planetprint/internal/logging"
)

type batchParams struct {
	input       string
	concurrency int
	batchSize   int
	output      string
	entries     bool
	sort        string
	page        pagination.PaginationParams
}

// batchOutput is the structured output of the batch command.
type batchOutput struct {
	batch.CohortReport `yaml:",inline"`

	Pagination *pagination.PaginationMeta `json:"pagination,omitempty" yaml:"pagination,omitempty"`
}

func newBatchCmd() *cobra.Command {
	var params batchParams

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Score a cohort of questionnaires",
		Long: `Scores many profiles concurrently and reports the category distribution
and the cohort statistics.

The input is a JSON array, JSON Lines, or a YAML sequence or multi-document
stream of profiles. The first invalid profile aborts the run.`,
		Example: `  # Score a JSON Lines file
  planetprint batch --input cohort.jsonl

  # Read YAML from stdin and print every entry as JSON
  cat cohort.yaml | planetprint batch --input - --entries --output json

  # The ten heaviest footprints
  planetprint batch --input cohort.jsonl --entries --sort score:desc --limit 10`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd, params)
		},
	}

	cmd.Flags().StringVarP(&params.input, "input", "i", "", "profiles file (- for stdin)")
	cmd.Flags().IntVar(&params.concurrency, "concurrency", 0, "parallel batches (0 = number of CPUs)")
	cmd.Flags().IntVar(&params.batchSize, "batch-size", batch.DefaultBatchSize, "profiles per batch")
	cmd.Flags().StringVarP(&params.output, "output", "o", "", "output format: table, json or yaml")
	cmd.Flags().BoolVar(&params.entries, "entries", false, "include every scored entry")
	cmd.Flags().StringVar(&params.sort, "sort", "", "sort entries by field[:asc|desc] (index, score, planets, co2, category)")
	cmd.Flags().IntVar(&params.page.Limit, "limit", 0, "maximum entries to list (0 = all)")
	cmd.Flags().IntVar(&params.page.Offset, "offset", 0, "entries to skip")
	cmd.Flags().IntVar(&params.page.Page, "page", 0, "page number, starting at 1")
	cmd.Flags().IntVar(&params.page.PageSize, "page-size", 0, "entries per page")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runBatch(cmd *cobra.Command, params batchParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	format, err := resolveFormat(params.output)
	if err != nil {
		return err
	}
	if err = params.page.Validate(); err != nil {
		return err
	}
	sorter := pagination.NewEntrySorter()
	sortField, sortOrder, err := pagination.ParseSort(params.sort)
	if err != nil {
		return err
	}
	if err = pagination.ValidateSortField[batch.Entry](sorter, sortField); err != nil {
		return err
	}

	var r io.Reader = cmd.InOrStdin()
	if params.input != "-" {
		f, openErr := os.Open(params.input)
		if openErr != nil {
			return fmt.Errorf("opening input: %w", openErr)
		}
		defer f.Close()
		r = f
	}

	profiles, err := batch.ReadProfiles(r)
	if err != nil {
		return fmt.Errorf("reading profiles: %w", err)
	}

	report, err := batch.ScoreCohort(ctx, profiles, batch.CohortOptions{
		Concurrency: params.concurrency,
		BatchSize:   params.batchSize,
		OnProgress: func(p batch.ProgressSnapshot) {
			log.Debug().Ctx(ctx).
				Int("processed", p.ProcessedItems).
				Int("total", p.TotalItems).
				Float64("percent", p.PercentComplete).
				Dur("eta", p.EstimatedRemaining).
				Bool("complete", p.Complete).
				Msg("cohort progress")
		},
	})
	if err != nil {
		return err
	}
	out := batchOutput{CohortReport: report}
	switch {
	case !params.entries:
		out.Entries = nil
	case params.page.IsEnabled():
		meta := pagination.NewPaginationMeta(params.page, len(report.Entries))
		out.Pagination = &meta
		out.Entries = pagination.Apply(params.page, sorter.Sort(report.Entries, sortField, sortOrder))
	default:
		out.Entries = sorter.Sort(report.Entries, sortField, sortOrder)
	}

	if format == formatTable {
		return renderCohortTable(cmd.OutOrStdout(), out)
	}
	return renderStructured(cmd.OutOrStdout(), format, out)
}

func renderCohortTable(w io.Writer, report batchOutput) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	s := report.Stats

	fmt.Fprintf(tw, "Profiles\t%d\n", s.Count)
	fmt.Fprintf(tw, "Mean score\t%s\n", formatFloat(s.MeanScore))
	fmt.Fprintf(tw, "Median score\t%s\n", formatFloat(s.MedianScore))
	fmt.Fprintf(tw, "Min / max\t%s / %s\n", formatFloat(s.MinScore), formatFloat(s.MaxScore))
	fmt.Fprintf(tw, "Mean planets\t%s\n", formatFloat(s.MeanPlanets))
	fmt.Fprintf(tw, "Mean CO2 (kg/yr)\t%s\n", formatFloat(s.MeanCO2Kg))
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Category\tProfiles\tShare")
	fmt.Fprintln(tw, "--------\t--------\t-----")
	for _, c := range footprint.Categories() {
		n := report.Distribution[c]
		share := 0.0
		if s.Count > 0 {
			share = float64(n) / float64(s.Count) * 100
		}
		fmt.Fprintf(tw, "%s\t%d\t%.0f%%\n", c, n, share)
	}

	if len(report.Entries) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "#\tCategory\tScore\tPlanets\tCO2 (kg)")
		for _, e := range report.Entries {
			fmt.Fprintf(tw, "%d\t%s\t%.1f\t%.2f\t%d\n",
				e.Index, e.Result.Category, e.Result.TotalScore, e.Result.PlanetsNeeded, e.CO2Kg)
		}
	}
	if p := report.Pagination; p != nil {
		fmt.Fprintf(tw, "\nPage %d of %d (%d entries)\n", p.CurrentPage, p.TotalPages, p.TotalItems)
	}
	return tw.Flush()
}
