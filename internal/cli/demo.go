package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/planetprint/internal/config"
	"github.com/rshade/planetprint/internal/demo"
	"github.com/rshade/planetprint/internal/footprint"
)

// demoBanner marks every piece of generated output.
const demoBanner = "DEMO DATA: simulated, not real measurements"

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Generate clearly labelled demonstration data",
		Long: `Generates the demonstration data behind the admin and insight panels.

Everything printed by these commands is simulated. The respondents are
random profiles scored by the real engine; the grid readings follow a fixed
daily curve.`,
	}
	cmd.AddCommand(newDemoAdminCmd(), newDemoGridCmd(), newDemoModelsCmd())
	return cmd
}

func newDemoAdminCmd() *cobra.Command {
	var (
		users  int
		seed   uint64
		output string
	)

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Score a random cohort of demo respondents",
		Example: `  # 500 respondents, reproducible
  planetprint demo admin --users 500 --seed 7`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seed = config.GetGlobalConfig().Demo.Seed
			}

			report, err := demo.AdminSnapshot(cmd.Context(), users, seed, time.Now().UTC())
			if err != nil {
				return err
			}
			if format != formatTable {
				return renderStructured(cmd.OutOrStdout(), format, report)
			}
			return renderAdminTable(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().IntVar(&users, "users", 100, "number of respondents")
	cmd.Flags().Uint64Var(&seed, "seed", config.DefaultDemoSeed, "random seed (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or yaml")
	return cmd
}

func renderAdminTable(w io.Writer, report demo.AdminReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, demoBanner)
	fmt.Fprintf(tw, "Seed\t%d\n", report.Seed)
	fmt.Fprintf(tw, "Respondents\t%d\n", report.Stats.Count)
	fmt.Fprintf(tw, "Mean planets\t%s\n", formatFloat(report.Stats.MeanPlanets))
	fmt.Fprintf(tw, "Mean CO2 (kg/yr)\t%s\n", formatFloat(report.Stats.MeanCO2Kg))
	fmt.Fprintf(tw, "Car owners\t%d (%s planets)\n", report.CarOwners.Users, formatFloat(report.CarOwners.MeanPlanets))
	fmt.Fprintf(tw, "Car free\t%d (%s planets)\n", report.CarFree.Users, formatFloat(report.CarFree.MeanPlanets))
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Category\tRespondents")
	fmt.Fprintln(tw, "--------\t-----------")
	for _, c := range footprint.Categories() {
		fmt.Fprintf(tw, "%s\t%d\n", c, report.Categories[c])
	}
	return tw.Flush()
}

func newDemoGridCmd() *cobra.Command {
	var (
		day    bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the simulated grid carbon intensity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}

			now := time.Now()
			r := demo.NewRand(config.GetGlobalConfig().Demo.Seed ^ uint64(now.Unix()))
			readings := []demo.GridReading{demo.GridIntensity(now, r)}
			if day {
				readings = demo.GridDay(now, r)
			}

			if format != formatTable {
				return renderStructured(cmd.OutOrStdout(), format, readings)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(tw, demoBanner)
			fmt.Fprintln(tw, "Time\tgCO2/kWh\tNuclear\tRenewable\tFossil\tBest time")
			for _, g := range readings {
				fmt.Fprintf(tw, "%s\t%d\t%d%%\t%d%%\t%d%%\t%s\n",
					g.Time.Format("15:04"), g.IntensityGPerKWh, g.NuclearPct, g.RenewablePct, g.FossilPct, g.BestTimeToUse)
			}
			if !day {
				fmt.Fprintln(tw)
				fmt.Fprintln(tw, readings[0].Tip)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&day, "day", false, "print every hour of the current day")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or yaml")
	return cmd
}

func newDemoModelsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "models",
		Short: "Print the insight model cards and cited datasets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			cards, datasets := demo.ModelCards(), demo.Datasets()
			if format != formatTable {
				return renderStructured(cmd.OutOrStdout(), format, map[string]any{
					"models":   cards,
					"datasets": datasets,
				})
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(tw, demoBanner)
			fmt.Fprintln(tw, "Model\tDomain\tAction")
			for _, c := range cards {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.Domain, c.Action)
			}
			fmt.Fprintln(tw)
			fmt.Fprintln(tw, "Dataset\tSource\tSize")
			for _, d := range datasets {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Name, d.Source, d.Size)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or yaml")
	return cmd
}
