// Package cli implements the planetprint command line.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/planetprint/internal/config"
	"github.com/rshade/planetprint/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of stdout, or 0 when it is not a terminal.
func terminalWidth() int {
	if !isTerminal(os.Stdout) {
		return 0
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the planetprint CLI. It
// loads the configuration, wires up logging and tracing, and registers
// every subcommand.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "planetprint",
		Short:         "Carbon footprint questionnaire scorer",
		Long:          "planetprint scores a lifestyle questionnaire into a footprint category, a planets-needed figure and a per-domain breakdown.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $PLANETPRINT_HOME/config.yaml)")
	cmd.PersistentFlags().String("project-dir", "", "project directory holding .planetprint/config.yaml")
	cmd.AddCommand(
		newScoreCmd(), newWhatIfCmd(), newBatchCmd(), newServeCmd(),
		newFactsCmd(), newQuestionsCmd(), newDemoCmd(), newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Score answers given on the command line
  planetprint score --set heatingType=gaz --set ownsCar=oui --set weeklyKm=250

  # Score a saved questionnaire and explain every point
  planetprint score --profile profile.yaml --explain

  # Try changes interactively
  planetprint whatif --profile profile.yaml

  # Score a cohort of profiles
  planetprint batch --input cohort.jsonl --output json

  # Serve the HTTP API
  planetprint serve --addr :8080

  # Initialize configuration
  planetprint config init`

// loadConfig resolves --config and the project overlay into the global
// configuration.
func loadConfig(cmd *cobra.Command) error {
	ctx := cmd.Context()

	projectFlag, _ := cmd.Flags().GetString("project-dir")
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	projectDir := config.ResolveProjectDir(ctx, projectFlag, wd)
	config.SetResolvedProjectDir(projectDir)

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		config.SetGlobalConfig(config.NewWithProjectDir(ctx, projectDir))
		return nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	config.SetGlobalConfig(config.ApplyProjectOverlay(ctx, cfg, projectDir))
	return nil
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigValidateCmd(), NewConfigShowCmd())
	return cmd
}
