package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/planetprint/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration: the user file (or --config), the
project overlay and the PLANETPRINT_* environment.

Every invalid setting is reported, not only the first one.`,
		Example: `  # Validate current configuration
  planetprint config validate

  # Validate and show detailed information
  planetprint config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
	if dir := config.GetResolvedProjectDir(); dir != "" {
		cmd.Printf("  Project directory: %s\n", dir)
	} else {
		cmd.Println("  No project directory")
	}
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
	cmd.Printf("  Region: %s\n", cfg.Output.Region)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	cmd.Printf("  Server address: %s (CORS: %t)\n", cfg.Server.Addr, cfg.Server.CORS)
	cmd.Printf("  Sessions: max %d, TTL %s\n", cfg.Sessions.Max, cfg.Sessions.TTL)
	cmd.Printf("  Grid intensity: %v gCO2/kWh\n", cfg.GreenOps.GridIntensityGPerKWh)
	cmd.Printf("  Demo endpoints: %t\n", cfg.Demo.Enabled)
}
