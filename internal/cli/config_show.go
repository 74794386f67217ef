package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/planetprint/internal/config"
)

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Example: `  # As YAML
  planetprint config show

  # As JSON
  planetprint config show --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := output
			if format == "" || format == formatTable {
				format = formatYAML
			}
			return renderStructured(cmd.OutOrStdout(), format, config.GetGlobalConfig())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", formatYAML, "output format: yaml or json")
	return cmd
}
