package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/planetprint/internal/profile"
)

func newQuestionsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "List the questionnaire fields and their accepted values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			fields := profile.Fields()
			if format != formatTable {
				return renderStructured(cmd.OutOrStdout(), format, fields)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(tw, "Field\tDomain\tKind\tValues\tQuestion")
			fmt.Fprintln(tw, "-----\t------\t----\t------\t--------")
			for _, f := range fields {
				values := strings.Join(f.Values, "|")
				if values == "" && f.Unit != "" {
					values = f.Unit
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", f.Field, f.Domain, f.Kind, values, f.Question)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or yaml")
	return cmd
}
