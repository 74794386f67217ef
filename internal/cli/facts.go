package cli

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/planetprint/internal/insights"
	"github.com/rshade/planetprint/internal/profile"
)

func newFactsCmd() *cobra.Command {
	var (
		domain string
		random bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "facts",
		Short: "Print \"did you know\" facts",
		Example: `  # Every fact about food
  planetprint facts --domain food

  # One random fact
  planetprint facts --random`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}

			var facts []insights.Fact
			if random {
				seed := uint64(time.Now().UnixNano())
				fact, pickErr := insights.RandomFact(rand.New(rand.NewPCG(seed, seed>>1)))
				if pickErr != nil {
					return pickErr
				}
				facts = []insights.Fact{fact}
			} else {
				if domain != "" {
					if err = validateDomain(domain); err != nil {
						return err
					}
				}
				if facts, err = insights.FactsByDomain(profile.Domain(domain)); err != nil {
					return err
				}
			}

			if format != formatTable {
				return renderStructured(cmd.OutOrStdout(), format, facts)
			}
			w := cmd.OutOrStdout()
			for _, f := range facts {
				if _, err = fmt.Fprintf(w, "%s %s\n   %s\n\n", f.Icon, f.Question, f.Answer); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "", "only facts of this domain")
	cmd.Flags().BoolVar(&random, "random", false, "print one random fact")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or yaml")
	cmd.MarkFlagsMutuallyExclusive("domain", "random")

	return cmd
}

func validateDomain(domain string) error {
	if profile.Domain(domain) == profile.DomainIdentity {
		return nil
	}
	for _, d := range profile.ScoredDomains() {
		if string(d) == domain {
			return nil
		}
	}
	return fmt.Errorf("unknown domain %q", domain)
}
