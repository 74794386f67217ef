package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/planetprint/internal/logging"
	"github.com/rshade/planetprint/internal/profile"
	"github.com/rshade/planetprint/internal/tui"
)

// ErrNotTerminal is returned when an interactive command runs without a TTY.
var ErrNotTerminal = errors.New("this command needs an interactive terminal")

func newWhatIfCmd() *cobra.Command {
	var (
		profilePath string
		save        string
	)

	cmd := &cobra.Command{
		Use:   "whatif",
		Short: "Simulate changes to a questionnaire interactively",
		Long: `Opens a terminal simulator on a questionnaire. Every change is rescored
against the starting answers and the per-domain difference is shown.

Enter edits the focused answer, left and right cycle through the choices,
r resets and q quits.`,
		Example: `  # Start from a saved questionnaire
  planetprint whatif --profile profile.yaml

  # Save the simulated answers on exit
  planetprint whatif --profile profile.yaml --save simulated.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWhatIf(cmd, profilePath, save)
		},
	}

	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "starting profile file (YAML or JSON)")
	cmd.Flags().StringVar(&save, "save", "", "write the simulated profile to this file on exit")

	return cmd
}

func runWhatIf(cmd *cobra.Command, profilePath, save string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return ErrNotTerminal
	}
	ctx := cmd.Context()

	p, err := loadProfile(cmd.InOrStdin(), profilePath)
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.NewWhatIfModel(p), tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("running interactive TUI: %w", err)
	}

	model, ok := finalModel.(*tui.WhatIfModel)
	if !ok {
		return fmt.Errorf("unexpected model type: %T, expected *tui.WhatIfModel", finalModel)
	}
	logging.FromContext(ctx).Debug().Ctx(ctx).
		Int("changes", len(model.Changes())).
		Float64("total_score", model.Result().TotalScore).
		Msg("what-if session finished")

	cmd.Println(tui.RenderScoreComparison(model.Baseline(), model.Result()))

	if save != "" {
		return saveProfile(save, model.Profile())
	}
	return nil
}

func saveProfile(path string, p profile.Profile) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err = profile.Encode(f, p, profile.FormatForPath(path)); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
