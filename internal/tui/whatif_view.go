package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/planetprint/internal/footprint"
	"github.com/rshade/planetprint/internal/profile"
)

// Column widths of the field table.
const (
	fieldKeyWidth     = 24
	fieldValueWidth   = 16
	separatorWidth    = 62
	minTruncateLen    = 3
	headerLines       = 20
	minVisibleRows    = 5
	unansweredDisplay = "-"
)

// View renders the current view.
func (m *WhatIfModel) View() string {
	if m.state == WhatIfStateQuitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(RenderWhatIfHeader())
	sb.WriteString("\n\n")
	sb.WriteString(RenderScoreComparison(m.baselineResult, m.result))
	sb.WriteString("\n\n")
	sb.WriteString(renderDomainDeltas(m.baselineResult.Breakdown, m.result.Breakdown))
	sb.WriteString("\n")
	sb.WriteString(m.renderFieldTable())

	if m.state == WhatIfStateEditing {
		row := m.rows[m.focusedRow]
		label := lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
		sb.WriteString("\n")
		sb.WriteString(label.Render(row.Spec.Question))
		if len(row.Spec.Values) > 0 {
			sb.WriteString(lipgloss.NewStyle().Foreground(ColorMuted).
				Render(" (" + strings.Join(row.Spec.Values, ", ") + ")"))
		}
		sb.WriteString("\n")
		sb.WriteString(m.input.View())
		sb.WriteString("\n")
	}

	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Foreground(ColorCritical).Render("Erreur: " + m.err.Error()))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(RenderWhatIfHelp())

	return lipgloss.NewStyle().MaxWidth(m.width).Render(sb.String())
}

// RenderWhatIfHeader renders the title of the simulator.
func RenderWhatIfHeader() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorHeader).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)
	return titleStyle.Render("Simulateur d'empreinte")
}

// RenderScoreComparison renders the baseline and simulated scores and the
// change between them.
func RenderScoreComparison(baseline, simulated footprint.Result) string {
	var sb strings.Builder
	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel)
	valueStyle := lipgloss.NewStyle().Foreground(ColorValue).Bold(true)

	line := func(label string, r footprint.Result) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(valueStyle.Render(fmt.Sprintf("%.1f points, %.2f planètes", r.TotalScore, r.PlanetsNeeded)))
		sb.WriteString(" ")
		sb.WriteString(lipgloss.NewStyle().Foreground(CategoryColor(r.Category)).Render(r.Title))
		sb.WriteString("\n")
	}
	line("Actuel:     ", baseline)
	line("Simulation: ", simulated)

	sb.WriteString(labelStyle.Render("Écart:      "))
	sb.WriteString(RenderScoreDelta(simulated.TotalScore - baseline.TotalScore))
	return sb.String()
}

func renderDomainDeltas(baseline, simulated footprint.Breakdown) string {
	var sb strings.Builder
	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel)
	for _, d := range profile.ScoredDomains() {
		before, after := baseline.Get(d), simulated.Get(d)
		fmt.Fprintf(&sb, "%s %s %4.1f %s %4.1f  %s\n",
			footprint.Icon(d),
			labelStyle.Render(fmt.Sprintf("%-*s", domainLabelWidth, footprint.Label(d))),
			before, IconArrowRight, after, RenderScoreDelta(after-before))
	}
	return sb.String()
}

func (m *WhatIfModel) renderFieldTable() string {
	var sb strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel)
	sb.WriteString(headerStyle.Render("Réponses"))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", separatorWidth))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render(fmt.Sprintf("  %-*s %-*s %s",
		fieldKeyWidth, "Question", fieldValueWidth, "Actuel", "Simulation")))
	sb.WriteString("\n")

	start, end := m.visibleRange()
	for i := start; i < end; i++ {
		sb.WriteString(renderFieldRow(m.rows[i], i == m.focusedRow))
		sb.WriteString("\n")
	}
	if end-start < len(m.rows) {
		sb.WriteString(lipgloss.NewStyle().Foreground(ColorMuted).
			Render(fmt.Sprintf("  %d-%d / %d", start+1, end, len(m.rows))))
		sb.WriteString("\n")
	}
	return sb.String()
}

// visibleRange keeps the focused row on screen for short terminals.
func (m *WhatIfModel) visibleRange() (int, int) {
	visible := max(m.height-headerLines, minVisibleRows)
	if visible >= len(m.rows) {
		return 0, len(m.rows)
	}
	start := max(m.focusedRow-visible/2, 0)
	end := start + visible
	if end > len(m.rows) {
		end = len(m.rows)
		start = end - visible
	}
	return start, end
}

func renderFieldRow(row FieldRow, focused bool) string {
	var sb strings.Builder
	if focused {
		sb.WriteString(IconArrowRight + " ")
	} else {
		sb.WriteString("  ")
	}

	keyStyle := lipgloss.NewStyle().Foreground(ColorLabel)
	valueStyle := lipgloss.NewStyle().Foreground(ColorValue)
	changedStyle := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)

	sb.WriteString(keyStyle.Render(fmt.Sprintf("%-*s ", fieldKeyWidth, truncate(string(row.Spec.Field), fieldKeyWidth))))
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%-*s ", fieldValueWidth, truncate(display(row.OriginalValue), fieldValueWidth))))

	current := truncate(display(row.CurrentValue), fieldValueWidth)
	if row.Changed() {
		sb.WriteString(changedStyle.Render(current))
	} else {
		sb.WriteString(valueStyle.Render(current))
	}
	if row.Spec.Unit != "" && row.CurrentValue != "" {
		sb.WriteString(" " + row.Spec.Unit)
	}
	return sb.String()
}

func display(value string) string {
	if value == "" {
		return unansweredDisplay
	}
	return value
}

// truncate shortens s to maxLen runes with an ellipsis.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= minTruncateLen {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-minTruncateLen]) + "..."
}

// RenderWhatIfHelp renders the keyboard shortcut help text.
func RenderWhatIfHelp() string {
	k := defaultKeyMap()
	return help.New().ShortHelpView([]key.Binding{
		k.Up, k.Down, k.Prev, k.Next, k.Edit, k.Cancel, k.Reset, k.Quit,
	})
}
