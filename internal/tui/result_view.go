package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/planetprint/internal/footprint"
	"github.com/rshade/planetprint/internal/greenops"
	"github.com/rshade/planetprint/internal/insights"
	"github.com/rshade/planetprint/internal/profile"
)

const (
	barWidth         = 24
	domainLabelWidth = 13
	kgPerTonne       = 1000.0
	// tableHeaderHeight is the header row plus its bottom border.
	tableHeaderHeight = 2
)

// RenderResult renders a scored profile as a bordered summary. A nil
// equivalencies or comparison section is left out. Width 0 means
// unconstrained.
func RenderResult(
	result footprint.Result,
	equivalencies *greenops.EquivalencyOutput,
	comparison *insights.Comparison,
	width int,
) string {
	var sb strings.Builder

	accent := CategoryColor(result.Category)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel)
	valueStyle := lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	headerStyle := lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)

	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", IconPlanet, result.Title)))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(result.Category.Message()))
	sb.WriteString("\n\n")

	co2 := footprint.CO2Equivalent(result.TotalScore)
	sb.WriteString(labelStyle.Render("Planètes nécessaires: "))
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%.2f", result.PlanetsNeeded)))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Score:                "))
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%.1f points", result.TotalScore)))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Émissions:            "))
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%s %.1f t CO₂/an", IconCO2, float64(co2)/kgPerTonne)))
	sb.WriteString("\n\n")

	sb.WriteString(headerStyle.Render("Répartition"))
	sb.WriteString("\n")
	sb.WriteString(RenderBreakdown(result.Breakdown))

	if equivalencies != nil && !equivalencies.IsEmpty {
		sb.WriteString("\n")
		sb.WriteString(headerStyle.Render("Équivalences"))
		sb.WriteString("\n")
		sb.WriteString(equivalencies.DisplayText)
		sb.WriteString("\n")
	}

	if comparison != nil {
		sb.WriteString("\n")
		sb.WriteString(headerStyle.Render("Comparaison " + comparison.Label))
		sb.WriteString("\n")
		sb.WriteString(renderComparison(*comparison))
		sb.WriteString("\n")
	}

	ref := insights.Reference().Averages
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(fmt.Sprintf(
		"Références: monde %.2f, France %.2f, objectif %.1f planète",
		ref.WorldPlanets, ref.FrancePlanets, ref.TargetPlanets)))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
	if width > 0 {
		box = box.MaxWidth(width)
	}
	return box.Render(sb.String())
}

// RenderBreakdown renders one progress bar per scored domain, sized by the
// display maxima of footprint.MaxScores.
func RenderBreakdown(b footprint.Breakdown) string {
	var sb strings.Builder
	bar := progress.New(
		progress.WithSolidFill(string(ColorOK)),
		progress.WithoutPercentage(),
		progress.WithWidth(barWidth),
	)
	b.Each(func(d profile.Domain, score float64) {
		pct := footprint.Percentage(d, score) / 100
		fmt.Fprintf(&sb, "%s %-*s %s %4.1f / %.1f\n",
			footprint.Icon(d), domainLabelWidth, footprint.Label(d),
			bar.ViewAs(pct), score, footprint.MaxScores[d])
	})
	return sb.String()
}

func renderComparison(cmp insights.Comparison) string {
	line := fmt.Sprintf("Moyenne %.2f planètes, top %.2f (%s utilisateurs)",
		cmp.AveragePlanets, cmp.TopPlanets, cmp.UserCount)
	switch {
	case cmp.TopPerformer:
		return line + "\n" + lipgloss.NewStyle().Foreground(ColorOK).Render("Vous faites partie des meilleurs !")
	case cmp.AboveAverage:
		return line + "\n" + lipgloss.NewStyle().Foreground(ColorWarning).Render("Au-dessus de la moyenne")
	default:
		return line + "\n" + lipgloss.NewStyle().Foreground(ColorOK).
			Render(fmt.Sprintf("%d%% plus léger que la moyenne", cmp.PercentileBetter))
	}
}

// NewContributionTable lists the answers behind a score, as returned by
// footprint.Explain.
func NewContributionTable(contributions []footprint.Contribution) table.Model {
	columns := []table.Column{
		{Title: "Domaine", Width: domainLabelWidth},
		{Title: "Question", Width: 22},
		{Title: "Réponse", Width: 18},
		{Title: "Points", Width: 7},
	}

	rows := make([]table.Row, 0, len(contributions))
	for _, c := range contributions {
		rows = append(rows, table.Row{
			footprint.Label(c.Domain),
			string(c.Field),
			c.Answer,
			fmt.Sprintf("%+.1f", c.Points),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+tableHeaderHeight),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)
	return t
}

// RenderScoreDelta renders a point change with a sign and an arrow. An
// increase is bad news and uses the warning colour.
func RenderScoreDelta(delta float64) string {
	rounded := math.Round(delta*10) / 10

	var icon, sign string
	var color lipgloss.Color
	switch {
	case rounded > 0:
		icon, sign, color = IconArrowUp, "+", ColorWarning
	case rounded < 0:
		icon, sign, color = IconArrowDown, "-", ColorOK
	default:
		icon, color = IconArrowRight, ColorMuted
	}

	style := lipgloss.NewStyle().Foreground(color).Bold(true)
	return style.Render(fmt.Sprintf("%s%.1f %s", sign, math.Abs(rounded), icon))
}
