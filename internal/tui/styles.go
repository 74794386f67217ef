// Package tui renders footprint results for the terminal and hosts the
// interactive what-if simulator.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/planetprint/internal/footprint"
)

// Palette shared by every view (ANSI 256 colours).
const (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorHighlight = lipgloss.Color("212")
	ColorMuted     = lipgloss.Color("241")
	ColorBorder    = lipgloss.Color("63")
	ColorOK        = lipgloss.Color("42")
	ColorWarning   = lipgloss.Color("214")
	ColorCritical  = lipgloss.Color("196")
)

// Icons.
const (
	IconArrowUp    = "↑"
	IconArrowDown  = "↓"
	IconArrowRight = "→"
	IconPlanet     = "🌍"
	IconCO2        = "💨"
)

// CategoryColor returns the accent colour of a category.
func CategoryColor(c footprint.Category) lipgloss.Color {
	switch c {
	case footprint.CategoryExcellent:
		return ColorOK
	case footprint.CategoryGood:
		return lipgloss.Color("114")
	case footprint.CategoryAverage:
		return lipgloss.Color("220")
	case footprint.CategoryConcerning:
		return ColorWarning
	case footprint.CategoryCritical:
		return ColorCritical
	}
	return ColorMuted
}
