package formatter

import (
	"github.com/calebhart/gantry/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle returns the lipgloss style for a story status.
func StatusStyle(status domain.StoryStatus) lipgloss.Style {
	switch status {
	case domain.StoryAtRisk:
		return StyleRed
	case domain.StoryInProgress:
		return StyleYellow
	case domain.StoryDone:
		return StyleGreen
	case domain.StoryCancelled:
		return StyleDim
	default:
		return StyleBlue
	}
}

// StatusIndicator returns a colored indicator such as "● AT RISK".
func StatusIndicator(status domain.StoryStatus) string {
	switch status {
	case domain.StoryAtRisk:
		return StyleRed.Render("● AT RISK")
	case domain.StoryInProgress:
		return StyleYellow.Render("● IN PROGRESS")
	case domain.StoryDone:
		return StyleGreen.Render("● DONE")
	case domain.StoryCancelled:
		return StyleDim.Render("● CANCELLED")
	default:
		return StyleBlue.Render("● PLANNED")
	}
}
