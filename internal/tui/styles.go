package tui

import (
	"boilerInspector/internal/models"

	"github.com/charmbracelet/lipgloss"
)

// Palette. The three result colours double as status colours.
var (
	colorText   = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}
	colorItem   = lipgloss.AdaptiveColor{Light: "#262626", Dark: "#d9d9d9"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#626262", Dark: "#a8a8a8"}
	colorAccent = lipgloss.AdaptiveColor{Light: "#005577", Dark: "#00aadd"}
	colorInput  = lipgloss.AdaptiveColor{Light: "#d33682", Dark: "#ff79c6"}
	colorOnFill = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#000000"}

	colorNormal    = lipgloss.AdaptiveColor{Light: "#859900", Dark: "#50fa7b"}
	colorCaution   = lipgloss.AdaptiveColor{Light: "#b58900", Dark: "#f1fa8c"}
	colorDefective = lipgloss.AdaptiveColor{Light: "#dc322f", Dark: "#ff5555"}
)

// Screen chrome.
var (
	titleStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true).
			Margin(1, 0, 2, 0).Align(lipgloss.Center)
	formStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).Padding(1, 2).Margin(1, 0)
	helpStyle    = lipgloss.NewStyle().Foreground(colorMuted).Margin(2, 0, 0, 0)
	headerStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	statBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).Padding(0, 2).Margin(0, 1, 0, 0).
			Align(lipgloss.Center)
)

// Lists and form fields.
var (
	itemStyle         = lipgloss.NewStyle().Padding(0, 2).Margin(0, 1).Foreground(colorItem)
	selectedItemStyle = itemStyle.Foreground(colorOnFill).Background(colorAccent).Bold(true)
	inputStyle        = lipgloss.NewStyle().Foreground(colorInput)
	labelStyle        = lipgloss.NewStyle().Foreground(colorNormal).Bold(true)
	focusedLabelStyle = labelStyle.Foreground(colorAccent)
	mutedStyle        = lipgloss.NewStyle().Foreground(colorMuted)
	progressStyle     = lipgloss.NewStyle().Margin(1, 0)
)

// Status lines and badges.
var (
	successStyle = lipgloss.NewStyle().Foreground(colorNormal).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorCaution).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorDefective).Bold(true)
	badgeStyle   = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorOnFill)
)

// resultBadge renders a verdict as a coloured badge.
func resultBadge(r models.Result) string {
	switch r {
	case models.ResultNormal:
		return badgeStyle.Background(colorNormal).Render(string(r))
	case models.ResultCaution:
		return badgeStyle.Background(colorCaution).Render(string(r))
	case models.ResultDefective:
		return badgeStyle.Background(colorDefective).Render(string(r))
	}
	return mutedStyle.Render(string(r))
}

// screenStyles sizes the title, form and help styles to the terminal,
// leaving a small margin. A zero width leaves them unconstrained.
func screenStyles(width int) (title, form, help lipgloss.Style) {
	if width <= 4 {
		return titleStyle, formStyle, helpStyle
	}
	w := width - 4
	return titleStyle.Width(w), formStyle.Width(w), helpStyle.Width(w)
}
