// Package tui implements the interactive terminal interface: a question
// box, a result viewport, and a query-history pane.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#8BC34A") // lime green
	colorAccent  = lipgloss.Color("#2196F3") // blue
	colorError   = lipgloss.Color("#e53935") // red
	colorMuted   = lipgloss.Color("240")
	colorBorder  = lipgloss.Color("#2a3850")
)

// Styles holds the lipgloss styles used across the interface.
type Styles struct {
	Header     lipgloss.Style
	Badge      lipgloss.Style
	BadgeOff   lipgloss.Style
	Question   lipgloss.Style
	Error      lipgloss.Style
	Muted      lipgloss.Style
	InputBox   lipgloss.Style
	ResultBox  lipgloss.Style
	HelpBar    lipgloss.Style
	Validation lipgloss.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(colorPrimary).
			Padding(0, 1),
		BadgeOff: lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1),
		Question: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent),
		Error: lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(colorMuted),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		ResultBox: lipgloss.NewStyle().
			Padding(0, 1),
		HelpBar: lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1),
		Validation: lipgloss.NewStyle().
			Foreground(colorError),
	}
}
