package ui

import "github.com/charmbracelet/lipgloss"

var (
	accent      = lipgloss.Color("#8BC34A")
	muted       = lipgloss.Color("#6c7a89")
	destructive = lipgloss.Color("#e53935")
)

// Styles holds the lipgloss styles used by the browser.
type Styles struct {
	Title    lipgloss.Style
	Cursor   lipgloss.Style
	Active   lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Detail   lipgloss.Style
	Help     lipgloss.Style
	Spinner  lipgloss.Style
	Selected lipgloss.Style
}

// DefaultStyles returns the browser's default styles.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Cursor:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		Active:   lipgloss.NewStyle().Bold(true).Underline(true),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Error:    lipgloss.NewStyle().Foreground(destructive).Bold(true),
		Detail:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1).MarginTop(1),
		Help:     lipgloss.NewStyle().Foreground(muted).MarginTop(1),
		Spinner:  lipgloss.NewStyle().Foreground(accent),
		Selected: lipgloss.NewStyle().Foreground(accent),
	}
}
