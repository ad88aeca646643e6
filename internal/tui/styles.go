package tui

import "github.com/charmbracelet/lipgloss"

var (
	white  = lipgloss.Color("#FAFAFA")
	accent = lipgloss.Color("#7D56F4")
	muted  = lipgloss.Color("241")
	danger = lipgloss.Color("#E5484D")
	warn   = lipgloss.Color("#F5A524")
)

type styles struct {
	Header    lipgloss.Style
	Date      lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Label     lipgloss.Style
	Focused   lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Popup     lipgloss.Style
	Dialog    lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(white).Background(accent).Padding(0, 1),
		Date:      lipgloss.NewStyle().Foreground(muted),
		Tab:       lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true).Padding(0, 1),
		Label:     lipgloss.NewStyle().Width(12).Foreground(muted),
		Focused:   lipgloss.NewStyle().Width(12).Bold(true).Foreground(accent),
		Status:    lipgloss.NewStyle().Italic(true).Foreground(muted),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(white).Background(danger).Padding(0, 1),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warn).
			Padding(1, 2),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(danger).
			Padding(1, 2),
		HelpKey:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		HelpDesc: lipgloss.NewStyle().Foreground(muted),
	}
}
