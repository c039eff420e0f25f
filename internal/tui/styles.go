package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for the browse UI
type Styles struct {
	Title      lipgloss.Style
	Tab        lipgloss.Style
	ActiveTab  lipgloss.Style
	Card       lipgloss.Style
	Selected   lipgloss.Style
	EventTitle lipgloss.Style
	Meta       lipgloss.Style
	Badge      lipgloss.Style
	Free       lipgloss.Style
	Paid       lipgloss.Style
	Error      lipgloss.Style
	Status     lipgloss.Style
	Help       lipgloss.Style
	Pager      lipgloss.Style
	PagerCur   lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
}

// DefaultStyles returns the default styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Underline(true).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 1),
		EventTitle: lipgloss.NewStyle().
			Bold(true),
		Meta: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1),
		Free: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")),
		Paid: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Pager: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1),
		PagerCur: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Value: lipgloss.NewStyle(),
	}
}
