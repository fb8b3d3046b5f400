package ui

import "github.com/charmbracelet/lipgloss"

// Style holds the lipgloss styles used by the interactive views.
type Style struct {
	Base      lipgloss.Style
	Main      lipgloss.Style
	Secondary lipgloss.Style
	Hint      lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Collect   lipgloss.Style
	Survey    lipgloss.Style
}

// NewStyle returns the styles for a dark or light terminal.
func NewStyle(dark bool) Style {
	main := lipgloss.Color("#1B1B1B")
	hint := lipgloss.Color("#6C6C6C")

	if dark {
		main = lipgloss.Color("#F5F5F5")
		hint = lipgloss.Color("#A8A8A8")
	}

	label := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		MarginRight(1).
		Foreground(lipgloss.Color("#FFFFFF"))

	return Style{
		Base:      lipgloss.NewStyle().Padding(1, 2),
		Main:      lipgloss.NewStyle().Bold(true).Foreground(main),
		Secondary: lipgloss.NewStyle().Foreground(main),
		Hint:      lipgloss.NewStyle().Foreground(hint),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#E5534B")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#57AB5A")),
		Collect:   label.Background(lipgloss.Color("#B14BFF")).SetString("COLLECTING"),
		Survey:    label.Background(lipgloss.Color("#4B8CFF")).SetString("SURVEY"),
	}
}
