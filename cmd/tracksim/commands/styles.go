package commands

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	primary = lipgloss.Color("#00ff9f")
	dim     = lipgloss.Color("#6e7681")
	warn    = lipgloss.Color("#ff5f87")
)

var styles = struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Track lipgloss.Style
	Help  lipgloss.Style
	Yes   lipgloss.Style
	No    lipgloss.Style
	Box   lipgloss.Style
}{
	Title: lipgloss.NewStyle().Bold(true).Foreground(primary),
	Label: lipgloss.NewStyle().Bold(true).Foreground(primary),
	Track: lipgloss.NewStyle().PaddingLeft(2),
	Help:  lipgloss.NewStyle().Foreground(dim),
	Yes:   lipgloss.NewStyle().Bold(true).Foreground(primary),
	No:    lipgloss.NewStyle().Bold(true).Foreground(warn),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primary).
		Padding(0, 1),
}

func matchLabel(match bool) string {
	if match {
		return styles.Yes.Render("match")
	}
	return styles.No.Render("no match")
}
