package tui

import (
	"github.com/charmbracelet/lipgloss"

	"chartui/internal/theme"
)

var (
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")
)

type styles struct {
	app    lipgloss.Style
	box    lipgloss.Style
	title  lipgloss.Style
	dim    lipgloss.Style
	err    lipgloss.Style
	hidden lipgloss.Style
}

func newStyles(th *theme.Theme) styles {
	return styles{
		app:    lipgloss.NewStyle().Foreground(th.ForegroundColor()),
		box:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1),
		title:  lipgloss.NewStyle().Foreground(accentFg).Bold(true),
		dim:    lipgloss.NewStyle().Foreground(th.MutedColor()),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")),
		hidden: lipgloss.NewStyle().Foreground(th.MutedColor()).Strikethrough(true),
	}
}
