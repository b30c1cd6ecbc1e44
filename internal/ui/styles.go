package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/faizmokh/mood/internal/moodlog"
)

// theme groups the Lip Gloss styles used across the screen.
type theme struct {
	Title    lipgloss.Style
	Mood     lipgloss.Style
	Selected lipgloss.Style
	Label    lipgloss.Style
	Flash    lipgloss.Style
	Error    lipgloss.Style
	Quote    lipgloss.Style
	Author   lipgloss.Style
	Panel    lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style
}

func defaultTheme() theme {
	mood := lipgloss.NewStyle().Padding(0, 1)
	return theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Mood:     mood,
		Selected: mood.Reverse(true).Bold(true),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Flash:    lipgloss.NewStyle().Foreground(lipgloss.Color(moodlog.ColorGreen.ANSI())),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(moodlog.ColorRed.ANSI())),
		Quote:    lipgloss.NewStyle().Italic(true),
		Author:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func colorStyle(c moodlog.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.ANSI()))
}
