package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title       lipgloss.Style
	banner      lipgloss.Style
	help        lipgloss.Style
	err         lipgloss.Style
	status      lipgloss.Style
	empty       lipgloss.Style
	detailTitle lipgloss.Style
	accent      lipgloss.Color
}

func newStyles(dark bool) styles {
	accent, muted, ok, bad := lipgloss.Color("208"), lipgloss.Color("241"), lipgloss.Color("42"), lipgloss.Color("196")
	if !dark {
		accent, muted, ok, bad = lipgloss.Color("166"), lipgloss.Color("245"), lipgloss.Color("28"), lipgloss.Color("160")
	}

	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(accent).
			Padding(0, 1),
		banner: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		help:   lipgloss.NewStyle().Foreground(muted),
		err:    lipgloss.NewStyle().Foreground(bad),
		status: lipgloss.NewStyle().Foreground(ok),
		empty: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true).
			Padding(1, 2),
		detailTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginBottom(1),
		accent: accent,
	}
}

// applyList restyles a list for the current theme.
func (s styles) applyList(l *list.Model) {
	l.Styles.Title = s.title

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(s.accent).
		BorderForeground(s.accent)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		BorderForeground(s.accent)
	l.SetDelegate(delegate)
}
