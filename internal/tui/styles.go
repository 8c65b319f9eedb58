package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/lista/internal/cli/styles"
)

type tuiStyles struct {
	pane        lipgloss.Style
	focusedPane lipgloss.Style
	header      lipgloss.Style
	selected    lipgloss.Style
	current     lipgloss.Style
	muted       lipgloss.Style
	section     lipgloss.Style
	info        lipgloss.Style
	err         lipgloss.Style
	column      lipgloss.Style
}

func newStyles() tuiStyles {
	c := styles.Scheme()
	return tuiStyles{
		pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.Border)).
			Padding(0, 1),
		focusedPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.SelectedBorder)).
			Padding(0, 1),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Title)),
		selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Normal)).
			Background(lipgloss.Color(c.SelectedBg)),
		current: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.SelectedBorder)),
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Subtle)),
		section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Accent)),
		info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.InfoFg)).
			Background(lipgloss.Color(c.InfoBg)).
			Padding(0, 1),
		err: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.ErrorFg)).
			Background(lipgloss.Color(c.ErrorBg)).
			Padding(0, 1),
		column: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color(c.Border)).
			Padding(0, 1),
	}
}

var theme = newStyles()
