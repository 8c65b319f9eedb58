package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/thenoetrevino/lista/internal/config"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	Toggle    key.Binding
	Focus     key.Binding
	View      key.Binding
	GroupBy   key.Binding
	ByList    key.Binding
	Status    key.Binding
	Favorite  key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Back      key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// newKeyMap builds the bindings from the configured keys. Arrow keys, space,
// esc and ctrl+c always work alongside them.
func newKeyMap(km config.KeyMappings) keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys(km.Up, "up"),
			key.WithHelp("↑/"+km.Up, "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(km.Down, "down"),
			key.WithHelp("↓/"+km.Down, "down"),
		),
		Open: key.NewBinding(
			key.WithKeys(km.Open),
			key.WithHelp(km.Open, "open"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(km.Collapse, " "),
			key.WithHelp("space/"+km.Collapse, "expand/collapse"),
		),
		Focus: key.NewBinding(
			key.WithKeys(km.SwitchPane),
			key.WithHelp(km.SwitchPane, "switch pane"),
		),
		View: key.NewBinding(
			key.WithKeys(km.CycleView),
			key.WithHelp(km.CycleView, "list/kanban/calendar"),
		),
		GroupBy: key.NewBinding(
			key.WithKeys(km.CycleGroupBy),
			key.WithHelp(km.CycleGroupBy, "group by"),
		),
		ByList: key.NewBinding(
			key.WithKeys(km.ToggleByList),
			key.WithHelp(km.ToggleByList, "split by list"),
		),
		Status: key.NewBinding(
			key.WithKeys(km.CycleStatus),
			key.WithHelp(km.CycleStatus, "next status"),
		),
		Favorite: key.NewBinding(
			key.WithKeys(km.ToggleFavorite),
			key.WithHelp(km.ToggleFavorite, "favorite"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys(km.PrevMonth),
			key.WithHelp(km.PrevMonth, "previous month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys(km.NextMonth),
			key.WithHelp(km.NextMonth, "next month"),
		),
		Back: key.NewBinding(
			key.WithKeys(km.Back, "esc"),
			key.WithHelp("esc", "back"),
		),
		Refresh: key.NewBinding(
			key.WithKeys(km.Refresh),
			key.WithHelp(km.Refresh, "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys(km.ShowHelp),
			key.WithHelp(km.ShowHelp, "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys(km.Quit, "ctrl+c"),
			key.WithHelp(km.Quit, "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Open, k.View, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Toggle, k.Focus, k.Back},
		{k.View, k.GroupBy, k.ByList, k.PrevMonth, k.NextMonth},
		{k.Status, k.Favorite, k.Refresh, k.Help, k.Quit},
	}
}
