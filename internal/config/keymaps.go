package config

// KeyMappings defines the key bindings of the browse TUI
type KeyMappings struct {
	// Navigation
	Up         string `yaml:"up"`
	Down       string `yaml:"down"`
	Open       string `yaml:"open"`
	Collapse   string `yaml:"collapse"`
	Back       string `yaml:"back"`
	SwitchPane string `yaml:"switch_pane"`

	// Task view
	CycleView    string `yaml:"cycle_view"`
	CycleGroupBy string `yaml:"cycle_group_by"`
	ToggleByList string `yaml:"toggle_by_list"`
	PrevMonth    string `yaml:"prev_month"`
	NextMonth    string `yaml:"next_month"`

	// Actions
	ToggleFavorite string `yaml:"toggle_favorite"`
	CycleStatus    string `yaml:"cycle_status"`
	Refresh        string `yaml:"refresh"`

	// Other
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		Up:         "k",
		Down:       "j",
		Open:       "enter",
		Collapse:   "h",
		Back:       "backspace",
		SwitchPane: "tab",

		CycleView:    "v",
		CycleGroupBy: "g",
		ToggleByList: "b",
		PrevMonth:    "[",
		NextMonth:    "]",

		ToggleFavorite: "f",
		CycleStatus:    "s",
		Refresh:        "r",

		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}

	fill(&k.Up, defaults.Up)
	fill(&k.Down, defaults.Down)
	fill(&k.Open, defaults.Open)
	fill(&k.Collapse, defaults.Collapse)
	fill(&k.Back, defaults.Back)
	fill(&k.SwitchPane, defaults.SwitchPane)
	fill(&k.CycleView, defaults.CycleView)
	fill(&k.CycleGroupBy, defaults.CycleGroupBy)
	fill(&k.ToggleByList, defaults.ToggleByList)
	fill(&k.PrevMonth, defaults.PrevMonth)
	fill(&k.NextMonth, defaults.NextMonth)
	fill(&k.ToggleFavorite, defaults.ToggleFavorite)
	fill(&k.CycleStatus, defaults.CycleStatus)
	fill(&k.Refresh, defaults.Refresh)
	fill(&k.ShowHelp, defaults.ShowHelp)
	fill(&k.Quit, defaults.Quit)
}
