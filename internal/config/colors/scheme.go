package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent color (used for selections, titles, highlights)
	Accent string `yaml:"accent"`

	// Tree and board chrome
	Border         string `yaml:"border"`
	SelectedBorder string `yaml:"selected_border"`
	SelectedBg     string `yaml:"selected_bg"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal"`

	// Workflow colors, one per kanban column
	Todo       string `yaml:"todo"`
	InProgress string `yaml:"in_progress"`
	Done       string `yaml:"done"`

	// Priority colors
	PriorityLow    string `yaml:"priority_low"`
	PriorityMedium string `yaml:"priority_medium"`
	PriorityHigh   string `yaml:"priority_high"`

	// Notification colors (foreground/background pairs)
	InfoFg    string `yaml:"info_fg"`
	InfoBg    string `yaml:"info_bg"`
	WarningFg string `yaml:"warning_fg"`
	WarningBg string `yaml:"warning_bg"`
	ErrorFg   string `yaml:"error_fg"`
	ErrorBg   string `yaml:"error_bg"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values using the preset as base
// If preset is specified, loads that preset first, then overrides with custom values
func (c *ColorScheme) ApplyDefaults() {
	if c.Preset == "" {
		c.Preset = "default"
	}
	preset := GetPreset(c.Preset)

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}

	fill(&c.Accent, preset.Accent)
	fill(&c.Border, preset.Border)
	fill(&c.SelectedBorder, preset.SelectedBorder)
	fill(&c.SelectedBg, preset.SelectedBg)
	fill(&c.Title, preset.Title)
	fill(&c.Subtle, preset.Subtle)
	fill(&c.Normal, preset.Normal)
	fill(&c.Todo, preset.Todo)
	fill(&c.InProgress, preset.InProgress)
	fill(&c.Done, preset.Done)
	fill(&c.PriorityLow, preset.PriorityLow)
	fill(&c.PriorityMedium, preset.PriorityMedium)
	fill(&c.PriorityHigh, preset.PriorityHigh)
	fill(&c.InfoFg, preset.InfoFg)
	fill(&c.InfoBg, preset.InfoBg)
	fill(&c.WarningFg, preset.WarningFg)
	fill(&c.WarningBg, preset.WarningBg)
	fill(&c.ErrorFg, preset.ErrorFg)
	fill(&c.ErrorBg, preset.ErrorBg)
}

// MergeFrom overrides colors with every non-empty value of other
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	merge := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}

	merge(&c.Preset, other.Preset)
	merge(&c.Accent, other.Accent)
	merge(&c.Border, other.Border)
	merge(&c.SelectedBorder, other.SelectedBorder)
	merge(&c.SelectedBg, other.SelectedBg)
	merge(&c.Title, other.Title)
	merge(&c.Subtle, other.Subtle)
	merge(&c.Normal, other.Normal)
	merge(&c.Todo, other.Todo)
	merge(&c.InProgress, other.InProgress)
	merge(&c.Done, other.Done)
	merge(&c.PriorityLow, other.PriorityLow)
	merge(&c.PriorityMedium, other.PriorityMedium)
	merge(&c.PriorityHigh, other.PriorityHigh)
	merge(&c.InfoFg, other.InfoFg)
	merge(&c.InfoBg, other.InfoBg)
	merge(&c.WarningFg, other.WarningFg)
	merge(&c.WarningBg, other.WarningBg)
	merge(&c.ErrorFg, other.ErrorFg)
	merge(&c.ErrorBg, other.ErrorBg)
}

// StatusColor returns the column color of a workflow status
func (c ColorScheme) StatusColor(status string) string {
	switch status {
	case "in_progress":
		return c.InProgress
	case "done":
		return c.Done
	default:
		return c.Todo
	}
}

// PriorityColor returns the color of a priority value
func (c ColorScheme) PriorityColor(priority string) string {
	switch priority {
	case "high":
		return c.PriorityHigh
	case "medium":
		return c.PriorityMedium
	case "low":
		return c.PriorityLow
	default:
		return c.Subtle
	}
}
