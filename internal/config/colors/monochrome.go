package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		Accent: "#FFFFFF",

		Border:         "#808080",
		SelectedBorder: "#FFFFFF",
		SelectedBg:     "#303030",

		Title:  "#FFFFFF",
		Subtle: "#808080",
		Normal: "#D0D0D0",

		Todo:       "#A8A8A8",
		InProgress: "#D0D0D0",
		Done:       "#FFFFFF",

		PriorityLow:    "#808080",
		PriorityMedium: "#B2B2B2",
		PriorityHigh:   "#FFFFFF",

		InfoFg:    "#FFFFFF",
		InfoBg:    "#303030",
		WarningFg: "#FFFFFF",
		WarningBg: "#4E4E4E",
		ErrorFg:   "#000000",
		ErrorBg:   "#FFFFFF",
	}
}
