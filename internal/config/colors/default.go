package colors

// Default returns the default color scheme (purple theme)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		Accent: "#874BFD",

		Border:         "#5F87D7",
		SelectedBorder: "#D75FD7",
		SelectedBg:     "#3A3A3A",

		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		// Matches the amber/blue/green board columns
		Todo:       "#D7AF00",
		InProgress: "#5F87D7",
		Done:       "#5FD75F",

		PriorityLow:    "#3B82F6",
		PriorityMedium: "#EAB308",
		PriorityHigh:   "#EF4444",

		InfoFg:    "#00AFFF",
		InfoBg:    "#00005F",
		WarningFg: "#FFD700",
		WarningBg: "#875F00",
		ErrorFg:   "#FF0000",
		ErrorBg:   "#5F0000",
	}
}
