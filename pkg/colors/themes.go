package colors

import "sort"

// Theme is a named tab palette plus the surface colours around the tab bar.
type Theme struct {
	Name        string
	Description string
	Dark        bool

	BarBg     string // behind the tab labels
	ContentFg string // page body text
	BorderFg  string

	Tabs Palette
}

// Built-in themes
var Themes = map[string]Theme{
	"rose-pine-dawn": {
		Name:        "Rose Pine Dawn",
		Description: "Soft light theme with warm colors",
		Dark:        false,
		BarBg:       "#faf4ed",
		ContentFg:   "#575279",
		BorderFg:    "#dfdad9",
		Tabs: Palette{
			ActiveBg:   "#f2e9e1",
			ActiveFg:   "#575279",
			InactiveBg: "#fffaf3",
			InactiveFg: "#9893a5",
		},
	},
	"rose-pine": {
		Name:        "Rose Pine",
		Description: "Elegant dark theme with muted colors",
		Dark:        true,
		BarBg:       "#191724",
		ContentFg:   "#e0def4",
		BorderFg:    "#403d52",
		Tabs: Palette{
			ActiveBg:   "#31748f",
			ActiveFg:   "#e0def4",
			InactiveBg: "#1f1d2e",
			InactiveFg: "#6e6a86",
		},
	},
	"catppuccin-mocha": {
		Name:        "Catppuccin Mocha",
		Description: "Soothing pastel dark theme",
		Dark:        true,
		BarBg:       "#1e1e2e",
		ContentFg:   "#cdd6f4",
		BorderFg:    "#45475a",
		Tabs: Palette{
			ActiveBg:   "#74c7ec",
			ActiveFg:   "#1e1e2e",
			InactiveBg: "#313244",
			InactiveFg: "#a6adc8",
		},
	},
	"nord": {
		Name:        "Nord",
		Description: "Arctic, north-bluish palette",
		Dark:        true,
		BarBg:       "#2e3440",
		ContentFg:   "#d8dee9",
		BorderFg:    "#4c566a",
		Tabs: Palette{
			ActiveBg:   "#88c0d0",
			ActiveFg:   "#2e3440",
			InactiveBg: "#3b4252",
			InactiveFg: "#81a1c1",
		},
	},
	"gruvbox-light": {
		Name:        "Gruvbox Light",
		Description: "Retro groove, light variant",
		Dark:        false,
		BarBg:       "#fbf1c7",
		ContentFg:   "#3c3836",
		BorderFg:    "#d5c4a1",
		Tabs: Palette{
			ActiveBg:   "#689d6a",
			ActiveFg:   "#fbf1c7",
			InactiveBg: "#ebdbb2",
			InactiveFg: "#7c6f64",
		},
	},
	"dark": {
		Name:        "Dark",
		Description: "Plain dark fallback",
		Dark:        true,
		BarBg:       "#1a1a2e",
		ContentFg:   "#cccccc",
		BorderFg:    "#444444",
		Tabs: Palette{
			ActiveBg:   "#2980b9",
			ActiveFg:   "#ffffff",
			InactiveBg: "#333333",
			InactiveFg: "#cccccc",
		},
	},
	// Empty palette: everything is derived from the base colour at load time
	"auto": {
		Name:        "Auto",
		Description: "Derived from a single base colour",
		Dark:        true,
	},
}

// GetTheme returns a theme by name, or the dark theme if not found
func GetTheme(name string) Theme {
	if theme, ok := Themes[name]; ok {
		return theme
	}
	return Themes["dark"]
}

// ListThemes returns all available theme names, sorted
func ListThemes() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
