package viz

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors the side panel. The canvas keeps the body colors from the
// configuration.
type Theme struct {
	Name     string
	Title    lipgloss.Color // panel title
	Value    lipgloss.Color // metric values
	Selected lipgloss.Color // selected body name
	Border   lipgloss.Color // borders, labels and key hints
	Running  lipgloss.Color
	Paused   lipgloss.Color
}

var (
	ThemeSpace = Theme{
		Name:     "space",
		Title:    "#ffff00",
		Value:    "#4682b4",
		Selected: "#ffffff",
		Border:   "#666666",
		Running:  "#00ff00",
		Paused:   "#ff8800",
	}

	ThemeMono = Theme{
		Name:     "mono",
		Title:    "#ffffff",
		Value:    "#d0d0d0",
		Selected: "#ffffff",
		Border:   "#808080",
		Running:  "#ffffff",
		Paused:   "#a0a0a0",
	}

	ThemePhosphor = Theme{
		Name:     "phosphor",
		Title:    "#33ff33",
		Value:    "#00cc00",
		Selected: "#aaffaa",
		Border:   "#006600",
		Running:  "#aaffaa",
		Paused:   "#ffff00",
	}

	ThemeMars = Theme{
		Name:     "mars",
		Title:    "#bc2732",
		Value:    "#e0a060",
		Selected: "#ffd8b0",
		Border:   "#7a4a3a",
		Running:  "#e0a060",
		Paused:   "#ff5050",
	}

	Themes = []Theme{ThemeSpace, ThemeMono, ThemePhosphor, ThemeMars}
)

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// GetTheme returns the named theme, or ThemeSpace.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeSpace
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	sort.Strings(names)
	return names
}
