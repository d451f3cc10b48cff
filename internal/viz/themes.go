package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the live view.
type Theme struct {
	Name    string
	Cloth   lipgloss.Color
	Title   lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Good    lipgloss.Color
	Warning lipgloss.Color
	Border  lipgloss.Color
}

var (
	ThemeGallery = Theme{
		Name:    "gallery",
		Cloth:   lipgloss.Color("#e8e4da"),
		Title:   lipgloss.Color("#00ccff"),
		Text:    lipgloss.Color("#f0f0f0"),
		Muted:   lipgloss.Color("#777788"),
		Good:    lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffaa00"),
		Border:  lipgloss.Color("#444466"),
	}

	ThemeLinen = Theme{
		Name:    "linen",
		Cloth:   lipgloss.Color("#c9a66b"),
		Title:   lipgloss.Color("#8b5a2b"),
		Text:    lipgloss.Color("#3b2f2f"),
		Muted:   lipgloss.Color("#9c8c7c"),
		Good:    lipgloss.Color("#4f7942"),
		Warning: lipgloss.Color("#cc5500"),
		Border:  lipgloss.Color("#bfae94"),
	}

	ThemeNight = Theme{
		Name:    "night",
		Cloth:   lipgloss.Color("#7aa2f7"),
		Title:   lipgloss.Color("#bb9af7"),
		Text:    lipgloss.Color("#c0caf5"),
		Muted:   lipgloss.Color("#565f89"),
		Good:    lipgloss.Color("#9ece6a"),
		Warning: lipgloss.Color("#e0af68"),
		Border:  lipgloss.Color("#292e42"),
	}

	Themes = []Theme{ThemeGallery, ThemeLinen, ThemeNight}
)

// GetTheme returns the named theme, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme cycles through Themes.
func NextTheme(cur Theme) Theme {
	for i, t := range Themes {
		if t.Name == cur.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
