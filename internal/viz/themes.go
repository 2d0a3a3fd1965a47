package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour scheme of the terminal front end.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Orbit      lipgloss.Color
	Ring       lipgloss.Color
	Star       lipgloss.Color
	Meteorite  lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Warning    lipgloss.Color
	// Mono draws every body in Text instead of its catalogue colour.
	Mono bool
}

// Available themes
var (
	ThemeCosmos = Theme{
		Name:       "cosmos",
		Background: lipgloss.Color("#05060f"),
		Orbit:      lipgloss.Color("#2a2f4a"),
		Ring:       lipgloss.Color("#c9b07a"),
		Star:       lipgloss.Color("#ffffff"),
		Meteorite:  lipgloss.Color("#ffaa00"),
		Text:       lipgloss.Color("#e6e6f0"),
		Muted:      lipgloss.Color("#666688"),
		Accent:     lipgloss.Color("#00ccff"),
		Warning:    lipgloss.Color("#ffaa00"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Background: lipgloss.Color("#001100"),
		Orbit:      lipgloss.Color("#005500"),
		Ring:       lipgloss.Color("#00cc00"),
		Star:       lipgloss.Color("#88ff88"),
		Meteorite:  lipgloss.Color("#ccff00"),
		Text:       lipgloss.Color("#00ff00"), // Green phosphor
		Muted:      lipgloss.Color("#005500"),
		Accent:     lipgloss.Color("#88ff88"),
		Warning:    lipgloss.Color("#ffff00"),
		Mono:       true,
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Background: lipgloss.Color("#000000"),
		Orbit:      lipgloss.Color("#333333"),
		Ring:       lipgloss.Color("#aaaaaa"),
		Star:       lipgloss.Color("#ffffff"),
		Meteorite:  lipgloss.Color("#cccccc"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Accent:     lipgloss.Color("#0088ff"),
		Warning:    lipgloss.Color("#ffaa00"),
		Mono:       true,
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Background: lipgloss.Color("#2d1b2e"),
		Orbit:      lipgloss.Color("#5a3d5c"),
		Ring:       lipgloss.Color("#feca57"),
		Star:       lipgloss.Color("#fff5f5"),
		Meteorite:  lipgloss.Color("#ff6b6b"), // Coral
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Accent:     lipgloss.Color("#ff9ff3"),
		Warning:    lipgloss.Color("#ffc048"),
	}

	// All available themes
	Themes = []Theme{
		ThemeCosmos,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cosmos.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCosmos
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
