package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors used to draw the board and the stats panel.
type Theme struct {
	Name   string
	Alive  lipgloss.Color
	Dead   lipgloss.Color
	Border lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
}

// Available themes
var (
	ThemeClassic = Theme{
		Name:   "classic",
		Alive:  lipgloss.Color("#ffffff"),
		Dead:   lipgloss.Color("#3a3a3a"),
		Border: lipgloss.Color("#666666"),
		Accent: lipgloss.Color("#00ccff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
	}

	ThemeAmber = Theme{
		Name:   "amber",
		Alive:  lipgloss.Color("#ffb000"), // amber phosphor
		Dead:   lipgloss.Color("#3d2a00"),
		Border: lipgloss.Color("#805800"),
		Accent: lipgloss.Color("#ffd27f"),
		Text:   lipgloss.Color("#ffb000"),
		Muted:  lipgloss.Color("#805800"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Alive:  lipgloss.Color("#00ff00"), // green phosphor
		Dead:   lipgloss.Color("#003300"),
		Border: lipgloss.Color("#005500"),
		Accent: lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Alive:  lipgloss.Color("#00a8cc"),
		Dead:   lipgloss.Color("#0a2a44"),
		Border: lipgloss.Color("#4488aa"),
		Accent: lipgloss.Color("#ffd700"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Alive:  lipgloss.Color("#ff6b6b"), // coral
		Dead:   lipgloss.Color("#3d2440"),
		Border: lipgloss.Color("#8b6b8c"),
		Accent: lipgloss.Color("#feca57"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeAmber,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme returns the theme after name in Themes, wrapping around.
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

// CellStyles returns the styles for live and dead glyphs.
func (t Theme) CellStyles() (alive, dead lipgloss.Style) {
	return lipgloss.NewStyle().Foreground(t.Alive), lipgloss.NewStyle().Foreground(t.Dead)
}
