package viz

import "github.com/charmbracelet/lipgloss"

// Theme is a colour scheme for the painter
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color // shown where the tank holds no ink
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

var (
	ThemeInk = Theme{
		Name:       "ink",
		Primary:    lipgloss.Color("#00ccff"),
		Secondary:  lipgloss.Color("#8899aa"),
		Accent:     lipgloss.Color("#ff6600"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666688"),
		Success:    lipgloss.Color("#00ff88"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff4444"),
	}

	ThemePaper = Theme{
		Name:       "paper",
		Primary:    lipgloss.Color("#333333"),
		Secondary:  lipgloss.Color("#777777"),
		Accent:     lipgloss.Color("#0066cc"),
		Background: lipgloss.Color("#f4f1ea"), // paper
		Text:       lipgloss.Color("#eeeeee"),
		Muted:      lipgloss.Color("#999999"),
		Success:    lipgloss.Color("#33aa55"),
		Warning:    lipgloss.Color("#cc8800"),
		Error:      lipgloss.Color("#cc2222"),
	}

	ThemeAbyss = Theme{
		Name:       "abyss",
		Primary:    lipgloss.Color("#2b8cbe"),
		Secondary:  lipgloss.Color("#66c2a4"),
		Accent:     lipgloss.Color("#f0e442"),
		Background: lipgloss.Color("#04121f"),
		Text:       lipgloss.Color("#d6ecf3"),
		Muted:      lipgloss.Color("#3f6e85"),
		Success:    lipgloss.Color("#41ae76"),
		Warning:    lipgloss.Color("#e6ab02"),
		Error:      lipgloss.Color("#e34a33"),
	}

	ThemeEmber = Theme{
		Name:       "ember",
		Primary:    lipgloss.Color("#fc8d59"),
		Secondary:  lipgloss.Color("#fdbb84"),
		Accent:     lipgloss.Color("#fee8c8"),
		Background: lipgloss.Color("#1a0d08"),
		Text:       lipgloss.Color("#fff7ec"),
		Muted:      lipgloss.Color("#8c6d5a"),
		Success:    lipgloss.Color("#a6d96a"),
		Warning:    lipgloss.Color("#fdae61"),
		Error:      lipgloss.Color("#d7301f"),
	}

	Themes = []Theme{
		ThemeInk,
		ThemePaper,
		ThemeAbyss,
		ThemeEmber,
	}
)

// themeIndex returns the position of the named theme in Themes.
func themeIndex(name string) (int, bool) {
	for i, t := range Themes {
		if t.Name == name {
			return i, true
		}
	}
	return 0, false
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
