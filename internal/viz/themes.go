package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the canvas inks and the stats panel.
type Theme struct {
	Name    string
	Anchor  lipgloss.Color
	Orbiter lipgloss.Color
	Trail   lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
}

var (
	ThemeEmber = Theme{
		Name:    "ember",
		Anchor:  lipgloss.Color("#ffd166"),
		Orbiter: lipgloss.Color("#ff6b6b"),
		Trail:   lipgloss.Color("#7a3b3b"),
		Accent:  lipgloss.Color("#feca57"),
		Muted:   lipgloss.Color("#8b6b6c"),
	}

	ThemeIce = Theme{
		Name:    "ice",
		Anchor:  lipgloss.Color("#e0f0ff"),
		Orbiter: lipgloss.Color("#00a8cc"),
		Trail:   lipgloss.Color("#1d4e6b"),
		Accent:  lipgloss.Color("#00ffff"),
		Muted:   lipgloss.Color("#4488aa"),
	}

	ThemePhosphor = Theme{
		Name:    "phosphor",
		Anchor:  lipgloss.Color("#88ff88"),
		Orbiter: lipgloss.Color("#00ff00"),
		Trail:   lipgloss.Color("#005500"),
		Accent:  lipgloss.Color("#88ff88"),
		Muted:   lipgloss.Color("#337733"),
	}

	Themes = []Theme{ThemeEmber, ThemeIce, ThemePhosphor}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
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

func (t Theme) inkStyles() [inkCount]lipgloss.Style {
	var s [inkCount]lipgloss.Style
	s[InkNone] = lipgloss.NewStyle()
	s[InkTrail] = lipgloss.NewStyle().Foreground(t.Trail)
	s[InkOrbiter] = lipgloss.NewStyle().Foreground(t.Orbiter)
	s[InkAnchor] = lipgloss.NewStyle().Foreground(t.Anchor).Bold(true)
	return s
}
