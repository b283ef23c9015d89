package viz

import "github.com/san-kum/plexus/internal/render"

// Theme is a terminal colour scheme: particle and link palette, backdrop,
// and the status line accent.
type Theme struct {
	Name       string
	Palette    render.Palette
	Background render.Color
	Accent     render.Color
}

// Available themes
var (
	ThemeNeon = Theme{
		Name:       "neon",
		Palette:    render.DefaultPalette,
		Background: render.MustParseColor("#000814"),
		Accent:     render.MustParseColor("#00ffff"),
	}

	ThemeCyberpunk = Theme{
		Name: "cyberpunk",
		Palette: render.Palette{
			render.MustParseColor("#ff00ff"), // Magenta
			render.MustParseColor("#00ffff"), // Cyan
			render.MustParseColor("#ffff00"), // Yellow
		},
		Background: render.MustParseColor("#0a0a0a"),
		Accent:     render.MustParseColor("#ff00ff"),
	}

	ThemeRetroGreen = Theme{
		Name: "retro",
		Palette: render.Palette{
			render.MustParseColor("#00ff00"), // Green phosphor
			render.MustParseColor("#00cc00"),
			render.MustParseColor("#88ff88"),
		},
		Background: render.MustParseColor("#001100"),
		Accent:     render.MustParseColor("#88ff88"),
	}

	ThemeOcean = Theme{
		Name: "ocean",
		Palette: render.Palette{
			render.MustParseColor("#0077be"),
			render.MustParseColor("#00a8cc"),
			render.MustParseColor("#ffd700"),
		},
		Background: render.MustParseColor("#001a33"),
		Accent:     render.MustParseColor("#ffd700"),
	}

	ThemeSunset = Theme{
		Name: "sunset",
		Palette: render.Palette{
			render.MustParseColor("#ff6b6b"), // Coral
			render.MustParseColor("#feca57"),
			render.MustParseColor("#ff9ff3"),
		},
		Background: render.MustParseColor("#2d1b2e"),
		Accent:     render.MustParseColor("#feca57"),
	}

	// All available themes
	Themes = []Theme{
		ThemeNeon,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return ThemeNeon, false
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
