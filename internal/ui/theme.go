package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/droidtail/droidtail/internal/logcat"
)

// Theme defines the color palette for the viewer.
type Theme struct {
	Name string

	Background string
	Surface    string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Warning string
	Danger  string
	Info    string

	// Per-level log line colors.
	LevelColors map[logcat.Level]string
}

// Styles returns the pre-built lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	levels := make(map[logcat.Level]lipgloss.Style, len(t.LevelColors))
	for lvl, color := range t.LevelColors {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		if lvl == logcat.LevelError || lvl == logcat.LevelFatal {
			style = style.Bold(true)
		}
		levels[lvl] = style
	}

	return Styles{
		Text:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		WarnText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),
		Status: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		levels:  levels,
		unknown: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
	}
}

// Styles contains pre-built lipgloss styles for a theme.
type Styles struct {
	Text       lipgloss.Style
	MutedText  lipgloss.Style
	FaintText  lipgloss.Style
	AccentText lipgloss.Style
	WarnText   lipgloss.Style
	DangerText lipgloss.Style

	Header lipgloss.Style
	Logo   lipgloss.Style
	Status lipgloss.Style

	levels  map[logcat.Level]lipgloss.Style
	unknown lipgloss.Style
}

// LevelStyle returns the line style for a log level. Unknown and
// unmapped levels render faint so unparsed noise stays readable without
// competing with real records.
func (s Styles) LevelStyle(lvl logcat.Level) lipgloss.Style {
	if style, ok := s.levels[lvl]; ok {
		return style
	}
	return s.unknown
}

// Theme definitions

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1

		Border:      "#39506d", // bg4
		BorderFocus: "#719cd6", // blue

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
		Info:    "#63cdcf", // cyan

		LevelColors: map[logcat.Level]string{
			logcat.LevelVerbose: "#71839b", // fg3
			logcat.LevelDebug:   "#63cdcf", // cyan
			logcat.LevelInfo:    "#81b29a", // green
			logcat.LevelWarning: "#dbc074", // yellow
			logcat.LevelError:   "#c94f6d", // red
			logcat.LevelFatal:   "#9d79d6", // magenta
		},
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name: "Kanagawa",

		Background: "#1f1f28", // sumiInk1
		Surface:    "#2a2a37", // sumiInk2

		Border:      "#54546d", // sumiInk4
		BorderFocus: "#7e9cd8", // crystalBlue

		Text:    "#dcd7ba", // fujiWhite
		Muted:   "#727169", // fujiGray
		Faint:   "#9e9b93",
		Accent:  "#7e9cd8", // crystalBlue
		Warning: "#e6c384", // carpYellow
		Danger:  "#e82424", // samuraiRed
		Info:    "#6a9589", // waveAqua1

		LevelColors: map[logcat.Level]string{
			logcat.LevelVerbose: "#9e9b93",
			logcat.LevelDebug:   "#6a9589", // waveAqua1
			logcat.LevelInfo:    "#98bb6c", // springGreen
			logcat.LevelWarning: "#e6c384", // carpYellow
			logcat.LevelError:   "#e82424", // samuraiRed
			logcat.LevelFatal:   "#957fb8", // oniViolet
		},
	}
}

func slateTheme() Theme {
	// Neutral gray palette for low-color terminals.
	return Theme{
		Name: "Slate",

		Background: "#1c1f26",
		Surface:    "#262a33",

		Border:      "#3e4451",
		BorderFocus: "#61afef",

		Text:    "#d7dae0",
		Muted:   "#7f848e",
		Faint:   "#5c6370",
		Accent:  "#61afef",
		Warning: "#e5c07b",
		Danger:  "#e06c75",
		Info:    "#56b6c2",

		LevelColors: map[logcat.Level]string{
			logcat.LevelVerbose: "#5c6370",
			logcat.LevelDebug:   "#56b6c2",
			logcat.LevelInfo:    "#98c379",
			logcat.LevelWarning: "#e5c07b",
			logcat.LevelError:   "#e06c75",
			logcat.LevelFatal:   "#c678dd",
		},
	}
}
