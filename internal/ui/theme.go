package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors for the dashboard.
type Theme struct {
	Name string

	Surface     string // header/footer background
	SelectionBg string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string

	// KindColors maps a query kind (Select, Insert, ...) to an accent.
	KindColors map[string]string
}

// Styles returns pre-built lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		TableHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Banner: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Danger)).
			Foreground(lipgloss.Color(t.Surface)).
			Bold(true).
			Padding(0, 1),

		PromptLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		kindColors: t.KindColors,
		muted:      t.Muted,
	}
}

// Styles contains pre-built lipgloss styles for a theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header      lipgloss.Style
	Footer      lipgloss.Style
	Logo        lipgloss.Style
	TableHeader lipgloss.Style
	Banner      lipgloss.Style
	PromptLabel lipgloss.Style

	kindColors map[string]string
	muted      string
}

// KindStyle returns a style for the given query kind.
func (s Styles) KindStyle(kind string) lipgloss.Style {
	color := s.kindColors[kind]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Theme definitions

var themes = map[string]Theme{
	"Gruvbox": gruvboxTheme(),
	"Nord":    nordTheme(),
	"Mono":    monoTheme(),
}

var themeOrder = []string{"Gruvbox", "Nord", "Mono"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return gruvboxTheme()
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

func gruvboxTheme() Theme {
	// Gruvbox dark palette: https://github.com/morhetz/gruvbox
	return Theme{
		Name: "Gruvbox",

		Surface:     "#3c3836", // bg1
		SelectionBg: "#504945", // bg2

		Text:    "#ebdbb2", // fg1
		Muted:   "#a89984", // gray
		Faint:   "#7c6f64", // bg4
		Accent:  "#83a598", // blue
		Success: "#b8bb26", // green
		Warning: "#fabd2f", // yellow
		Danger:  "#fb4934", // red

		KindColors: map[string]string{
			"Select": "#83a598", // blue
			"Insert": "#b8bb26", // green
			"Create": "#d3869b", // purple
			"Drop":   "#fb4934", // red
			"Alter":  "#fe8019", // orange
			"System": "#fabd2f", // yellow
		},
	}
}

func nordTheme() Theme {
	// Nord palette: https://www.nordtheme.com
	return Theme{
		Name: "Nord",

		Surface:     "#3b4252", // nord1
		SelectionBg: "#434c5e", // nord2

		Text:    "#eceff4", // nord6
		Muted:   "#81a1c1", // nord9
		Faint:   "#4c566a", // nord3
		Accent:  "#88c0d0", // nord8
		Success: "#a3be8c", // nord14
		Warning: "#ebcb8b", // nord13
		Danger:  "#bf616a", // nord11

		KindColors: map[string]string{
			"Select": "#88c0d0",
			"Insert": "#a3be8c",
			"Create": "#b48ead",
			"Drop":   "#bf616a",
			"Alter":  "#d08770",
			"System": "#ebcb8b",
		},
	}
}

func monoTheme() Theme {
	// Minimal theme for terminals with reduced color support.
	return Theme{
		Name: "Mono",

		Surface:     "#303030",
		SelectionBg: "#444444",

		Text:    "#d0d0d0",
		Muted:   "#808080",
		Faint:   "#585858",
		Accent:  "#ffffff",
		Success: "#a0a0a0",
		Warning: "#e0e0e0",
		Danger:  "#ffffff",

		KindColors: map[string]string{},
	}
}
