package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
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
	Success string
	Warning string
	Danger  string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Accent)).
			Foreground(lipgloss.Color(t.Background)),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		PanelFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Title      lipgloss.Style
	Header     lipgloss.Style
	Footer     lipgloss.Style
	Selected   lipgloss.Style
	Panel      lipgloss.Style
	PanelFocus lipgloss.Style
}

var themes = map[string]Theme{
	"Dracula": {
		Name:        "Dracula",
		Background:  "#282a36",
		Surface:     "#44475a",
		Border:      "#6272a4",
		BorderFocus: "#8be9fd",
		Text:        "#f8f8f2",
		Muted:       "#bfc7d5",
		Faint:       "#6272a4",
		Accent:      "#bd93f9",
		Success:     "#50fa7b",
		Warning:     "#f1fa8c",
		Danger:      "#ff5555",
	},
	"Paper": {
		Name:        "Paper",
		Background:  "#ffffff",
		Surface:     "#eeeeee",
		Border:      "#999999",
		BorderFocus: "#0066cc",
		Text:        "#222222",
		Muted:       "#555555",
		Faint:       "#999999",
		Accent:      "#6633cc",
		Success:     "#117733",
		Warning:     "#aa6600",
		Danger:      "#cc2222",
	},
}

// GetTheme returns the named theme, falling back to Dracula.
func GetTheme(name string) Theme {
	if theme, ok := themes[name]; ok {
		return theme
	}
	return themes["Dracula"]
}
