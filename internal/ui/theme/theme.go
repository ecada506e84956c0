package theme

import "github.com/charmbracelet/lipgloss"

// Theme holds all colors for the application.
type Theme struct {
	Name string
	Dark bool

	// Base colors
	Base    lipgloss.Color
	Surface lipgloss.Color
	Overlay lipgloss.Color

	// Text
	Text    lipgloss.Color
	Subtext lipgloss.Color
	Muted   lipgloss.Color

	// Accents
	Accent lipgloss.Color
	Red    lipgloss.Color
	Yellow lipgloss.Color
	Green  lipgloss.Color
	Blue   lipgloss.Color
	Teal   lipgloss.Color

	// Semantic
	BorderFocused   lipgloss.Color
	BorderUnfocused lipgloss.Color

	// Syntax is the chroma style used for response bodies.
	Syntax string
}

// Light is the default theme.
var Light = Theme{
	Name:    "Light",
	Base:    lipgloss.Color("#f0f0f0"),
	Surface: lipgloss.Color("#dadde3"),
	Overlay: lipgloss.Color("#b8bcc6"),

	Text:    lipgloss.Color("#1b1b1f"),
	Subtext: lipgloss.Color("#4a4d57"),
	Muted:   lipgloss.Color("#80838d"),

	Accent: lipgloss.Color("#0d47a1"),
	Red:    lipgloss.Color("#c62828"),
	Yellow: lipgloss.Color("#b26a00"),
	Green:  lipgloss.Color("#2e7d32"),
	Blue:   lipgloss.Color("#1565c0"),
	Teal:   lipgloss.Color("#00796b"),

	BorderFocused:   lipgloss.Color("#0d47a1"),
	BorderUnfocused: lipgloss.Color("#b8bcc6"),

	Syntax: "github",
}

// Dark is the theme used after toggling dark mode.
var Dark = Theme{
	Name:    "Dark",
	Dark:    true,
	Base:    lipgloss.Color("#2d2d2d"),
	Surface: lipgloss.Color("#444444"),
	Overlay: lipgloss.Color("#5c5c5c"),

	Text:    lipgloss.Color("#f5f5f5"),
	Subtext: lipgloss.Color("#c8c8c8"),
	Muted:   lipgloss.Color("#8a8a8a"),

	Accent: lipgloss.Color("#64b5f6"),
	Red:    lipgloss.Color("#ef7373"),
	Yellow: lipgloss.Color("#f2c46d"),
	Green:  lipgloss.Color("#8fd18f"),
	Blue:   lipgloss.Color("#7fb4f0"),
	Teal:   lipgloss.Color("#6fd0c2"),

	BorderFocused:   lipgloss.Color("#64b5f6"),
	BorderUnfocused: lipgloss.Color("#5c5c5c"),

	Syntax: "monokai",
}

// For returns the dark or light theme.
func For(dark bool) Theme {
	if dark {
		return Dark
	}
	return Light
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	return For(!t.Dark)
}

// MethodColor returns the color for an HTTP method.
func (t Theme) MethodColor(method string) lipgloss.Color {
	switch method {
	case "GET":
		return t.Green
	case "POST":
		return t.Yellow
	case "PUT":
		return t.Blue
	case "DELETE":
		return t.Red
	default:
		return t.Text
	}
}

// StatusColor returns the color for an HTTP status code. Zero means the
// request never got a response.
func (t Theme) StatusColor(code int) lipgloss.Color {
	switch {
	case code >= 200 && code < 300:
		return t.Green
	case code >= 300 && code < 400:
		return t.Blue
	case code >= 400 && code < 500:
		return t.Yellow
	case code >= 500, code == 0:
		return t.Red
	default:
		return t.Text
	}
}
