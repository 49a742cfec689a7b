// Package ui provides the visual styling and page models for the Neighbor
// terminal client, with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette based on the Neighbor brand guidelines.
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#faf9f7") // Warm off-white
	LightForeground = lipgloss.Color("#263238") // Blue Grey 900
	LightPrimary    = lipgloss.Color("#2E7D32") // Market Green
	LightAccent     = lipgloss.Color("#FFC107") // Amber
	LightSecondary  = lipgloss.Color("#eceff1") // Blue Grey 50
	LightMuted      = lipgloss.Color("#90a4ae") // Blue Grey 300
	LightBorder     = lipgloss.Color("#cfd8dc") // Blue Grey 100
	LightCard       = lipgloss.Color("#ffffff") // White

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#1b2428")
	DarkForeground = lipgloss.Color("#eceff1")
	DarkPrimary    = lipgloss.Color("#66BB6A") // Green 400
	DarkAccent     = lipgloss.Color("#FFC107") // Amber
	DarkSecondary  = lipgloss.Color("#263238")
	DarkMuted      = lipgloss.Color("#607d8b")
	DarkBorder     = lipgloss.Color("#37474f")
	DarkCard       = lipgloss.Color("#233035")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935") // Red
	Success     = lipgloss.Color("#43a047") // Green
	Warning     = lipgloss.Color("#FFC107") // Amber
	Info        = lipgloss.Color("#2196F3") // Blue
)

// Theme holds the current color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeByName resolves a config theme name; "auto" and unknown names detect.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme auto-detects based on terminal hints or returns light mode.
func DetectTheme() Theme {
	// COLORFGBG is usually "foreground;background"; low background indices
	// are dark terminal backgrounds.
	colorTerm := os.Getenv("COLORFGBG")
	if colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("NEIGHBOR_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds all the styled components.
type Styles struct {
	Theme Theme

	// Layout
	App     lipgloss.Style
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Interactive
	Prompt   lipgloss.Style
	Selected lipgloss.Style
	Input    lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Domain
	Price    lipgloss.Style
	Store    lipgloss.Style
	Favorite lipgloss.Style
	Badge    lipgloss.Style
	Card     lipgloss.Style

	Divider lipgloss.Style
	Spinner lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		App: lipgloss.NewStyle().
			Background(theme.Background).
			Foreground(theme.Foreground),

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(theme.Secondary).
			Foreground(theme.Primary).
			Bold(true),

		Input: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Price: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Store: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Favorite: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#263238")).
			Padding(0, 1).
			Bold(true),

		Card: lipgloss.NewStyle().
			Background(theme.Card).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),
	}
}

// DefaultStyles returns styles with the detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// Logo returns the Neighbor wordmark.
func Logo(s Styles) string {
	logo := `
  _  _     _      _    _
 | \| |___(_)__ _| |_ | |__  ___ _ _
 |  \| / -_) / _` + "`" + ` | ' \| '_ \/ _ \ '_|
 |_|\_\___|_\__, |_||_|_.__/\___/_|
            |___/
`
	return s.Title.Foreground(s.Theme.Primary).Render(logo)
}

// RenderDivider returns a horizontal divider.
func (s Styles) RenderDivider(width int) string {
	return s.Divider.Render(strings.Repeat("─", width))
}
