// Package color holds the palette shared by the CLI output and the TUI.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps an ANSI code or a hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// Terminal colors, so output follows the user's terminal theme.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
	White  = New("7")
	Gray   = New("8")
)

// Night sky accents.
var (
	Moon     = New("#f9e2af")
	Midnight = New("#1e1e2e")
	Dusk     = New("#b4befe")
	Pink     = New("#f5c2e7")
	Cloud    = New("#cdd6f4")
	Star     = New("#cba6f7")
	Ember    = New("#f38ba8")
)

// Theme is the set of roles the interface paints with.
type Theme struct {
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Error  lipgloss.Color
	// Banner is the background of titles, drawn with Midnight text.
	Banner lipgloss.Color
}

// Evening is the regular theme.
var Evening = Theme{
	Accent: Star,
	Text:   Cloud,
	Muted:  New("#6c7086"),
	Error:  Ember,
	Banner: Dusk,
}

// Night is a dimmer theme for a dark bedroom.
var Night = Theme{
	Accent: New("#7f6a9e"),
	Text:   New("#8e93a8"),
	Muted:  New("#45475a"),
	Error:  New("#9c5a6c"),
	Banner: New("#585b70"),
}

// AgeGroup returns the tag color of a story age group.
func AgeGroup(group string) lipgloss.Color {
	switch group {
	case "3-5":
		return Pink
	case "6-8":
		return Dusk
	case "9-12":
		return New("14")
	default:
		return Gray
	}
}
