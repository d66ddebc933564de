// Package style renders strings with lipgloss using the active color theme.
package style

import (
	"sync/atomic"

	"github.com/bedtime-cli/bedtime/color"
	"github.com/charmbracelet/lipgloss"
)

var night atomic.Bool

// SetNightMode switches between the evening and the night theme.
// Night mode also dims every foreground color.
func SetNightMode(on bool) {
	night.Store(on)
}

// NightMode reports whether the night theme is active.
func NightMode() bool {
	return night.Load()
}

// Theme returns the active theme.
func Theme() color.Theme {
	if night.Load() {
		return color.Night
	}
	return color.Evening
}

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

func render(s lipgloss.Style) func(string) string {
	return func(text string) string { return s.Render(text) }
}

// Fg paints text with c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string {
		return New().Foreground(c).Faint(night.Load()).Render(s)
	}
}

// Truncate pads or wraps text to width.
func Truncate(width int) func(string) string {
	return render(New().Width(width))
}

var (
	Faint  = render(New().Faint(true))
	Bold   = render(New().Bold(true))
	Italic = render(New().Italic(true))
)

func banner(bg lipgloss.Color, s string) string {
	return New().Foreground(color.Midnight).Background(bg).Padding(0, 1).Render(s)
}

// Title renders a heading banner.
func Title(s string) string {
	return banner(Theme().Banner, s)
}

// ErrorTitle is Title for failures.
func ErrorTitle(s string) string {
	return banner(Theme().Error, s)
}

// Box frames content in a rounded border.
func Box(border lipgloss.Color) lipgloss.Style {
	return New().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(1, 2)
}

// AgeTag renders an age group label in its group color.
func AgeTag(group string) string {
	return banner(color.AgeGroup(group), group)
}
