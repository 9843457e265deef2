package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// Theme bundles the colors and pre-computed styles for the editor.
// Styles are created once at startup instead of per-frame.
type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor

	// Styles
	Base       lipgloss.Style
	Selected   lipgloss.Style
	Header     lipgloss.Style
	StatusBar  lipgloss.Style
	MutedText  lipgloss.Style
	Guide      lipgloss.Style
	DropMarker lipgloss.Style
	DragSource lipgloss.Style
	DangerText lipgloss.Style
	EditPrompt lipgloss.Style
}

// DefaultTheme returns the standard editor theme for the given renderer.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"},
		Secondary: lipgloss.AdaptiveColor{Light: "#8839ef", Dark: "#cba6f7"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#a6adc8"},
		Border:    lipgloss.AdaptiveColor{Light: "#9ca0b0", Dark: "#45475a"},
		Highlight: lipgloss.AdaptiveColor{Light: "#dce0e8", Dark: "#313244"},
		Muted:     lipgloss.AdaptiveColor{Light: "#acb0be", Dark: "#585b70"},
		Danger:    lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"},
	}

	t.Base = r.NewStyle()
	t.Selected = r.NewStyle().Background(t.Highlight).Bold(true)
	t.Header = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.StatusBar = r.NewStyle().Foreground(t.Subtext)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.Guide = r.NewStyle().Foreground(t.Border)
	t.EditPrompt = r.NewStyle().Foreground(t.Primary)

	// Accent styles pass through ThemeFg so 16-color terminals get a safe
	// ANSI fallback instead of a down-converted hex approximation.
	t.DropMarker = r.NewStyle().Foreground(ThemeFg(t.Secondary.Dark)).Bold(true)
	t.DragSource = r.NewStyle().Foreground(ThemeFg(t.Muted.Dark)).Italic(true)
	t.DangerText = r.NewStyle().Foreground(ThemeFg(t.Danger.Dark)).Bold(true)

	return t
}
