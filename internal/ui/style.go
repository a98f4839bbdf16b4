package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles used by command output. Kept in one place so every command renders
// the same way.
var (
	Bold      = lipgloss.NewStyle().Bold(true)
	Underline = lipgloss.NewStyle().Underline(true)
	Good      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	Bad       = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	Warn      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	Accent    = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
)

// DisableColor forces plain output; honored for --no-color and when the
// environment opts out via NO_COLOR.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// AutoColor applies the environment's color preference.
func AutoColor() {
	if termenv.EnvNoColor() {
		DisableColor()
	}
}
