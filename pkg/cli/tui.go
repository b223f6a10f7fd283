package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for terminal output.
type Theme struct {
	Primary lipgloss.Color // Main accent color
	Dim     lipgloss.Color // Dimmed/help text color
	Warn    lipgloss.Color // Warnings
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
	Warn:    lipgloss.Color("#f0883e"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Dim   lipgloss.Style
	Warn  lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Label: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Dim:   lipgloss.NewStyle().Foreground(t.Dim),
		Warn:  lipgloss.NewStyle().Foreground(t.Warn),
	}
}

// DefaultStyles are the styles for the default theme.
var DefaultStyles = NewStyles(DefaultTheme)

// KV renders one "label: value" line with the default styles.
func KV(label, value string) string {
	return fmt.Sprintf("%s %s", DefaultStyles.Label.Render(label+":"), value)
}

// Warnln renders a warning line with the default styles.
func Warnln(msg string) string {
	return DefaultStyles.Warn.Render(msg)
}
