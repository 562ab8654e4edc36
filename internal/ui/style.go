package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bamsammich/copytree/internal/config"
)

// Catppuccin Mocha defaults, overridable from the config file.
const (
	defaultOK    = "#a6e3a1"
	defaultError = "#f38ba8"
	defaultMuted = "#5a6278"
)

// Styles colors presenter output. The zero value renders text unchanged.
type Styles struct {
	OK    lipgloss.Style
	Error lipgloss.Style
	Muted lipgloss.Style
}

// NewStyles builds colored styles from the theme, falling back to the
// default palette for unset colors.
func NewStyles(theme config.ThemeConfig) Styles {
	color := func(override *string, fallback string) lipgloss.Color {
		if override != nil && *override != "" {
			return lipgloss.Color(*override)
		}
		return lipgloss.Color(fallback)
	}
	return Styles{
		OK:    lipgloss.NewStyle().Foreground(color(theme.OK, defaultOK)),
		Error: lipgloss.NewStyle().Foreground(color(theme.Error, defaultError)),
		Muted: lipgloss.NewStyle().Foreground(color(theme.Muted, defaultMuted)),
	}
}
