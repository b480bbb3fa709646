package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/gubarz/summd/internal/config"
)

// StyleManager encapsulates all TUI styles and provides methods for style operations
type StyleManager struct {
	// Summary styles
	Heading1 lipgloss.Style
	Heading2 lipgloss.Style
	Heading3 lipgloss.Style
	Bullet   lipgloss.Style
	Bold     lipgloss.Style
	Text     lipgloss.Style

	// Chrome styles
	Title   lipgloss.Style
	Toggle  lipgloss.Style
	Error   lipgloss.Style
	Dim     lipgloss.Style
	Divider lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Heading1: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("212")),
		Heading2: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Heading3: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36")),
		Bullet:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Bold:     lipgloss.NewStyle().Bold(true),
		Text:     lipgloss.NewStyle(),
		Title:    lipgloss.NewStyle().Bold(true),
		Toggle:   lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("236")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Divider:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	s.Heading1 = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(parseANSIColor(config.GetColorHeading(1)))
	s.Heading2 = lipgloss.NewStyle().Bold(true).Foreground(parseANSIColor(config.GetColorHeading(2)))
	s.Heading3 = lipgloss.NewStyle().Bold(true).Foreground(parseANSIColor(config.GetColorHeading(3)))
	s.Bullet = lipgloss.NewStyle().Foreground(parseANSIColor(config.GetColorBullet()))
	s.Error = lipgloss.NewStyle().Foreground(parseANSIColor(config.GetColorError()))
}

// HeadingStyle returns the style for a heading level
func (s *StyleManager) HeadingStyle(level int) lipgloss.Style {
	switch level {
	case 1:
		return s.Heading1
	case 2:
		return s.Heading2
	default:
		return s.Heading3
	}
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}

// Global style manager instance
var styles = DefaultStyles()

// RefreshStyles updates the global styles from config
func RefreshStyles() {
	styles.LoadFromConfig()
}

// ConfiguredStyles returns a StyleManager with colors loaded from config
func ConfiguredStyles() *StyleManager {
	s := DefaultStyles()
	s.LoadFromConfig()
	return s
}
