package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles of the menus and the stage selector.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	ItemLocked  lipgloss.Style
	StarFilled  lipgloss.Style
	StarEmpty   lipgloss.Style
	Description lipgloss.Style
	Controls    lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		ItemLocked:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		StarFilled:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		StarEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Controls:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without color.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Title = lipgloss.NewStyle().Bold(true)
	theme.ItemActive = lipgloss.NewStyle().Reverse(true)
	theme.StarFilled = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	return theme
}

// Global theme variable (can be changed at runtime)
var theme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	theme = t
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return theme
}
