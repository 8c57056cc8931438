package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/invoicepro/internal/theme"
)

var (
	// Colors
	primaryColor = lipgloss.Color("39")  // Blue
	accentColor  = lipgloss.Color("205") // Pink
	mutedColor   = lipgloss.Color("241") // Gray
	successColor = lipgloss.Color("76")  // Green
	warningColor = lipgloss.Color("214") // Orange
	errorColor   = lipgloss.Color("196") // Red
	textColor    = lipgloss.Color("252")

	// Base styles
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("117")) // Bright cyan
	selectedStyle = lipgloss.NewStyle().Bold(true).Background(primaryColor).Foreground(lipgloss.Color("0"))

	// Layout
	borderColor    = lipgloss.Color("63") // Soft purple
	appBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)

	// Header/Footer
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true) // Bright yellow

	// Entry status
	confirmedStyle = lipgloss.NewStyle().Foreground(successColor)
	draftStyle     = lipgloss.NewStyle().Foreground(warningColor)

	// Totals
	totalValueStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
)

// ApplyTheme rebuilds the style set from the user's saved palette
func ApplyTheme(p theme.Palette) {
	accentColor = lipgloss.Color(p.Accent)
	mutedColor = lipgloss.Color(p.Muted)
	successColor = lipgloss.Color(p.Success)
	warningColor = lipgloss.Color(p.Warning)
	errorColor = lipgloss.Color(p.Error)
	textColor = lipgloss.Color(p.Text)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	selectedStyle = lipgloss.NewStyle().Bold(true).Background(primaryColor).Foreground(lipgloss.Color("0"))
	confirmedStyle = lipgloss.NewStyle().Foreground(successColor)
	draftStyle = lipgloss.NewStyle().Foreground(warningColor)
	totalValueStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
}
