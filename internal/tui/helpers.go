package tui

import "github.com/charmbracelet/lipgloss"

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// severityStyle picks the style for a notification severity string
func severityStyle(severity string) lipgloss.Style {
	switch severity {
	case "success":
		return lipgloss.NewStyle().Foreground(successColor)
	case "warning":
		return lipgloss.NewStyle().Foreground(warningColor)
	case "error":
		return lipgloss.NewStyle().Foreground(errorColor)
	default:
		return lipgloss.NewStyle().Foreground(textColor)
	}
}
