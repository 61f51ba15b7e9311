package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all lipgloss styles for text output
var Styles = struct {
	// Section styles
	Banner lipgloss.Style
	Header lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style

	// Status styles
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
	Muted   lipgloss.Style
}{
	Banner: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Value:  lipgloss.NewStyle().Bold(true),

	Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),  // Green
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Orange
	Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red
	Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")),            // Gray
}

// Rule returns a horizontal rule of the given width
func Rule(width int) string {
	return strings.Repeat("=", width)
}

// Section renders a title framed by rules, the way every report block starts
func Section(title string, width int) string {
	return Rule(width) + "\n" + Styles.Header.Render(title) + "\n" + Rule(width)
}

// StatusIcon returns a styled marker for ok/warning/error
func StatusIcon(status string) string {
	switch status {
	case "ok":
		return Styles.Success.Render("✓")
	case "warning":
		return Styles.Warning.Render("⚠")
	case "error":
		return Styles.Danger.Render("✗")
	default:
		return Styles.Muted.Render("?")
	}
}

// StatusText returns styled status text for a run outcome
func StatusText(failed int) string {
	if failed > 0 {
		return Styles.Danger.Render("FAILURES DETECTED")
	}
	return Styles.Success.Render("OK")
}
