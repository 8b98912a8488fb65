package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"a2ui/schema"
)

var (
	dimColor       = lipgloss.Color("7")
	accentColor    = lipgloss.Color("12")
	successColor   = lipgloss.Color("10")
	warningColor   = lipgloss.Color("11")
	dangerColor    = lipgloss.Color("9")
	highlightColor = lipgloss.Color("13")
	borderColor    = lipgloss.Color("8")

	// Chatbot reply style
	AssistantStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	DimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	TitleStyle = lipgloss.NewStyle().
			Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(highlightColor).
			Bold(true)

	// Focused form field marker
	FocusStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	LinkStyle = lipgloss.NewStyle().
			Foreground(dangerColor).
			Underline(true)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	focusedButtonStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(successColor).
				Foreground(successColor).
				Bold(true)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	activePaneStyle = paneStyle.
			BorderForeground(accentColor)
)

// alertStyle colors an alert by variant. Unknown variants fall back to info.
func alertStyle(variant string) lipgloss.Style {
	color := accentColor
	switch variant {
	case schema.AlertWarning:
		color = warningColor
	case schema.AlertError:
		color = dangerColor
	case schema.AlertSuccess:
		color = successColor
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(color).
		PaddingLeft(1)
}

// headingStyle gets less prominent as the level grows.
func headingStyle(level int) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch level {
	case 1:
		return s.Foreground(successColor).Underline(true)
	case 2:
		return s.Foreground(successColor)
	case 3:
		return s.Foreground(accentColor)
	default:
		return s
	}
}

// FormatFooter formats a footer string with alternating keys and descriptions.
// Keys remain default color, descriptions are rendered in accent blue+bold.
// Usage: FormatFooter("Tab", "Next field", "Enter", "Click", "Esc", "Close")
func FormatFooter(parts ...string) string {
	descStyle := lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	var result []string
	for i := 0; i < len(parts); i += 2 {
		if i+1 < len(parts) {
			result = append(result, parts[i]+" "+descStyle.Render(parts[i+1]))
		}
	}
	return strings.Join(result, "  ")
}
