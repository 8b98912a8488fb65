package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (a AppView) renderHelpModal(width, height int) string {
	kb := a.kb

	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)

	title := green.Render("a2ui - Keyboard Shortcuts")

	blue := lipgloss.NewStyle().Foreground(accentColor)

	globalActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Global Actions"),
		fmt.Sprintf("• %-13s Restart conversation", kb.DisplayActionKey("restart")),
		fmt.Sprintf("• %-13s Switch UI only / chatbot", kb.DisplayActionKey("toggle_mode")),
		fmt.Sprintf("• %-13s Switch pane", kb.DisplayActionKey("toggle_chat")),
		fmt.Sprintf("• %-13s Freeform message", kb.DisplayActionKey("toggle_freeform")),
		fmt.Sprintf("• %-13s Show schema outline", kb.DisplayActionKey("toggle_source")),
		fmt.Sprintf("• %-13s Settings", kb.DisplayActionKey("settings")),
		fmt.Sprintf("• %-13s Toggle this help", kb.DisplayActionKey("help")),
		fmt.Sprintf("• %-13s Quit", kb.DisplayActionKey("quit")),
	)

	formActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Form"),
		fmt.Sprintf("• %-13s Next field", kb.DisplayActionKey("focus_next")),
		fmt.Sprintf("• %-13s Previous field", kb.DisplayActionKey("focus_prev")),
		"• Enter         Click button / submit input",
		"• Left/Right    Change option or slider",
		"• Space         Toggle option",
	)

	chatActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Chat"),
		"• Enter         Send message",
		fmt.Sprintf("• %-13s Scroll down", kb.DisplayActionKey("scroll_down")),
		fmt.Sprintf("• %-13s Scroll up", kb.DisplayActionKey("scroll_up")),
		fmt.Sprintf("• %-13s Clear input", kb.DisplayActionKey("clear_input")),
		fmt.Sprintf("• %-13s Copy schema JSON", kb.DisplayActionKey("copy_schema")),
		fmt.Sprintf("• %-13s Copy values JSON", kb.DisplayActionKey("copy_values")),
	)

	column1 := globalActions
	column2 := lipgloss.JoinVertical(
		lipgloss.Left,
		formActions,
		"",
		chatActions,
	)

	columnStyle := lipgloss.NewStyle().Width(44).PaddingLeft(4)

	twoColumns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(column1),
		"  ",
		columnStyle.Render(column2),
	)

	footer := lipgloss.NewStyle().
		Foreground(dimColor).
		Render(fmt.Sprintf("Press %s or Esc to close this help", kb.DisplayActionKey("help")))

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		twoColumns,
		"",
		footer,
	)

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2).
		Width(min(100, width-2))

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox.Render(content),
	)
}
