package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"a2ui/config"
	"a2ui/model"
)

func (a AppView) View() string {
	if !a.ready {
		return "Loading..."
	}
	if a.width < 40 || a.height < 12 {
		return "Terminal too small"
	}

	switch {
	case a.settings.visible:
		return a.settings.View(a.width, a.height)
	case a.showHelp:
		return a.renderHelpModal(a.width, a.height)
	case a.showError && a.data.LastError != nil:
		lines := errorLines(a.data.LastError.Error(), model.Hint(a.data.LastError), 56)
		return RenderThreeSectionModal("Something went wrong", lines, "Press Enter to acknowledge", ModalTypeError, 60, a.width, a.height)
	}

	sections := []string{a.renderTitle(), a.renderBody()}
	if a.freeformOn {
		sections = append(sections, a.freeform.View())
	}
	sections = append(sections, a.renderStatus())
	return strings.Join(sections, "\n")
}

func (a AppView) renderTitle() string {
	mode := "UI only"
	if a.dual() {
		mode = "chatbot + UI"
	}
	backend := "no provider"
	if a.data.Provider != nil {
		backend = fmt.Sprintf("%s · %s", a.providerName(), a.data.Provider.GetDisplayName())
	}
	title := TitleStyle.Render("a2ui") + DimStyle.Render(fmt.Sprintf("  %s  ·  %s", backend, mode))
	return truncate(title, a.width)
}

func (a AppView) providerName() string {
	if a.data.Settings == nil {
		return ""
	}
	if info, ok := config.GetProviderInfo(a.data.Settings.ProviderID); ok {
		return info.Name
	}
	return a.data.Settings.ProviderID
}

func (a AppView) renderBody() string {
	height := a.bodyHeight()
	form := a.renderFormPane(height)
	if !a.dual() {
		return form
	}

	chatStyle := paneStyle
	if a.focus == paneChat {
		chatStyle = activePaneStyle
	}
	leftWidth := a.width - a.width/2
	chat := chatStyle.
		Width(leftWidth - 2).
		Height(height - 2).
		Render(TitleStyle.Render("Chatbot") + "\n" + a.chat.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, chat, form)
}

func (a AppView) renderFormPane(height int) string {
	width := a.width
	if a.dual() {
		width = a.width / 2
	}

	style := paneStyle
	if a.focus == paneForm {
		style = activePaneStyle
	}

	var content string
	switch {
	case a.data.Pending && a.data.Surface.Len() == 0:
		content = a.spinner.View() + " Thinking..."
	case a.showSource:
		content = a.data.Surface.Outline()
	default:
		content = a.form.View(a.focus == paneForm)
	}

	title := "Structured UI"
	if a.data.Pending {
		title += " " + a.spinner.View()
	}
	inner := height - 3
	body := clipAroundFocus(content, inner)
	return style.Width(width - 2).Height(height - 2).Render(TitleStyle.Render(title) + "\n" + body)
}

// clipAroundFocus keeps the focus marker on screen when the form is taller
// than the pane.
func clipAroundFocus(content string, height int) string {
	lines := strings.Split(content, "\n")
	if height <= 0 || len(lines) <= height {
		return content
	}
	focus := 0
	for i, line := range lines {
		if strings.Contains(line, "▸") {
			focus = i
			break
		}
	}
	start := focus - height/3
	start = max(0, min(start, len(lines)-height))
	return strings.Join(lines[start:start+height], "\n")
}

func (a AppView) renderStatus() string {
	if a.flashMessage != "" {
		return HighlightStyle.Render(a.flashMessage)
	}
	if a.data.Pending {
		return StatusStyle.Render(a.spinner.View() + " Waiting for the agent...")
	}

	parts := []string{"Tab", "Next field", "Enter", "Click"}
	if a.dual() {
		parts = append(parts, a.kb.DisplayActionKey("toggle_chat"), "Switch pane")
	}
	parts = append(parts,
		a.kb.DisplayActionKey("settings"), "Settings",
		a.kb.DisplayActionKey("help"), "Help",
		a.kb.DisplayActionKey("quit"), "Quit")
	return truncate(StatusStyle.Render(FormatFooter(parts...)), a.width)
}
