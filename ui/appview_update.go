package ui

import (
	"encoding/json"
	"errors"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"a2ui/config"
	"a2ui/model"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout()
		return a, nil

	case spinner.TickMsg:
		if !a.data.Pending && !a.settings.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case openSettingsMsg:
		return a.openSettings()

	case turnMsg:
		return a.handleTurn(msg)

	case markdownRenderedMsg:
		a.chat.ApplyRendered(msg)
		return a, nil

	case modelsListMsg:
		a.settings.SetModels(msg)
		return a, nil

	case settingsSavedMsg:
		if msg.Err != nil {
			a.settings.SetError("Failed to save settings: " + msg.Err.Error())
			return a, nil
		}
		a.settings.Close()
		cmds = append(cmds, a.flash("Settings saved"))
		if a.data.Turns == 0 && !a.data.Pending {
			cmds = append(cmds, a.data.StartConversation(), a.spinner.Tick)
		}
		return a, tea.Batch(cmds...)

	case clipboardMsg:
		if msg.Err != nil {
			return a, a.flash("Copy failed: " + msg.Err.Error())
		}
		return a, a.flash("Copied " + msg.What)

	case flashTickMsg:
		a.flashMessage = ""
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Cursor blink and other bubble messages
	cmds = append(cmds, a.form.UpdateEditors(msg))
	var cmd tea.Cmd
	cmd, _ = a.chat.UpdateInput(msg)
	cmds = append(cmds, cmd)
	a.freeform, cmd = a.freeform.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a *AppView) layout() {
	formWidth := a.width - 4
	if a.dual() {
		formWidth = a.width/2 - 4
		a.chat.SetSize(a.width-a.width/2-4, a.bodyHeight()-2)
	}
	a.form.SetWidth(formWidth)
	a.freeform.Width = a.width - 6
}

// bodyHeight leaves room for the title, status bar and free-form line.
func (a AppView) bodyHeight() int {
	h := a.height - 3
	if a.freeformOn {
		h--
	}
	return max(h, 3)
}

func (a AppView) handleTurn(msg turnMsg) (tea.Model, tea.Cmd) {
	a.data.Pending = false

	if msg.Err != nil {
		a.data.LastError = msg.Err
		if errors.Is(msg.Err, model.ErrBusy) {
			return a, a.flash("Still waiting for the last reply")
		}
		a.showError = true
		a.chat.ShowStatus(errorStyle.Render("Error: "+msg.Err.Error()) + "\n" + DimStyle.Render(model.Hint(msg.Err)))
		if config.Debug && config.DebugLog != nil {
			config.DebugLog.Printf("[UI] Turn failed (%s): %v", model.ErrorCode(msg.Err), msg.Err)
		}
		return a, nil
	}

	a.data.ApplyTurn(msg.Turn)
	a.showError = false
	a.sync.takeEdited()
	a.chat.SetInput("")
	a.freeform.SetValue("")

	cmds := []tea.Cmd{a.chat.SetReply(msg.Turn.Text, a.data.Turns)}
	a.form.Reset()
	cmds = append(cmds, a.setFocus(paneForm))
	return a, tea.Batch(cmds...)
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" || a.kb.Matches(key, "quit") {
		a.data.Quitting = true
		return a, tea.Quit
	}

	if a.showError {
		if key == "enter" || key == "esc" {
			a.showError = false
		}
		return a, nil
	}

	if a.settings.visible {
		return a.handleSettingsKey(msg)
	}

	if a.showHelp {
		if key == "esc" || a.kb.Matches(key, "help") {
			a.showHelp = false
		}
		return a, nil
	}

	switch {
	case a.kb.Matches(key, "help"):
		a.showHelp = true
		return a, nil

	case a.kb.Matches(key, "settings"):
		return a.openSettings()

	case a.kb.Matches(key, "restart"):
		if a.data.Pending {
			return a, a.flash("Still waiting for the last reply")
		}
		return a, tea.Batch(a.data.Restart(a.data.Dual), a.spinner.Tick, a.chat.SetReply("", 0))

	case a.kb.Matches(key, "toggle_mode"):
		if a.data.Pending || a.data.NewAgent == nil {
			return a, nil
		}
		cmd := a.data.Restart(!a.data.Dual)
		if !a.dual() && a.focus == paneChat {
			a.focus = paneForm
		}
		a.layout()
		return a, tea.Batch(cmd, a.spinner.Tick, a.chat.SetReply("", 0))

	case a.kb.Matches(key, "toggle_chat"):
		return a, a.nextFocus()

	case a.kb.Matches(key, "toggle_freeform"):
		a.freeformOn = !a.freeformOn
		a.layout()
		if a.freeformOn {
			return a, a.setFocus(paneFreeform)
		}
		a.freeform.SetValue("")
		return a, a.setFocus(paneForm)

	case a.kb.Matches(key, "toggle_source"):
		a.showSource = !a.showSource
		return a, nil

	case a.kb.Matches(key, "copy_schema"):
		return a, copyJSON("UI schema", a.data.Surface.Schema())

	case a.kb.Matches(key, "copy_values"):
		return a, copyJSON("values", a.data.Surface.Values())
	}

	switch a.focus {
	case paneChat:
		return a.handleChatKey(msg)
	case paneFreeform:
		var cmd tea.Cmd
		if key == "enter" {
			return a, a.setFocus(paneForm)
		}
		a.freeform, cmd = a.freeform.Update(msg)
		return a, cmd
	default:
		return a.handleFormKey(msg)
	}
}

func (a AppView) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, in, err := a.form.HandleKey(msg)
	if err != nil && config.Debug && config.DebugLog != nil {
		config.DebugLog.Printf("[UI] Form edit rejected: %v", err)
	}

	cmds := []tea.Cmd{cmd}
	if values, ok := a.sync.takeEdited(); ok && a.dual() {
		if text, ok := a.sync.formToChat(a.data.Surface, values); ok {
			a.chat.SetInput(text)
		}
	}

	if in != nil {
		interaction := *in
		if a.freeformOn {
			interaction = withFreeform(interaction, a.freeform.Value())
		}
		cmds = append(cmds, a.send(interaction))
	}
	return a, tea.Batch(cmds...)
}

func (a AppView) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch {
	case a.kb.Matches(key, "send"):
		if a.chat.Input() == "" {
			return a, nil
		}
		return a, a.send(chatbotInteraction(a.data.Surface, a.chat.Input()))
	case a.kb.Matches(key, "scroll_down"):
		a.chat.ScrollDown()
		return a, nil
	case a.kb.Matches(key, "scroll_up"):
		a.chat.ScrollUp()
		return a, nil
	case a.kb.Matches(key, "clear_input"):
		a.chat.SetInput("")
		return a, nil
	}

	cmd, changed := a.chat.UpdateInput(msg)
	if changed && a.sync.chatToForm(a.data.Surface, a.chat.Input()) {
		a.form.Refresh()
	}
	return a, cmd
}

func (a AppView) openSettings() (tea.Model, tea.Cmd) {
	a.settings.Open(a.data.Settings)
	return a, a.fetchDraftModels()
}

// fetchDraftModels lists models for the provider being edited, or falls back
// to the curated list when no backend can be built from the draft.
func (a *AppView) fetchDraftModels() tea.Cmd {
	draft := a.settings.Draft()
	p, err := a.data.NewProvider(a.data.Config, draft)
	if err != nil {
		a.settings.CatalogOnly()
		return nil
	}
	return tea.Batch(model.FetchModels(draft.ProviderID, p), a.spinner.Tick)
}

func (a AppView) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, action := a.settings.HandleKey(msg)

	switch action {
	case settingsClose:
		a.settings.Close()
		if a.data.Provider == nil {
			a.flashMessage = "No provider configured"
		}
	case settingsProviderChanged:
		return a, tea.Batch(cmd, a.fetchDraftModels())
	case settingsSave:
		draft := a.settings.Draft()
		if err := a.data.ApplySettings(draft); err != nil {
			a.settings.SetError(err.Error() + "\n" + model.Hint(err))
			return a, cmd
		}
		a.layout()
		return a, tea.Batch(cmd, a.data.SaveSettings(draft))
	}
	return a, cmd
}

func copyJSON(what string, v any) tea.Cmd {
	return func() tea.Msg {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return clipboardMsg{What: what, Err: err}
		}
		return clipboardMsg{What: what, Err: clipboard.WriteAll(string(data))}
	}
}
