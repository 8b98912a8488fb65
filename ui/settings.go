package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"a2ui/config"
)

type settingsField int

const (
	fieldProvider settingsField = iota
	fieldModel
	fieldAPIKey
)

// settingsAction tells the app what a key press in the modal asks for.
type settingsAction int

const (
	settingsNone settingsAction = iota
	settingsClose
	settingsSave
	// settingsProviderChanged means the model list must be refetched.
	settingsProviderChanged
)

// SettingsModal edits a draft copy of the provider settings. Nothing is
// applied until the draft is saved.
type SettingsModal struct {
	visible bool
	cfg     *config.Config
	kb      *config.KeyBindingsConfig

	draft     config.ProviderSettings
	providers []config.ProviderInfo
	field     settingsField

	picker     modelPicker
	pickerOpen bool
	loading    bool

	keyInput   textinput.Model
	editingKey bool

	note string
	err  string
}

func NewSettingsModal(cfg *config.Config, kb *config.KeyBindingsConfig) SettingsModal {
	keyInput := textinput.New()
	keyInput.Placeholder = "API key"
	keyInput.EchoMode = textinput.EchoPassword
	keyInput.EchoCharacter = '•'
	keyInput.CharLimit = 300
	keyInput.Width = 40

	return SettingsModal{
		cfg:      cfg,
		kb:       kb,
		picker:   newModelPicker(),
		keyInput: keyInput,
	}
}

// Open starts editing a copy of s.
func (m *SettingsModal) Open(s *config.ProviderSettings) {
	m.visible = true
	m.draft = cloneSettings(s)
	m.providers = m.cfg.AvailableProviders()
	m.field = fieldProvider
	m.pickerOpen = false
	m.editingKey = false
	m.note = ""
	m.err = ""
	m.loading = true
	m.picker.SetModels(nil, "")
}

func (m *SettingsModal) Close() {
	m.visible = false
	m.keyInput.Blur()
}

// Draft returns a copy of the edited settings.
func (m *SettingsModal) Draft() *config.ProviderSettings {
	d := cloneSettings(&m.draft)
	d.SetupComplete = true
	return &d
}

func (m *SettingsModal) SetError(err string) { m.err = err }

func (m *SettingsModal) info() config.ProviderInfo {
	info, _ := config.GetProviderInfo(m.draft.ProviderID)
	return info
}

// SetModels installs a fetched model list. Failures fall back to the
// provider's curated list.
func (m *SettingsModal) SetModels(msg modelsListMsg) {
	if msg.ProviderID != m.draft.ProviderID {
		return
	}
	m.loading = false
	models := msg.Models
	switch {
	case msg.Err != nil:
		m.note = "Could not list models, showing defaults"
		models = catalogModels(m.info())
	case len(models) == 0:
		m.note = "No models reported, showing defaults"
		models = catalogModels(m.info())
	default:
		m.note = ""
	}
	m.picker.SetModels(models, m.draft.EffectiveModel())
}

// CatalogOnly shows the curated list when no backend can be built to ask.
func (m *SettingsModal) CatalogOnly() {
	m.loading = false
	m.picker.SetModels(catalogModels(m.info()), m.draft.EffectiveModel())
}

func (m *SettingsModal) HandleKey(msg tea.KeyMsg) (tea.Cmd, settingsAction) {
	key := msg.String()

	if m.editingKey {
		switch key {
		case "enter":
			m.draft.SetAPIKey(m.draft.ProviderID, strings.TrimSpace(m.keyInput.Value()))
			m.editingKey = false
			m.keyInput.Blur()
			// A new key may unlock the live model list.
			return nil, settingsProviderChanged
		case "esc":
			m.editingKey = false
			m.keyInput.Blur()
			return nil, settingsNone
		}
		var cmd tea.Cmd
		m.keyInput, cmd = m.keyInput.Update(msg)
		return cmd, settingsNone
	}

	if m.pickerOpen {
		return m.handlePickerKey(msg)
	}

	switch {
	case key == "esc":
		return nil, settingsClose

	case m.kb.Matches(key, "settings_save"):
		if m.info().RequiresAPIKey && m.draft.APIKey(m.draft.ProviderID) == "" {
			m.err = fmt.Sprintf("%s needs an API key", m.info().Name)
			return nil, settingsNone
		}
		m.err = ""
		return nil, settingsSave

	case m.kb.Matches(key, "settings_down"), key == "tab":
		m.moveField(1)
	case m.kb.Matches(key, "settings_up"), key == "shift+tab":
		m.moveField(-1)

	case m.field == fieldProvider && (key == "left" || key == "right"):
		if len(m.providers) == 0 {
			return nil, settingsNone
		}
		delta := 1
		if key == "left" {
			delta = -1
		}
		i := 0
		for j, p := range m.providers {
			if p.ID == m.draft.ProviderID {
				i = j
			}
		}
		i = (i + delta + len(m.providers)) % len(m.providers)
		m.draft.ProviderID = m.providers[i].ID
		m.draft.Model = ""
		m.note = ""
		m.err = ""
		m.loading = true
		return nil, settingsProviderChanged

	case key == "enter" && m.field == fieldModel:
		m.pickerOpen = true
	case key == "enter" && m.field == fieldAPIKey:
		m.editingKey = true
		m.keyInput.SetValue(m.draft.APIKey(m.draft.ProviderID))
		m.keyInput.CursorEnd()
		return m.keyInput.Focus(), settingsNone
	}
	return nil, settingsNone
}

func (m *SettingsModal) handlePickerKey(msg tea.KeyMsg) (tea.Cmd, settingsAction) {
	key := msg.String()

	if m.picker.filterMode {
		switch key {
		case "esc":
			m.picker.StopFilter()
			return nil, settingsNone
		case "enter":
			m.choose()
			return nil, settingsNone
		case "up", "down":
			if key == "up" {
				m.picker.Move(-1)
			} else {
				m.picker.Move(1)
			}
			return nil, settingsNone
		}
		return m.picker.UpdateFilter(msg), settingsNone
	}

	switch {
	case key == "esc":
		m.pickerOpen = false
	case key == "/":
		return m.picker.StartFilter(), settingsNone
	case m.kb.Matches(key, "settings_down"):
		m.picker.Move(1)
	case m.kb.Matches(key, "settings_up"):
		m.picker.Move(-1)
	case key == "enter":
		m.choose()
	}
	return nil, settingsNone
}

func (m *SettingsModal) choose() {
	if name, ok := m.picker.Selected(); ok {
		m.draft.Model = name
	}
	m.picker.StopFilter()
	m.pickerOpen = false
}

func (m *SettingsModal) moveField(delta int) {
	fields := []settingsField{fieldProvider, fieldModel}
	if m.info().RequiresAPIKey {
		fields = append(fields, fieldAPIKey)
	}
	i := 0
	for j, f := range fields {
		if f == m.field {
			i = j
		}
	}
	m.field = fields[(i+delta+len(fields))%len(fields)]
}

func (m *SettingsModal) View(width, height int) string {
	modalWidth := 64
	info := m.info()

	row := func(f settingsField, label, value string) string {
		prefix := "  "
		line := fmt.Sprintf("%-10s %s", label, value)
		if m.field == f {
			prefix = "▶ "
			line = SelectedStyle.Render(line)
		}
		return prefix + line
	}

	providerValue := "‹ " + info.Name + " ›"
	if info.Note != "" {
		providerValue += DimStyle.Render(" (" + info.Note + ")")
	}

	modelValue := m.draft.EffectiveModel()
	if m.loading {
		modelValue += DimStyle.Render(" (loading models...)")
	}

	keyValue := DimStyle.Render("not needed")
	if info.RequiresAPIKey {
		keyValue = maskAPIKey(m.draft.APIKey(m.draft.ProviderID))
		if m.editingKey {
			keyValue = m.keyInput.View()
		}
	}

	lines := []string{
		row(fieldProvider, "Provider", providerValue),
		row(fieldModel, "Model", modelValue),
	}
	if info.RequiresAPIKey {
		lines = append(lines, row(fieldAPIKey, "API key", keyValue))
	} else {
		lines = append(lines, "  "+fmt.Sprintf("%-10s %s", "API key", keyValue))
	}

	if m.pickerOpen {
		lines = append(lines, "", m.picker.View(m.draft.EffectiveModel(), modalWidth-4, max(height-20, 5)))
	}
	if m.note != "" {
		lines = append(lines, "", DimStyle.Render(m.note))
	}
	if m.err != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(dangerColor).Bold(true).Render(wordWrap(m.err, modalWidth-4)))
	}

	var footer string
	switch {
	case m.editingKey:
		footer = FormatFooter("Enter", "Set key", "Esc", "Cancel")
	case m.pickerOpen:
		footer = FormatFooter("↑/↓", "Navigate", "/", "Filter", "Enter", "Select", "Esc", "Back")
	default:
		footer = FormatFooter("↑/↓", "Field", "←/→", "Provider", "Enter", "Edit",
			m.kb.DisplayActionKey("settings_save"), "Save", "Esc", "Close")
	}

	return RenderThreeSectionModal("Provider Settings", lines, footer, ModalTypeInfo, modalWidth, width, height)
}

func cloneSettings(s *config.ProviderSettings) config.ProviderSettings {
	if s == nil {
		return config.ProviderSettings{APIKeys: map[string]string{}}
	}
	out := *s
	out.APIKeys = make(map[string]string, len(s.APIKeys))
	for k, v := range s.APIKeys {
		out.APIKeys[k] = v
	}
	return out
}

// maskAPIKey masks API key for display
func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) < 8 {
		return "***"
	}
	return key[:3] + strings.Repeat("*", len(key)-7) + key[len(key)-4:]
}

