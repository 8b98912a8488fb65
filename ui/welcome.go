package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"a2ui/config"
	"a2ui/model"
)

const ASCIIArt = `  __ _ ___  _   _ _
 / _' |_  )| | | | |
| (_| |/ / | |_| | |
 \__,_/___| \___/|_|`

var Features = []string{
	"• An agent answers with a UI, not just text",
	"• Six backends: Ollama, OpenAI, Anthropic, Gemini, HuggingFace, OpenRouter",
	"• Chatbot and form side by side",
}

type wizardStep int

const (
	stepProvider wizardStep = iota
	stepAPIKey
	stepModel
	stepValidate
	stepComplete
)

// WelcomeModel is the first-run wizard: pick a provider, enter its API key
// when it needs one, pick a model, check that the backend answers, and save
// the settings with setup marked complete.
type WelcomeModel struct {
	cfg     *config.Config
	kb      *config.KeyBindingsConfig
	store   *config.SettingsStore
	factory model.ProviderFactory

	step      wizardStep
	providers []config.ProviderInfo
	selected  int
	draft     config.ProviderSettings

	keyInput textinput.Model
	picker   modelPicker
	spinner  spinner.Model

	width  int
	height int

	err     string
	hint    string
	loading bool
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	featureStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(dangerColor).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
)

func NewWelcomeModel(cfg *config.Config, kb *config.KeyBindingsConfig, settings *config.ProviderSettings,
	store *config.SettingsStore, factory model.ProviderFactory) WelcomeModel {
	keyInput := textinput.New()
	keyInput.Placeholder = "paste your API key"
	keyInput.EchoMode = textinput.EchoPassword
	keyInput.EchoCharacter = '•'
	keyInput.Width = 50
	keyInput.CharLimit = 300

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := WelcomeModel{
		cfg:       cfg,
		kb:        kb,
		store:     store,
		factory:   factory,
		step:      stepProvider,
		providers: cfg.AvailableProviders(),
		draft:     cloneSettings(settings),
		keyInput:  keyInput,
		picker:    newModelPicker(),
		spinner:   sp,
	}
	for i, p := range m.providers {
		if p.ID == settings.ProviderID {
			m.selected = i
		}
	}
	return m
}

func (m WelcomeModel) Init() tea.Cmd {
	return nil
}

// IsComplete reports whether settings were saved.
func (m WelcomeModel) IsComplete() bool {
	return m.step == stepComplete
}

// Settings returns the saved settings.
func (m WelcomeModel) Settings() *config.ProviderSettings {
	s := cloneSettings(&m.draft)
	return &s
}

func (m WelcomeModel) info() config.ProviderInfo {
	info, _ := config.GetProviderInfo(m.draft.ProviderID)
	return info
}

func (m WelcomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case modelsListMsg:
		if msg.ProviderID != m.draft.ProviderID {
			return m, nil
		}
		m.loading = false
		models := msg.Models
		if msg.Err != nil || len(models) == 0 {
			models = catalogModels(m.info())
		}
		m.picker.SetModels(models, m.draft.EffectiveModel())
		return m, nil

	case providerPingMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = fmt.Sprintf("Connection failed: %v", msg.Err)
			m.hint = model.Hint(msg.Err)
			return m, nil
		}
		m.draft.SetupComplete = true
		return m, m.save()

	case settingsSavedMsg:
		if msg.Err != nil {
			m.err = fmt.Sprintf("Failed to save settings: %v", msg.Err)
			m.hint = ""
			return m, nil
		}
		m.step = stepComplete
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || m.kb.Matches(msg.String(), "welcome_quit") {
			return m, tea.Quit
		}
		switch m.step {
		case stepProvider:
			return m.updateProviderScreen(msg)
		case stepAPIKey:
			return m.updateAPIKeyScreen(msg)
		case stepModel:
			return m.updateModelScreen(msg)
		case stepValidate:
			return m.updateValidateScreen(msg)
		}
	}

	var cmd tea.Cmd
	if m.step == stepAPIKey {
		m.keyInput, cmd = m.keyInput.Update(msg)
	}
	return m, cmd
}

func (m WelcomeModel) updateProviderScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.providers) == 0 {
		return m, nil
	}

	key := msg.String()
	switch {
	case m.kb.Matches(key, "welcome_up"):
		m.selected = (m.selected - 1 + len(m.providers)) % len(m.providers)
	case m.kb.Matches(key, "welcome_down"):
		m.selected = (m.selected + 1) % len(m.providers)
	case key == "enter":
		chosen := m.providers[m.selected]
		if chosen.ID != m.draft.ProviderID {
			m.draft.Model = ""
		}
		m.draft.ProviderID = chosen.ID
		m.err, m.hint = "", ""
		if chosen.RequiresAPIKey {
			m.step = stepAPIKey
			m.keyInput.SetValue(m.draft.APIKey(chosen.ID))
			m.keyInput.CursorEnd()
			return m, m.keyInput.Focus()
		}
		return m.enterModelStep()
	}
	return m, nil
}

func (m WelcomeModel) updateAPIKeyScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.step = stepProvider
		m.keyInput.Blur()
		m.err, m.hint = "", ""
		return m, nil

	case "enter":
		key := strings.TrimSpace(m.keyInput.Value())
		if key == "" {
			m.err = fmt.Sprintf("%s needs an API key", m.info().Name)
			return m, nil
		}
		m.draft.SetAPIKey(m.draft.ProviderID, key)
		m.keyInput.Blur()
		m.err = ""
		return m.enterModelStep()
	}

	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}

// enterModelStep asks the backend for its models. When no backend can be
// built yet the curated list is shown instead.
func (m WelcomeModel) enterModelStep() (tea.Model, tea.Cmd) {
	m.step = stepModel
	p, err := m.factory(m.cfg, &m.draft)
	if err != nil {
		m.picker.SetModels(catalogModels(m.info()), m.draft.EffectiveModel())
		return m, nil
	}
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, model.FetchModels(m.draft.ProviderID, p))
}

func (m WelcomeModel) updateModelScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.picker.filterMode {
		switch key {
		case "esc":
			m.picker.StopFilter()
			return m, nil
		case "enter":
			return m.chooseModel()
		case "up":
			m.picker.Move(-1)
			return m, nil
		case "down":
			m.picker.Move(1)
			return m, nil
		}
		return m, m.picker.UpdateFilter(msg)
	}

	switch {
	case key == "esc":
		if m.info().RequiresAPIKey {
			m.step = stepAPIKey
			return m, m.keyInput.Focus()
		}
		m.step = stepProvider
	case key == "/":
		return m, m.picker.StartFilter()
	case m.kb.Matches(key, "welcome_up"):
		m.picker.Move(-1)
	case m.kb.Matches(key, "welcome_down"):
		m.picker.Move(1)
	case key == "enter":
		return m.chooseModel()
	}
	return m, nil
}

func (m WelcomeModel) chooseModel() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	if name, ok := m.picker.Selected(); ok {
		m.draft.Model = name
	}
	m.picker.StopFilter()
	return m.validate()
}

func (m WelcomeModel) validate() (tea.Model, tea.Cmd) {
	m.step = stepValidate
	m.err, m.hint = "", ""

	p, err := m.factory(m.cfg, &m.draft)
	if err != nil {
		m.err = err.Error()
		m.hint = model.Hint(err)
		return m, nil
	}
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, model.PingProvider(m.draft.ProviderID, p))
}

func (m WelcomeModel) updateValidateScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	switch msg.String() {
	case "r", "enter":
		return m.validate()
	case "esc":
		m.step = stepModel
		m.err, m.hint = "", ""
	}
	return m, nil
}

func (m WelcomeModel) save() tea.Cmd {
	store := m.store
	s := cloneSettings(&m.draft)
	return func() tea.Msg {
		if store == nil {
			return settingsSavedMsg{}
		}
		return settingsSavedMsg{Err: store.Save(&s)}
	}
}

func (m WelcomeModel) View() string {
	var body string
	switch m.step {
	case stepProvider:
		body = m.viewProviderScreen()
	case stepAPIKey:
		body = m.viewAPIKeyScreen()
	case stepModel:
		body = m.viewModelScreen()
	case stepValidate:
		body = m.viewValidateScreen()
	default:
		return ""
	}

	if m.err != "" {
		body += "\n\n" + errorStyle.Render(wordWrap(m.err, 60))
		if m.hint != "" {
			body += "\n" + featureStyle.Render(m.hint)
		}
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m WelcomeModel) viewProviderScreen() string {
	var sb strings.Builder

	for _, line := range strings.Split(ASCIIArt, "\n") {
		sb.WriteString(titleStyle.Render(line))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	for _, feature := range Features {
		sb.WriteString(featureStyle.Render(feature))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if len(m.providers) == 0 {
		sb.WriteString(errorStyle.Render("No providers are enabled."))
		sb.WriteString("\n")
		sb.WriteString(featureStyle.Render("Set A2UI_<PROVIDER>_ENABLED=true and restart."))
		sb.WriteString("\n\n")
		sb.WriteString(featureStyle.Render(m.kb.DisplayActionKey("welcome_quit") + " to exit"))
		return sb.String()
	}

	sb.WriteString("Choose where the agent runs:\n\n")
	for i, p := range m.providers {
		kind := "cloud"
		if p.Local() {
			kind = "local"
		}
		line := fmt.Sprintf("%s %s", p.Name, DimStyle.Render("("+kind+")"))
		if p.Note != "" {
			line += DimStyle.Render(" " + p.Note)
		}
		if i == m.selected {
			sb.WriteString(SelectedStyle.Render("→ ") + line)
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(featureStyle.Render(FormatFooter("↑/↓", "Navigate", "Enter", "Select", m.kb.DisplayActionKey("welcome_quit"), "Exit")))
	return sb.String()
}

func (m WelcomeModel) viewAPIKeyScreen() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.info().Name + " API Key"))
	sb.WriteString("\n\n")
	sb.WriteString(featureStyle.Render("The key is stored in the local settings database."))
	sb.WriteString("\n\n")
	sb.WriteString(inputStyle.Render(m.keyInput.View()))
	sb.WriteString("\n\n")
	sb.WriteString(featureStyle.Render(FormatFooter("Enter", "Continue", "Esc", "Back")))
	return sb.String()
}

func (m WelcomeModel) viewModelScreen() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Select Model"))
	sb.WriteString("\n\n")
	if m.loading {
		sb.WriteString(m.spinner.View() + " Loading models...")
		return sb.String()
	}
	maxLines := 12
	if m.height > 0 {
		maxLines = max(m.height-14, 4)
	}
	sb.WriteString(m.picker.View(m.draft.EffectiveModel(), 60, maxLines))
	sb.WriteString("\n\n")
	sb.WriteString(featureStyle.Render(FormatFooter("↑/↓", "Navigate", "/", "Filter", "Enter", "Select", "Esc", "Back")))
	return sb.String()
}

func (m WelcomeModel) viewValidateScreen() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Checking Connection"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("%s · %s\n\n", m.info().Name, m.draft.EffectiveModel()))
	if m.loading {
		sb.WriteString(m.spinner.View() + " Contacting the backend...")
		return sb.String()
	}
	sb.WriteString(featureStyle.Render(FormatFooter("r", "Retry", "Esc", "Back")))
	return sb.String()
}
