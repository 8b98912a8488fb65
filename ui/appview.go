package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"a2ui/config"
	"a2ui/model"
	"a2ui/schema"
)

type focusPane int

const (
	paneForm focusPane = iota
	paneChat
	paneFreeform
)

// AppView is the main screen: the rendered form, the chatbot pane in dual
// mode, and the modals on top.
type AppView struct {
	data *model.Model
	kb   *config.KeyBindingsConfig

	form     FormView
	chat     ChatPane
	freeform textinput.Model
	sync     *formSync
	settings SettingsModal
	spinner  spinner.Model

	focus        focusPane
	freeformOn   bool
	showHelp     bool
	showSource   bool
	showError    bool
	flashMessage string

	width  int
	height int
	ready  bool
}

func NewAppView(data *model.Model) AppView {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	freeform := textinput.New()
	freeform.Placeholder = "Anything else the agent should know..."
	freeform.Prompt = "+ "
	freeform.CharLimit = 2000

	sync := &formSync{}
	data.Surface.OnValueChange(sync.observe)

	return AppView{
		data:     data,
		kb:       data.Keybindings,
		form:     NewFormView(data.Surface, data.Keybindings),
		chat:     NewChatPane(),
		freeform: freeform,
		sync:     sync,
		settings: NewSettingsModal(data.Config, data.Keybindings),
		spinner:  sp,
	}
}

func (a AppView) Init() tea.Cmd {
	if a.data.NeedsSetup() {
		return func() tea.Msg { return openSettingsMsg{} }
	}
	return tea.Batch(a.data.StartConversation(), a.spinner.Tick)
}

// openSettingsMsg opens the settings modal when no backend is usable yet.
type openSettingsMsg struct{}

// Model exposes the app state (used by tests and main).
func (a AppView) Model() *model.Model { return a.data }

func (a AppView) dual() bool { return a.data.Dual }

func (a *AppView) setFocus(p focusPane) tea.Cmd {
	a.focus = p
	a.form.Blur()
	a.chat.Blur()
	a.freeform.Blur()
	switch p {
	case paneChat:
		return a.chat.Focus()
	case paneFreeform:
		return a.freeform.Focus()
	default:
		return a.form.Focus()
	}
}

func (a *AppView) nextFocus() tea.Cmd {
	order := []focusPane{paneForm}
	if a.dual() {
		order = append(order, paneChat)
	}
	if a.freeformOn {
		order = append(order, paneFreeform)
	}
	i := 0
	for j, p := range order {
		if p == a.focus {
			i = j
		}
	}
	return a.setFocus(order[(i+1)%len(order)])
}

// send forwards an interaction unless a turn is already outstanding.
func (a *AppView) send(in schema.Interaction) tea.Cmd {
	if a.data.Pending {
		return nil
	}
	a.showError = false
	a.chat.ShowStatus(DimStyle.Render("Thinking..."))
	return tea.Batch(a.data.SendInteraction(in), a.spinner.Tick)
}

func (a *AppView) flash(message string) tea.Cmd {
	a.flashMessage = message
	return model.FlashTick()
}
