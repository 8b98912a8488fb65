package model

import (
	tea "github.com/charmbracelet/bubbletea"

	"a2ui/config"
	"a2ui/renderer"
	"a2ui/schema"
)

// ProviderFactory builds the backend for the chosen settings. It is injected
// so that model does not import the provider package.
type ProviderFactory func(cfg *config.Config, s *config.ProviderSettings) (Provider, error)

// AgentFactory builds a fresh agent for a restart or a mode switch.
type AgentFactory func(p Provider, dual bool) Agent

// Model holds the core application data and business logic state
type Model struct {
	Config        *config.Config
	Settings      *config.ProviderSettings
	SettingsStore *config.SettingsStore
	Keybindings   *config.KeyBindingsConfig
	NewProvider   ProviderFactory
	// NewAgent is nil for the static demo; restarts then reuse Agent.
	NewAgent AgentFactory

	Agent    Agent
	Provider Provider
	Surface  *renderer.Surface

	// Dual is true when the agent replies with chatbot text alongside the UI.
	Dual bool
	// Static is true when the agent never calls a backend.
	Static bool

	// Runtime state (not UI)
	Pending         bool
	LastText        string
	LastError       error
	LastInteraction *schema.Interaction
	Turns           int
	Quitting        bool

	Version string
}

// NewModel wires the app state. p may be nil when setup has not run yet.
func NewModel(cfg *config.Config, settings *config.ProviderSettings, store *config.SettingsStore,
	agent Agent, p Provider, factory ProviderFactory, dual bool, version string) *Model {
	kb, err := config.LoadKeybindings(cfg.DataDir())
	if err != nil {
		if config.Debug && config.DebugLog != nil {
			config.DebugLog.Printf("[Model] Keybindings unreadable, using defaults: %v", err)
		}
		kb = config.DefaultKeybindings()
	}

	return &Model{
		Config:        cfg,
		Settings:      settings,
		SettingsStore: store,
		Keybindings:   kb,
		NewProvider:   factory,
		Agent:         agent,
		Provider:      p,
		Surface:       renderer.New(),
		Dual:          dual,
		Version:       version,
	}
}

// ApplyTurn renders a successful reply.
func (m *Model) ApplyTurn(turn schema.Turn) {
	m.Surface.Render(turn.UI)
	m.LastText = turn.Text
	m.LastError = nil
	m.Turns++
}

// NeedsSetup reports whether the setup wizard must run before the first turn.
func (m *Model) NeedsSetup() bool {
	if m.Static {
		return false
	}
	return m.Provider == nil || config.NeedsSetup(m.Config, m.Settings)
}

// ApplySettings builds a backend for s and swaps it into the agent. The log is
// kept. Nothing changes when the backend cannot be built.
func (m *Model) ApplySettings(s *config.ProviderSettings) error {
	p, err := m.NewProvider(m.Config, s)
	if err != nil {
		return err
	}
	m.Settings = s
	m.Provider = p
	if m.Agent != nil {
		m.Agent.SetProvider(p)
	}

	if config.Debug && config.DebugLog != nil {
		config.DebugLog.Printf("[Model] Applied settings: provider=%s model=%s", s.ProviderID, p.GetModel())
	}
	return nil
}

// Restart drops the conversation and starts a new one. A nil NewAgent keeps
// the current agent (and its mode).
func (m *Model) Restart(dual bool) tea.Cmd {
	if m.NewAgent != nil {
		m.Agent = m.NewAgent(m.Provider, dual)
		m.Dual = dual
	}
	m.Surface.Clear()
	m.LastText = ""
	m.LastError = nil
	m.LastInteraction = nil
	m.Turns = 0

	if config.Debug && config.DebugLog != nil {
		config.DebugLog.Printf("[Model] Restarting conversation (dual=%v)", m.Dual)
	}
	return m.StartConversation()
}
