package model

import (
	"context"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"a2ui/config"
	"a2ui/schema"
)

// StartConversation asks the agent for the opening UI.
func (m *Model) StartConversation() tea.Cmd {
	agent := m.Agent
	m.Pending = true
	return func() tea.Msg {
		turn, err := agent.Start(context.Background())
		return TurnMsg{Turn: turn, Err: err}
	}
}

// SendInteraction forwards a click to the agent.
func (m *Model) SendInteraction(in schema.Interaction) tea.Cmd {
	agent := m.Agent
	m.Pending = true
	m.LastInteraction = &in

	if config.Debug && config.DebugLog != nil {
		config.DebugLog.Printf("[Model] Sending interaction %s with %d values", in.ComponentID, len(in.Values))
	}

	return func() tea.Msg {
		turn, err := agent.HandleInteraction(context.Background(), in)
		return TurnMsg{Turn: turn, Err: err, Interaction: &in}
	}
}

// FetchModels lists a provider's models, sorted by display name.
func FetchModels(providerID string, p Provider) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		models, err := p.ListModels(ctx)
		if err == nil {
			sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
		}
		return ModelsListMsg{ProviderID: providerID, Models: models, Err: err}
	}
}

// PingProvider checks that a candidate backend answers.
func PingProvider(providerID string, p Provider) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		return ProviderPingMsg{ProviderID: providerID, Err: p.Ping(ctx)}
	}
}

// SaveSettings persists the settings blob.
func (m *Model) SaveSettings(s *config.ProviderSettings) tea.Cmd {
	store := m.SettingsStore
	copied := *s
	return func() tea.Msg {
		if store == nil {
			return SettingsSavedMsg{}
		}
		return SettingsSavedMsg{Err: store.Save(&copied)}
	}
}

func FlashTick() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg { return FlashTickMsg{} })
}
