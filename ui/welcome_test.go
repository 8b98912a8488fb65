package ui

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a2ui/config"
	"a2ui/model"
	"a2ui/provider/testutil"
	"a2ui/storage"
)

type wizardRig struct {
	cfg   *config.Config
	kv    *storage.KVStore
	store *config.SettingsStore
	seen  []config.ProviderSettings
}

func newWizardRig(t *testing.T, enabled string) *wizardRig {
	t.Helper()
	cfg := &config.Config{DataDirectory: t.TempDir(), Enabled: map[string]bool{enabled: true}}
	kv, err := storage.NewKVStore(filepath.Join(cfg.DataDirectory, "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	store, err := config.NewSettingsStore(kv, cfg)
	require.NoError(t, err)
	return &wizardRig{cfg: cfg, kv: kv, store: store}
}

func (r *wizardRig) wizard(p model.Provider) WelcomeModel {
	factory := func(cfg *config.Config, s *config.ProviderSettings) (model.Provider, error) {
		r.seen = append(r.seen, *s)
		return p, nil
	}
	return NewWelcomeModel(r.cfg, config.DefaultKeybindings(), config.DefaultProviderSettings(r.cfg), r.store, factory)
}

func (r *wizardRig) saved(t *testing.T) bool {
	t.Helper()
	_, ok, err := r.kv.Get(config.SettingsKey)
	require.NoError(t, err)
	return ok
}

// drive feeds msg to the wizard and then every message its commands produce,
// except spinner ticks and quit.
func drive(m WelcomeModel, msg tea.Msg) (WelcomeModel, bool) {
	quit := false
	pending := []tea.Msg{msg}
	for len(pending) > 0 {
		next, cmd := m.Update(pending[0])
		m = next.(WelcomeModel)
		pending = pending[1:]
		for _, out := range collect(cmd) {
			switch out.(type) {
			case tea.QuitMsg:
				quit = true
			case model.ModelsListMsg, model.ProviderPingMsg, model.SettingsSavedMsg:
				pending = append(pending, out)
			}
		}
	}
	return m, quit
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

func TestWelcomeCloudNeedsAPIKey(t *testing.T) {
	rig := newWizardRig(t, config.ProviderOpenAI)
	m := rig.wizard(testutil.NewMockProvider("gpt-test"))

	m, _ = drive(m, key(tea.KeyEnter))
	require.Equal(t, stepAPIKey, m.step)

	m, _ = drive(m, key(tea.KeyEnter))
	assert.Equal(t, stepAPIKey, m.step)
	assert.Contains(t, m.View(), "needs an API key")
	assert.Empty(t, rig.seen, "no backend is built without a key")

	m.keyInput.SetValue("  sk-test  ")
	m, _ = drive(m, key(tea.KeyEnter))
	assert.Equal(t, stepModel, m.step)
	require.Len(t, rig.seen, 1)
	assert.Equal(t, "sk-test", rig.seen[0].APIKey(config.ProviderOpenAI))
	assert.False(t, rig.saved(t))
}

func TestWelcomePingFailureDoesNotSave(t *testing.T) {
	rig := newWizardRig(t, config.ProviderOpenAI)
	m := rig.wizard(testutil.NewFailingProvider(errors.New("401 unauthorized")))

	m, _ = drive(m, key(tea.KeyEnter))
	m.keyInput.SetValue("sk-bad")
	m, _ = drive(m, key(tea.KeyEnter))
	m, quit := drive(m, key(tea.KeyEnter))

	assert.False(t, quit)
	assert.Equal(t, stepValidate, m.step)
	assert.False(t, m.loading)
	assert.Contains(t, m.err, "Connection failed")
	assert.Contains(t, m.err, "401 unauthorized")
	assert.False(t, m.IsComplete())
	assert.False(t, rig.saved(t))

	// Retrying pings again and still refuses to save.
	m, _ = drive(m, runes("r"))
	assert.Equal(t, stepValidate, m.step)
	assert.False(t, rig.saved(t))
}

func TestWelcomePingSuccessSavesSetup(t *testing.T) {
	rig := newWizardRig(t, config.ProviderOpenAI)
	m := rig.wizard(testutil.NewMockProvider("gpt-test"))

	m, _ = drive(m, key(tea.KeyEnter))
	m.keyInput.SetValue("sk-good")
	m, _ = drive(m, key(tea.KeyEnter))
	require.Equal(t, stepModel, m.step)
	require.False(t, m.loading)

	m, _ = drive(m, key(tea.KeyDown))
	m, quit := drive(m, key(tea.KeyEnter))

	assert.True(t, quit)
	assert.True(t, m.IsComplete())
	assert.Empty(t, m.err)

	saved, err := rig.store.Load(rig.cfg)
	require.NoError(t, err)
	assert.True(t, saved.SetupComplete)
	assert.Equal(t, config.ProviderOpenAI, saved.ProviderID)
	assert.Equal(t, "sk-good", saved.APIKey(config.ProviderOpenAI))
	assert.Equal(t, "mock-model-2", saved.Model)
	assert.Equal(t, saved.Model, m.Settings().Model)
	assert.False(t, config.NeedsSetup(rig.cfg, saved))
}

func TestWelcomeLocalSkipsAPIKey(t *testing.T) {
	rig := newWizardRig(t, config.ProviderOllama)
	m := rig.wizard(testutil.NewMockProvider("llama3.2"))

	m, _ = drive(m, key(tea.KeyEnter))
	assert.Equal(t, stepModel, m.step)

	m, quit := drive(m, key(tea.KeyEnter))
	assert.True(t, quit)

	saved, err := rig.store.Load(rig.cfg)
	require.NoError(t, err)
	assert.True(t, saved.SetupComplete)
	assert.Equal(t, config.ProviderOllama, saved.ProviderID)
}
