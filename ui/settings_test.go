package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a2ui/config"
	"a2ui/ollama"
)

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "(not set)", maskAPIKey(""))
	assert.Equal(t, "***", maskAPIKey("short"))
	assert.Equal(t, "sk-*****6789", maskAPIKey("sk-abcde6789"))
}

func TestSettingsDraftIsACopy(t *testing.T) {
	cfg := &config.Config{DataDirectory: t.TempDir()}
	m := NewSettingsModal(cfg, config.DefaultKeybindings())

	original := &config.ProviderSettings{ProviderID: "openai", APIKeys: map[string]string{"openai": "k1"}}
	m.Open(original)
	draft := m.Draft()
	draft.APIKeys["openai"] = "changed"

	assert.True(t, draft.SetupComplete)
	assert.Equal(t, "k1", original.APIKeys["openai"])
	assert.False(t, original.SetupComplete)
}

func TestSettingsOpenWithoutSettings(t *testing.T) {
	m := NewSettingsModal(&config.Config{DataDirectory: t.TempDir()}, config.DefaultKeybindings())
	m.Open(nil)
	assert.NotNil(t, m.Draft().APIKeys)
}

func TestSettingsModelsFallBackToCatalog(t *testing.T) {
	m := NewSettingsModal(&config.Config{DataDirectory: t.TempDir()}, config.DefaultKeybindings())
	m.Open(&config.ProviderSettings{ProviderID: "anthropic", APIKeys: map[string]string{}})

	m.SetModels(modelsListMsg{ProviderID: "anthropic", Err: errors.New("offline")})
	assert.False(t, m.loading)
	assert.NotEmpty(t, m.picker.models)
	assert.Contains(t, m.note, "defaults")

	// Replies for a provider no longer being edited are dropped.
	m.SetModels(modelsListMsg{ProviderID: "openai", Models: []ollama.ModelInfo{{InternalName: "x"}}})
	assert.NotEqual(t, "x", m.picker.models[0].InternalName)
}

func TestModelPickerFuzzyFilter(t *testing.T) {
	p := newModelPicker()
	p.SetModels([]ollama.ModelInfo{
		{Name: "Llama 3.2", InternalName: "llama3.2"},
		{Name: "Qwen 2.5", InternalName: "qwen2.5"},
		{Name: "Mistral", InternalName: "mistral"},
	}, "")

	p.StartFilter()
	p.filter.SetValue("qw")
	p.applyFilter()

	name, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, "qwen2.5", name)

	p.filter.SetValue("zzz")
	p.applyFilter()
	_, ok = p.Selected()
	assert.False(t, ok)

	p.StopFilter()
	p.Move(-1)
	name, _ = p.Selected()
	assert.Equal(t, "mistral", name)
}
