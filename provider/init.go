package provider

import (
	"fmt"

	"a2ui/config"
	"a2ui/model"
)

// FromSettings builds the backend the user chose. It has the
// model.ProviderFactory signature.
//
// A provider that is not available in this environment, or a cloud provider
// without an API key, yields a model.ErrNotConfigured BackendError.
func FromSettings(cfg *config.Config, s *config.ProviderSettings) (model.Provider, error) {
	return Candidate(cfg, s.ProviderID, s.APIKey(s.ProviderID), s.EffectiveModel())
}

// Candidate builds a backend from loose values. The setup wizard uses it to
// ping and list models before anything is saved.
func Candidate(cfg *config.Config, providerID, apiKey, modelName string) (model.Provider, error) {
	info, ok := config.GetProviderInfo(providerID)
	if !ok {
		return nil, fmt.Errorf("unknown provider type: %s", providerID)
	}
	if !cfg.IsProviderAvailable(providerID) {
		return nil, model.Disabled(providerID)
	}
	if info.RequiresAPIKey && apiKey == "" {
		return nil, model.NotConfigured(providerID, fmt.Sprintf("%s API key is required", info.Name))
	}
	if modelName == "" {
		modelName = info.DefaultModel
	}

	p, err := NewProvider(Config{
		Type:      MapProviderIDToType(providerID),
		BaseURL:   cfg.BaseURL(providerID),
		Model:     modelName,
		APIKey:    apiKey,
		MaxTokens: cfg.MaxTokensFor(providerID),
	})
	if err != nil {
		if config.Debug && config.DebugLog != nil {
			config.DebugLog.Printf("[Provider] Failed to initialize provider %s: %v", providerID, err)
		}
		return nil, err
	}

	if config.Debug && config.DebugLog != nil {
		config.DebugLog.Printf("[Provider] Initialized provider: %s (model: %s)", providerID, modelName)
	}
	return p, nil
}
