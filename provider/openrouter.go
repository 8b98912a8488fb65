package provider

import (
	"context"
	"strings"

	"github.com/openai/openai-go/v3/option"

	"a2ui/model"
	"a2ui/ollama"
)

const (
	openRouterReferer = "https://github.com/a2ui/a2ui"
	openRouterTitle   = "a2ui"
)

// OpenRouterProvider is an OpenAI-compatible provider that sends OpenRouter's
// attribution headers and strips vendor prefixes for display.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(baseURL, apiKey, modelName string, maxTokens int64) (*OpenRouterProvider, error) {
	if maxTokens == 0 {
		maxTokens = 1024
	}
	inner, err := newOpenAICompatible("openrouter", "OpenRouter", "https://openrouter.ai/api/v1",
		"openai/gpt-4o-mini", baseURL, apiKey, modelName, maxTokens,
		option.WithHeader("HTTP-Referer", openRouterReferer),
		option.WithHeader("X-Title", openRouterTitle),
	)
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// ListModels strips vendor prefixes from display names.
func (p *OpenRouterProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	models, err := p.OpenAIProvider.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	for i := range models {
		models[i].Name = stripProviderPrefix(models[i].InternalName)
	}
	return models, nil
}

// GetDisplayName returns the model without its vendor prefix:
// "openai/gpt-4o-mini" → "gpt-4o-mini".
func (p *OpenRouterProvider) GetDisplayName() string {
	return stripProviderPrefix(p.model)
}

var _ model.Provider = (*OpenRouterProvider)(nil)

func stripProviderPrefix(modelName string) string {
	if idx := strings.Index(modelName, "/"); idx != -1 {
		return modelName[idx+1:]
	}
	return modelName
}
