package provider

import (
	"context"
	"fmt"

	"a2ui/model"
	"a2ui/ollama"
)

// OllamaProvider wraps ollama.Client. Replies are constrained to JSON.
type OllamaProvider struct {
	client *ollama.Client
}

// NewOllamaProvider creates a provider for a local Ollama server. Empty values
// fall back to http://localhost:11434 and llama3.1:8b.
func NewOllamaProvider(baseURL, modelName string) (*OllamaProvider, error) {
	client, err := ollama.NewClient(baseURL, modelName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}
	client.SetJSONMode(true)

	return &OllamaProvider{client: client}, nil
}

func (p *OllamaProvider) ID() string { return "ollama" }

func (p *OllamaProvider) Chat(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
	err := p.client.Chat(ctx, ConvertToOllamaMessages(messages), func(chunk string) error {
		if callback == nil {
			return nil
		}
		return callback(chunk)
	})
	return classify(p.ID(), err)
}

func (p *OllamaProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	models, err := p.client.ListModels(ctx)
	return models, classify(p.ID(), err)
}

func (p *OllamaProvider) GetModel() string {
	return p.client.GetModel()
}

// GetDisplayName is the model name; Ollama has no vendor prefix.
func (p *OllamaProvider) GetDisplayName() string {
	return p.client.GetModel()
}

func (p *OllamaProvider) SetModel(modelName string) {
	p.client.SetModel(modelName)
}

func (p *OllamaProvider) Ping(ctx context.Context) error {
	return classify(p.ID(), p.client.Ping(ctx))
}
