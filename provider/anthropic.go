package provider

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"a2ui/model"
	"a2ui/ollama"
)

const anthropicDefaultMaxTokens = 4096

// AnthropicProvider uses the official Anthropic SDK. System messages move to
// the request's system parameter.
type AnthropicProvider struct {
	client    *anthropic.Client
	model     anthropic.Model
	baseURL   string
	maxTokens int64
}

func NewAnthropicProvider(baseURL, apiKey, modelName string, maxTokens int64) (*AnthropicProvider, error) {
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	if apiKey == "" {
		return nil, model.NotConfigured("anthropic", "Anthropic API key is required")
	}
	if modelName == "" {
		modelName = "claude-sonnet-4-20250514"
	}
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	client := anthropic.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &AnthropicProvider{
		client:    &client,
		model:     anthropic.Model(modelName),
		baseURL:   baseURL,
		maxTokens: maxTokens,
	}, nil
}

func (p *AnthropicProvider) ID() string { return "anthropic" }

func (p *AnthropicProvider) Chat(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
	anthropicMessages, system := ConvertToAnthropicMessages(messages)

	params := anthropic.MessageNewParams{
		Model:     p.model,
		Messages:  anthropicMessages,
		MaxTokens: p.maxTokens,
	}
	if len(system) > 0 {
		params.System = system
	}

	stream := p.client.Messages.NewStreaming(ctx, params)
	defer stream.Close()

	for stream.Next() {
		event := stream.Current()
		delta, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent)
		if !ok {
			continue
		}
		text, ok := delta.Delta.AsAny().(anthropic.TextDelta)
		if !ok || callback == nil {
			continue
		}
		if err := callback(text.Text); err != nil {
			return err
		}
	}

	return classify(p.ID(), stream.Err())
}

// ListModels returns the curated catalog list; the account's model list is
// not needed to pick one.
func (p *AnthropicProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	models := []anthropic.Model{
		"claude-sonnet-4-20250514",
		"claude-opus-4-20250514",
		anthropic.ModelClaude3_5Haiku20241022,
	}

	result := make([]ollama.ModelInfo, 0, len(models))
	for _, m := range models {
		result = append(result, ollama.ModelInfo{
			Name:         string(m),
			InternalName: string(m),
			Provider:     p.ID(),
		})
	}
	return result, nil
}

func (p *AnthropicProvider) GetModel() string {
	return string(p.model)
}

func (p *AnthropicProvider) GetDisplayName() string {
	return string(p.model)
}

func (p *AnthropicProvider) SetModel(modelName string) {
	p.model = anthropic.Model(modelName)
}

// Ping sends a one-token request; Anthropic has no health endpoint.
func (p *AnthropicProvider) Ping(ctx context.Context) error {
	_, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})
	return classify(p.ID(), err)
}
