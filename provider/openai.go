package provider

import (
	"context"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"a2ui/model"
	"a2ui/ollama"
)

// OpenAIProvider talks to any OpenAI-compatible chat completions endpoint.
// It serves OpenAI itself and the HuggingFace inference router.
type OpenAIProvider struct {
	id        string
	name      string
	client    openai.Client
	model     string
	baseURL   string
	maxTokens int64
}

// NewOpenAIProvider creates an OpenAI provider. The API key is required.
func NewOpenAIProvider(baseURL, apiKey, modelName string, maxTokens int64) (*OpenAIProvider, error) {
	return newOpenAICompatible("openai", "OpenAI", "https://api.openai.com/v1", "gpt-4o-mini",
		baseURL, apiKey, modelName, maxTokens)
}

// NewHuggingFaceProvider creates a provider for the HuggingFace router, which
// exposes hosted models through the OpenAI chat completions API.
func NewHuggingFaceProvider(baseURL, apiKey, modelName string, maxTokens int64) (*OpenAIProvider, error) {
	if maxTokens == 0 {
		maxTokens = 2048
	}
	return newOpenAICompatible("huggingface", "HuggingFace", "https://router.huggingface.co/v1",
		"meta-llama/Llama-3.1-8B-Instruct", baseURL, apiKey, modelName, maxTokens)
}

func newOpenAICompatible(id, name, defaultURL, defaultModel, baseURL, apiKey, modelName string, maxTokens int64, opts ...option.RequestOption) (*OpenAIProvider, error) {
	if baseURL == "" {
		baseURL = defaultURL
	}
	if apiKey == "" {
		return nil, model.NotConfigured(id, name+" API key is required")
	}
	if modelName == "" {
		modelName = defaultModel
	}

	opts = append([]option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	}, opts...)

	return &OpenAIProvider{
		id:        id,
		name:      name,
		client:    openai.NewClient(opts...),
		model:     modelName,
		baseURL:   baseURL,
		maxTokens: maxTokens,
	}, nil
}

func (p *OpenAIProvider) ID() string { return p.id }

// Chat streams a chat completion.
func (p *OpenAIProvider) Chat(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
	params := openai.ChatCompletionNewParams{
		Messages: ConvertToOpenAIMessages(messages),
		Model:    openai.ChatModel(p.model),
	}
	if p.maxTokens > 0 {
		params.MaxTokens = openai.Int(p.maxTokens)
	}

	stream := p.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		if callback != nil {
			if err := callback(chunk.Choices[0].Delta.Content); err != nil {
				return err
			}
		}
	}

	return classify(p.id, stream.Err())
}

func (p *OpenAIProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	page, err := p.client.Models.List(ctx)
	if err != nil {
		return nil, classify(p.id, err)
	}

	result := make([]ollama.ModelInfo, 0, len(page.Data))
	for _, m := range page.Data {
		if p.id == "openai" && !strings.HasPrefix(m.ID, "gpt-") {
			continue
		}
		result = append(result, ollama.ModelInfo{
			Name:         m.ID,
			InternalName: m.ID,
			Provider:     p.id,
		})
	}
	return result, nil
}

func (p *OpenAIProvider) GetModel() string {
	return p.model
}

func (p *OpenAIProvider) GetDisplayName() string {
	return p.model
}

func (p *OpenAIProvider) SetModel(modelName string) {
	p.model = modelName
}

// Ping lists models, which needs a valid key but costs nothing.
func (p *OpenAIProvider) Ping(ctx context.Context) error {
	_, err := p.client.Models.List(ctx)
	return classify(p.id, err)
}
