package provider

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"a2ui/model"
	"a2ui/ollama"
)

// GeminiProvider uses the Google Gen AI SDK against the Gemini API. System
// messages become the system instruction and assistant turns use the "model"
// role. Replies are requested as application/json.
type GeminiProvider struct {
	client    *genai.Client
	model     string
	maxTokens int64
}

func NewGeminiProvider(baseURL, apiKey, modelName string, maxTokens int64) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, model.NotConfigured("gemini", "Google Gemini API key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(context.Background(), cc)
	if err != nil {
		return nil, classify("gemini", err)
	}

	return &GeminiProvider{
		client:    client,
		model:     modelName,
		maxTokens: maxTokens,
	}, nil
}

func (p *GeminiProvider) ID() string { return "gemini" }

func (p *GeminiProvider) Chat(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
	contents, system := ConvertToGeminiContents(messages)

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		SystemInstruction: system,
	}
	if p.maxTokens > 0 {
		cfg.MaxOutputTokens = int32(p.maxTokens)
	}

	for resp, err := range p.client.Models.GenerateContentStream(ctx, p.model, contents, cfg) {
		if err != nil {
			return classify(p.ID(), err)
		}
		if callback == nil {
			continue
		}
		if err := callback(resp.Text()); err != nil {
			return err
		}
	}
	return nil
}

func (p *GeminiProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	var result []ollama.ModelInfo
	for m, err := range p.client.Models.All(ctx) {
		if err != nil {
			return nil, classify(p.ID(), err)
		}
		name := strings.TrimPrefix(m.Name, "models/")
		if !strings.HasPrefix(name, "gemini") {
			continue
		}
		result = append(result, ollama.ModelInfo{
			Name:         name,
			InternalName: name,
			Provider:     p.ID(),
		})
	}
	return result, nil
}

func (p *GeminiProvider) GetModel() string {
	return p.model
}

func (p *GeminiProvider) GetDisplayName() string {
	return p.model
}

func (p *GeminiProvider) SetModel(modelName string) {
	p.model = modelName
}

// Ping fetches the active model's metadata.
func (p *GeminiProvider) Ping(ctx context.Context) error {
	_, err := p.client.Models.Get(ctx, p.model, nil)
	return classify(p.ID(), err)
}
