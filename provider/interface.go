// Package provider implements model.Provider for every supported backend.
//
// All backends take the agent's whole message log and stream plain text back.
// Ollama and Gemini are additionally asked to constrain replies to JSON; the
// rest rely on the system prompt. Every failure leaving a provider is a
// *model.BackendError so that callers can pick a hint without knowing which
// SDK produced it.
//
// # Usage
//
//	p, err := provider.NewProvider(provider.Config{
//	    Type:   provider.ProviderTypeGemini,
//	    APIKey: key,
//	    Model:  "gemini-2.0-flash",
//	})
//	if err != nil {
//	    // handle error
//	}
//	err = p.Chat(ctx, messages, callback)
package provider

// Note: The Provider interface and StreamCallback are defined in the model package
// (model/provider.go) to avoid import cycles. This package implements model.Provider.

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeOllama      ProviderType = "ollama"
	ProviderTypeOpenAI      ProviderType = "openai"
	ProviderTypeAnthropic   ProviderType = "anthropic"
	ProviderTypeGemini      ProviderType = "gemini"
	ProviderTypeHuggingFace ProviderType = "huggingface"
	ProviderTypeOpenRouter  ProviderType = "openrouter"
)

// Config holds provider-specific configuration.
type Config struct {
	Type    ProviderType
	BaseURL string
	Model   string
	APIKey  string // unused for Ollama
	// MaxTokens caps the reply length; 0 leaves the backend default.
	MaxTokens int64
}
