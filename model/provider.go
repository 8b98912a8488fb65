package model

import (
	"context"

	"a2ui/ollama"
)

// Provider abstracts the text backends (Ollama, OpenAI, Anthropic, Gemini,
// HuggingFace, OpenRouter).
//
// This interface is defined in the model package (not provider package) to avoid
// import cycles: provider implementations import model, and the agent and UI
// use Provider without importing the provider package.
type Provider interface {
	// Chat sends the whole log and streams the reply back via callback.
	// Failures are returned as *BackendError.
	Chat(ctx context.Context, messages []Message, callback StreamCallback) error

	// ListModels returns available models for this provider.
	ListModels(ctx context.Context) ([]ollama.ModelInfo, error)

	// GetModel returns the model name used for API calls.
	GetModel() string

	// GetDisplayName returns the model name formatted for UI display.
	// For OpenRouter this strips the vendor prefix.
	GetDisplayName() string

	SetModel(model string)

	// Ping checks if the provider is reachable and the credentials work.
	Ping(ctx context.Context) error
}

// StreamCallback is called for each chunk of streamed response.
type StreamCallback func(chunk string) error

// Named is implemented by providers that know their catalog id.
type Named interface {
	ID() string
}
