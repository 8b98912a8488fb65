package config

const (
	ProviderOllama      = "ollama"
	ProviderOpenAI      = "openai"
	ProviderAnthropic   = "anthropic"
	ProviderGemini      = "gemini"
	ProviderHuggingFace = "huggingface"
	ProviderOpenRouter  = "openrouter"
)

// ProviderInfo is the static catalog entry for one backend.
type ProviderInfo struct {
	ID             string
	Name           string
	RequiresAPIKey bool
	DefaultModel   string
	Models         []string
	BaseURL        string
	MaxTokens      int64
	// DevOnly providers are hidden when running in production mode.
	DevOnly bool
	// Note is shown next to the provider in pickers.
	Note string
}

// Local reports whether the provider runs on the user's machine.
func (p ProviderInfo) Local() bool {
	return !p.RequiresAPIKey
}

// Providers is the catalog in display order: local first, then cloud.
var Providers = []ProviderInfo{
	{
		ID:           ProviderOllama,
		Name:         "Ollama (Local)",
		DefaultModel: "llama3.1:8b",
		Models:       []string{"llama3.1:8b", "llama3.2", "mistral", "codellama"},
		BaseURL:      "http://localhost:11434",
		DevOnly:      true,
	},
	{
		ID:             ProviderOpenAI,
		Name:           "OpenAI",
		RequiresAPIKey: true,
		DefaultModel:   "gpt-4o-mini",
		Models:         []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo", "gpt-3.5-turbo"},
		BaseURL:        "https://api.openai.com/v1",
	},
	{
		ID:             ProviderAnthropic,
		Name:           "Anthropic",
		RequiresAPIKey: true,
		DefaultModel:   "claude-sonnet-4-20250514",
		Models:         []string{"claude-sonnet-4-20250514", "claude-opus-4-20250514", "claude-3-5-haiku-20241022"},
		BaseURL:        "https://api.anthropic.com",
		MaxTokens:      4096,
	},
	{
		ID:             ProviderGemini,
		Name:           "Google Gemini",
		RequiresAPIKey: true,
		DefaultModel:   "gemini-2.0-flash",
		Models:         []string{"gemini-2.0-flash", "gemini-2.0-flash-lite", "gemini-1.5-flash-8b"},
	},
	{
		ID:             ProviderHuggingFace,
		Name:           "HuggingFace",
		RequiresAPIKey: true,
		DefaultModel:   "meta-llama/Llama-3.1-8B-Instruct",
		Models: []string{
			"meta-llama/Llama-3.1-8B-Instruct",
			"mistralai/Mistral-7B-Instruct-v0.3",
			"microsoft/Phi-3-mini-4k-instruct",
		},
		BaseURL:   "https://router.huggingface.co/v1",
		MaxTokens: 2048,
		Note:      "serverless inference, cold starts are slow",
	},
	{
		ID:             ProviderOpenRouter,
		Name:           "OpenRouter",
		RequiresAPIKey: true,
		DefaultModel:   "openai/gpt-4o-mini",
		Models: []string{
			"openai/gpt-4o-mini",
			"anthropic/claude-3.5-sonnet",
			"google/gemini-2.0-flash-001",
			"meta-llama/llama-3.3-70b-instruct",
		},
		BaseURL:   "https://openrouter.ai/api/v1",
		MaxTokens: 1024,
	},
}

// GetProviderInfo looks up a catalog entry by id.
func GetProviderInfo(id string) (ProviderInfo, bool) {
	for _, p := range Providers {
		if p.ID == id {
			return p, true
		}
	}
	return ProviderInfo{}, false
}

// IsProviderEnabled reports whether the environment switched the provider on.
func (c *Config) IsProviderEnabled(id string) bool {
	if c.Enabled == nil {
		_, ok := GetProviderInfo(id)
		return ok
	}
	return c.Enabled[id]
}

// AvailableProviders returns the enabled catalog entries, dropping dev-only
// providers in production.
func (c *Config) AvailableProviders() []ProviderInfo {
	var out []ProviderInfo
	for _, p := range Providers {
		if !c.IsProviderEnabled(p.ID) {
			continue
		}
		if p.DevOnly && c.Production {
			continue
		}
		out = append(out, p)
	}
	return out
}

// IsProviderAvailable reports whether id is in AvailableProviders.
func (c *Config) IsProviderAvailable(id string) bool {
	for _, p := range c.AvailableProviders() {
		if p.ID == id {
			return true
		}
	}
	return false
}
