package provider

import (
	"errors"
	"fmt"
	"testing"

	"a2ui/config"
	"a2ui/model"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantType    string
		expectError bool
	}{
		{
			name:     "ollama provider with defaults",
			config:   Config{Type: ProviderTypeOllama},
			wantType: "*provider.OllamaProvider",
		},
		{
			name:     "openai provider",
			config:   Config{Type: ProviderTypeOpenAI, Model: "gpt-4o-mini", APIKey: "test-key"},
			wantType: "*provider.OpenAIProvider",
		},
		{
			name:     "anthropic provider",
			config:   Config{Type: ProviderTypeAnthropic, APIKey: "test-key"},
			wantType: "*provider.AnthropicProvider",
		},
		{
			name:     "gemini provider",
			config:   Config{Type: ProviderTypeGemini, APIKey: "test-key"},
			wantType: "*provider.GeminiProvider",
		},
		{
			name:     "huggingface provider",
			config:   Config{Type: ProviderTypeHuggingFace, APIKey: "hf_test"},
			wantType: "*provider.OpenAIProvider",
		},
		{
			name:     "openrouter provider",
			config:   Config{Type: ProviderTypeOpenRouter, APIKey: "sk-or"},
			wantType: "*provider.OpenRouterProvider",
		},
		{
			name:        "openai without key",
			config:      Config{Type: ProviderTypeOpenAI},
			expectError: true,
		},
		{
			name:        "gemini without key",
			config:      Config{Type: ProviderTypeGemini},
			expectError: true,
		},
		{
			name:        "anthropic without key",
			config:      Config{Type: ProviderTypeAnthropic},
			expectError: true,
		},
		{
			name:        "huggingface without key",
			config:      Config{Type: ProviderTypeHuggingFace},
			expectError: true,
		},
		{
			name:        "openrouter without key",
			config:      Config{Type: ProviderTypeOpenRouter},
			expectError: true,
		},
		{
			name:        "unknown provider type",
			config:      Config{Type: ProviderType("unknown")},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if p != nil {
					t.Errorf("expected nil provider, got %T", p)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := fmt.Sprintf("%T", p); got != tt.wantType {
				t.Errorf("type = %s, want %s", got, tt.wantType)
			}
		})
	}
}

func TestNewProviderDefaults(t *testing.T) {
	tests := []struct {
		providerType ProviderType
		wantModel    string
		wantDisplay  string
	}{
		{ProviderTypeOllama, "llama3.1:8b", "llama3.1:8b"},
		{ProviderTypeOpenAI, "gpt-4o-mini", "gpt-4o-mini"},
		{ProviderTypeAnthropic, "claude-sonnet-4-20250514", "claude-sonnet-4-20250514"},
		{ProviderTypeGemini, "gemini-2.0-flash", "gemini-2.0-flash"},
		{ProviderTypeHuggingFace, "meta-llama/Llama-3.1-8B-Instruct", "meta-llama/Llama-3.1-8B-Instruct"},
		{ProviderTypeOpenRouter, "openai/gpt-4o-mini", "gpt-4o-mini"},
	}

	for _, tt := range tests {
		t.Run(string(tt.providerType), func(t *testing.T) {
			p, err := NewProvider(Config{Type: tt.providerType, APIKey: "k"})
			if err != nil {
				t.Fatalf("NewProvider: %v", err)
			}
			if p.GetModel() != tt.wantModel {
				t.Errorf("GetModel() = %q, want %q", p.GetModel(), tt.wantModel)
			}
			if p.GetDisplayName() != tt.wantDisplay {
				t.Errorf("GetDisplayName() = %q, want %q", p.GetDisplayName(), tt.wantDisplay)
			}
			if named, ok := p.(model.Named); !ok || named.ID() != string(tt.providerType) {
				t.Errorf("provider does not report id %q", tt.providerType)
			}
		})
	}
}

func TestCandidate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.Config
		provider string
		apiKey   string
		wantKind model.ErrorKind
		wantErr  bool
	}{
		{name: "ollama needs no key", cfg: &config.Config{}, provider: "ollama"},
		{name: "cloud with key", cfg: &config.Config{}, provider: "openrouter", apiKey: "sk-or"},
		{name: "cloud without key", cfg: &config.Config{}, provider: "anthropic", wantKind: model.ErrNotConfigured, wantErr: true},
		{name: "ollama hidden in production", cfg: &config.Config{Production: true}, provider: "ollama", wantKind: model.ErrNotConfigured, wantErr: true},
		{name: "disabled provider", cfg: &config.Config{Enabled: map[string]bool{"openai": true}}, provider: "gemini", apiKey: "k", wantKind: model.ErrNotConfigured, wantErr: true},
		{name: "unknown provider", cfg: &config.Config{}, provider: "nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Candidate(tt.cfg, tt.provider, tt.apiKey, "")
			if !tt.wantErr {
				if err != nil || p == nil {
					t.Fatalf("Candidate() = %v, %v", p, err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantKind == "" {
				return
			}
			var be *model.BackendError
			if !errors.As(err, &be) || be.Kind != tt.wantKind {
				t.Errorf("error = %v, want kind %s", err, tt.wantKind)
			}
		})
	}
}

func TestFromSettingsUsesStoredChoice(t *testing.T) {
	cfg := &config.Config{MaxTokens: map[string]int64{"openrouter": 500}}
	s := config.DefaultProviderSettings(cfg)
	s.ProviderID = "openrouter"
	s.Model = "anthropic/claude-3.5-sonnet"
	s.SetAPIKey("openrouter", "sk-or")

	p, err := FromSettings(cfg, s)
	if err != nil {
		t.Fatalf("FromSettings: %v", err)
	}
	or, ok := p.(*OpenRouterProvider)
	if !ok {
		t.Fatalf("got %T, want *OpenRouterProvider", p)
	}
	if or.GetModel() != "anthropic/claude-3.5-sonnet" || or.maxTokens != 500 {
		t.Errorf("model=%q maxTokens=%d", or.GetModel(), or.maxTokens)
	}
}
