package model

import (
	"errors"
	"fmt"
	"testing"

	"a2ui/schema"
)

func TestErrorCodeAndHint(t *testing.T) {
	_, decodeErr := schema.DecodeUI("not json")
	_, invalidErr := schema.DecodeUI(`{"type":"ui","components":[{"type":"carousel","id":"c"}]}`)

	tests := []struct {
		name     string
		err      error
		wantCode string
		wantHint string
	}{
		{
			name:     "busy",
			err:      fmt.Errorf("start: %w", ErrBusy),
			wantCode: "busy",
			wantHint: "Wait for the current reply to finish.",
		},
		{
			name:     "ollama unreachable",
			err:      &BackendError{Kind: ErrUnreachable, Provider: "ollama"},
			wantCode: "backend_unreachable",
			wantHint: "Make sure Ollama is running: ollama serve",
		},
		{
			name:     "cloud unreachable",
			err:      &BackendError{Kind: ErrUnreachable, Provider: "openrouter"},
			wantCode: "backend_unreachable",
			wantHint: "Could not connect to OpenRouter. Check your network connection and the provider URL.",
		},
		{
			name:     "missing key",
			err:      NotConfigured("anthropic", "Anthropic API key is required"),
			wantCode: "provider_not_configured",
			wantHint: "Enter your Anthropic API key in settings.",
		},
		{
			name:     "disabled",
			err:      Disabled("ollama"),
			wantCode: "provider_not_configured",
			wantHint: "Ollama (Local) is not enabled. Pick another provider in settings.",
		},
		{
			name:     "bad key",
			err:      &BackendError{Kind: ErrRejected, Provider: "openai", Status: 401, Message: "Unauthorized"},
			wantCode: "backend_rejected",
			wantHint: "OpenAI rejected the API key. Update it in settings.",
		},
		{
			name:     "quota",
			err:      &BackendError{Kind: ErrRejected, Provider: "gemini", Status: 429},
			wantCode: "backend_rejected",
			wantHint: "Rate limited or out of quota. Wait a moment or switch provider.",
		},
		{
			name:     "other rejection",
			err:      &BackendError{Kind: ErrRejected, Provider: "gemini", Status: 400},
			wantCode: "backend_rejected",
			wantHint: "Check your provider settings and API key.",
		},
		{
			name:     "malformed reply",
			err:      decodeErr,
			wantCode: "malformed_response",
			wantHint: "The model did not reply with a valid UI. Try again or pick a stronger model.",
		},
		{
			name:     "invalid component",
			err:      invalidErr,
			wantCode: "validation_error",
			wantHint: "The model did not reply with a valid UI. Try again or pick a stronger model.",
		},
		{
			name:     "unknown",
			err:      errors.New("boom"),
			wantCode: "internal_error",
			wantHint: "Check your provider settings and API key.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.wantCode {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.wantCode)
			}
			if got := Hint(tt.err); got != tt.wantHint {
				t.Errorf("Hint() = %q, want %q", got, tt.wantHint)
			}
		})
	}
}

func TestBackendErrorMessage(t *testing.T) {
	tests := []struct {
		err  *BackendError
		want string
	}{
		{&BackendError{Provider: "openai", Status: 401, Message: "Unauthorized"}, "openai: Unauthorized (status 401)"},
		{&BackendError{Provider: "ollama", Message: "could not reach the backend"}, "ollama: could not reach the backend"},
		{&BackendError{Provider: "gemini", Err: errors.New("eof")}, "gemini: eof"},
		{&BackendError{Provider: "gemini", Kind: ErrUnreachable}, "gemini: backend_unreachable"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}

	inner := errors.New("root cause")
	if !errors.Is(&BackendError{Err: inner}, inner) {
		t.Error("BackendError must unwrap to its cause")
	}
}
