package provider_test

import (
	"context"
	"strings"
	"testing"

	"a2ui/model"
	"a2ui/provider"
	"a2ui/provider/testutil"
)

var (
	_ model.Provider = (*provider.OllamaProvider)(nil)
	_ model.Provider = (*provider.OpenAIProvider)(nil)
	_ model.Provider = (*provider.AnthropicProvider)(nil)
	_ model.Provider = (*provider.GeminiProvider)(nil)
	_ model.Provider = (*provider.OpenRouterProvider)(nil)
	_ model.Named    = (*provider.OpenAIProvider)(nil)
)

// TestProviderContract defines the behaviour every provider must satisfy.
// Live backends are exercised through httptest servers in their own tests.
func TestProviderContract(t *testing.T) {
	tests := []struct {
		name     string
		provider model.Provider
	}{
		{"Mock", testutil.NewMockProvider("test-model")},
		{"Replying", testutil.NewReplyingProvider(testutil.UIReply)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Run("BasicChat", func(t *testing.T) {
				var b strings.Builder
				err := tt.provider.Chat(context.Background(), testutil.TestMessages(), func(chunk string) error {
					b.WriteString(chunk)
					return nil
				})
				if err != nil {
					t.Fatalf("Chat failed: %v", err)
				}
				if b.Len() == 0 {
					t.Error("expected streamed content")
				}
			})
			t.Run("ModelManagement", func(t *testing.T) {
				tt.provider.SetModel("other-model")
				if got := tt.provider.GetModel(); got != "other-model" {
					t.Errorf("GetModel() = %q after SetModel", got)
				}
				if tt.provider.GetDisplayName() == "" {
					t.Error("GetDisplayName() is empty")
				}
				models, err := tt.provider.ListModels(context.Background())
				if err != nil || len(models) == 0 {
					t.Errorf("ListModels() = %v, %v", models, err)
				}
			})
			t.Run("HealthCheck", func(t *testing.T) {
				if err := tt.provider.Ping(context.Background()); err != nil {
					t.Errorf("Ping failed: %v", err)
				}
			})
		})
	}
}

func TestReplyingProviderStreamsWholeReply(t *testing.T) {
	p := testutil.NewReplyingProvider("first", "second")

	collect := func() string {
		var b strings.Builder
		_ = p.Chat(context.Background(), testutil.SingleUserMessage("hi"), func(c string) error {
			b.WriteString(c)
			return nil
		})
		return b.String()
	}

	for i, want := range []string{"first", "second", "second"} {
		if got := collect(); got != want {
			t.Errorf("call %d = %q, want %q", i, got, want)
		}
	}
	if len(p.Calls()) != 3 {
		t.Errorf("recorded %d calls, want 3", len(p.Calls()))
	}
}
