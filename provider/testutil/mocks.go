package testutil

import (
	"context"
	"sync"

	"a2ui/model"
	"a2ui/ollama"
)

// MockProvider implements model.Provider for testing
type MockProvider struct {
	// Configurable responses
	ChatFunc       func(ctx context.Context, messages []model.Message, callback model.StreamCallback) error
	ListModelsFunc func(ctx context.Context) ([]ollama.ModelInfo, error)
	PingFunc       func(ctx context.Context) error

	mu           sync.Mutex
	currentModel string
	calls        [][]model.Message
}

// NewMockProvider creates a mock provider that answers every Chat with
// "Mock response".
func NewMockProvider(modelName string) *MockProvider {
	mock := &MockProvider{currentModel: modelName}
	mock.ChatFunc = func(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
		if len(messages) > 0 && callback != nil {
			return callback("Mock response")
		}
		return nil
	}
	mock.ListModelsFunc = func(ctx context.Context) ([]ollama.ModelInfo, error) {
		return []ollama.ModelInfo{
			{Name: "mock-model-1", Size: 1000, Provider: "mock", InternalName: "mock-model-1"},
			{Name: "mock-model-2", Size: 2000, Provider: "mock", InternalName: "mock-model-2"},
		}, nil
	}
	mock.PingFunc = func(ctx context.Context) error { return nil }
	return mock
}

// NewReplyingProvider answers each Chat with the next reply, streamed in two
// chunks. After the last reply it keeps repeating it.
func NewReplyingProvider(replies ...string) *MockProvider {
	mock := NewMockProvider("mock-model")
	var mu sync.Mutex
	next := 0
	mock.ChatFunc = func(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
		mu.Lock()
		reply := replies[len(replies)-1]
		if next < len(replies) {
			reply = replies[next]
			next++
		}
		mu.Unlock()

		half := len(reply) / 2
		if err := callback(reply[:half]); err != nil {
			return err
		}
		return callback(reply[half:])
	}
	return mock
}

// NewFailingProvider returns err from every Chat and Ping.
func NewFailingProvider(err error) *MockProvider {
	mock := NewMockProvider("mock-model")
	mock.ChatFunc = func(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
		return err
	}
	mock.PingFunc = func(ctx context.Context) error { return err }
	return mock
}

func (m *MockProvider) Chat(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
	m.mu.Lock()
	sent := make([]model.Message, len(messages))
	copy(sent, messages)
	m.calls = append(m.calls, sent)
	m.mu.Unlock()

	return m.ChatFunc(ctx, messages, callback)
}

// Calls returns the message slices passed to Chat, in order.
func (m *MockProvider) Calls() [][]model.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]model.Message, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	return m.ListModelsFunc(ctx)
}

func (m *MockProvider) GetModel() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentModel
}

// GetDisplayName returns the same value as GetModel
func (m *MockProvider) GetDisplayName() string {
	return m.GetModel()
}

func (m *MockProvider) SetModel(modelName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentModel = modelName
}

func (m *MockProvider) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}
