// Package agent drives the conversation between the rendered UI and a chat
// backend.
package agent

import (
	"context"
	"strings"
	"sync"
	"time"

	"a2ui/config"
	"a2ui/model"
	"a2ui/schema"
)

// Mode selects the reply format the backend is asked for.
type Mode int

const (
	// UIOnly replies are a bare UI schema.
	UIOnly Mode = iota
	// Dual replies carry chatbot text alongside the UI schema.
	Dual
)

func (m Mode) String() string {
	if m == Dual {
		return "dual"
	}
	return "ui-only"
}

// LLMAgent owns an append-only message log seeded with one system message.
// One backend call runs at a time; a second one fails with model.ErrBusy.
type LLMAgent struct {
	mu       sync.Mutex
	provider model.Provider
	mode     Mode
	messages []model.Message
	busy     bool
}

// NewLLMAgent seeds the log with the system prompt for mode. A non-empty
// systemPrompt replaces the built-in one.
func NewLLMAgent(p model.Provider, mode Mode, systemPrompt string) *LLMAgent {
	if systemPrompt == "" {
		systemPrompt = UIOnlyPrompt
		if mode == Dual {
			systemPrompt = DualPrompt
		}
	}
	return &LLMAgent{
		provider: p,
		mode:     mode,
		messages: []model.Message{{Role: model.RoleSystem, Content: systemPrompt, Timestamp: time.Now()}},
	}
}

// Mode reports the reply format.
func (a *LLMAgent) Mode() Mode { return a.mode }

// Start asks the backend for the opening UI.
func (a *LLMAgent) Start(ctx context.Context) (schema.Turn, error) {
	return a.turn(ctx, StartMessage)
}

// HandleInteraction reports a click to the backend and decodes the next UI.
func (a *LLMAgent) HandleInteraction(ctx context.Context, in schema.Interaction) (schema.Turn, error) {
	return a.turn(ctx, FormatInteraction(in))
}

// SetProvider swaps the backend. The log is kept.
func (a *LLMAgent) SetProvider(p model.Provider) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.provider = p
}

// Messages returns a copy of the log.
func (a *LLMAgent) Messages() []model.Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.Message, len(a.messages))
	copy(out, a.messages)
	return out
}

// Busy reports whether a backend call is outstanding.
func (a *LLMAgent) Busy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.busy
}

func (a *LLMAgent) turn(ctx context.Context, userContent string) (schema.Turn, error) {
	a.mu.Lock()
	if a.busy {
		a.mu.Unlock()
		return schema.Turn{}, model.ErrBusy
	}
	if a.provider == nil {
		a.mu.Unlock()
		return schema.Turn{}, model.NotConfigured("", "no provider configured")
	}
	a.busy = true
	a.messages = append(a.messages, model.Message{Role: model.RoleUser, Content: userContent, Timestamp: time.Now()})
	p := a.provider
	sent := make([]model.Message, len(a.messages))
	copy(sent, a.messages)
	a.mu.Unlock()

	if config.Debug && config.DebugLog != nil {
		config.DebugLog.Printf("[Agent] Sending %d messages to %s (mode=%s)", len(sent), p.GetDisplayName(), a.mode)
	}

	var reply strings.Builder
	err := p.Chat(ctx, sent, func(chunk string) error {
		reply.WriteString(chunk)
		return nil
	})

	a.mu.Lock()
	a.busy = false
	if err == nil {
		a.messages = append(a.messages, model.Message{Role: model.RoleAssistant, Content: reply.String(), Timestamp: time.Now()})
	}
	a.mu.Unlock()

	if err != nil {
		if config.Debug && config.DebugLog != nil {
			config.DebugLog.Printf("[Agent] Backend call failed: %v", err)
		}
		return schema.Turn{}, err
	}

	turn, err := a.decode(reply.String())
	if err != nil {
		if config.Debug && config.DebugLog != nil {
			config.DebugLog.Printf("[Agent] Reply rejected: %v\nRaw reply: %s", err, reply.String())
		}
		return schema.Turn{}, err
	}

	if config.Debug && config.DebugLog != nil {
		config.DebugLog.Printf("[Agent] Decoded %d components", len(turn.UI.Components))
	}
	return turn, nil
}

func (a *LLMAgent) decode(raw string) (schema.Turn, error) {
	if a.mode == Dual {
		return schema.DecodeTurn(raw)
	}
	ui, err := schema.DecodeUI(raw)
	if err != nil {
		return schema.Turn{}, err
	}
	return schema.Turn{UI: ui}, nil
}
