package agent

import (
	"context"
	"fmt"
	"sync"

	"a2ui/config"
	"a2ui/model"
	"a2ui/schema"
)

// Component ids used by the static agent.
const (
	NameInputID = "name-input"
	SubmitID    = "submit-btn"
	ResetID     = "reset-btn"
)

const defaultName = "Guest"

// StaticAgent needs no backend: it asks for a name, greets, and offers to
// start over.
type StaticAgent struct {
	mu   sync.Mutex
	name string
	set  bool
}

// NewStaticAgent returns an agent with no name stored.
func NewStaticAgent() *StaticAgent {
	return &StaticAgent{}
}

func (a *StaticAgent) Start(ctx context.Context) (schema.Turn, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return schema.Turn{UI: a.ui()}, nil
}

func (a *StaticAgent) HandleInteraction(ctx context.Context, in schema.Interaction) (schema.Turn, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if in.Action == schema.ActionClick {
		switch in.ComponentID {
		case SubmitID:
			a.name = in.Values[NameInputID]
			if a.name == "" {
				a.name = defaultName
			}
			a.set = true
		case ResetID:
			a.name = ""
			a.set = false
		}
	}

	if config.Debug && config.DebugLog != nil {
		config.DebugLog.Printf("[Agent] Static interaction %q (name set=%v)", in.ComponentID, a.set)
	}
	return schema.Turn{UI: a.ui()}, nil
}

// SetProvider is a no-op; the static agent never calls a backend.
func (a *StaticAgent) SetProvider(model.Provider) {}

// Messages is always empty.
func (a *StaticAgent) Messages() []model.Message { return nil }

func (a *StaticAgent) Busy() bool { return false }

func (a *StaticAgent) ui() schema.UISchema {
	if !a.set {
		return schema.New(
			schema.Text{Base: schema.Base{ID: "greeting"}, Content: "What is your name?"},
			schema.Input{Base: schema.Base{ID: NameInputID}, Placeholder: "Enter name"},
			schema.Button{Base: schema.Base{ID: SubmitID}, Label: "Submit", Action: "submit-name"},
		)
	}
	return schema.New(
		schema.Text{Base: schema.Base{ID: "response"}, Content: fmt.Sprintf("Hello, %s!", a.name)},
		schema.Button{Base: schema.Base{ID: ResetID}, Label: "Start Over", Action: "reset"},
	)
}

var (
	_ model.Agent = (*StaticAgent)(nil)
	_ model.Agent = (*LLMAgent)(nil)
)
