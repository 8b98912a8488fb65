package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	TypeUI          = "ui"
	TypeInteraction = "interaction"

	// ActionClick is the only interaction action.
	ActionClick = "click"
)

// ValueMap is the flattened state of every interactive component, keyed by
// component id (the group name for radio and checkbox components).
type ValueMap map[string]string

// Clone returns an independent copy.
func (v ValueMap) Clone() ValueMap {
	out := make(ValueMap, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// UISchema is one agent-produced screen. It is treated as an immutable value.
type UISchema struct {
	Components []Component
}

// New builds a UISchema from components in render order.
func New(components ...Component) UISchema {
	return UISchema{Components: components}
}

// Find returns the component with the given id.
func (s UISchema) Find(id string) (Component, bool) {
	for _, c := range s.Components {
		if c.ComponentID() == id {
			return c, true
		}
	}
	return nil, false
}

type wireSchema struct {
	Type       string            `json:"type"`
	Components []json.RawMessage `json:"components"`
}

// MarshalJSON writes {"type":"ui","components":[...]} with a "type" field on
// every component.
func (s UISchema) MarshalJSON() ([]byte, error) {
	out := wireSchema{Type: TypeUI, Components: make([]json.RawMessage, 0, len(s.Components))}
	for i, c := range s.Components {
		raw, err := MarshalComponent(c)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		out.Components = append(out.Components, raw)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a UISchema without schema validation; use Decode for
// untrusted input.
func (s *UISchema) UnmarshalJSON(data []byte) error {
	var in wireSchema
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Type != TypeUI {
		return fmt.Errorf("expected type %q, got %q", TypeUI, in.Type)
	}
	components := make([]Component, 0, len(in.Components))
	for i, raw := range in.Components {
		c, err := UnmarshalComponent(raw)
		if err != nil {
			return fmt.Errorf("component %d: %w", i, err)
		}
		components = append(components, c)
	}
	s.Components = components
	return nil
}

// MarshalComponent encodes a single component with its "type" discriminator.
func MarshalComponent(c Component) (json.RawMessage, error) {
	body, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	tag, err := json.Marshal(string(c.Kind()))
	if err != nil {
		return nil, err
	}
	// body always starts with {"id": so splicing after the brace is safe
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	buf.Write(tag)
	buf.WriteByte(',')
	buf.Write(body[1:])
	return buf.Bytes(), nil
}

// UnmarshalComponent decodes a single component by its "type" discriminator.
func UnmarshalComponent(raw []byte) (Component, error) {
	var head struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	c, ok := newComponent(head.Type)
	if !ok {
		return nil, fmt.Errorf("unknown component type %q", head.Type)
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("%s: %w", head.Type, err)
	}
	return Deref(c), nil
}

// Interaction is emitted by a button click and consumed once by the agent.
type Interaction struct {
	Type        string   `json:"type"`
	ComponentID string   `json:"componentId"`
	Action      string   `json:"action"`
	Values      ValueMap `json:"values"`
}

// NewInteraction builds a click interaction for the given button.
func NewInteraction(componentID string, values ValueMap) Interaction {
	if values == nil {
		values = ValueMap{}
	}
	return Interaction{
		Type:        TypeInteraction,
		ComponentID: componentID,
		Action:      ActionClick,
		Values:      values,
	}
}

// Turn is one agent reply. Text is empty for agents that only produce UI.
type Turn struct {
	Text string   `json:"text,omitempty"`
	UI   UISchema `json:"ui"`
}
