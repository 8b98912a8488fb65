// Package renderer holds the live widget state for a rendered UISchema.
//
// A Surface is an explicit in-memory store: one Element per component, in
// schema order. Every Render is a full rebuild. User edits go through the
// Surface's edit methods, which update element state and notify the optional
// value observer; only Click emits an Interaction. Front ends (the terminal
// form view, the websocket shell) are projections of this store and never
// hold widget state of their own.
//
// A Surface is not safe for concurrent use.
package renderer

import (
	"fmt"

	"a2ui/schema"
)

// InteractionHandler receives the interaction produced by a button click.
type InteractionHandler func(schema.Interaction)

// ValueObserver receives the full value map after every user edit.
type ValueObserver func(schema.ValueMap)

// Surface is the widget-state store for the most recently rendered schema.
type Surface struct {
	current  schema.UISchema
	elements []*Element

	onInteraction InteractionHandler
	onValueChange ValueObserver
}

// New creates an empty surface.
func New() *Surface {
	return &Surface{}
}

// OnInteraction registers the click handler.
func (s *Surface) OnInteraction(h InteractionHandler) { s.onInteraction = h }

// OnValueChange registers the edit observer.
func (s *Surface) OnValueChange(o ValueObserver) { s.onValueChange = o }

// Render discards all prior state and builds one element per component.
func (s *Surface) Render(ui schema.UISchema) {
	elements := make([]*Element, 0, len(ui.Components))
	components := make([]schema.Component, 0, len(ui.Components))
	for _, c := range ui.Components {
		c = schema.Deref(c)
		components = append(components, c)
		elements = append(elements, builders[c.Kind()](c))
	}
	s.current = schema.UISchema{Components: components}
	s.elements = elements
}

// Clear removes every element.
func (s *Surface) Clear() {
	s.current = schema.UISchema{}
	s.elements = nil
}

// Schema returns the schema last passed to Render.
func (s *Surface) Schema() schema.UISchema { return s.current }

// Len returns the number of rendered elements.
func (s *Surface) Len() int { return len(s.elements) }

// Elements returns a snapshot of every element in render order.
func (s *Surface) Elements() []Element {
	out := make([]Element, len(s.elements))
	for i, e := range s.elements {
		out[i] = e.clone()
	}
	return out
}

// Element returns a snapshot of the first element with the given id.
func (s *Surface) Element(id string) (Element, bool) {
	e := s.find(id)
	if e == nil {
		return Element{}, false
	}
	return e.clone(), true
}

// Values flattens every interactive element into a value map. It has no side
// effects. Buttons and display-only components contribute nothing.
func (s *Surface) Values() schema.ValueMap {
	values := schema.ValueMap{}
	for _, e := range s.elements {
		e.collect(values)
	}
	return values
}

// SetValues overwrites the state of every interactive element whose id appears
// in values. Elements not named in values are untouched. Observers are not
// notified: SetValues is how external state is pushed in, not a user edit.
func (s *Surface) SetValues(values schema.ValueMap) {
	for _, e := range s.elements {
		if !e.Kind().Interactive() {
			continue
		}
		if v, ok := values[e.ID()]; ok {
			e.apply(v)
		}
	}
}

// Click snapshots the current values and emits an interaction for the button.
func (s *Surface) Click(buttonID string) (schema.Interaction, error) {
	e := s.find(buttonID)
	if e == nil {
		return schema.Interaction{}, fmt.Errorf("no component with id %q", buttonID)
	}
	if e.Kind() != schema.KindButton {
		return schema.Interaction{}, fmt.Errorf("component %q is a %s, not a button", buttonID, e.Kind())
	}

	interaction := schema.NewInteraction(buttonID, s.Values())
	if s.onInteraction != nil {
		s.onInteraction(interaction)
	}
	return interaction, nil
}

// FirstButton returns the id of the first rendered button.
func (s *Surface) FirstButton() (string, bool) {
	for _, e := range s.elements {
		if e.Kind() == schema.KindButton {
			return e.ID(), true
		}
	}
	return "", false
}

// Submit is the Enter-key shortcut on a single-line input: it clicks the
// first button on the surface. Textareas have no shortcut so that Enter can
// insert a newline. ok is false when nothing was clicked.
func (s *Surface) Submit(inputID string) (interaction schema.Interaction, ok bool, err error) {
	e := s.find(inputID)
	if e == nil {
		return schema.Interaction{}, false, fmt.Errorf("no component with id %q", inputID)
	}
	if e.Kind() != schema.KindInput {
		return schema.Interaction{}, false, nil
	}
	button, found := s.FirstButton()
	if !found {
		return schema.Interaction{}, false, nil
	}
	interaction, err = s.Click(button)
	return interaction, err == nil, err
}

func (s *Surface) find(id string) *Element {
	for _, e := range s.elements {
		if e.ID() == id {
			return e
		}
	}
	return nil
}

func (s *Surface) changed() {
	if s.onValueChange != nil {
		s.onValueChange(s.Values())
	}
}
