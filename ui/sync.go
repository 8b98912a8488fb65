package ui

import (
	"strings"

	"a2ui/agent"
	"a2ui/renderer"
	"a2ui/schema"
)

// formSync mirrors the form and the chatbot input into each other. The
// guard drops writes that arrive while a sync is already running, so a form
// update triggered by the chatbot never echoes back into the chatbot.
type formSync struct {
	inProgress bool
	// edited holds the values from the last user edit until the app picks
	// them up.
	edited schema.ValueMap
}

// observe is the surface's value observer.
func (s *formSync) observe(values schema.ValueMap) {
	s.edited = values
}

// takeEdited returns and clears the pending edit.
func (s *formSync) takeEdited() (schema.ValueMap, bool) {
	v := s.edited
	s.edited = nil
	return v, v != nil
}

// formToChat joins the non-empty form values in render order. ok is false
// when every value is empty or a sync is already running.
func (s *formSync) formToChat(surface *renderer.Surface, values schema.ValueMap) (text string, ok bool) {
	if s.inProgress {
		return "", false
	}
	s.inProgress = true
	defer func() { s.inProgress = false }()

	var parts []string
	seen := map[string]bool{}
	for _, el := range surface.Elements() {
		id := el.ID()
		if seen[id] {
			continue
		}
		seen[id] = true
		if v := values[id]; v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, ", "), true
}

// chatToForm writes text into every interactive field. Blank text is ignored.
func (s *formSync) chatToForm(surface *renderer.Surface, text string) bool {
	text = strings.TrimSpace(text)
	if s.inProgress || text == "" {
		return false
	}
	s.inProgress = true
	defer func() { s.inProgress = false }()

	current := surface.Values()
	next := make(schema.ValueMap, len(current))
	for id := range current {
		next[id] = text
	}
	surface.SetValues(next)
	return true
}

// withFreeform attaches the free-form note to a form click.
func withFreeform(in schema.Interaction, note string) schema.Interaction {
	note = strings.TrimSpace(note)
	if note == "" {
		return in
	}
	values := in.Values.Clone()
	values[agent.FreeformInputID] = note
	in.Values = values
	return in
}

// chatbotInteraction is sent when the chatbot input is submitted: the form
// values plus the chatbot text.
func chatbotInteraction(surface *renderer.Surface, text string) schema.Interaction {
	values := surface.Values()
	values[agent.ChatbotInputID] = strings.TrimSpace(text)
	return schema.NewInteraction(agent.ChatbotSubmitID, values)
}
