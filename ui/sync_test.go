package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a2ui/agent"
	"a2ui/renderer"
	"a2ui/schema"
)

func syncSurface() *renderer.Surface {
	surface := renderer.New()
	surface.Render(schema.New(
		schema.Input{Base: schema.Base{ID: "first"}},
		schema.Input{Base: schema.Base{ID: "last"}},
		schema.Button{Base: schema.Base{ID: "go"}, Label: "Go"},
	))
	return surface
}

func TestFormToChatJoinsInRenderOrder(t *testing.T) {
	surface := syncSurface()
	s := &formSync{}

	text, ok := s.formToChat(surface, schema.ValueMap{"last": "Lovelace", "first": "Ada"})
	require.True(t, ok)
	assert.Equal(t, "Ada, Lovelace", text)

	_, ok = s.formToChat(surface, schema.ValueMap{"first": "", "last": ""})
	assert.False(t, ok, "all-empty values leave the chatbot input alone")
}

func TestChatToFormFillsEveryField(t *testing.T) {
	surface := syncSurface()
	s := &formSync{}
	surface.OnValueChange(s.observe)

	require.True(t, s.chatToForm(surface, "  hello "))
	assert.Equal(t, schema.ValueMap{"first": "hello", "last": "hello"}, surface.Values())

	_, edited := s.takeEdited()
	assert.False(t, edited, "programmatic writes do not count as edits")

	assert.False(t, s.chatToForm(surface, "   "))
}

func TestSyncGuardStopsEcho(t *testing.T) {
	surface := syncSurface()
	s := &formSync{inProgress: true}

	assert.False(t, s.chatToForm(surface, "x"))
	_, ok := s.formToChat(surface, schema.ValueMap{"first": "x"})
	assert.False(t, ok)
	assert.Equal(t, "", surface.Values()["first"])
}

func TestObserveRecordsUserEdits(t *testing.T) {
	surface := syncSurface()
	s := &formSync{}
	surface.OnValueChange(s.observe)

	require.NoError(t, surface.SetText("first", "Ada"))
	values, ok := s.takeEdited()
	require.True(t, ok)
	assert.Equal(t, "Ada", values["first"])

	_, ok = s.takeEdited()
	assert.False(t, ok)
}

func TestWithFreeform(t *testing.T) {
	in := schema.NewInteraction("go", schema.ValueMap{"first": "Ada"})

	assert.Equal(t, in, withFreeform(in, "  "))

	out := withFreeform(in, " also vegan ")
	assert.Equal(t, "also vegan", out.Values[agent.FreeformInputID])
	assert.NotContains(t, in.Values, agent.FreeformInputID, "original values are not modified")
}

func TestChatbotInteraction(t *testing.T) {
	surface := syncSurface()
	require.NoError(t, surface.SetText("first", "Ada"))

	in := chatbotInteraction(surface, " two tickets ")
	assert.Equal(t, agent.ChatbotSubmitID, in.ComponentID)
	assert.Equal(t, schema.ActionClick, in.Action)
	assert.Equal(t, "two tickets", in.Values[agent.ChatbotInputID])
	assert.Equal(t, "Ada", in.Values["first"])
}
