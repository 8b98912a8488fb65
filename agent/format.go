package agent

import (
	"fmt"
	"sort"
	"strings"

	"a2ui/schema"
)

// StartMessage opens every conversation.
const StartMessage = "Start the conversation."

// Component ids the dual-pane shell adds to interactions.
const (
	ChatbotSubmitID = "chatbot-submit"
	ChatbotInputID  = "chatbot-input"
	FreeformInputID = "freeform-input"
)

// FormatInteraction renders a click as the user message sent to the backend.
// Keys are sorted so the same interaction always produces the same text.
func FormatInteraction(in schema.Interaction) string {
	keys := make([]string, 0, len(in.Values))
	for k := range in.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s: %q", k, in.Values[k])
	}
	return fmt.Sprintf("User clicked button %q. Input values: {%s}", in.ComponentID, strings.Join(pairs, ", "))
}
