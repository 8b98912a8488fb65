package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"a2ui/schema"
)

func TestFormatInteraction(t *testing.T) {
	tests := []struct {
		name string
		in   schema.Interaction
		want string
	}{
		{
			name: "no values",
			in:   schema.NewInteraction("go", nil),
			want: `User clicked button "go". Input values: {}`,
		},
		{
			name: "sorted keys",
			in:   schema.NewInteraction("submit", schema.ValueMap{"b": "2", "a": "1"}),
			want: `User clicked button "submit". Input values: {a: "1", b: "2"}`,
		},
		{
			name: "chatbot submit",
			in: schema.NewInteraction(ChatbotSubmitID, schema.ValueMap{
				ChatbotInputID: "hi there",
				"name":         "Ada",
			}),
			want: `User clicked button "chatbot-submit". Input values: {chatbot-input: "hi there", name: "Ada"}`,
		},
		{
			name: "quotes are escaped",
			in:   schema.NewInteraction("go", schema.ValueMap{"q": `say "hi"`}),
			want: `User clicked button "go". Input values: {q: "say \"hi\""}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatInteraction(tt.in))
		})
	}
}
