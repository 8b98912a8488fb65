package mcp

import (
	"context"
	"strings"
	"testing"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

func call(t *testing.T, handler func(context.Context, mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	req := mcptypes.CallToolRequest{}
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if len(res.Content) != 1 {
		t.Fatalf("expected one content item, got %d", len(res.Content))
	}
	text, ok := res.Content[0].(mcptypes.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return text.Text, res.IsError
}

const nameForm = `{"type":"ui","components":[
	{"type":"input","id":"name","placeholder":"Your name"},
	{"type":"button","id":"go","label":"Go","action":"submit"},
	{"type":"button","id":"skip","label":"Skip","action":"skip"}
]}`

func TestValidateTool(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		want    string
		wantErr bool
	}{
		{"bare", map[string]any{"schema": nameForm}, "valid: 3 components (button x2, input)", false},
		{"fenced", map[string]any{"schema": "```json\n" + nameForm + "\n```"}, "valid: 3 components", false},
		{"dual", map[string]any{"schema": `{"text":"Hi there","ui":` + nameForm + `}`, "dual": true}, "text: Hi there", false},
		{"dual expects text", map[string]any{"schema": nameForm, "dual": true}, "malformed_response", true},
		{"not json", map[string]any{"schema": "not json"}, "malformed_response", true},
		{"unknown kind", map[string]any{"schema": `{"type":"ui","components":[{"type":"marquee","id":"m"}]}`}, "validation_error", true},
		{"missing argument", map[string]any{}, "schema", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := call(t, handleValidate, tt.args)
			if isErr != tt.wantErr {
				t.Errorf("IsError = %v, want %v (%s)", isErr, tt.wantErr, text)
			}
			if !strings.Contains(text, tt.want) {
				t.Errorf("result %q does not contain %q", text, tt.want)
			}
		})
	}
}

func TestPreviewTool(t *testing.T) {
	text, isErr := call(t, handlePreview, map[string]any{"schema": nameForm})
	if isErr {
		t.Fatalf("unexpected error: %s", text)
	}
	for _, want := range []string{"[name]", "<Go> (go)", "<Skip> (skip)"} {
		if !strings.Contains(text, want) {
			t.Errorf("outline %q missing %q", text, want)
		}
	}

	if _, isErr := call(t, handlePreview, map[string]any{"schema": "{}"}); !isErr {
		t.Error("expected an error for a schema without components")
	}
}

func TestFormatInteractionTool(t *testing.T) {
	text, isErr := call(t, handleFormatInteraction, map[string]any{
		"componentId": "go",
		"values":      map[string]any{"name": "Ada", "age": 36},
	})
	if isErr {
		t.Fatalf("unexpected error: %s", text)
	}
	want := `User clicked button "go". Input values: {age: "36", name: "Ada"}`
	if text != want {
		t.Errorf("got %q, want %q", text, want)
	}

	text, _ = call(t, handleFormatInteraction, map[string]any{"componentId": "reset"})
	if text != `User clicked button "reset". Input values: {}` {
		t.Errorf("unexpected text for empty values: %q", text)
	}
}

func TestSchemaResource(t *testing.T) {
	contents, err := handleSchemaResource(context.Background(), mcptypes.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	text, ok := contents[0].(mcptypes.TextResourceContents)
	if !ok {
		t.Fatalf("expected text contents, got %T", contents[0])
	}
	if !strings.Contains(text.Text, `"components"`) {
		t.Error("schema document does not describe components")
	}
}

func TestNewServer(t *testing.T) {
	if NewServer("test") == nil {
		t.Fatal("NewServer returned nil")
	}
}
