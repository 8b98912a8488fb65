// Package mcp exposes the schema tooling (validation, text preview and
// interaction formatting) as MCP tools over stdio, so that an agent author
// can check what a model produced without running the TUI.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"a2ui/agent"
	"a2ui/config"
	"a2ui/renderer"
	"a2ui/schema"
)

const (
	ToolValidate          = "validate_ui_schema"
	ToolPreview           = "preview_ui_schema"
	ToolFormatInteraction = "format_interaction"

	// SchemaResourceURI serves the embedded JSON Schema.
	SchemaResourceURI = "a2ui://schema/ui.json"
)

// NewServer builds the MCP server with every tool and the schema resource
// registered.
func NewServer(version string) *server.MCPServer {
	s := server.NewMCPServer("a2ui", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.AddTool(mcptypes.NewTool(ToolValidate,
		mcptypes.WithDescription("Check a model reply against the UI schema. Accepts bare JSON or a ```json fenced block."),
		mcptypes.WithString("schema", mcptypes.Required(), mcptypes.Description("The reply text to check")),
		mcptypes.WithBoolean("dual", mcptypes.Description("Expect the {text, ui} reply shape of chatbot mode")),
	), handleValidate)

	s.AddTool(mcptypes.NewTool(ToolPreview,
		mcptypes.WithDescription("Render a UI schema as a plain text outline."),
		mcptypes.WithString("schema", mcptypes.Required(), mcptypes.Description("A UI schema document")),
	), handlePreview)

	s.AddTool(mcptypes.NewTool(ToolFormatInteraction,
		mcptypes.WithDescription("Show the user message an agent receives for a button click."),
		mcptypes.WithString("componentId", mcptypes.Required(), mcptypes.Description("Id of the clicked button")),
		mcptypes.WithObject("values", mcptypes.Description("Form values keyed by component id")),
	), handleFormatInteraction)

	s.AddResource(mcptypes.NewResource(SchemaResourceURI, "UI schema",
		mcptypes.WithResourceDescription("JSON Schema for UI schema documents"),
		mcptypes.WithMIMEType("application/schema+json"),
	), handleSchemaResource)

	return s
}

// Serve runs the server on stdin and stdout until the client disconnects.
func Serve(version string) error {
	if config.Debug && config.DebugLog != nil {
		config.DebugLog.Printf("[MCP] Serving over stdio")
	}
	return server.ServeStdio(NewServer(version))
}

func handleValidate(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
	raw, err := req.RequireString("schema")
	if err != nil {
		return mcptypes.NewToolResultError(err.Error()), nil
	}

	var ui schema.UISchema
	var text string
	if req.GetBool("dual", false) {
		turn, err := schema.DecodeTurn(raw)
		if err != nil {
			return decodeFailure(err), nil
		}
		ui, text = turn.UI, turn.Text
	} else if ui, err = schema.DecodeUI(raw); err != nil {
		return decodeFailure(err), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "valid: %d components (%s)", len(ui.Components), kindSummary(ui))
	if text != "" {
		fmt.Fprintf(&b, "\ntext: %s", text)
	}
	return mcptypes.NewToolResultText(b.String()), nil
}

func handlePreview(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
	raw, err := req.RequireString("schema")
	if err != nil {
		return mcptypes.NewToolResultError(err.Error()), nil
	}
	ui, err := schema.DecodeUI(raw)
	if err != nil {
		return decodeFailure(err), nil
	}

	surface := renderer.New()
	surface.Render(ui)
	return mcptypes.NewToolResultText(surface.Outline()), nil
}

func handleFormatInteraction(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
	id, err := req.RequireString("componentId")
	if err != nil {
		return mcptypes.NewToolResultError(err.Error()), nil
	}

	values := schema.ValueMap{}
	if raw, ok := req.GetArguments()["values"].(map[string]any); ok {
		for k, v := range raw {
			values[k] = fmt.Sprint(v)
		}
	}
	return mcptypes.NewToolResultText(agent.FormatInteraction(schema.NewInteraction(id, values))), nil
}

func handleSchemaResource(ctx context.Context, req mcptypes.ReadResourceRequest) ([]mcptypes.ResourceContents, error) {
	return []mcptypes.ResourceContents{
		mcptypes.TextResourceContents{
			URI:      SchemaResourceURI,
			MIMEType: "application/schema+json",
			Text:     string(schema.SchemaDocument()),
		},
	}, nil
}

func decodeFailure(err error) *mcptypes.CallToolResult {
	var de *schema.DecodeError
	if errors.As(err, &de) {
		return mcptypes.NewToolResultError(fmt.Sprintf("%s: %v", de.Kind, de.Err))
	}
	return mcptypes.NewToolResultError(err.Error())
}

// kindSummary lists the component kinds with their counts, e.g. "button x2, input".
func kindSummary(ui schema.UISchema) string {
	counts := map[schema.Kind]int{}
	for _, c := range ui.Components {
		counts[c.Kind()]++
	}
	kinds := make([]string, 0, len(counts))
	for k, n := range counts {
		if n > 1 {
			kinds = append(kinds, fmt.Sprintf("%s x%d", k, n))
		} else {
			kinds = append(kinds, string(k))
		}
	}
	sort.Strings(kinds)
	return strings.Join(kinds, ", ")
}
