package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBaseURL = "https://a2ui.local/schemas/"

var (
	compileOnce sync.Once
	uiSchema    *jsonschema.Schema
	turnSchema  *jsonschema.Schema
	compileErr  error
)

func compileSchemas() {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	for _, name := range []string{"ui.schema.json", "turn.schema.json"} {
		data, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			compileErr = fmt.Errorf("failed to read %s: %w", name, err)
			return
		}
		if err := c.AddResource(schemaBaseURL+name, bytes.NewReader(data)); err != nil {
			compileErr = fmt.Errorf("failed to load %s: %w", name, err)
			return
		}
	}
	if uiSchema, compileErr = c.Compile(schemaBaseURL + "ui.schema.json"); compileErr != nil {
		return
	}
	turnSchema, compileErr = c.Compile(schemaBaseURL + "turn.schema.json")
}

// SchemaDocument returns the embedded JSON Schema for UISchema documents.
func SchemaDocument() []byte {
	data, _ := schemaFS.ReadFile("schemas/ui.schema.json")
	return data
}

// Validate checks a UISchema (already encoded or hand-built) against the
// embedded JSON Schema.
func Validate(s UISchema) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	doc, err := parseStrict(data)
	if err != nil {
		return err
	}
	return validateDocument(doc, false)
}

func validateDocument(doc any, turn bool) error {
	compileOnce.Do(compileSchemas)
	if compileErr != nil {
		return fmt.Errorf("schema compile failed: %w", compileErr)
	}
	target := uiSchema
	if turn {
		target = turnSchema
	}
	return target.Validate(doc)
}
