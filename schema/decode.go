package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// DecodeErrorKind separates "wrong answer" failures by cause.
type DecodeErrorKind string

const (
	// Malformed: not JSON, or the top-level envelope is missing required fields.
	Malformed DecodeErrorKind = "malformed_response"
	// Invalid: the envelope is fine but a component has an unknown type or
	// is missing a required field.
	Invalid DecodeErrorKind = "validation_error"
)

// DecodeError is returned by DecodeUI and DecodeTurn.
type DecodeError struct {
	Kind DecodeErrorKind
	Raw  string
	Err  error
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case Invalid:
		return fmt.Sprintf("invalid UI schema: %v", e.Err)
	default:
		return fmt.Sprintf("malformed response: %v", e.Err)
	}
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecodeError reports whether err is a DecodeError of any kind.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// StripFence removes a single optional markdown code fence and surrounding
// whitespace. Text without a fence is returned trimmed.
func StripFence(raw string) string {
	body := strings.TrimSpace(raw)
	if m := fencePattern.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	return body
}

// DecodeUI parses untrusted text into a UISchema: fence strip, strict JSON
// parse, envelope check, then per-component validation.
func DecodeUI(raw string) (UISchema, error) {
	doc, err := parseStrict([]byte(StripFence(raw)))
	if err != nil {
		return UISchema{}, &DecodeError{Kind: Malformed, Raw: raw, Err: err}
	}
	if err := checkUIEnvelope(doc); err != nil {
		return UISchema{}, &DecodeError{Kind: Malformed, Raw: raw, Err: err}
	}
	if err := validateDocument(doc, false); err != nil {
		return UISchema{}, &DecodeError{Kind: Invalid, Raw: raw, Err: err}
	}

	var s UISchema
	if err := json.Unmarshal([]byte(StripFence(raw)), &s); err != nil {
		return UISchema{}, &DecodeError{Kind: Invalid, Raw: raw, Err: err}
	}
	return s, nil
}

// DecodeTurn parses untrusted text into a Turn that must carry both a
// non-empty "text" and a "ui" schema.
func DecodeTurn(raw string) (Turn, error) {
	body := StripFence(raw)
	doc, err := parseStrict([]byte(body))
	if err != nil {
		return Turn{}, &DecodeError{Kind: Malformed, Raw: raw, Err: err}
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return Turn{}, &DecodeError{Kind: Malformed, Raw: raw, Err: errors.New("expected a JSON object")}
	}
	text, _ := obj["text"].(string)
	if text == "" || obj["ui"] == nil {
		return Turn{}, &DecodeError{Kind: Malformed, Raw: raw, Err: errors.New("missing text or ui field")}
	}
	if err := checkUIEnvelope(obj["ui"]); err != nil {
		return Turn{}, &DecodeError{Kind: Malformed, Raw: raw, Err: err}
	}
	if err := validateDocument(doc, true); err != nil {
		return Turn{}, &DecodeError{Kind: Invalid, Raw: raw, Err: err}
	}

	var t Turn
	if err := json.Unmarshal([]byte(body), &t); err != nil {
		return Turn{}, &DecodeError{Kind: Invalid, Raw: raw, Err: err}
	}
	return t, nil
}

func checkUIEnvelope(doc any) error {
	obj, ok := doc.(map[string]any)
	if !ok {
		return errors.New("expected a JSON object")
	}
	if obj["type"] != TypeUI {
		return fmt.Errorf("expected type %q", TypeUI)
	}
	if _, ok := obj["components"].([]any); !ok {
		return errors.New("components must be an array")
	}
	return nil
}

// parseStrict decodes exactly one JSON value; trailing content is an error.
func parseStrict(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON value")
	}
	return doc, nil
}
