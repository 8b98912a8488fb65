package model

import (
	"errors"
	"fmt"

	"a2ui/config"
	"a2ui/schema"
)

// ErrorKind classifies a failed backend call.
type ErrorKind string

const (
	ErrUnreachable   ErrorKind = "backend_unreachable"
	ErrRejected      ErrorKind = "backend_rejected"
	ErrNotConfigured ErrorKind = "provider_not_configured"
)

// ErrBusy is returned when a turn is requested while another is outstanding.
// The request is dropped, not queued.
var ErrBusy = errors.New("a reply is already in progress")

// BackendError is a classified provider failure.
type BackendError struct {
	Kind     ErrorKind
	Provider string
	// Status is the HTTP status for ErrRejected, 0 otherwise.
	Status  int
	Message string
	Err     error
}

func (e *BackendError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.Status)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	}
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// NotConfigured builds the error for a provider that cannot be constructed.
func NotConfigured(providerID, message string) *BackendError {
	return &BackendError{Kind: ErrNotConfigured, Provider: providerID, Message: message}
}

const disabledMessage = "provider is not enabled in this environment"

// Disabled builds the error for a provider switched off by the environment.
func Disabled(providerID string) *BackendError {
	return NotConfigured(providerID, disabledMessage)
}

// ErrorCode maps any turn error to a stable wire code.
func ErrorCode(err error) string {
	var be *BackendError
	var de *schema.DecodeError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBusy):
		return "busy"
	case errors.As(err, &be):
		return string(be.Kind)
	case errors.As(err, &de):
		return string(de.Kind)
	default:
		return "internal_error"
	}
}

// Hint returns a one-line suggestion for the user.
func Hint(err error) string {
	var be *BackendError
	var de *schema.DecodeError
	switch {
	case errors.Is(err, ErrBusy):
		return "Wait for the current reply to finish."
	case errors.As(err, &de):
		return "The model did not reply with a valid UI. Try again or pick a stronger model."
	case errors.As(err, &be):
		return backendHint(be)
	default:
		return "Check your provider settings and API key."
	}
}

func backendHint(be *BackendError) string {
	name := be.Provider
	if info, ok := config.GetProviderInfo(be.Provider); ok {
		name = info.Name
	}

	switch be.Kind {
	case ErrNotConfigured:
		if be.Message == disabledMessage {
			return fmt.Sprintf("%s is not enabled. Pick another provider in settings.", name)
		}
		return fmt.Sprintf("Enter your %s API key in settings.", name)
	case ErrUnreachable:
		if be.Provider == config.ProviderOllama {
			return "Make sure Ollama is running: ollama serve"
		}
		return fmt.Sprintf("Could not connect to %s. Check your network connection and the provider URL.", name)
	default:
		switch be.Status {
		case 401, 403:
			return fmt.Sprintf("%s rejected the API key. Update it in settings.", name)
		case 429:
			return "Rate limited or out of quota. Wait a moment or switch provider."
		}
		return "Check your provider settings and API key."
	}
}
