package provider

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"

	"a2ui/model"
)

// classify turns an SDK or transport error into a *model.BackendError.
// Cancellation passes through untouched.
func classify(providerID string, err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}
	var be *model.BackendError
	if errors.As(err, &be) {
		return err
	}

	out := &model.BackendError{Kind: model.ErrRejected, Provider: providerID, Err: err}

	var oaErr *openai.Error
	var anErr *anthropic.Error
	var gErr genai.APIError
	var olErr api.StatusError
	var opErr *net.OpError
	var urlErr *url.Error
	var netErr net.Error

	switch {
	case errors.As(err, &oaErr):
		out.Status = oaErr.StatusCode
		out.Message = oaErr.Message
	case errors.As(err, &anErr):
		out.Status = anErr.StatusCode
	case errors.As(err, &gErr):
		out.Status = gErr.Code
		out.Message = gErr.Message
	case errors.As(err, &olErr):
		out.Status = olErr.StatusCode
		out.Message = olErr.ErrorMessage
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &opErr),
		errors.As(err, &urlErr),
		errors.As(err, &netErr):
		out.Kind = model.ErrUnreachable
		out.Message = "could not reach the backend"
	default:
		out.Message = err.Error()
	}

	if out.Message == "" && out.Status != 0 {
		out.Message = http.StatusText(out.Status)
	}
	return out
}
