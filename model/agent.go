package model

import (
	"context"

	"a2ui/schema"
)

// Agent drives the conversation: it owns the message log, calls the backend
// and decodes each reply into a Turn.
type Agent interface {
	Start(ctx context.Context) (schema.Turn, error)
	HandleInteraction(ctx context.Context, in schema.Interaction) (schema.Turn, error)
	SetProvider(p Provider)
	Messages() []Message
	Busy() bool
}
