package event

import (
	"context"

	"github.com/rankeditor/backend/internal/domain/shared"
)

// FuncHandler adapts a function to shared.EventHandler. Subscribe the
// returned pointer; Unsubscribe matches it by identity.
type FuncHandler struct {
	types []string
	fn    func(ctx context.Context, event shared.DomainEvent) error
}

// NewFuncHandler wraps fn. With no event types the handler receives all events.
func NewFuncHandler(fn func(ctx context.Context, event shared.DomainEvent) error, eventTypes ...string) *FuncHandler {
	return &FuncHandler{types: eventTypes, fn: fn}
}

// Handle calls the wrapped function
func (h *FuncHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	return h.fn(ctx, event)
}

// EventTypes returns the event types given at construction
func (h *FuncHandler) EventTypes() []string {
	return h.types
}

var _ shared.EventHandler = (*FuncHandler)(nil)
