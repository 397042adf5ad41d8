package rankedit

import (
	"context"

	"github.com/google/uuid"
	"github.com/rankeditor/backend/internal/domain/roster"
	"github.com/rankeditor/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Notifier receives the side effects of roster edits. Commands call it
// synchronously after mutating: Renumber first (when pay-band membership or
// order changed), then Refresh, then DataChanged.
type Notifier interface {
	// Refresh asks the UI to re-render affected surfaces
	Refresh()
	// DataChanged marks the document dirty
	DataChanged()
	// Renumber recomputes the display names of parent's pay bands
	Renumber(parent *roster.Rank)
}

// NotifierFuncs adapts plain functions to Notifier. Nil fields are no-ops;
// use NewNotifierFuncs to require the refresh and data-changed callbacks.
type NotifierFuncs struct {
	OnRefresh     func()
	OnDataChanged func()
	OnRenumber    func(parent *roster.Rank)
}

// NewNotifierFuncs builds a NotifierFuncs. onRenumber may be nil for editors
// that never show pay bands.
func NewNotifierFuncs(onRefresh, onDataChanged func(), onRenumber func(parent *roster.Rank)) (NotifierFuncs, error) {
	if onRefresh == nil {
		return NotifierFuncs{}, shared.RequiredArgument("onRefresh")
	}
	if onDataChanged == nil {
		return NotifierFuncs{}, shared.RequiredArgument("onDataChanged")
	}
	return NotifierFuncs{
		OnRefresh:     onRefresh,
		OnDataChanged: onDataChanged,
		OnRenumber:    onRenumber,
	}, nil
}

// Refresh implements Notifier
func (f NotifierFuncs) Refresh() {
	if f.OnRefresh != nil {
		f.OnRefresh()
	}
}

// DataChanged implements Notifier
func (f NotifierFuncs) DataChanged() {
	if f.OnDataChanged != nil {
		f.OnDataChanged()
	}
}

// Renumber implements Notifier
func (f NotifierFuncs) Renumber(parent *roster.Rank) {
	if f.OnRenumber != nil {
		f.OnRenumber(parent)
	}
}

// EventNotifier turns notifications into domain events on a publisher.
// Publishing is synchronous, so subscribers observe the same ordering as a
// direct Notifier.
type EventNotifier struct {
	ctx       context.Context
	sessionID uuid.UUID
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewEventNotifier creates a notifier publishing on publisher
func NewEventNotifier(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger) (*EventNotifier, error) {
	if publisher == nil {
		return nil, shared.RequiredArgument("publisher")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventNotifier{
		ctx:       ctx,
		sessionID: uuid.New(),
		publisher: publisher,
		logger:    logger,
	}, nil
}

// SessionID identifies the editing session the events belong to
func (n *EventNotifier) SessionID() uuid.UUID {
	return n.sessionID
}

// Refresh implements Notifier
func (n *EventNotifier) Refresh() {
	n.publish(NewRosterRefreshRequestedEvent(n.sessionID))
}

// DataChanged implements Notifier
func (n *EventNotifier) DataChanged() {
	n.publish(NewRosterChangedEvent(n.sessionID))
}

// Renumber implements Notifier
func (n *EventNotifier) Renumber(parent *roster.Rank) {
	n.publish(NewPayBandsRenumberRequestedEvent(parent))
}

func (n *EventNotifier) publish(event shared.DomainEvent) {
	if err := n.publisher.Publish(n.ctx, event); err != nil {
		n.logger.Error("failed to publish roster event",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	}
}

var (
	_ Notifier = NotifierFuncs{}
	_ Notifier = (*EventNotifier)(nil)
)
