package rankedit

import (
	"github.com/google/uuid"
	"github.com/rankeditor/backend/internal/domain/roster"
	"github.com/rankeditor/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeRoster = "Roster"
	AggregateTypeRank   = "Rank"
)

// Event type constants
const (
	EventTypeRosterRefreshRequested    = "RosterRefreshRequested"
	EventTypeRosterChanged             = "RosterChanged"
	EventTypePayBandsRenumberRequested = "PayBandsRenumberRequested"
)

// RosterRefreshRequestedEvent asks views of the roster to re-render
type RosterRefreshRequestedEvent struct {
	shared.BaseDomainEvent
}

// NewRosterRefreshRequestedEvent creates a new RosterRefreshRequestedEvent
func NewRosterRefreshRequestedEvent(sessionID uuid.UUID) *RosterRefreshRequestedEvent {
	return &RosterRefreshRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRosterRefreshRequested, AggregateTypeRoster, sessionID),
	}
}

// RosterChangedEvent is published after every applied or reverted edit
type RosterChangedEvent struct {
	shared.BaseDomainEvent
}

// NewRosterChangedEvent creates a new RosterChangedEvent
func NewRosterChangedEvent(sessionID uuid.UUID) *RosterChangedEvent {
	return &RosterChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRosterChanged, AggregateTypeRoster, sessionID),
	}
}

// PayBandsRenumberRequestedEvent asks the owner of the naming scheme to
// renumber a parent's pay bands
type PayBandsRenumberRequestedEvent struct {
	shared.BaseDomainEvent
	ParentID   uuid.UUID    `json:"parent_id"`
	ParentName string       `json:"parent_name"`
	Parent     *roster.Rank `json:"-"`
}

// NewPayBandsRenumberRequestedEvent creates a new PayBandsRenumberRequestedEvent
func NewPayBandsRenumberRequestedEvent(parent *roster.Rank) *PayBandsRenumberRequestedEvent {
	return &PayBandsRenumberRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePayBandsRenumberRequested, AggregateTypeRank, parent.ID),
		ParentID:        parent.ID,
		ParentName:      parent.Name,
		Parent:          parent,
	}
}
