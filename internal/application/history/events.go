package history

import (
	"github.com/google/uuid"
	"github.com/rankeditor/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeHistory = "History"

// Event type constants
const (
	EventTypeStacksChanged = "HistoryStacksChanged"
)

// Snapshot is a read-only view of the manager's stacks
type Snapshot struct {
	CanUndo         bool   `json:"can_undo"`
	CanRedo         bool   `json:"can_redo"`
	UndoCount       int    `json:"undo_count"`
	RedoCount       int    `json:"redo_count"`
	UndoDescription string `json:"undo_description,omitempty"`
	RedoDescription string `json:"redo_description,omitempty"`
}

// StacksChangedEvent is published whenever the undo or redo stack changes
type StacksChangedEvent struct {
	shared.BaseDomainEvent
	Snapshot
}

// NewStacksChangedEvent creates a new StacksChangedEvent
func NewStacksChangedEvent(managerID uuid.UUID, snap Snapshot) *StacksChangedEvent {
	return &StacksChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStacksChanged, AggregateTypeHistory, managerID),
		Snapshot:        snap,
	}
}
