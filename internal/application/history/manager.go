package history

import (
	"context"

	"github.com/google/uuid"
	"github.com/rankeditor/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultCapacity is the undo depth used when none is configured
const DefaultCapacity = 100

// Action names what the manager did with a command
type Action string

const (
	ActionExecute Action = "execute"
	ActionUndo    Action = "undo"
	ActionRedo    Action = "redo"
)

// Observer receives a callback for every applied command and every stack
// change. It is meant for metrics; it must not call back into the manager.
type Observer interface {
	CommandApplied(ctx context.Context, action Action, cmd Command)
	StacksChanged(ctx context.Context, snap Snapshot)
}

// Option configures a Manager
type Option func(*Manager)

// WithCapacity bounds the undo stack. Non-positive values are ignored.
func WithCapacity(capacity int) Option {
	return func(m *Manager) {
		if capacity > 0 {
			m.capacity = capacity
		}
	}
}

// WithLogger sets the manager's logger
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithPublisher publishes a StacksChangedEvent on every stack change
func WithPublisher(publisher shared.EventPublisher) Option {
	return func(m *Manager) {
		m.publisher = publisher
	}
}

// WithObserver attaches an observer
func WithObserver(observer Observer) Option {
	return func(m *Manager) {
		m.observer = observer
	}
}

// Manager owns the undo and redo stacks. It is not safe for concurrent use;
// every call is expected to come from the single editing thread.
type Manager struct {
	id        uuid.UUID
	undo      stack
	redo      stack
	capacity  int
	logger    *zap.Logger
	publisher shared.EventPublisher
	observer  Observer
}

// NewManager creates a new Manager
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		id:       uuid.New(),
		capacity: DefaultCapacity,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ID identifies the manager as the aggregate of its events
func (m *Manager) ID() uuid.UUID {
	return m.id
}

// Execute runs cmd and records it for undo. The redo stack is discarded and
// the oldest undo entry is evicted once capacity is exceeded. A failing
// command is not recorded.
func (m *Manager) Execute(ctx context.Context, cmd Command) error {
	if cmd == nil {
		return shared.RequiredArgument("command")
	}
	if err := cmd.Execute(); err != nil {
		m.logger.Warn("command failed",
			zap.String("command", cmd.Description()),
			zap.Error(err),
		)
		return err
	}

	m.undo.push(cmd)
	m.redo.clear()
	if evicted := m.undo.trim(m.capacity); evicted > 0 {
		m.logger.Debug("undo history trimmed",
			zap.Int("evicted", evicted),
			zap.Int("capacity", m.capacity),
		)
	}

	m.logger.Debug("command executed", zap.String("command", cmd.Description()))
	m.applied(ctx, ActionExecute, cmd)
	m.notify(ctx)
	return nil
}

// Undo reverses the most recent command. It returns false without
// notifying when there is nothing to undo. If the command cannot be undone
// it stays on the undo stack and the error is returned.
func (m *Manager) Undo(ctx context.Context) (bool, error) {
	cmd, ok := m.undo.pop()
	if !ok {
		return false, nil
	}
	if err := cmd.Undo(); err != nil {
		m.undo.push(cmd)
		m.logger.Warn("undo failed",
			zap.String("command", cmd.Description()),
			zap.Error(err),
		)
		return false, err
	}

	m.redo.push(cmd)
	m.redo.trim(m.capacity)

	m.logger.Debug("command undone", zap.String("command", cmd.Description()))
	m.applied(ctx, ActionUndo, cmd)
	m.notify(ctx)
	return true, nil
}

// Redo re-executes the most recently undone command. It returns false
// without notifying when there is nothing to redo.
func (m *Manager) Redo(ctx context.Context) (bool, error) {
	cmd, ok := m.redo.pop()
	if !ok {
		return false, nil
	}
	if err := cmd.Execute(); err != nil {
		m.redo.push(cmd)
		m.logger.Warn("redo failed",
			zap.String("command", cmd.Description()),
			zap.Error(err),
		)
		return false, err
	}

	m.undo.push(cmd)
	m.undo.trim(m.capacity)

	m.logger.Debug("command redone", zap.String("command", cmd.Description()))
	m.applied(ctx, ActionRedo, cmd)
	m.notify(ctx)
	return true, nil
}

// Clear empties both stacks
func (m *Manager) Clear(ctx context.Context) {
	m.undo.clear()
	m.redo.clear()
	m.logger.Debug("history cleared")
	m.notify(ctx)
}

// CanUndo returns true if there is a command to undo
func (m *Manager) CanUndo() bool {
	return m.undo.len() > 0
}

// CanRedo returns true if there is a command to redo
func (m *Manager) CanRedo() bool {
	return m.redo.len() > 0
}

// UndoCount returns the undo stack size
func (m *Manager) UndoCount() int {
	return m.undo.len()
}

// RedoCount returns the redo stack size
func (m *Manager) RedoCount() int {
	return m.redo.len()
}

// Capacity returns the configured undo depth
func (m *Manager) Capacity() int {
	return m.capacity
}

// UndoDescription returns the description of the command Undo would reverse
func (m *Manager) UndoDescription() (string, bool) {
	cmd, ok := m.undo.peek()
	if !ok {
		return "", false
	}
	return cmd.Description(), true
}

// RedoDescription returns the description of the command Redo would apply
func (m *Manager) RedoDescription() (string, bool) {
	cmd, ok := m.redo.peek()
	if !ok {
		return "", false
	}
	return cmd.Description(), true
}

// UndoDescriptions lists the undo stack from most recent to oldest
func (m *Manager) UndoDescriptions() []string {
	return m.undo.descriptions()
}

// RedoDescriptions lists the redo stack from next-to-redo to last
func (m *Manager) RedoDescriptions() []string {
	return m.redo.descriptions()
}

// Snapshot returns the current state of both stacks
func (m *Manager) Snapshot() Snapshot {
	undoDesc, _ := m.UndoDescription()
	redoDesc, _ := m.RedoDescription()
	return Snapshot{
		CanUndo:         m.CanUndo(),
		CanRedo:         m.CanRedo(),
		UndoCount:       m.UndoCount(),
		RedoCount:       m.RedoCount(),
		UndoDescription: undoDesc,
		RedoDescription: redoDesc,
	}
}

func (m *Manager) applied(ctx context.Context, action Action, cmd Command) {
	if m.observer != nil {
		m.observer.CommandApplied(ctx, action, cmd)
	}
}

func (m *Manager) notify(ctx context.Context) {
	snap := m.Snapshot()
	if m.observer != nil {
		m.observer.StacksChanged(ctx, snap)
	}
	if m.publisher == nil {
		return
	}
	if err := m.publisher.Publish(ctx, NewStacksChangedEvent(m.id, snap)); err != nil {
		m.logger.Error("failed to publish stacks changed event", zap.Error(err))
	}
}
