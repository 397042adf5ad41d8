package telemetry

import (
	"context"
	"fmt"
	"strings"

	"github.com/rankeditor/backend/internal/application/history"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Metric names
const (
	MetricHistoryCommands  = "rankedit_history_commands_total"
	MetricHistoryDepth     = "rankedit_history_stack_depth"
	MetricHistoryBatchSize = "rankedit_history_batch_size"
)

// HistoryMetrics records undo/redo activity. It implements history.Observer.
type HistoryMetrics struct {
	commands  *Counter
	depth     *Gauge
	batchSize *Histogram
	baseAttrs []attribute.KeyValue
	logger    *zap.Logger
}

// NewHistoryMetrics creates the history instruments on meter. A non-empty
// sessionID is attached to every recording.
func NewHistoryMetrics(meter metric.Meter, sessionID string, logger *zap.Logger) (*HistoryMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	commands, err := NewCounter(meter, MetricHistoryCommands,
		"Number of edits executed, undone, or redone", "{command}")
	if err != nil {
		return nil, err
	}
	depth, err := NewGauge(meter, MetricHistoryDepth,
		"Number of edits on the undo and redo stacks", "{command}")
	if err != nil {
		return nil, err
	}
	batchSize, err := NewHistogram(meter, HistogramOpts{
		Name:        MetricHistoryBatchSize,
		Description: "Number of edits grouped into one composite command",
		Unit:        "{command}",
		Boundaries:  BatchSizeBuckets,
	})
	if err != nil {
		return nil, err
	}

	m := &HistoryMetrics{
		commands:  commands,
		depth:     depth,
		batchSize: batchSize,
		logger:    logger,
	}
	if sessionID != "" {
		m.baseAttrs = []attribute.KeyValue{AttrSessionID.String(sessionID)}
	}
	return m, nil
}

// CommandApplied counts the command and records composite sizes on execute
func (m *HistoryMetrics) CommandApplied(ctx context.Context, action history.Action, cmd history.Command) {
	kind := CommandKind(cmd)
	m.commands.Inc(ctx, m.attrs(AttrAction.String(string(action)), AttrCommand.String(kind))...)

	if composite, ok := cmd.(*history.CompositeCommand); ok && action == history.ActionExecute {
		m.batchSize.Record(ctx, float64(composite.Count()), m.attrs()...)
	}

	m.logger.Debug("history command applied",
		zap.String("action", string(action)),
		zap.String("command", kind),
		zap.String("description", cmd.Description()),
	)
}

// StacksChanged records the depth of both stacks
func (m *HistoryMetrics) StacksChanged(ctx context.Context, snap history.Snapshot) {
	m.depth.Record(ctx, int64(snap.UndoCount), m.attrs(AttrStack.String("undo"))...)
	m.depth.Record(ctx, int64(snap.RedoCount), m.attrs(AttrStack.String("redo"))...)
}

func (m *HistoryMetrics) attrs(extra ...attribute.KeyValue) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(m.baseAttrs)+len(extra))
	out = append(out, m.baseAttrs...)
	return append(out, extra...)
}

// CommandKind returns the bare type name of a command, without package,
// pointer, or type parameters, e.g. "BulkAddCommand".
func CommandKind(cmd history.Command) string {
	name := fmt.Sprintf("%T", cmd)
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

var _ history.Observer = (*HistoryMetrics)(nil)
