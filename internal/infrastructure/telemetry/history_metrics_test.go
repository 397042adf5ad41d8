package telemetry

import (
	"context"
	"testing"

	"github.com/rankeditor/backend/internal/application/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

// counterCommand is a no-op command for driving the manager
type counterCommand struct{ n *int }

func (c counterCommand) Execute() error      { *c.n++; return nil }
func (c counterCommand) Undo() error         { *c.n--; return nil }
func (c counterCommand) Description() string { return "bump" }

func sumFor(t *testing.T, rm metricdata.ResourceMetrics, name string, want attribute.KeyValue) int64 {
	t.Helper()
	m, ok := findMetric(rm, name)
	require.True(t, ok, "metric %s not recorded", name)
	var total int64
	for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
		if v, ok := dp.Attributes.Value(want.Key); ok && v == want.Value {
			total += dp.Value
		}
	}
	return total
}

func gaugeFor(t *testing.T, rm metricdata.ResourceMetrics, stack string) int64 {
	t.Helper()
	m, ok := findMetric(rm, MetricHistoryDepth)
	require.True(t, ok)
	for _, dp := range m.Data.(metricdata.Gauge[int64]).DataPoints {
		if v, ok := dp.Attributes.Value(AttrStack); ok && v.AsString() == stack {
			return dp.Value
		}
	}
	t.Fatalf("no %s depth recorded", stack)
	return 0
}

func TestHistoryMetrics_ObservesManager(t *testing.T) {
	ctx := context.Background()
	provider, reader := newManualMeterProvider(t)

	hm, err := NewHistoryMetrics(provider.Meter("rankedit"), "session-1", zap.NewNop())
	require.NoError(t, err)

	m := history.NewManager(history.WithObserver(hm))
	var n int
	require.NoError(t, m.Execute(ctx, counterCommand{&n}))
	require.NoError(t, m.Execute(ctx, counterCommand{&n}))
	_, err = m.Undo(ctx)
	require.NoError(t, err)

	rm := collect(t, reader)
	assert.Equal(t, int64(2), sumFor(t, rm, MetricHistoryCommands, AttrAction.String("execute")))
	assert.Equal(t, int64(1), sumFor(t, rm, MetricHistoryCommands, AttrAction.String("undo")))
	assert.Equal(t, int64(3), sumFor(t, rm, MetricHistoryCommands, AttrSessionID.String("session-1")))
	assert.Equal(t, int64(3), sumFor(t, rm, MetricHistoryCommands, AttrCommand.String("counterCommand")))
	assert.Equal(t, int64(1), gaugeFor(t, rm, "undo"))
	assert.Equal(t, int64(1), gaugeFor(t, rm, "redo"))
}

func TestHistoryMetrics_CompositeBatchSize(t *testing.T) {
	ctx := context.Background()
	provider, reader := newManualMeterProvider(t)

	hm, err := NewHistoryMetrics(provider.Meter("rankedit"), "", nil)
	require.NoError(t, err)

	var n int
	composite := history.NewCompositeCommand("Copy to 3 ranks")
	for range 3 {
		require.NoError(t, composite.AddCommand(counterCommand{&n}))
	}
	m := history.NewManager(history.WithObserver(hm))
	require.NoError(t, m.Execute(ctx, composite))
	_, err = m.Undo(ctx)
	require.NoError(t, err)

	metric, ok := findMetric(collect(t, reader), MetricHistoryBatchSize)
	require.True(t, ok)
	points := metric.Data.(metricdata.Histogram[float64]).DataPoints
	require.Len(t, points, 1)
	assert.Equal(t, uint64(1), points[0].Count)
	assert.Equal(t, 3.0, points[0].Sum)
}

func TestCommandKind(t *testing.T) {
	var n int
	assert.Equal(t, "counterCommand", CommandKind(counterCommand{&n}))
	assert.Equal(t, "CompositeCommand", CommandKind(history.NewCompositeCommand("x")))

	prop, err := history.NewPropertyChangeCommand(func(int) {}, 1, 2, "Salary", "Officer")
	require.NoError(t, err)
	assert.Equal(t, "PropertyChangeCommand", CommandKind(prop))
}
