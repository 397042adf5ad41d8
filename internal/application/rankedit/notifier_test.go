package rankedit

import (
	"context"
	"errors"
	"testing"

	"github.com/rankeditor/backend/internal/domain/roster"
	"github.com/rankeditor/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type capturePublisher struct {
	events []shared.DomainEvent
	err    error
}

func (p *capturePublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return p.err
}

func TestNotifierFuncs(t *testing.T) {
	t.Run("nil fields are no-ops", func(t *testing.T) {
		var n NotifierFuncs
		assert.NotPanics(t, func() {
			n.Refresh()
			n.DataChanged()
			n.Renumber(mustRank(t, "Officer"))
		})
	})

	t.Run("calls provided functions", func(t *testing.T) {
		var got []string
		n := NotifierFuncs{
			OnRefresh:     func() { got = append(got, "refresh") },
			OnDataChanged: func() { got = append(got, "changed") },
			OnRenumber:    func(p *roster.Rank) { got = append(got, "renumber:"+p.Name) },
		}

		n.Renumber(mustRank(t, "Officer"))
		n.Refresh()
		n.DataChanged()

		assert.Equal(t, []string{"renumber:Officer", "refresh", "changed"}, got)
	})

	t.Run("constructor requires refresh and data-changed callbacks", func(t *testing.T) {
		noop := func() {}

		_, err := NewNotifierFuncs(nil, noop, nil)
		assert.EqualError(t, err, "onRefresh is required")
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)

		_, err = NewNotifierFuncs(noop, nil, nil)
		assert.EqualError(t, err, "onDataChanged is required")

		var refreshed int
		n, err := NewNotifierFuncs(func() { refreshed++ }, noop, nil)
		require.NoError(t, err)
		n.Refresh()
		assert.NotPanics(t, func() { n.Renumber(mustRank(t, "Officer")) })
		assert.Equal(t, 1, refreshed)
	})
}

func TestEventNotifier(t *testing.T) {
	t.Run("publishes events in notification order", func(t *testing.T) {
		pub := &capturePublisher{}
		n, err := NewEventNotifier(context.Background(), pub, zap.NewNop())
		require.NoError(t, err)
		officer := mustRank(t, "Officer")
		r := roster.NewRoster(officer)

		cmd, err := NewAddPayBandCommand(r, officer, mustRank(t, "Officer I"), 0, n)
		require.NoError(t, err)
		require.NoError(t, cmd.Execute())

		require.Len(t, pub.events, 3)
		renumber, ok := pub.events[0].(*PayBandsRenumberRequestedEvent)
		require.True(t, ok)
		assert.Equal(t, officer.ID, renumber.ParentID)
		assert.Equal(t, "Officer", renumber.ParentName)
		assert.Same(t, officer, renumber.Parent)
		assert.Equal(t, AggregateTypeRank, renumber.AggregateType())
		assert.Equal(t, EventTypeRosterRefreshRequested, pub.events[1].EventType())
		assert.Equal(t, EventTypeRosterChanged, pub.events[2].EventType())
		assert.Equal(t, n.SessionID(), pub.events[2].AggregateID())
	})

	t.Run("publish failures do not fail the edit", func(t *testing.T) {
		pub := &capturePublisher{err: errors.New("bus down")}
		n, err := NewEventNotifier(context.Background(), pub, nil)
		require.NoError(t, err)

		assert.NotPanics(t, n.DataChanged)
		assert.Len(t, pub.events, 1)
	})

	t.Run("requires publisher", func(t *testing.T) {
		_, err := NewEventNotifier(context.Background(), nil, zap.NewNop())
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)
	})
}
