package rankedit

import (
	"testing"

	"github.com/rankeditor/backend/internal/domain/roster"
	"github.com/rankeditor/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoteRankCommand(t *testing.T) {
	t.Run("promotes pay band and restores it on undo", func(t *testing.T) {
		officer := mustRank(t, "Officer")
		bands := withPayBands(t, officer, "Officer I", "Officer II")
		r := roster.NewRoster(officer)
		n := &recordingNotifier{}

		cmd, err := NewPromoteRankCommand(r, bands[0], officer, 0, n)
		require.NoError(t, err)

		require.NoError(t, cmd.Execute())
		assert.Equal(t, []*roster.Rank{bands[0], officer}, r.Ranks())
		assert.Equal(t, []*roster.Rank{bands[1]}, officer.PayBands)
		assert.Nil(t, bands[0].ParentID)
		assert.True(t, officer.IsParent)
		assert.Equal(t, []string{"renumber:Officer", "refresh", "changed"}, n.calls)

		n.reset()
		require.NoError(t, cmd.Undo())
		assert.Equal(t, []*roster.Rank{officer}, r.Ranks())
		assert.Equal(t, bands, officer.PayBands)
		assert.Equal(t, officer.ID, *bands[0].ParentID)
		assert.Equal(t, []string{"renumber:Officer", "refresh", "changed"}, n.calls)
	})

	t.Run("promoting the only pay band clears the flag without renumbering", func(t *testing.T) {
		officer := mustRank(t, "Officer")
		bands := withPayBands(t, officer, "Officer I")
		r := roster.NewRoster(officer)
		n := &recordingNotifier{}
		cmd, err := NewPromoteRankCommand(r, bands[0], officer, 99, n)
		require.NoError(t, err)

		require.NoError(t, cmd.Execute())

		assert.False(t, officer.IsParent)
		assert.Equal(t, []*roster.Rank{officer, bands[0]}, r.Ranks())
		assert.Equal(t, 0, n.count("renumber:Officer"))

		require.NoError(t, cmd.Undo())
		assert.True(t, officer.IsParent)
		assert.Equal(t, 1, n.count("renumber:Officer"))
	})

	t.Run("fails when the original parent is gone", func(t *testing.T) {
		officer := mustRank(t, "Officer")
		bands := withPayBands(t, officer, "Officer I")
		cmd, err := NewPromoteRankCommand(roster.NewRoster(), bands[0], officer, 0, &recordingNotifier{})
		require.NoError(t, err)

		err = cmd.Execute()

		assert.ErrorIs(t, err, ErrParentNotFound)
		assert.EqualError(t, err, "original parent rank 'Officer' not found")
		assert.Len(t, officer.PayBands, 1)
	})

	t.Run("fails when the pay band left its parent", func(t *testing.T) {
		officer := mustRank(t, "Officer")
		stray := mustRank(t, "Stray")
		r := roster.NewRoster(officer)
		cmd, err := NewPromoteRankCommand(r, stray, officer, 0, &recordingNotifier{})
		require.NoError(t, err)

		err = cmd.Execute()

		assert.ErrorIs(t, err, ErrNotFoundInParent)
		assert.EqualError(t, err, "'Stray' not found in parent's list")
		assert.Equal(t, 1, r.Len())
	})

	t.Run("undo fails when the promoted rank left the roster", func(t *testing.T) {
		officer := mustRank(t, "Officer")
		bands := withPayBands(t, officer, "Officer I")
		r := roster.NewRoster(officer)
		cmd, err := NewPromoteRankCommand(r, bands[0], officer, 0, &recordingNotifier{})
		require.NoError(t, err)
		require.NoError(t, cmd.Execute())
		r.Remove(bands[0].ID)

		err = cmd.Undo()

		assert.ErrorIs(t, err, ErrNotFoundInList)
		assert.Empty(t, officer.PayBands)
	})
}

func TestRemoveRankCommand(t *testing.T) {
	t.Run("removes top-level rank and restores it at the same index", func(t *testing.T) {
		a, b, c := mustRank(t, "A"), mustRank(t, "B"), mustRank(t, "C")
		r := roster.NewRoster(a, b, c)
		cmd, err := NewRemoveRankCommand(r, b, &recordingNotifier{})
		require.NoError(t, err)
		assert.False(t, cmd.IsPayBand())

		require.NoError(t, cmd.Execute())
		assert.Equal(t, []*roster.Rank{a, c}, r.Ranks())

		require.NoError(t, cmd.Undo())
		assert.Equal(t, []*roster.Rank{a, b, c}, r.Ranks())
		assert.Same(t, b, r.At(1))
	})

	t.Run("missing top-level rank is reported", func(t *testing.T) {
		r := roster.NewRoster(mustRank(t, "A"))
		cmd, err := NewRemoveRankCommand(r, mustRank(t, "Ghost"), &recordingNotifier{})
		require.NoError(t, err)

		err = cmd.Execute()

		assert.ErrorIs(t, err, ErrNotFoundInList)
		assert.EqualError(t, err, "'Ghost' not found in ranks list")
		assert.Equal(t, 1, r.Len())
	})

	t.Run("removes pay band and restores it with renumbering", func(t *testing.T) {
		officer := mustRank(t, "Officer")
		bands := withPayBands(t, officer, "I", "II", "III")
		r := roster.NewRoster(officer)
		n := &recordingNotifier{}
		cmd, err := NewRemovePayBandCommand(r, officer, bands[1], n)
		require.NoError(t, err)
		assert.True(t, cmd.IsPayBand())

		require.NoError(t, cmd.Execute())
		assert.Equal(t, []string{"I", "III"}, names(officer.PayBands))
		assert.Nil(t, bands[1].ParentID)
		assert.True(t, officer.IsParent)
		assert.Equal(t, []string{"renumber:Officer", "refresh", "changed"}, n.calls)

		n.reset()
		require.NoError(t, cmd.Undo())
		assert.Equal(t, bands, officer.PayBands)
		assert.Equal(t, officer.ID, *bands[1].ParentID)
		assert.Equal(t, []string{"renumber:Officer", "refresh", "changed"}, n.calls)
	})

	t.Run("removing the last pay band clears the flag", func(t *testing.T) {
		officer := mustRank(t, "Officer")
		bands := withPayBands(t, officer, "I")
		n := &recordingNotifier{}
		cmd, err := NewRemovePayBandCommand(roster.NewRoster(officer), officer, bands[0], n)
		require.NoError(t, err)

		require.NoError(t, cmd.Execute())

		assert.False(t, officer.IsParent)
		assert.Equal(t, []string{"refresh", "changed"}, n.calls)
	})

	t.Run("pay band errors", func(t *testing.T) {
		officer := mustRank(t, "Officer")
		bands := withPayBands(t, officer, "I")

		cmd, err := NewRemovePayBandCommand(roster.NewRoster(), officer, bands[0], &recordingNotifier{})
		require.NoError(t, err)
		assert.ErrorIs(t, cmd.Execute(), ErrParentNotFound)

		cmd, err = NewRemovePayBandCommand(roster.NewRoster(officer), officer, mustRank(t, "Ghost"), &recordingNotifier{})
		require.NoError(t, err)
		assert.ErrorIs(t, cmd.Execute(), ErrNotFoundInParent)
		assert.Len(t, officer.PayBands, 1)
	})
}

func TestCloneRankCommand(t *testing.T) {
	t.Run("top-level clone", func(t *testing.T) {
		a, b := mustRank(t, "A"), mustRank(t, "B")
		r := roster.NewRoster(a, b)
		clone := roster.CloneRank(a)
		cmd, err := NewCloneRankCommand(r, clone, 1, &recordingNotifier{})
		require.NoError(t, err)

		assert.Equal(t, clone.ID, cmd.ClonedRankID())
		assert.Nil(t, cmd.ParentID())
		assert.Equal(t, "Clone rank 'A'", cmd.Description())

		require.NoError(t, cmd.Execute())
		assert.Equal(t, []*roster.Rank{a, clone, b}, r.Ranks())

		require.NoError(t, cmd.Undo())
		assert.Equal(t, []*roster.Rank{a, b}, r.Ranks())
	})

	t.Run("pay band clone follows the pay band contract", func(t *testing.T) {
		officer := mustRank(t, "Officer")
		bands := withPayBands(t, officer, "I")
		r := roster.NewRoster(officer)
		clone := roster.CloneRank(bands[0])
		n := &recordingNotifier{}
		cmd, err := NewClonePayBandCommand(r, officer, clone, 1, n)
		require.NoError(t, err)

		require.NotNil(t, cmd.ParentID())
		assert.Equal(t, officer.ID, *cmd.ParentID())

		require.NoError(t, cmd.Execute())
		assert.Equal(t, []*roster.Rank{bands[0], clone}, officer.PayBands)
		assert.Equal(t, officer.ID, *clone.ParentID)
		assert.Equal(t, []string{"renumber:Officer", "refresh", "changed"}, n.calls)

		n.reset()
		require.NoError(t, cmd.Undo())
		assert.Equal(t, bands, officer.PayBands)
		assert.Nil(t, clone.ParentID)
		assert.Equal(t, 1, n.count("renumber:Officer"))
	})

	t.Run("requires clone", func(t *testing.T) {
		_, err := NewCloneRankCommand(roster.NewRoster(), nil, 0, &recordingNotifier{})
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)
		assert.EqualError(t, err, "clone is required")
	})
}

func TestRemoveAllRanksCommand(t *testing.T) {
	a, b, c := mustRank(t, "A"), mustRank(t, "B"), mustRank(t, "C")
	r := roster.NewRoster(a, b, c)
	n := &recordingNotifier{}
	cmd, err := NewRemoveAllRanksCommand(r, n)
	require.NoError(t, err)

	assert.Equal(t, "Remove all 3 ranks", cmd.Description())
	assert.Equal(t, 3, cmd.Count())

	require.NoError(t, cmd.Execute())
	assert.Zero(t, r.Len())

	require.NoError(t, cmd.Undo())
	require.Equal(t, 3, r.Len())
	assert.Same(t, a, r.At(0))
	assert.Same(t, b, r.At(1))
	assert.Same(t, c, r.At(2))

	require.NoError(t, cmd.Execute())
	assert.Zero(t, r.Len())
	assert.Equal(t, 6, len(n.calls))
}

func TestRemoveAllRanksCommand_SingleRankDescription(t *testing.T) {
	cmd, err := NewRemoveAllRanksCommand(roster.NewRoster(mustRank(t, "A")), &recordingNotifier{})
	require.NoError(t, err)

	assert.Equal(t, "Remove all 1 rank", cmd.Description())
}

func TestMoveRankCommand(t *testing.T) {
	t.Run("moves top-level rank and back", func(t *testing.T) {
		a, b, c := mustRank(t, "A"), mustRank(t, "B"), mustRank(t, "C")
		r := roster.NewRoster(a, b, c)
		cmd, err := NewMoveRankCommand(r, a, 2, &recordingNotifier{})
		require.NoError(t, err)

		require.NoError(t, cmd.Execute())
		assert.Equal(t, []*roster.Rank{b, c, a}, r.Ranks())

		require.NoError(t, cmd.Undo())
		assert.Equal(t, []*roster.Rank{a, b, c}, r.Ranks())
	})

	t.Run("moves pay band and renumbers both ways", func(t *testing.T) {
		officer := mustRank(t, "Officer")
		bands := withPayBands(t, officer, "I", "II", "III")
		n := &recordingNotifier{}
		cmd, err := NewMovePayBandCommand(roster.NewRoster(officer), officer, bands[2], 0, n)
		require.NoError(t, err)

		require.NoError(t, cmd.Execute())
		assert.Equal(t, []string{"III", "I", "II"}, names(officer.PayBands))

		require.NoError(t, cmd.Undo())
		assert.Equal(t, bands, officer.PayBands)
		assert.Equal(t, 2, n.count("renumber:Officer"))
	})

	t.Run("missing rank is reported", func(t *testing.T) {
		officer := mustRank(t, "Officer")
		cmd, err := NewMovePayBandCommand(roster.NewRoster(officer), officer, mustRank(t, "Ghost"), 0, &recordingNotifier{})
		require.NoError(t, err)
		assert.ErrorIs(t, cmd.Execute(), ErrNotFoundInParent)

		move, err := NewMoveRankCommand(roster.NewRoster(), officer, 0, &recordingNotifier{})
		require.NoError(t, err)
		assert.ErrorIs(t, move.Execute(), ErrNotFoundInList)
	})
}
