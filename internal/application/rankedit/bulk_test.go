package rankedit

import (
	"testing"

	"github.com/rankeditor/backend/internal/domain/roster"
	"github.com/rankeditor/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkAddOutfitsCommand(t *testing.T) {
	rank := mustRank(t, "Officer")
	rank.Outfits = []string{"Class A"}
	input := []string{"Class B", "Class C", "Swat"}
	n := &recordingNotifier{}

	cmd, err := NewBulkAddOutfitsCommand(rank, input, n)
	require.NoError(t, err)
	input[0] = "mutated"

	assert.Equal(t, "Add 3 outfits to 'Officer'", cmd.Description())

	require.NoError(t, cmd.Execute())
	assert.Equal(t, []string{"Class A", "Class B", "Class C", "Swat"}, rank.Outfits)

	require.NoError(t, cmd.Undo())
	assert.Equal(t, []string{"Class A"}, rank.Outfits)
	assert.Equal(t, []string{"refresh", "changed", "refresh", "changed"}, n.calls)
}

func TestBulkRemoveOutfitsCommand(t *testing.T) {
	t.Run("removes and restores at original positions", func(t *testing.T) {
		rank := mustRank(t, "Officer")
		rank.Outfits = []string{"A", "B", "C", "D"}
		cmd, err := NewBulkRemoveOutfitsCommand(rank, []string{"C", "A"}, &recordingNotifier{})
		require.NoError(t, err)

		require.NoError(t, cmd.Execute())
		assert.Equal(t, []string{"B", "D"}, rank.Outfits)

		require.NoError(t, cmd.Undo())
		assert.Equal(t, []string{"A", "B", "C", "D"}, rank.Outfits)

		require.NoError(t, cmd.Execute())
		assert.Equal(t, []string{"B", "D"}, rank.Outfits)
	})

	t.Run("missing item leaves the rank untouched", func(t *testing.T) {
		rank := mustRank(t, "Officer")
		rank.Outfits = []string{"A", "B"}
		n := &recordingNotifier{}
		cmd, err := NewBulkRemoveOutfitsCommand(rank, []string{"A", "Z"}, n)
		require.NoError(t, err)

		err = cmd.Execute()

		assert.ErrorIs(t, err, ErrItemNotFound)
		assert.EqualError(t, err, "'Z' not found in 'Officer'")
		assert.Equal(t, []string{"A", "B"}, rank.Outfits)
		assert.Empty(t, n.calls)
	})

	t.Run("describes a single outfit", func(t *testing.T) {
		cmd, err := NewBulkRemoveOutfitsCommand(mustRank(t, "Officer"), []string{"A"}, &recordingNotifier{})
		require.NoError(t, err)

		assert.Equal(t, "Remove 1 outfit from 'Officer'", cmd.Description())
	})

	t.Run("requires items", func(t *testing.T) {
		_, err := NewBulkRemoveOutfitsCommand(mustRank(t, "Officer"), nil, &recordingNotifier{})

		assert.ErrorIs(t, err, shared.ErrInvalidArgument)
		assert.EqualError(t, err, "items is required")
	})
}

func TestBulkStationAssignmentCommands(t *testing.T) {
	rank := mustRank(t, "Officer")
	existing := roster.NewStationAssignment("Mission Row")
	rank.Stations = []*roster.StationAssignment{existing}
	added := roster.NewStationAssignment("Vespucci")

	add, err := NewBulkAddStationAssignmentsCommand(rank, []*roster.StationAssignment{added}, &recordingNotifier{})
	require.NoError(t, err)
	assert.Equal(t, "Add 1 station assignment to 'Officer'", add.Description())
	require.NoError(t, add.Execute())
	assert.Equal(t, []*roster.StationAssignment{existing, added}, rank.Stations)

	remove, err := NewBulkRemoveStationAssignmentsCommand(rank, []*roster.StationAssignment{existing}, &recordingNotifier{})
	require.NoError(t, err)
	assert.Equal(t, "Remove 1 station assignment from 'Officer'", remove.Description())
	require.NoError(t, remove.Execute())
	assert.Equal(t, []*roster.StationAssignment{added}, rank.Stations)

	require.NoError(t, remove.Undo())
	assert.Same(t, existing, rank.Stations[0])

	// Identity, not name, decides which assignment is removed
	lookalike := roster.NewStationAssignment("Mission Row")
	miss, err := NewBulkRemoveStationAssignmentsCommand(rank, []*roster.StationAssignment{lookalike}, &recordingNotifier{})
	require.NoError(t, err)
	assert.ErrorIs(t, miss.Execute(), ErrItemNotFound)
}

func TestBulkVehicleCommands(t *testing.T) {
	rank := mustRank(t, "Officer")
	v1 := roster.NewVehicle("police", "Cruiser", "LSPD")
	v2 := roster.NewVehicle("police2", "Buffalo", "LSPD")

	add, err := NewBulkAddVehiclesCommand(rank, []*roster.Vehicle{v1, v2}, &recordingNotifier{})
	require.NoError(t, err)
	assert.Equal(t, "Add 2 vehicles to 'Officer'", add.Description())

	require.NoError(t, add.Execute())
	remove, err := NewBulkRemoveVehiclesCommand(rank, []*roster.Vehicle{v1}, &recordingNotifier{})
	require.NoError(t, err)
	require.NoError(t, remove.Execute())
	assert.Equal(t, []*roster.Vehicle{v2}, rank.Vehicles)

	require.NoError(t, remove.Undo())
	require.NoError(t, add.Undo())
	assert.Empty(t, rank.Vehicles)
}
