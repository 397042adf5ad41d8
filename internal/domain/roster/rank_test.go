package roster

import (
	"testing"

	"github.com/rankeditor/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRank(t *testing.T, name string) *Rank {
	t.Helper()
	r, err := NewRank(RankParams{Name: name})
	require.NoError(t, err)
	return r
}

func TestNewRank(t *testing.T) {
	t.Run("creates rank with valid params", func(t *testing.T) {
		r, err := NewRank(RankParams{Name: "  Officer ", RequiredPoints: 100, Salary: 2500})
		require.NoError(t, err)

		assert.Equal(t, "Officer", r.Name)
		assert.Equal(t, 100, r.RequiredPoints)
		assert.Equal(t, 2500, r.Salary)
		assert.NotEqual(t, r.ID.String(), "00000000-0000-0000-0000-000000000000")
		assert.False(t, r.IsParent)
		assert.Nil(t, r.ParentID)
	})

	tests := []struct {
		name    string
		params  RankParams
		wantMsg string
	}{
		{"empty name", RankParams{Name: "   "}, "name cannot be empty"},
		{"negative points", RankParams{Name: "Officer", RequiredPoints: -1}, "required points cannot be negative"},
		{"negative salary", RankParams{Name: "Officer", Salary: -5}, "salary cannot be negative"},
	}
	for _, tt := range tests {
		t.Run("fails with "+tt.name, func(t *testing.T) {
			_, err := NewRank(tt.params)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var derr *shared.DomainError
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, CodeInvalidRank, derr.Code)
		})
	}
}

func TestRank_InsertPayBand(t *testing.T) {
	t.Run("sets parent reference and flag", func(t *testing.T) {
		parent := mustRank(t, "Officer")
		pb := mustRank(t, "Officer I")

		at := parent.InsertPayBand(0, pb)

		assert.Equal(t, 0, at)
		assert.True(t, parent.IsParent)
		require.NotNil(t, pb.ParentID)
		assert.Equal(t, parent.ID, *pb.ParentID)
		assert.True(t, pb.IsPayBand())
	})

	t.Run("clamps index into range", func(t *testing.T) {
		parent := mustRank(t, "Officer")
		a, b, c, d := mustRank(t, "A"), mustRank(t, "B"), mustRank(t, "C"), mustRank(t, "D")

		parent.InsertPayBand(0, a)
		parent.InsertPayBand(99, b)
		assert.Equal(t, 1, parent.InsertPayBand(1, c))
		assert.Equal(t, 0, parent.InsertPayBand(-1, d))

		assert.Equal(t, []*Rank{d, a, c, b}, parent.PayBands)
	})
}

func TestRank_RemovePayBand(t *testing.T) {
	t.Run("clears flag when last pay band leaves", func(t *testing.T) {
		parent := mustRank(t, "Officer")
		pb := mustRank(t, "Officer I")
		parent.InsertPayBand(0, pb)

		removed, idx := parent.RemovePayBand(pb.ID)

		assert.Same(t, pb, removed)
		assert.Equal(t, 0, idx)
		assert.Nil(t, pb.ParentID)
		assert.False(t, parent.IsParent)
		assert.Empty(t, parent.PayBands)
	})

	t.Run("keeps flag while pay bands remain", func(t *testing.T) {
		parent := mustRank(t, "Officer")
		a, b := mustRank(t, "A"), mustRank(t, "B")
		parent.InsertPayBand(0, a)
		parent.InsertPayBand(1, b)

		_, idx := parent.RemovePayBand(b.ID)

		assert.Equal(t, 1, idx)
		assert.True(t, parent.IsParent)
		assert.Equal(t, []*Rank{a}, parent.PayBands)
	})

	t.Run("reports missing pay band", func(t *testing.T) {
		parent := mustRank(t, "Officer")
		removed, idx := parent.RemovePayBand(mustRank(t, "X").ID)

		assert.Nil(t, removed)
		assert.Equal(t, -1, idx)
	})
}

func TestRank_FindStation(t *testing.T) {
	r := mustRank(t, "Officer")
	mission := NewStationAssignment("Mission Row")
	r.Stations = append(r.Stations, mission)

	assert.Same(t, mission, r.FindStation("MISSION ROW"))
	assert.Nil(t, r.FindStation("Vespucci"))
}

func TestCloneRank(t *testing.T) {
	record := &StationRecord{Name: "Mission Row", Agency: "LSPD"}
	src := mustRank(t, "Officer")
	src.Salary = 1200
	src.Outfits = []string{"Class A"}
	src.Vehicles = []*Vehicle{NewVehicle("police", "Cruiser", "LSPD")}
	src.Stations = []*StationAssignment{{StationName: "Mission Row", Zones: []string{"DOWNT"}, Station: record}}
	src.InsertPayBand(0, mustRank(t, "Officer I"))

	clone := CloneRank(src)

	assert.NotEqual(t, src.ID, clone.ID)
	assert.Equal(t, src.Name, clone.Name)
	assert.Equal(t, src.Salary, clone.Salary)
	assert.Nil(t, clone.ParentID)
	assert.True(t, clone.IsParent)

	require.Len(t, clone.PayBands, 1)
	assert.NotSame(t, src.PayBands[0], clone.PayBands[0])
	assert.NotEqual(t, src.PayBands[0].ID, clone.PayBands[0].ID)
	assert.Equal(t, clone.ID, *clone.PayBands[0].ParentID)

	require.Len(t, clone.Stations, 1)
	assert.NotSame(t, src.Stations[0], clone.Stations[0])
	assert.Same(t, record, clone.Stations[0].Station)
	assert.Equal(t, src.Stations[0].Zones, clone.Stations[0].Zones)
	assert.NotSame(t, src.Vehicles[0], clone.Vehicles[0])
	assert.Equal(t, *src.Vehicles[0], *clone.Vehicles[0])

	clone.Outfits[0] = "changed"
	clone.Stations[0].Zones[0] = "changed"
	assert.Equal(t, "Class A", src.Outfits[0])
	assert.Equal(t, "DOWNT", src.Stations[0].Zones[0])
}

func TestRank_MovePayBand(t *testing.T) {
	parent := mustRank(t, "Officer")
	a, b := mustRank(t, "Officer I"), mustRank(t, "Officer II")
	parent.InsertPayBand(0, a)
	parent.InsertPayBand(1, b)

	from, to := parent.MovePayBand(b.ID, 0)

	assert.Equal(t, 1, from)
	assert.Equal(t, 0, to)
	assert.Equal(t, []*Rank{b, a}, parent.PayBands)
	assert.True(t, parent.IsParent)
	assert.Equal(t, parent.ID, *b.ParentID)

	from, _ = parent.MovePayBand(mustRank(t, "X").ID, 0)
	assert.Equal(t, -1, from)
}
