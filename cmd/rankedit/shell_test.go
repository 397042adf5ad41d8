package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rankeditor/backend/internal/application/history"
	"github.com/rankeditor/backend/internal/application/rankedit"
	"github.com/rankeditor/backend/internal/infrastructure/config"
	"github.com/rankeditor/backend/internal/infrastructure/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, opts appOptions) *app {
	t.Helper()
	cfg := &config.Config{History: config.HistoryConfig{MaxUndo: 5}}
	a, err := wire(context.Background(), cfg, zap.NewNop(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(context.Background()) })
	return a
}

func runShell(t *testing.T, a *app, script string) string {
	t.Helper()
	var out bytes.Buffer
	sh := newShell(a.service, strings.NewReader(script), &out, zap.NewNop())
	require.NoError(t, sh.Run(a.ctx))
	return out.String()
}

func TestShell_EditAndUndo(t *testing.T) {
	a := newTestApp(t, appOptions{})

	out := runShell(t, a, strings.Join([]string{
		`add Officer 1000 0`,
		`add "Senior Officer" 1500 100`,
		`band officer Custom`,
		`band officer Another`,
		`list`,
		`undo`,
		`quit`,
		`add "Never Reached"`,
	}, "\n"))

	assert.Contains(t, out, "ok: Add rank 'Officer'")
	assert.Contains(t, out, "ok: Add pay band 'Custom' to 'Officer'")
	assert.Contains(t, out, "Officer I")
	assert.Contains(t, out, "Officer II")
	assert.Contains(t, out, "undone: Add pay band 'Another' to 'Officer'")

	ranks := a.service.Roster().Ranks()
	require.Len(t, ranks, 2)
	require.Len(t, ranks[0].PayBands, 1)
	assert.Equal(t, "Officer I", ranks[0].PayBands[0].Name)
}

func TestShell_PositionsAndCopy(t *testing.T) {
	a := newTestApp(t, appOptions{})

	out := runShell(t, a, strings.Join([]string{
		`add A`,
		`add B`,
		`add C`,
		`outfit add #1 "Class A" "Class B"`,
		`station A "Mission Row" Vespucci`,
		`copy outfits A B C`,
		`copy stations #1 #2 --overwrite`,
		`move C 1`,
		`history`,
	}, "\n"))

	assert.Contains(t, out, "ok: Copy outfits from 'A' to 2 ranks")
	assert.Contains(t, out, "ok: Move rank 'C'")
	assert.Contains(t, out, "undo slots used")

	ranks := a.service.Roster().Ranks()
	assert.Equal(t, "C", ranks[0].Name)
	assert.Equal(t, []string{"Class A", "Class B"}, ranks[0].Outfits)
	assert.Len(t, ranks[2].Stations, 2)
}

func TestShell_Errors(t *testing.T) {
	a := newTestApp(t, appOptions{})

	out := runShell(t, a, strings.Join([]string{
		`bogus`,
		`add`,
		`remove Nobody`,
		`add "Unclosed`,
		`add X -5`,
		`add Y`,
		`move Y zero`,
		`promote Y`,
		`undo`,
		`undo`,
		`redo`,
		`redo`,
		`redo`,
	}, "\n"))

	assert.Contains(t, out, `error: unknown command "bogus"`)
	assert.Contains(t, out, "error: usage: add <name> [salary] [points]")
	assert.Contains(t, out, "error: rank 'Nobody' not found")
	assert.Contains(t, out, "error: Rank salary cannot be negative")
	assert.Contains(t, out, `error: invalid position "zero"`)
	assert.Contains(t, out, "error: 'Y' is not a pay band")
	assert.Contains(t, out, "nothing to undo")
	assert.Contains(t, out, "redone: Add rank 'Y'")
	assert.Contains(t, out, "nothing to redo")
}

func TestShell_ShowAndHelp(t *testing.T) {
	a := newTestApp(t, appOptions{})

	out := runShell(t, a, strings.Join([]string{
		`add Officer`,
		`vehicle Officer police "Police Cruiser" LSPD`,
		`station Officer "Mission Row"`,
		`salary officer 2500`,
		`show officer`,
		`help`,
	}, "\n"))

	assert.Contains(t, out, "Officer (salary 2500, points 0)")
	assert.Contains(t, out, "Outfits: ")
	assert.Contains(t, out, "copy <stations|vehicles|outfits>")

	rank := a.service.Roster().At(0)
	require.Len(t, rank.Vehicles, 1)
	assert.Equal(t, "Police Cruiser", rank.Vehicles[0].DisplayName)
	require.Len(t, rank.Stations, 1)
	assert.Equal(t, "Mission Row", rank.Stations[0].StationName)
}

func TestShell_LineEditing(t *testing.T) {
	a := newTestApp(t, appOptions{})

	// 0x7f is backspace, CRLF endings come from interactive terminals
	out := runShell(t, a, "add Officerx\x7f 100\r\n\r\nadd Sergeant\r")

	assert.Contains(t, out, prompt)
	assert.Contains(t, out, "ok: Add rank 'Officer'")
	ranks := a.service.Roster().Ranks()
	require.Len(t, ranks, 2)
	assert.Equal(t, "Officer", ranks[0].Name)
	assert.Equal(t, 100, ranks[0].Salary)
	assert.Equal(t, "Sergeant", ranks[1].Name)
}

func TestApp_NoRenumber(t *testing.T) {
	a := newTestApp(t, appOptions{noRenumber: true})

	runShell(t, a, "add Officer\nband Officer Custom\n")

	assert.Equal(t, "Custom", a.service.Roster().At(0).PayBands[0].Name)
}

func TestApp_Journal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	a := newTestApp(t, appOptions{journal: path})

	runShell(t, a, "add Officer\nundo\n")
	a.Close(context.Background())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	events, err := event.ReadJournal(f, newEventSerializer())
	require.NoError(t, err)

	var types []string
	for _, e := range events {
		types = append(types, e.EventType())
	}
	assert.Equal(t, []string{
		rankedit.EventTypeRosterRefreshRequested,
		rankedit.EventTypeRosterChanged,
		history.EventTypeStacksChanged,
		rankedit.EventTypeRosterRefreshRequested,
		rankedit.EventTypeRosterChanged,
		history.EventTypeStacksChanged,
	}, types)
}

func TestRomanNumeral(t *testing.T) {
	tests := map[int]string{1: "I", 2: "II", 4: "IV", 9: "IX", 14: "XIV", 40: "XL", 1994: "MCMXCIV"}
	for n, want := range tests {
		assert.Equal(t, want, romanNumeral(n))
	}
}
