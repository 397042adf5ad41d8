package rankedit

import (
	"testing"

	"github.com/rankeditor/backend/internal/domain/roster"
	"github.com/stretchr/testify/require"
)

// recordingNotifier keeps every notification in call order
type recordingNotifier struct {
	calls []string
}

func (n *recordingNotifier) Refresh() {
	n.calls = append(n.calls, "refresh")
}

func (n *recordingNotifier) DataChanged() {
	n.calls = append(n.calls, "changed")
}

func (n *recordingNotifier) Renumber(parent *roster.Rank) {
	n.calls = append(n.calls, "renumber:"+parent.Name)
}

func (n *recordingNotifier) count(call string) int {
	c := 0
	for _, got := range n.calls {
		if got == call {
			c++
		}
	}
	return c
}

func (n *recordingNotifier) reset() {
	n.calls = nil
}

func mustRank(t *testing.T, name string) *roster.Rank {
	t.Helper()
	r, err := roster.NewRank(roster.RankParams{Name: name})
	require.NoError(t, err)
	return r
}

func withPayBands(t *testing.T, parent *roster.Rank, names ...string) []*roster.Rank {
	t.Helper()
	out := make([]*roster.Rank, 0, len(names))
	for _, name := range names {
		pb := mustRank(t, name)
		parent.InsertPayBand(len(parent.PayBands), pb)
		out = append(out, pb)
	}
	return out
}
