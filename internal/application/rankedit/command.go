// Package rankedit holds the undoable edit commands of the rank roster and
// the service that runs them through the history manager.
//
// Commands keep references to the entities they edit but re-resolve the
// position of every entity by ID when they execute or undo, so a roster
// changed behind their back surfaces as a not-found error instead of a
// corrupted graph.
package rankedit

import (
	"github.com/rankeditor/backend/internal/application/history"
	"github.com/rankeditor/backend/internal/domain/roster"
	"github.com/rankeditor/backend/internal/domain/shared"
)

// arg pairs a constructor parameter name with whether it was supplied
type arg struct {
	name    string
	present bool
}

func required(name string, present bool) arg {
	return arg{name: name, present: present}
}

// checkArgs returns an INVALID_ARGUMENT error naming the first missing parameter
func checkArgs(args ...arg) error {
	for _, a := range args {
		if !a.present {
			return shared.RequiredArgument(a.name)
		}
	}
	return nil
}

// resolveParent finds parent among the top-level ranks of r
func resolveParent(r *roster.Roster, parent *roster.Rank) (*roster.Rank, error) {
	found := r.Find(parent.ID)
	if found == nil {
		return nil, parentNotFound(parent)
	}
	return found, nil
}

// attachPayBand inserts payBand into parent and notifies. Renumbering is
// always needed since a new member shifts the numbering.
func attachPayBand(n Notifier, parent, payBand *roster.Rank, index int) int {
	at := parent.InsertPayBand(index, payBand)
	n.Renumber(parent)
	n.Refresh()
	n.DataChanged()
	return at
}

// detachPayBand removes payBand from parent and notifies. Renumbering is
// skipped when parent has no pay bands left. It returns the former index.
func detachPayBand(n Notifier, parent, payBand *roster.Rank) (int, error) {
	_, at := parent.RemovePayBand(payBand.ID)
	if at < 0 {
		return -1, payBandNotFound(payBand, parent)
	}
	if parent.IsParent {
		n.Renumber(parent)
	}
	n.Refresh()
	n.DataChanged()
	return at, nil
}

func notifyChanged(n Notifier) {
	n.Refresh()
	n.DataChanged()
}

var (
	_ history.Command = (*AddPayBandCommand)(nil)
	_ history.Command = (*AddRankCommand)(nil)
	_ history.Command = (*PromoteRankCommand)(nil)
	_ history.Command = (*RemoveRankCommand)(nil)
	_ history.Command = (*CloneRankCommand)(nil)
	_ history.Command = (*RemoveAllRanksCommand)(nil)
	_ history.Command = (*MoveRankCommand)(nil)
	_ history.Command = (*CopyStationAssignmentsFromRankCommand)(nil)
	_ history.Command = (*CopyStationAssignmentsToRankCommand)(nil)
	_ history.Command = (*CopyVehiclesFromRankCommand)(nil)
	_ history.Command = (*CopyVehiclesToRankCommand)(nil)
	_ history.Command = (*CopyOutfitsFromRankCommand)(nil)
	_ history.Command = (*CopyOutfitsToRankCommand)(nil)
	_ history.Command = (*BulkAddOutfitsCommand)(nil)
	_ history.Command = (*BulkRemoveOutfitsCommand)(nil)
	_ history.Command = (*BulkAddStationAssignmentsCommand)(nil)
	_ history.Command = (*BulkRemoveStationAssignmentsCommand)(nil)
	_ history.Command = (*BulkAddVehiclesCommand)(nil)
	_ history.Command = (*BulkRemoveVehiclesCommand)(nil)
)
