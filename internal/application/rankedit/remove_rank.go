package rankedit

import (
	"fmt"

	"github.com/rankeditor/backend/internal/domain/roster"
)

// RemoveRankCommand removes either a top-level rank or a pay band. Undo puts
// the rank back at the index it had when it was removed.
type RemoveRankCommand struct {
	roster      *roster.Roster
	rank        *roster.Rank
	parent      *roster.Rank // nil for a top-level rank
	index       int
	notifier    Notifier
	description string
}

// NewRemoveRankCommand creates a command removing a top-level rank
func NewRemoveRankCommand(r *roster.Roster, rank *roster.Rank, n Notifier) (*RemoveRankCommand, error) {
	if err := checkArgs(
		required("roster", r != nil),
		required("rank", rank != nil),
		required("notifier", n != nil),
	); err != nil {
		return nil, err
	}
	return &RemoveRankCommand{
		roster:      r,
		rank:        rank,
		index:       -1,
		notifier:    n,
		description: fmt.Sprintf("Remove rank '%s'", rank.Name),
	}, nil
}

// NewRemovePayBandCommand creates a command removing payBand from parent
func NewRemovePayBandCommand(r *roster.Roster, parent, payBand *roster.Rank, n Notifier) (*RemoveRankCommand, error) {
	if err := checkArgs(
		required("roster", r != nil),
		required("parent", parent != nil),
		required("payBand", payBand != nil),
		required("notifier", n != nil),
	); err != nil {
		return nil, err
	}
	return &RemoveRankCommand{
		roster:      r,
		rank:        payBand,
		parent:      parent,
		index:       -1,
		notifier:    n,
		description: fmt.Sprintf("Remove pay band '%s' from '%s'", payBand.Name, parent.Name),
	}, nil
}

// Execute implements history.Command
func (c *RemoveRankCommand) Execute() error {
	if c.parent == nil {
		_, at := c.roster.Remove(c.rank.ID)
		if at < 0 {
			return notFoundInList(c.rank)
		}
		c.index = at
		notifyChanged(c.notifier)
		return nil
	}

	parent, err := resolveParent(c.roster, c.parent)
	if err != nil {
		return err
	}
	if parent.PayBandIndex(c.rank.ID) < 0 {
		return notFoundInParent(c.rank)
	}
	c.index, err = detachPayBand(c.notifier, parent, c.rank)
	return err
}

// Undo implements history.Command
func (c *RemoveRankCommand) Undo() error {
	if c.parent == nil {
		c.roster.Insert(c.index, c.rank)
		notifyChanged(c.notifier)
		return nil
	}

	parent, err := resolveParent(c.roster, c.parent)
	if err != nil {
		return err
	}
	attachPayBand(c.notifier, parent, c.rank, c.index)
	return nil
}

// Description implements history.Command
func (c *RemoveRankCommand) Description() string {
	return c.description
}

// IsPayBand reports whether the command removes a pay band
func (c *RemoveRankCommand) IsPayBand() bool {
	return c.parent != nil
}

// RemoveAllRanksCommand empties the top-level list. The list is captured
// when the command is built and restored as-is on undo.
type RemoveAllRanksCommand struct {
	roster      *roster.Roster
	snapshot    []*roster.Rank
	notifier    Notifier
	description string
}

// NewRemoveAllRanksCommand creates a command clearing the roster
func NewRemoveAllRanksCommand(r *roster.Roster, n Notifier) (*RemoveAllRanksCommand, error) {
	if err := checkArgs(
		required("roster", r != nil),
		required("notifier", n != nil),
	); err != nil {
		return nil, err
	}
	snapshot := r.Ranks()
	return &RemoveAllRanksCommand{
		roster:      r,
		snapshot:    snapshot,
		notifier:    n,
		description: "Remove all " + countOf(len(snapshot), "rank"),
	}, nil
}

// Execute implements history.Command
func (c *RemoveAllRanksCommand) Execute() error {
	c.roster.Clear()
	notifyChanged(c.notifier)
	return nil
}

// Undo implements history.Command
func (c *RemoveAllRanksCommand) Undo() error {
	c.roster.Replace(c.snapshot)
	notifyChanged(c.notifier)
	return nil
}

// Description implements history.Command
func (c *RemoveAllRanksCommand) Description() string {
	return c.description
}

// Count returns the number of ranks captured
func (c *RemoveAllRanksCommand) Count() int {
	return len(c.snapshot)
}
