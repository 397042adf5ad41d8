package rankedit

import (
	"fmt"

	"github.com/rankeditor/backend/internal/domain/roster"
)

// MoveRankCommand reorders a rank inside the list that owns it: the
// top-level list or its parent's pay bands
type MoveRankCommand struct {
	roster      *roster.Roster
	rank        *roster.Rank
	parent      *roster.Rank // nil for a top-level rank
	index       int
	from        int
	notifier    Notifier
	description string
}

// NewMoveRankCommand creates a command moving a top-level rank to index
func NewMoveRankCommand(r *roster.Roster, rank *roster.Rank, index int, n Notifier) (*MoveRankCommand, error) {
	if err := checkArgs(
		required("roster", r != nil),
		required("rank", rank != nil),
		required("notifier", n != nil),
	); err != nil {
		return nil, err
	}
	return &MoveRankCommand{
		roster:      r,
		rank:        rank,
		index:       index,
		from:        -1,
		notifier:    n,
		description: fmt.Sprintf("Move rank '%s'", rank.Name),
	}, nil
}

// NewMovePayBandCommand creates a command moving payBand to index within
// parent's pay bands
func NewMovePayBandCommand(r *roster.Roster, parent, payBand *roster.Rank, index int, n Notifier) (*MoveRankCommand, error) {
	if err := checkArgs(
		required("roster", r != nil),
		required("parent", parent != nil),
		required("payBand", payBand != nil),
		required("notifier", n != nil),
	); err != nil {
		return nil, err
	}
	return &MoveRankCommand{
		roster:      r,
		rank:        payBand,
		parent:      parent,
		index:       index,
		from:        -1,
		notifier:    n,
		description: fmt.Sprintf("Move pay band '%s' in '%s'", payBand.Name, parent.Name),
	}, nil
}

// Execute implements history.Command
func (c *MoveRankCommand) Execute() error {
	from, err := c.move(c.index)
	if err != nil {
		return err
	}
	c.from = from
	return nil
}

// Undo implements history.Command
func (c *MoveRankCommand) Undo() error {
	_, err := c.move(c.from)
	return err
}

// Description implements history.Command
func (c *MoveRankCommand) Description() string {
	return c.description
}

func (c *MoveRankCommand) move(index int) (int, error) {
	if c.parent == nil {
		from, _ := c.roster.Move(c.rank.ID, index)
		if from < 0 {
			return -1, notFoundInList(c.rank)
		}
		notifyChanged(c.notifier)
		return from, nil
	}

	parent, err := resolveParent(c.roster, c.parent)
	if err != nil {
		return -1, err
	}
	from, _ := parent.MovePayBand(c.rank.ID, index)
	if from < 0 {
		return -1, notFoundInParent(c.rank)
	}
	c.notifier.Renumber(parent)
	notifyChanged(c.notifier)
	return from, nil
}
