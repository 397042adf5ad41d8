package rankedit

import (
	"fmt"

	"github.com/rankeditor/backend/internal/domain/roster"
)

// PromoteRankCommand turns a pay band into an independent top-level rank
type PromoteRankCommand struct {
	roster        *roster.Roster
	payBand       *roster.Rank
	parent        *roster.Rank
	index         int
	originalIndex int
	notifier      Notifier
	description   string
}

// NewPromoteRankCommand creates a command moving payBand out of parent and
// into the roster at index
func NewPromoteRankCommand(r *roster.Roster, payBand, parent *roster.Rank, index int, n Notifier) (*PromoteRankCommand, error) {
	if err := checkArgs(
		required("roster", r != nil),
		required("payBand", payBand != nil),
		required("parent", parent != nil),
		required("notifier", n != nil),
	); err != nil {
		return nil, err
	}
	return &PromoteRankCommand{
		roster:        r,
		payBand:       payBand,
		parent:        parent,
		index:         index,
		originalIndex: -1,
		notifier:      n,
		description:   fmt.Sprintf("Promote '%s' to rank", payBand.Name),
	}, nil
}

// Execute implements history.Command
func (c *PromoteRankCommand) Execute() error {
	parent := c.roster.Find(c.parent.ID)
	if parent == nil {
		return originalParentNotFound(c.parent)
	}
	if parent.PayBandIndex(c.payBand.ID) < 0 {
		return notFoundInParent(c.payBand)
	}

	_, c.originalIndex = parent.RemovePayBand(c.payBand.ID)
	if parent.IsParent {
		c.notifier.Renumber(parent)
	}
	c.roster.Insert(c.index, c.payBand)

	notifyChanged(c.notifier)
	return nil
}

// Undo implements history.Command
func (c *PromoteRankCommand) Undo() error {
	parent := c.roster.Find(c.parent.ID)
	if parent == nil {
		return originalParentNotFound(c.parent)
	}
	if _, at := c.roster.Remove(c.payBand.ID); at < 0 {
		return notFoundInList(c.payBand)
	}

	parent.InsertPayBand(c.originalIndex, c.payBand)
	c.notifier.Renumber(parent)

	notifyChanged(c.notifier)
	return nil
}

// Description implements history.Command
func (c *PromoteRankCommand) Description() string {
	return c.description
}
