package rankedit

import (
	"fmt"

	"github.com/rankeditor/backend/internal/domain/roster"
)

// placement inserts or withdraws one prepared rank. It is shared by the
// commands whose only job is positional bookkeeping.
type placement interface {
	insert() error
	remove() error
}

// payBandPlacement puts a rank into a parent's pay bands
type payBandPlacement struct {
	roster   *roster.Roster
	parent   *roster.Rank
	payBand  *roster.Rank
	index    int
	notifier Notifier
}

func (p *payBandPlacement) insert() error {
	parent, err := resolveParent(p.roster, p.parent)
	if err != nil {
		return err
	}
	attachPayBand(p.notifier, parent, p.payBand, p.index)
	return nil
}

func (p *payBandPlacement) remove() error {
	parent, err := resolveParent(p.roster, p.parent)
	if err != nil {
		return err
	}
	_, err = detachPayBand(p.notifier, parent, p.payBand)
	return err
}

// rankPlacement puts a rank into the top-level list
type rankPlacement struct {
	roster   *roster.Roster
	rank     *roster.Rank
	index    int
	notifier Notifier
}

func (p *rankPlacement) insert() error {
	p.roster.Insert(p.index, p.rank)
	notifyChanged(p.notifier)
	return nil
}

func (p *rankPlacement) remove() error {
	if _, at := p.roster.Remove(p.rank.ID); at < 0 {
		return notFoundInList(p.rank)
	}
	notifyChanged(p.notifier)
	return nil
}

// AddPayBandCommand inserts a new pay band into a parent rank
type AddPayBandCommand struct {
	placement   *payBandPlacement
	description string
}

// NewAddPayBandCommand creates a command adding payBand to parent at index.
// An index outside [0, len] appends.
func NewAddPayBandCommand(r *roster.Roster, parent, payBand *roster.Rank, index int, n Notifier) (*AddPayBandCommand, error) {
	if err := checkArgs(
		required("roster", r != nil),
		required("parent", parent != nil),
		required("payBand", payBand != nil),
		required("notifier", n != nil),
	); err != nil {
		return nil, err
	}
	return &AddPayBandCommand{
		placement: &payBandPlacement{
			roster:   r,
			parent:   parent,
			payBand:  payBand,
			index:    index,
			notifier: n,
		},
		description: fmt.Sprintf("Add pay band '%s' to '%s'", payBand.Name, parent.Name),
	}, nil
}

// Execute implements history.Command
func (c *AddPayBandCommand) Execute() error {
	return c.placement.insert()
}

// Undo implements history.Command
func (c *AddPayBandCommand) Undo() error {
	return c.placement.remove()
}

// Description implements history.Command
func (c *AddPayBandCommand) Description() string {
	return c.description
}

// PayBand returns the pay band being added
func (c *AddPayBandCommand) PayBand() *roster.Rank {
	return c.placement.payBand
}

// AddRankCommand inserts a new independent rank into the top-level list
type AddRankCommand struct {
	placement   *rankPlacement
	description string
}

// NewAddRankCommand creates a command adding rank to the roster at index
func NewAddRankCommand(r *roster.Roster, rank *roster.Rank, index int, n Notifier) (*AddRankCommand, error) {
	if err := checkArgs(
		required("roster", r != nil),
		required("rank", rank != nil),
		required("notifier", n != nil),
	); err != nil {
		return nil, err
	}
	return &AddRankCommand{
		placement: &rankPlacement{
			roster:   r,
			rank:     rank,
			index:    index,
			notifier: n,
		},
		description: fmt.Sprintf("Add rank '%s'", rank.Name),
	}, nil
}

// Execute implements history.Command
func (c *AddRankCommand) Execute() error {
	return c.placement.insert()
}

// Undo implements history.Command
func (c *AddRankCommand) Undo() error {
	return c.placement.remove()
}

// Description implements history.Command
func (c *AddRankCommand) Description() string {
	return c.description
}

// Rank returns the rank being added
func (c *AddRankCommand) Rank() *roster.Rank {
	return c.placement.rank
}
