package rankedit

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rankeditor/backend/internal/domain/roster"
)

// CloneRankCommand inserts a caller-built clone either into the top-level
// list or into a parent's pay bands. Building the clone is up to the caller
// (see roster.CloneRank).
type CloneRankCommand struct {
	placement   placement
	clone       *roster.Rank
	parent      *roster.Rank
	description string
}

// NewCloneRankCommand creates a command inserting clone as a top-level rank
func NewCloneRankCommand(r *roster.Roster, clone *roster.Rank, index int, n Notifier) (*CloneRankCommand, error) {
	if err := checkArgs(
		required("roster", r != nil),
		required("clone", clone != nil),
		required("notifier", n != nil),
	); err != nil {
		return nil, err
	}
	return &CloneRankCommand{
		placement: &rankPlacement{
			roster:   r,
			rank:     clone,
			index:    index,
			notifier: n,
		},
		clone:       clone,
		description: fmt.Sprintf("Clone rank '%s'", clone.Name),
	}, nil
}

// NewClonePayBandCommand creates a command inserting clone into parent's pay
// bands. It follows the AddPayBandCommand contract.
func NewClonePayBandCommand(r *roster.Roster, parent, clone *roster.Rank, index int, n Notifier) (*CloneRankCommand, error) {
	if err := checkArgs(
		required("roster", r != nil),
		required("parent", parent != nil),
		required("clone", clone != nil),
		required("notifier", n != nil),
	); err != nil {
		return nil, err
	}
	return &CloneRankCommand{
		placement: &payBandPlacement{
			roster:   r,
			parent:   parent,
			payBand:  clone,
			index:    index,
			notifier: n,
		},
		clone:       clone,
		parent:      parent,
		description: fmt.Sprintf("Clone pay band '%s' in '%s'", clone.Name, parent.Name),
	}, nil
}

// Execute implements history.Command
func (c *CloneRankCommand) Execute() error {
	return c.placement.insert()
}

// Undo implements history.Command
func (c *CloneRankCommand) Undo() error {
	return c.placement.remove()
}

// Description implements history.Command
func (c *CloneRankCommand) Description() string {
	return c.description
}

// ClonedRankID returns the identity of the inserted clone
func (c *CloneRankCommand) ClonedRankID() uuid.UUID {
	return c.clone.ID
}

// ParentID returns the parent the clone goes under, or nil for a top-level clone
func (c *CloneRankCommand) ParentID() *uuid.UUID {
	if c.parent == nil {
		return nil
	}
	id := c.parent.ID
	return &id
}
