package rankedit

import (
	"fmt"

	"github.com/rankeditor/backend/internal/domain/roster"
	"github.com/rankeditor/backend/internal/domain/shared"
)

var errSameRank = shared.NewDomainError(shared.CodeInvalidArgument, "source and target must be different ranks")

// addedItem records where an additive copy put a new item
type addedItem[T comparable] struct {
	list *[]T
	item T
}

// CopyFromRankCommand merges one collection of source into target. Items
// whose key already exists at the destination are skipped; the rest are
// deep-copied and appended.
type CopyFromRankCommand[T comparable] struct {
	kind        *collectionKind[T]
	source      *roster.Rank
	target      *roster.Rank
	notifier    Notifier
	added       []addedItem[T]
	description string
}

// Copy command instantiations per collection
type (
	CopyStationAssignmentsFromRankCommand = CopyFromRankCommand[*roster.StationAssignment]
	CopyVehiclesFromRankCommand           = CopyFromRankCommand[*roster.Vehicle]
	CopyOutfitsFromRankCommand            = CopyFromRankCommand[string]
	CopyStationAssignmentsToRankCommand   = CopyToRankCommand[*roster.StationAssignment]
	CopyVehiclesToRankCommand             = CopyToRankCommand[*roster.Vehicle]
	CopyOutfitsToRankCommand              = CopyToRankCommand[string]
)

// NewCopyStationAssignmentsFromRankCommand adds source's missing station assignments to target
func NewCopyStationAssignmentsFromRankCommand(source, target *roster.Rank, n Notifier) (*CopyStationAssignmentsFromRankCommand, error) {
	return newCopyFromRank(stationKind, source, target, n)
}

// NewCopyVehiclesFromRankCommand adds source's missing vehicles to target
func NewCopyVehiclesFromRankCommand(source, target *roster.Rank, n Notifier) (*CopyVehiclesFromRankCommand, error) {
	return newCopyFromRank(vehicleKind, source, target, n)
}

// NewCopyOutfitsFromRankCommand adds source's missing outfits to target
func NewCopyOutfitsFromRankCommand(source, target *roster.Rank, n Notifier) (*CopyOutfitsFromRankCommand, error) {
	return newCopyFromRank(outfitKind, source, target, n)
}

func newCopyFromRank[T comparable](kind *collectionKind[T], source, target *roster.Rank, n Notifier) (*CopyFromRankCommand[T], error) {
	if err := checkArgs(
		required("source", source != nil),
		required("target", target != nil),
		required("notifier", n != nil),
	); err != nil {
		return nil, err
	}
	if source == target {
		return nil, errSameRank
	}
	return &CopyFromRankCommand[T]{
		kind:        kind,
		source:      source,
		target:      target,
		notifier:    n,
		description: fmt.Sprintf("Copy %s from '%s' to '%s'", plural.Plural(kind.noun), source.Name, target.Name),
	}, nil
}

// Execute implements history.Command
func (c *CopyFromRankCommand[T]) Execute() error {
	c.added = nil
	seen := make(map[*[]T]roster.KeySet)

	c.kind.route(c.source, c.target, func(dst *[]T, item T) {
		keys, ok := seen[dst]
		if !ok {
			keys = c.kind.keys(*dst)
			seen[dst] = keys
		}
		key := c.kind.key(item)
		if keys.Has(key) {
			return
		}
		keys.Add(key)

		copied := c.kind.clone(item)
		*dst = append(*dst, copied)
		c.added = append(c.added, addedItem[T]{list: dst, item: copied})
	})

	notifyChanged(c.notifier)
	return nil
}

// Undo implements history.Command
func (c *CopyFromRankCommand[T]) Undo() error {
	for i := len(c.added) - 1; i >= 0; i-- {
		removeItem(c.added[i].list, c.added[i].item)
	}
	notifyChanged(c.notifier)
	return nil
}

// Description implements history.Command
func (c *CopyFromRankCommand[T]) Description() string {
	return c.description
}

// AddedCount returns how many items the last Execute added
func (c *CopyFromRankCommand[T]) AddedCount() int {
	return len(c.added)
}

// savedList is a target list as it was before an overwrite
type savedList[T comparable] struct {
	list  *[]T
	items []T
}

// CopyToRankCommand replaces one collection of target, global and
// station-scoped, with deep copies of source's
type CopyToRankCommand[T comparable] struct {
	kind        *collectionKind[T]
	source      *roster.Rank
	target      *roster.Rank
	notifier    Notifier
	saved       []savedList[T]
	description string
}

// NewCopyStationAssignmentsToRankCommand overwrites target's station assignments with source's
func NewCopyStationAssignmentsToRankCommand(source, target *roster.Rank, n Notifier) (*CopyStationAssignmentsToRankCommand, error) {
	return newCopyToRank(stationKind, source, target, n)
}

// NewCopyVehiclesToRankCommand overwrites target's vehicles with source's
func NewCopyVehiclesToRankCommand(source, target *roster.Rank, n Notifier) (*CopyVehiclesToRankCommand, error) {
	return newCopyToRank(vehicleKind, source, target, n)
}

// NewCopyOutfitsToRankCommand overwrites target's outfits with source's
func NewCopyOutfitsToRankCommand(source, target *roster.Rank, n Notifier) (*CopyOutfitsToRankCommand, error) {
	return newCopyToRank(outfitKind, source, target, n)
}

func newCopyToRank[T comparable](kind *collectionKind[T], source, target *roster.Rank, n Notifier) (*CopyToRankCommand[T], error) {
	if err := checkArgs(
		required("source", source != nil),
		required("target", target != nil),
		required("notifier", n != nil),
	); err != nil {
		return nil, err
	}
	if source == target {
		return nil, errSameRank
	}
	return &CopyToRankCommand[T]{
		kind:     kind,
		source:   source,
		target:   target,
		notifier: n,
		description: fmt.Sprintf("Copy %s from '%s' to '%s' (overwrite)",
			countOf(kind.count(source), kind.noun), source.Name, target.Name),
	}, nil
}

// Execute implements history.Command
func (c *CopyToRankCommand[T]) Execute() error {
	// Source and target may share station assignments, so every copy is
	// staged before any target list is cleared
	staged := make(map[*[]T][]T)
	c.kind.route(c.source, c.target, func(dst *[]T, item T) {
		staged[dst] = append(staged[dst], c.kind.clone(item))
	})

	lists := c.kind.lists(c.target)
	c.saved = make([]savedList[T], 0, len(lists))
	for _, l := range lists {
		c.saved = append(c.saved, savedList[T]{list: l, items: *l})
		*l = staged[l]
	}

	notifyChanged(c.notifier)
	return nil
}

// Undo implements history.Command
func (c *CopyToRankCommand[T]) Undo() error {
	for i := len(c.saved) - 1; i >= 0; i-- {
		*c.saved[i].list = c.saved[i].items
	}
	notifyChanged(c.notifier)
	return nil
}

// Description implements history.Command
func (c *CopyToRankCommand[T]) Description() string {
	return c.description
}
