package rankedit

import (
	"fmt"
	"slices"

	"github.com/rankeditor/backend/internal/domain/roster"
	"github.com/rankeditor/backend/internal/domain/shared"
)

// Bulk command instantiations per collection
type (
	BulkAddOutfitsCommand               = BulkAddCommand[string]
	BulkRemoveOutfitsCommand            = BulkRemoveCommand[string]
	BulkAddStationAssignmentsCommand    = BulkAddCommand[*roster.StationAssignment]
	BulkRemoveStationAssignmentsCommand = BulkRemoveCommand[*roster.StationAssignment]
	BulkAddVehiclesCommand              = BulkAddCommand[*roster.Vehicle]
	BulkRemoveVehiclesCommand           = BulkRemoveCommand[*roster.Vehicle]
)

// BulkAddCommand appends a batch of items to one of a rank's global
// collections
type BulkAddCommand[T comparable] struct {
	kind        *collectionKind[T]
	rank        *roster.Rank
	items       []T
	notifier    Notifier
	description string
}

// NewBulkAddOutfitsCommand appends outfits to rank
func NewBulkAddOutfitsCommand(rank *roster.Rank, outfits []string, n Notifier) (*BulkAddOutfitsCommand, error) {
	return newBulkAdd(outfitKind, "outfit", rank, outfits, n)
}

// NewBulkAddStationAssignmentsCommand appends station assignments to rank
func NewBulkAddStationAssignmentsCommand(rank *roster.Rank, stations []*roster.StationAssignment, n Notifier) (*BulkAddStationAssignmentsCommand, error) {
	return newBulkAdd(stationKind, "station assignment", rank, stations, n)
}

// NewBulkAddVehiclesCommand appends vehicles to rank
func NewBulkAddVehiclesCommand(rank *roster.Rank, vehicles []*roster.Vehicle, n Notifier) (*BulkAddVehiclesCommand, error) {
	return newBulkAdd(vehicleKind, "vehicle", rank, vehicles, n)
}

func newBulkAdd[T comparable](kind *collectionKind[T], noun string, rank *roster.Rank, items []T, n Notifier) (*BulkAddCommand[T], error) {
	if err := checkArgs(
		required("rank", rank != nil),
		required("items", len(items) > 0),
		required("notifier", n != nil),
	); err != nil {
		return nil, err
	}
	return &BulkAddCommand[T]{
		kind:        kind,
		rank:        rank,
		items:       slices.Clone(items),
		notifier:    n,
		description: fmt.Sprintf("Add %s to '%s'", countOf(len(items), noun), rank.Name),
	}, nil
}

// Execute implements history.Command
func (c *BulkAddCommand[T]) Execute() error {
	list := c.kind.global(c.rank)
	*list = append(*list, c.items...)
	notifyChanged(c.notifier)
	return nil
}

// Undo implements history.Command
func (c *BulkAddCommand[T]) Undo() error {
	list := c.kind.global(c.rank)
	for i := len(c.items) - 1; i >= 0; i-- {
		removeItem(list, c.items[i])
	}
	notifyChanged(c.notifier)
	return nil
}

// Description implements history.Command
func (c *BulkAddCommand[T]) Description() string {
	return c.description
}

// BulkRemoveCommand removes a batch of items from one of a rank's global
// collections. Undo puts each item back at the index it was removed from.
type BulkRemoveCommand[T comparable] struct {
	kind        *collectionKind[T]
	rank        *roster.Rank
	items       []T
	indices     []int
	notifier    Notifier
	description string
}

// NewBulkRemoveOutfitsCommand removes outfits from rank
func NewBulkRemoveOutfitsCommand(rank *roster.Rank, outfits []string, n Notifier) (*BulkRemoveOutfitsCommand, error) {
	return newBulkRemove(outfitKind, "outfit", rank, outfits, n)
}

// NewBulkRemoveStationAssignmentsCommand removes station assignments from rank
func NewBulkRemoveStationAssignmentsCommand(rank *roster.Rank, stations []*roster.StationAssignment, n Notifier) (*BulkRemoveStationAssignmentsCommand, error) {
	return newBulkRemove(stationKind, "station assignment", rank, stations, n)
}

// NewBulkRemoveVehiclesCommand removes vehicles from rank
func NewBulkRemoveVehiclesCommand(rank *roster.Rank, vehicles []*roster.Vehicle, n Notifier) (*BulkRemoveVehiclesCommand, error) {
	return newBulkRemove(vehicleKind, "vehicle", rank, vehicles, n)
}

func newBulkRemove[T comparable](kind *collectionKind[T], noun string, rank *roster.Rank, items []T, n Notifier) (*BulkRemoveCommand[T], error) {
	if err := checkArgs(
		required("rank", rank != nil),
		required("items", len(items) > 0),
		required("notifier", n != nil),
	); err != nil {
		return nil, err
	}
	return &BulkRemoveCommand[T]{
		kind:        kind,
		rank:        rank,
		items:       slices.Clone(items),
		notifier:    n,
		description: fmt.Sprintf("Remove %s from '%s'", countOf(len(items), noun), rank.Name),
	}, nil
}

// Execute implements history.Command
func (c *BulkRemoveCommand[T]) Execute() error {
	list := c.kind.global(c.rank)

	// Resolve every item against a scratch copy so a missing one leaves the
	// rank untouched
	remaining := slices.Clone(*list)
	indices := make([]int, 0, len(c.items))
	for _, item := range c.items {
		i := slices.Index(remaining, item)
		if i < 0 {
			return shared.NewDomainErrorf(CodeItemNotFound, "'%s' not found in '%s'", c.kind.key(item), c.rank.Name)
		}
		remaining = roster.RemoveAt(remaining, i)
		indices = append(indices, i)
	}

	*list = remaining
	c.indices = indices
	notifyChanged(c.notifier)
	return nil
}

// Undo implements history.Command
func (c *BulkRemoveCommand[T]) Undo() error {
	list := c.kind.global(c.rank)
	for i := len(c.items) - 1; i >= 0; i-- {
		*list, _ = roster.InsertAt(*list, c.indices[i], c.items[i])
	}
	notifyChanged(c.notifier)
	return nil
}

// Description implements history.Command
func (c *BulkRemoveCommand[T]) Description() string {
	return c.description
}
