package roster

import (
	"slices"

	"github.com/google/uuid"
)

// Roster is the top-level, ordered rank list. It is the root ownership
// point of the rank graph: pay bands live inside their parent, not here.
type Roster struct {
	ranks []*Rank
}

// NewRoster creates a roster holding ranks in the given order
func NewRoster(ranks ...*Rank) *Roster {
	return &Roster{ranks: slices.Clone(ranks)}
}

// Ranks returns the top-level ranks in order. The slice is a copy; the
// ranks are the live objects.
func (r *Roster) Ranks() []*Rank {
	return slices.Clone(r.ranks)
}

// Len returns the number of top-level ranks
func (r *Roster) Len() int {
	return len(r.ranks)
}

// At returns the top-level rank at index i
func (r *Roster) At(i int) *Rank {
	return r.ranks[i]
}

// IndexOf returns the position of the top-level rank with the given ID, or -1
func (r *Roster) IndexOf(id uuid.UUID) int {
	return IndexOfRank(r.ranks, id)
}

// Find returns the top-level rank with the given ID, or nil
func (r *Roster) Find(id uuid.UUID) *Rank {
	if i := r.IndexOf(id); i >= 0 {
		return r.ranks[i]
	}
	return nil
}

// Locate finds a rank anywhere in the roster. For a pay band, parent is the
// top-level rank holding it; for a top-level rank, parent is nil.
func (r *Roster) Locate(id uuid.UUID) (rank, parent *Rank) {
	for _, top := range r.ranks {
		if top.ID == id {
			return top, nil
		}
		if i := top.PayBandIndex(id); i >= 0 {
			return top.PayBands[i], top
		}
	}
	return nil, nil
}

// Insert places rank at index, appending when index is out of range, and
// returns the index used
func (r *Roster) Insert(index int, rank *Rank) int {
	var at int
	r.ranks, at = InsertAt(r.ranks, index, rank)
	return at
}

// Remove detaches the top-level rank with the given ID and returns it along
// with its former index; index is -1 when it was not found
func (r *Roster) Remove(id uuid.UUID) (*Rank, int) {
	i := r.IndexOf(id)
	if i < 0 {
		return nil, -1
	}
	rank := r.ranks[i]
	r.ranks = RemoveAt(r.ranks, i)
	return rank, i
}

// Move repositions the top-level rank with the given ID. The rank is taken
// out first and then inserted at index against the shortened list. It
// returns the former and the new index; from is -1 when it was not found.
func (r *Roster) Move(id uuid.UUID, index int) (from, to int) {
	rank, from := r.Remove(id)
	if from < 0 {
		return -1, -1
	}
	return from, r.Insert(index, rank)
}

// Replace swaps the whole top-level list for ranks, keeping their order
func (r *Roster) Replace(ranks []*Rank) {
	r.ranks = slices.Clone(ranks)
}

// Clear removes every top-level rank
func (r *Roster) Clear() {
	r.ranks = nil
}

// InsertAt inserts v at index clamped to [0, len(s)]: a negative index
// inserts at the front, one past the end appends. It returns the grown slice
// and the index v ended up at.
func InsertAt[T any](s []T, index int, v T) ([]T, int) {
	index = max(0, min(index, len(s)))
	return slices.Insert(s, index, v), index
}

// RemoveAt removes the element at index i
func RemoveAt[T any](s []T, i int) []T {
	return slices.Delete(s, i, i+1)
}

// IndexOfRank returns the position of the rank with the given ID, or -1
func IndexOfRank(ranks []*Rank, id uuid.UUID) int {
	return slices.IndexFunc(ranks, func(r *Rank) bool { return r.ID == id })
}
