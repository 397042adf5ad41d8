package rankedit

import (
	"github.com/rankeditor/backend/internal/domain/roster"
)

// collectionKind describes one of the collections a rank carries: where it
// lives on a rank, where it lives on a station assignment (nil when it has
// no station-scoped form), its dedup key and how to deep-copy an item.
type collectionKind[T comparable] struct {
	noun   string
	global func(r *roster.Rank) *[]T
	scoped func(s *roster.StationAssignment) *[]T
	key    func(item T) string
	clone  func(item T) T
}

var stationKind = &collectionKind[*roster.StationAssignment]{
	noun:   "station",
	global: func(r *roster.Rank) *[]*roster.StationAssignment { return &r.Stations },
	key:    func(s *roster.StationAssignment) string { return s.StationName },
	clone:  (*roster.StationAssignment).Clone,
}

var vehicleKind = &collectionKind[*roster.Vehicle]{
	noun:   "vehicle",
	global: func(r *roster.Rank) *[]*roster.Vehicle { return &r.Vehicles },
	scoped: func(s *roster.StationAssignment) *[]*roster.Vehicle { return &s.Vehicles },
	key:    func(v *roster.Vehicle) string { return v.Model },
	clone:  (*roster.Vehicle).Clone,
}

var outfitKind = &collectionKind[string]{
	noun:   "outfit",
	global: func(r *roster.Rank) *[]string { return &r.Outfits },
	scoped: func(s *roster.StationAssignment) *[]string { return &s.Outfits },
	key:    func(o string) string { return o },
	clone:  func(o string) string { return o },
}

func (k *collectionKind[T]) keys(list []T) roster.KeySet {
	set := make(roster.KeySet, len(list))
	for _, item := range list {
		set.Add(k.key(item))
	}
	return set
}

// count returns how many items rank holds, globally and per station
func (k *collectionKind[T]) count(r *roster.Rank) int {
	n := len(*k.global(r))
	if k.scoped != nil {
		for _, s := range r.Stations {
			n += len(*k.scoped(s))
		}
	}
	return n
}

// lists returns the global list of r followed by every station-scoped list
func (k *collectionKind[T]) lists(r *roster.Rank) []*[]T {
	out := []*[]T{k.global(r)}
	if k.scoped != nil {
		for _, s := range r.Stations {
			out = append(out, k.scoped(s))
		}
	}
	return out
}

// route calls fn for every item of source with the target list it belongs
// in: global items go to target's global list; station-scoped items go to
// the same-named target station when there is one, otherwise to target's
// global list.
func (k *collectionKind[T]) route(source, target *roster.Rank, fn func(dst *[]T, item T)) {
	global := k.global(target)
	for _, item := range *k.global(source) {
		fn(global, item)
	}
	if k.scoped == nil {
		return
	}
	for _, src := range source.Stations {
		dst := global
		if s := target.FindStation(src.StationName); s != nil {
			dst = k.scoped(s)
		}
		for _, item := range *k.scoped(src) {
			fn(dst, item)
		}
	}
}

// removeItem deletes the last occurrence of item from list
func removeItem[T comparable](list *[]T, item T) bool {
	s := *list
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == item {
			*list = roster.RemoveAt(s, i)
			return true
		}
	}
	return false
}
