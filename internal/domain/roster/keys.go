package roster

import "golang.org/x/text/cases"

// FoldKey normalizes a station name, vehicle model or outfit name into the
// key used for case-insensitive deduplication.
func FoldKey(s string) string {
	return cases.Fold().String(s)
}

// KeySet is a set of folded keys built for a single operation
type KeySet map[string]struct{}

// Has reports whether the folded form of s is in the set
func (k KeySet) Has(s string) bool {
	_, ok := k[FoldKey(s)]
	return ok
}

// Add inserts the folded form of s
func (k KeySet) Add(s string) {
	k[FoldKey(s)] = struct{}{}
}

// StationKeys builds the key set of a station assignment list
func StationKeys(list []*StationAssignment) KeySet {
	set := make(KeySet, len(list))
	for _, s := range list {
		set.Add(s.StationName)
	}
	return set
}

// VehicleKeys builds the key set of a vehicle list
func VehicleKeys(list []*Vehicle) KeySet {
	set := make(KeySet, len(list))
	for _, v := range list {
		set.Add(v.Model)
	}
	return set
}

// OutfitKeys builds the key set of an outfit list
func OutfitKeys(list []string) KeySet {
	set := make(KeySet, len(list))
	for _, o := range list {
		set.Add(o)
	}
	return set
}
