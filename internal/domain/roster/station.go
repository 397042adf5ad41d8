package roster

import "slices"

// StationRecord is an externally owned station definition that an
// assignment may point at. It is shared by reference and never copied.
type StationRecord struct {
	Name   string
	Agency string
}

// StationAssignment attaches a rank to a station. Vehicles and Outfits here
// are station-scoped: they apply only while the rank serves at the station.
type StationAssignment struct {
	StationName string
	Zones       []string
	Style       int
	Station     *StationRecord
	Vehicles    []*Vehicle
	Outfits     []string
}

// NewStationAssignment creates an assignment for the named station
func NewStationAssignment(name string, zones ...string) *StationAssignment {
	return &StationAssignment{
		StationName: name,
		Zones:       zones,
	}
}

// Key returns the case-folded dedup key of the assignment
func (s *StationAssignment) Key() string {
	return FoldKey(s.StationName)
}

// Clone returns a newly allocated copy of the assignment, including its
// station-scoped vehicles and outfits
func (s *StationAssignment) Clone() *StationAssignment {
	return &StationAssignment{
		StationName: s.StationName,
		Zones:       slices.Clone(s.Zones),
		Style:       s.Style,
		Station:     s.Station,
		Vehicles:    CloneVehicles(s.Vehicles),
		Outfits:     slices.Clone(s.Outfits),
	}
}

// CloneStations deep-copies a station assignment list
func CloneStations(src []*StationAssignment) []*StationAssignment {
	if src == nil {
		return nil
	}
	out := make([]*StationAssignment, 0, len(src))
	for _, s := range src {
		out = append(out, s.Clone())
	}
	return out
}
