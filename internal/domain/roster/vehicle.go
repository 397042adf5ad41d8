package roster

// Vehicle is a model a rank may spawn with. Model is the identity key and
// is compared case-insensitively.
type Vehicle struct {
	Model       string
	DisplayName string
	Agency      string
}

// NewVehicle creates a vehicle entry
func NewVehicle(model, displayName, agency string) *Vehicle {
	return &Vehicle{
		Model:       model,
		DisplayName: displayName,
		Agency:      agency,
	}
}

// Key returns the case-folded dedup key of the vehicle
func (v *Vehicle) Key() string {
	return FoldKey(v.Model)
}

// Clone returns a newly allocated copy of the vehicle
func (v *Vehicle) Clone() *Vehicle {
	c := *v
	return &c
}

// CloneVehicles deep-copies a vehicle list
func CloneVehicles(src []*Vehicle) []*Vehicle {
	if src == nil {
		return nil
	}
	out := make([]*Vehicle, 0, len(src))
	for _, v := range src {
		out = append(out, v.Clone())
	}
	return out
}
