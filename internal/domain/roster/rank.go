package roster

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rankeditor/backend/internal/domain/shared"
)

// CodeInvalidRank is the error code returned when rank params fail validation
const CodeInvalidRank = "INVALID_RANK"

// ErrInvalidRank matches any rank validation failure with errors.Is
var ErrInvalidRank = shared.NewDomainError(CodeInvalidRank, "Invalid rank")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Rank is a node of the rank ladder. A rank held in the top-level Roster is
// an independent rank; a rank held in another rank's PayBands is a pay band
// and carries that rank's ID in ParentID.
type Rank struct {
	shared.BaseEntity
	Name           string
	RequiredPoints int  // XP gate, never negative
	Salary         int
	IsParent       bool // true iff PayBands is non-empty
	ParentID       *uuid.UUID
	PayBands       []*Rank
	Stations       []*StationAssignment
	Vehicles       []*Vehicle
	Outfits        []string
}

// RankParams holds the caller-supplied fields of a new rank
type RankParams struct {
	Name           string `validate:"required,max=128"`
	RequiredPoints int    `validate:"gte=0"`
	Salary         int    `validate:"gte=0"`
}

// Validate checks the params against the rank field rules
func (p RankParams) Validate() error {
	if err := validate.Struct(p); err != nil {
		return translateValidation(err)
	}
	return nil
}

// NewRank creates a new rank with a fresh identity
func NewRank(p RankParams) (*Rank, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &Rank{
		BaseEntity:     shared.NewBaseEntity(),
		Name:           p.Name,
		RequiredPoints: p.RequiredPoints,
		Salary:         p.Salary,
	}, nil
}

// IsPayBand returns true if the rank currently belongs to a parent
func (r *Rank) IsPayBand() bool {
	return r.ParentID != nil
}

// PayBandIndex returns the position of the pay band with the given ID, or -1
func (r *Rank) PayBandIndex(id uuid.UUID) int {
	return IndexOfRank(r.PayBands, id)
}

// InsertPayBand inserts payBand at index (appending when index is out of
// range), points it at r and marks r as a parent. It returns the index used.
func (r *Rank) InsertPayBand(index int, payBand *Rank) int {
	var at int
	r.PayBands, at = InsertAt(r.PayBands, index, payBand)
	parentID := r.ID
	payBand.ParentID = &parentID
	r.IsParent = true
	return at
}

// RemovePayBand detaches the pay band with the given ID. It clears the pay
// band's parent reference and recomputes IsParent. The removed pay band and
// its former index are returned; index is -1 when it was not found.
func (r *Rank) RemovePayBand(id uuid.UUID) (*Rank, int) {
	i := r.PayBandIndex(id)
	if i < 0 {
		return nil, -1
	}
	payBand := r.PayBands[i]
	r.PayBands = RemoveAt(r.PayBands, i)
	payBand.ParentID = nil
	r.IsParent = len(r.PayBands) > 0
	return payBand, i
}

// MovePayBand repositions a pay band inside r. It returns the former and the
// new index; from is -1 when the pay band is not held by r.
func (r *Rank) MovePayBand(id uuid.UUID, index int) (from, to int) {
	from = r.PayBandIndex(id)
	if from < 0 {
		return -1, -1
	}
	payBand := r.PayBands[from]
	r.PayBands = RemoveAt(r.PayBands, from)
	r.PayBands, to = InsertAt(r.PayBands, index, payBand)
	return from, to
}

// FindStation returns the station assignment whose name folds to the same
// key as name, or nil
func (r *Rank) FindStation(name string) *StationAssignment {
	key := FoldKey(name)
	for _, s := range r.Stations {
		if FoldKey(s.StationName) == key {
			return s
		}
	}
	return nil
}

// CloneRank returns a deep copy of src with a fresh identity. Pay bands are
// cloned recursively, receive fresh identities too and point at the clone.
// The clone is detached: its own ParentID is nil.
func CloneRank(src *Rank) *Rank {
	clone := &Rank{
		BaseEntity:     shared.NewBaseEntity(),
		Name:           src.Name,
		RequiredPoints: src.RequiredPoints,
		Salary:         src.Salary,
		Stations:       CloneStations(src.Stations),
		Vehicles:       CloneVehicles(src.Vehicles),
		Outfits:        slices.Clone(src.Outfits),
	}
	for _, pb := range src.PayBands {
		clone.InsertPayBand(len(clone.PayBands), CloneRank(pb))
	}
	return clone
}

func translateValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return shared.NewDomainError(CodeInvalidRank, err.Error())
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return shared.NewDomainErrorf(CodeInvalidRank, "Rank %s cannot be empty", strings.ToLower(fe.Field()))
	case "gte":
		return shared.NewDomainErrorf(CodeInvalidRank, "Rank %s cannot be negative", fieldLabel(fe.Field()))
	case "max":
		return shared.NewDomainErrorf(CodeInvalidRank, "Rank %s cannot exceed %s characters", strings.ToLower(fe.Field()), fe.Param())
	default:
		return shared.NewDomainError(CodeInvalidRank, fmt.Sprintf("Rank %s is invalid", fieldLabel(fe.Field())))
	}
}

func fieldLabel(field string) string {
	switch field {
	case "RequiredPoints":
		return "required points"
	default:
		return strings.ToLower(field)
	}
}
