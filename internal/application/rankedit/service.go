package rankedit

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rankeditor/backend/internal/application/history"
	"github.com/rankeditor/backend/internal/domain/roster"
	"github.com/rankeditor/backend/internal/domain/shared"
	"github.com/rankeditor/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
)

// CollectionKind selects the rank collection a copy operates on
type CollectionKind string

// Collection kinds
const (
	CollectionStations CollectionKind = "stations"
	CollectionVehicles CollectionKind = "vehicles"
	CollectionOutfits  CollectionKind = "outfits"
)

// Service resolves ranks by ID, builds edit commands and runs them through
// the history manager
type Service struct {
	roster   *roster.Roster
	history  *history.Manager
	notifier Notifier
}

// NewService creates a new Service
func NewService(r *roster.Roster, h *history.Manager, n Notifier) *Service {
	return &Service{
		roster:   r,
		history:  h,
		notifier: n,
	}
}

// Roster returns the roster being edited
func (s *Service) Roster() *roster.Roster {
	return s.roster
}

// History returns the history manager
func (s *Service) History() *history.Manager {
	return s.history
}

// AddRank creates a rank and inserts it into the roster at index
func (s *Service) AddRank(ctx context.Context, params roster.RankParams, index int) (_ *roster.Rank, err error) {
	ctx, span := startSpan(ctx, "add_rank", telemetry.SpanAttrIndex, index)
	defer endSpan(span, &err)

	rank, err := roster.NewRank(params)
	if err != nil {
		return nil, err
	}
	cmd, err := NewAddRankCommand(s.roster, rank, index, s.notifier)
	if err != nil {
		return nil, err
	}
	if err := s.run(ctx, cmd); err != nil {
		return nil, err
	}
	return rank, nil
}

// AddPayBand creates a rank and inserts it into parentID's pay bands at index
func (s *Service) AddPayBand(ctx context.Context, parentID uuid.UUID, params roster.RankParams, index int) (_ *roster.Rank, err error) {
	ctx, span := startSpan(ctx, "add_pay_band", telemetry.SpanAttrRankID, parentID, telemetry.SpanAttrIndex, index)
	defer endSpan(span, &err)

	parent, err := s.topLevel(parentID)
	if err != nil {
		return nil, err
	}
	payBand, err := roster.NewRank(params)
	if err != nil {
		return nil, err
	}
	cmd, err := NewAddPayBandCommand(s.roster, parent, payBand, index, s.notifier)
	if err != nil {
		return nil, err
	}
	if err := s.run(ctx, cmd); err != nil {
		return nil, err
	}
	return payBand, nil
}

// PromoteRank turns a pay band into a top-level rank at index
func (s *Service) PromoteRank(ctx context.Context, payBandID uuid.UUID, index int) (err error) {
	ctx, span := startSpan(ctx, "promote_rank", telemetry.SpanAttrRankID, payBandID, telemetry.SpanAttrIndex, index)
	defer endSpan(span, &err)

	payBand, parent, err := s.locate(payBandID)
	if err != nil {
		return err
	}
	if parent == nil {
		return shared.NewDomainErrorf(shared.CodeInvalidState, "'%s' is not a pay band", payBand.Name)
	}
	cmd, err := NewPromoteRankCommand(s.roster, payBand, parent, index, s.notifier)
	if err != nil {
		return err
	}
	return s.run(ctx, cmd)
}

// RemoveRank removes a top-level rank or a pay band
func (s *Service) RemoveRank(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := startSpan(ctx, "remove_rank", telemetry.SpanAttrRankID, id)
	defer endSpan(span, &err)

	rank, parent, err := s.locate(id)
	if err != nil {
		return err
	}

	var cmd *RemoveRankCommand
	if parent == nil {
		cmd, err = NewRemoveRankCommand(s.roster, rank, s.notifier)
	} else {
		cmd, err = NewRemovePayBandCommand(s.roster, parent, rank, s.notifier)
	}
	if err != nil {
		return err
	}
	return s.run(ctx, cmd)
}

// CloneRank deep-copies a rank or pay band and inserts the copy right after
// the original
func (s *Service) CloneRank(ctx context.Context, id uuid.UUID) (_ *roster.Rank, err error) {
	ctx, span := startSpan(ctx, "clone_rank", telemetry.SpanAttrRankID, id)
	defer endSpan(span, &err)

	rank, parent, err := s.locate(id)
	if err != nil {
		return nil, err
	}

	clone := roster.CloneRank(rank)
	clone.Name = fmt.Sprintf("%s (Copy)", rank.Name)

	var cmd *CloneRankCommand
	if parent == nil {
		cmd, err = NewCloneRankCommand(s.roster, clone, s.roster.IndexOf(id)+1, s.notifier)
	} else {
		cmd, err = NewClonePayBandCommand(s.roster, parent, clone, parent.PayBandIndex(id)+1, s.notifier)
	}
	if err != nil {
		return nil, err
	}
	if err := s.run(ctx, cmd); err != nil {
		return nil, err
	}
	return clone, nil
}

// MoveRank moves a rank to index within the list that owns it
func (s *Service) MoveRank(ctx context.Context, id uuid.UUID, index int) (err error) {
	ctx, span := startSpan(ctx, "move_rank", telemetry.SpanAttrRankID, id, telemetry.SpanAttrIndex, index)
	defer endSpan(span, &err)

	rank, parent, err := s.locate(id)
	if err != nil {
		return err
	}

	var cmd *MoveRankCommand
	if parent == nil {
		cmd, err = NewMoveRankCommand(s.roster, rank, index, s.notifier)
	} else {
		cmd, err = NewMovePayBandCommand(s.roster, parent, rank, index, s.notifier)
	}
	if err != nil {
		return err
	}
	return s.run(ctx, cmd)
}

// RemoveAllRanks empties the roster
func (s *Service) RemoveAllRanks(ctx context.Context) (err error) {
	ctx, span := startSpan(ctx, "remove_all_ranks")
	defer endSpan(span, &err)

	cmd, err := NewRemoveAllRanksCommand(s.roster, s.notifier)
	if err != nil {
		return err
	}
	return s.run(ctx, cmd)
}

// Copy copies one collection from sourceID to targetID. With overwrite the
// target collection is replaced, otherwise only missing items are added.
func (s *Service) Copy(ctx context.Context, kind CollectionKind, sourceID, targetID uuid.UUID, overwrite bool) (err error) {
	ctx, span := startSpan(ctx, "copy",
		telemetry.SpanAttrCollection, string(kind),
		telemetry.SpanAttrSourceID, sourceID,
		telemetry.SpanAttrTargetCount, 1,
		telemetry.SpanAttrOverwrite, overwrite,
	)
	defer endSpan(span, &err)

	source, target, err := s.pair(sourceID, targetID)
	if err != nil {
		return err
	}
	cmd, err := s.copyCommand(kind, source, target, overwrite)
	if err != nil {
		return err
	}
	return s.run(ctx, cmd)
}

// CopyStations copies station assignments from sourceID to targetID
func (s *Service) CopyStations(ctx context.Context, sourceID, targetID uuid.UUID, overwrite bool) error {
	return s.Copy(ctx, CollectionStations, sourceID, targetID, overwrite)
}

// CopyVehicles copies vehicles from sourceID to targetID
func (s *Service) CopyVehicles(ctx context.Context, sourceID, targetID uuid.UUID, overwrite bool) error {
	return s.Copy(ctx, CollectionVehicles, sourceID, targetID, overwrite)
}

// CopyOutfits copies outfits from sourceID to targetID
func (s *Service) CopyOutfits(ctx context.Context, sourceID, targetID uuid.UUID, overwrite bool) error {
	return s.Copy(ctx, CollectionOutfits, sourceID, targetID, overwrite)
}

// CopyToMany copies one collection from sourceID to every target as a
// single undoable step
func (s *Service) CopyToMany(ctx context.Context, kind CollectionKind, sourceID uuid.UUID, targetIDs []uuid.UUID, overwrite bool) (err error) {
	ctx, span := startSpan(ctx, "copy_to_many",
		telemetry.SpanAttrCollection, string(kind),
		telemetry.SpanAttrSourceID, sourceID,
		telemetry.SpanAttrTargetCount, len(targetIDs),
		telemetry.SpanAttrOverwrite, overwrite,
	)
	defer endSpan(span, &err)

	if len(targetIDs) == 0 {
		return shared.RequiredArgument("targets")
	}
	source, err := s.find(sourceID)
	if err != nil {
		return err
	}

	composite := history.NewCompositeCommand(
		fmt.Sprintf("Copy %s from '%s' to %s", kind, source.Name, countOf(len(targetIDs), "rank")))
	for _, id := range targetIDs {
		target, err := s.find(id)
		if err != nil {
			return err
		}
		cmd, err := s.copyCommand(kind, source, target, overwrite)
		if err != nil {
			return err
		}
		if err := composite.AddCommand(cmd); err != nil {
			return err
		}
	}
	return s.run(ctx, composite)
}

// CopyStationsToMany copies station assignments from sourceID to every target
func (s *Service) CopyStationsToMany(ctx context.Context, sourceID uuid.UUID, targetIDs []uuid.UUID, overwrite bool) error {
	return s.CopyToMany(ctx, CollectionStations, sourceID, targetIDs, overwrite)
}

// AddOutfits appends outfits to a rank
func (s *Service) AddOutfits(ctx context.Context, id uuid.UUID, outfits []string) (err error) {
	ctx, span := startSpan(ctx, "add_outfits", telemetry.SpanAttrRankID, id)
	defer endSpan(span, &err)

	rank, err := s.find(id)
	if err != nil {
		return err
	}
	cmd, err := NewBulkAddOutfitsCommand(rank, outfits, s.notifier)
	if err != nil {
		return err
	}
	return s.run(ctx, cmd)
}

// RemoveOutfits removes outfits from a rank
func (s *Service) RemoveOutfits(ctx context.Context, id uuid.UUID, outfits []string) (err error) {
	ctx, span := startSpan(ctx, "remove_outfits", telemetry.SpanAttrRankID, id)
	defer endSpan(span, &err)

	rank, err := s.find(id)
	if err != nil {
		return err
	}
	cmd, err := NewBulkRemoveOutfitsCommand(rank, outfits, s.notifier)
	if err != nil {
		return err
	}
	return s.run(ctx, cmd)
}

// AddStations appends new station assignments to a rank
func (s *Service) AddStations(ctx context.Context, id uuid.UUID, names []string) (err error) {
	ctx, span := startSpan(ctx, "add_stations", telemetry.SpanAttrRankID, id)
	defer endSpan(span, &err)

	rank, err := s.find(id)
	if err != nil {
		return err
	}
	stations := make([]*roster.StationAssignment, 0, len(names))
	for _, name := range names {
		stations = append(stations, roster.NewStationAssignment(name))
	}
	cmd, err := NewBulkAddStationAssignmentsCommand(rank, stations, s.notifier)
	if err != nil {
		return err
	}
	return s.run(ctx, cmd)
}

// AddVehicles appends vehicles to a rank
func (s *Service) AddVehicles(ctx context.Context, id uuid.UUID, vehicles []*roster.Vehicle) (err error) {
	ctx, span := startSpan(ctx, "add_vehicles", telemetry.SpanAttrRankID, id)
	defer endSpan(span, &err)

	rank, err := s.find(id)
	if err != nil {
		return err
	}
	cmd, err := NewBulkAddVehiclesCommand(rank, vehicles, s.notifier)
	if err != nil {
		return err
	}
	return s.run(ctx, cmd)
}

// Rename changes a rank's name
func (s *Service) Rename(ctx context.Context, id uuid.UUID, name string) (err error) {
	ctx, span := startSpan(ctx, "rename", telemetry.SpanAttrRankID, id)
	defer endSpan(span, &err)

	rank, _, err := s.locate(id)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if err := (roster.RankParams{Name: name}).Validate(); err != nil {
		return err
	}
	return changeProperty(ctx, s, rank, "Name", func(v string) {
		rank.Name = v
		// Pay band names derive from the parent's
		if len(rank.PayBands) > 0 {
			s.notifier.Renumber(rank)
		}
	}, rank.Name, name)
}

// SetSalary changes a rank's salary
func (s *Service) SetSalary(ctx context.Context, id uuid.UUID, salary int) (err error) {
	ctx, span := startSpan(ctx, "set_salary", telemetry.SpanAttrRankID, id)
	defer endSpan(span, &err)

	rank, _, err := s.locate(id)
	if err != nil {
		return err
	}
	if err := (roster.RankParams{Name: rank.Name, Salary: salary}).Validate(); err != nil {
		return err
	}
	return changeProperty(ctx, s, rank, "Salary", func(v int) { rank.Salary = v }, rank.Salary, salary)
}

// SetRequiredPoints changes a rank's XP threshold
func (s *Service) SetRequiredPoints(ctx context.Context, id uuid.UUID, points int) (err error) {
	ctx, span := startSpan(ctx, "set_required_points", telemetry.SpanAttrRankID, id)
	defer endSpan(span, &err)

	rank, _, err := s.locate(id)
	if err != nil {
		return err
	}
	if err := (roster.RankParams{Name: rank.Name, RequiredPoints: points}).Validate(); err != nil {
		return err
	}
	return changeProperty(ctx, s, rank, "Required Points", func(v int) { rank.RequiredPoints = v }, rank.RequiredPoints, points)
}

// Undo reverts the most recent edit. It returns false when there is none.
func (s *Service) Undo(ctx context.Context) (_ bool, err error) {
	ctx, span := startSpan(ctx, "undo")
	defer endSpan(span, &err)

	desc, _ := s.history.UndoDescription()
	ok, err := s.history.Undo(ctx)
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCommand, desc,
		telemetry.SpanAttrApplied, ok,
		telemetry.SpanAttrUndoDepth, s.history.UndoCount(),
	)
	return ok, err
}

// Redo re-applies the most recently undone edit. It returns false when
// there is none.
func (s *Service) Redo(ctx context.Context) (_ bool, err error) {
	ctx, span := startSpan(ctx, "redo")
	defer endSpan(span, &err)

	desc, _ := s.history.RedoDescription()
	ok, err := s.history.Redo(ctx)
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCommand, desc,
		telemetry.SpanAttrApplied, ok,
		telemetry.SpanAttrUndoDepth, s.history.UndoCount(),
	)
	return ok, err
}

// run executes cmd through the history and tags the span in ctx with it
func (s *Service) run(ctx context.Context, cmd history.Command) error {
	span := telemetry.SpanFromContext(ctx)
	telemetry.SetAttributes(span, telemetry.SpanAttrCommand, cmd.Description())
	if err := s.history.Execute(ctx, cmd); err != nil {
		return err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrUndoDepth, s.history.UndoCount())
	return nil
}

// startSpan opens the span of one Service operation
func startSpan(ctx context.Context, method string, keyValues ...any) (context.Context, trace.Span) {
	ctx, span := telemetry.StartServiceSpan(ctx, "rankedit", method)
	telemetry.SetAttributes(span, keyValues...)
	return ctx, span
}

// endSpan records the operation's error, if any, and ends span
func endSpan(span trace.Span, err *error) {
	telemetry.RecordError(span, *err)
	span.End()
}

// changeProperty runs a single-field edit of rank through the history
func changeProperty[T any](ctx context.Context, s *Service, rank *roster.Rank, property string, set func(T), oldValue, newValue T) error {
	cmd, err := history.NewPropertyChangeCommand(func(v T) {
		set(v)
		notifyChanged(s.notifier)
	}, oldValue, newValue, property, rank.Name)
	if err != nil {
		return err
	}
	return s.run(ctx, cmd)
}

func (s *Service) copyCommand(kind CollectionKind, source, target *roster.Rank, overwrite bool) (history.Command, error) {
	switch {
	case kind == CollectionStations && overwrite:
		return NewCopyStationAssignmentsToRankCommand(source, target, s.notifier)
	case kind == CollectionStations:
		return NewCopyStationAssignmentsFromRankCommand(source, target, s.notifier)
	case kind == CollectionVehicles && overwrite:
		return NewCopyVehiclesToRankCommand(source, target, s.notifier)
	case kind == CollectionVehicles:
		return NewCopyVehiclesFromRankCommand(source, target, s.notifier)
	case kind == CollectionOutfits && overwrite:
		return NewCopyOutfitsToRankCommand(source, target, s.notifier)
	case kind == CollectionOutfits:
		return NewCopyOutfitsFromRankCommand(source, target, s.notifier)
	default:
		return nil, shared.NewDomainErrorf(shared.CodeInvalidArgument, "unknown collection '%s'", kind)
	}
}

// locate finds a rank anywhere in the roster along with its parent
func (s *Service) locate(id uuid.UUID) (rank, parent *roster.Rank, err error) {
	rank, parent = s.roster.Locate(id)
	if rank == nil {
		return nil, nil, rankNotFound(id)
	}
	return rank, parent, nil
}

// find locates a rank or pay band, ignoring its parent
func (s *Service) find(id uuid.UUID) (*roster.Rank, error) {
	rank, _, err := s.locate(id)
	return rank, err
}

// topLevel finds a top-level rank
func (s *Service) topLevel(id uuid.UUID) (*roster.Rank, error) {
	rank := s.roster.Find(id)
	if rank == nil {
		return nil, rankNotFound(id)
	}
	return rank, nil
}

func (s *Service) pair(sourceID, targetID uuid.UUID) (source, target *roster.Rank, err error) {
	if source, err = s.find(sourceID); err != nil {
		return nil, nil, err
	}
	if target, err = s.find(targetID); err != nil {
		return nil, nil, err
	}
	return source, target, nil
}
