package rankedit

import (
	"github.com/google/uuid"
	"github.com/rankeditor/backend/internal/domain/roster"
	"github.com/rankeditor/backend/internal/domain/shared"
)

// Error codes raised when a command finds the roster out of step with what
// it was built against
const (
	CodeParentNotFound   = "PARENT_NOT_FOUND"
	CodeNotFoundInParent = "NOT_FOUND_IN_PARENT"
	CodeNotFoundInList   = "NOT_FOUND_IN_LIST"
	CodePayBandNotFound  = "PAY_BAND_NOT_FOUND"
	CodeItemNotFound     = "ITEM_NOT_FOUND"
	CodeRankNotFound     = "RANK_NOT_FOUND"
)

// Sentinels for errors.Is; returned errors carry a contextual message
var (
	ErrParentNotFound   = shared.NewDomainError(CodeParentNotFound, "Parent rank not found")
	ErrNotFoundInParent = shared.NewDomainError(CodeNotFoundInParent, "Rank not found in parent's list")
	ErrNotFoundInList   = shared.NewDomainError(CodeNotFoundInList, "Rank not found in ranks list")
	ErrPayBandNotFound  = shared.NewDomainError(CodePayBandNotFound, "Pay band not found")
	ErrItemNotFound     = shared.NewDomainError(CodeItemNotFound, "Item not found")
	ErrRankNotFound     = shared.NewDomainError(CodeRankNotFound, "Rank not found")
)

func parentNotFound(parent *roster.Rank) error {
	return shared.NewDomainErrorf(CodeParentNotFound, "parent rank '%s' not found", parent.Name)
}

func originalParentNotFound(parent *roster.Rank) error {
	return shared.NewDomainErrorf(CodeParentNotFound, "original parent rank '%s' not found", parent.Name)
}

func notFoundInParent(rank *roster.Rank) error {
	return shared.NewDomainErrorf(CodeNotFoundInParent, "'%s' not found in parent's list", rank.Name)
}

func notFoundInList(rank *roster.Rank) error {
	return shared.NewDomainErrorf(CodeNotFoundInList, "'%s' not found in ranks list", rank.Name)
}

func payBandNotFound(payBand, parent *roster.Rank) error {
	return shared.NewDomainErrorf(CodePayBandNotFound, "pay band '%s' not found in '%s'", payBand.Name, parent.Name)
}

func rankNotFound(id uuid.UUID) error {
	return shared.NewDomainErrorf(CodeRankNotFound, "rank %s not found", id)
}
