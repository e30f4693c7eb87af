// Package queries contains read-side operations. Query handlers bypass the
// repositories and read the database directly, returning flat response
// structures shaped for the transport layer.
package queries

import (
	"errors"
	"time"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/pkg/guard"
)

var ErrGetBoardQueryIsNotConstructed = errors.New(
	"GetBoardQuery must be created via NewGetBoardQuery constructor",
)

// GetBoardQuery retrieves the full board: every work centre with its ordered
// queue, plus the unassigned pool.
//
// Example:
//
//	query := NewGetBoardQuery()
//	handler := NewGetBoardQueryHandler(db)
//
//	board, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load board: %w", err)
//	}
//	fmt.Printf("%d work centres, %d unassigned orders\n",
//	    len(board.WorkCentres), len(board.Unassigned))
type GetBoardQuery struct {
	guard guard.ConstructorGuard
}

// NewGetBoardQuery creates a query to load the full board state.
func NewGetBoardQuery() GetBoardQuery {
	return GetBoardQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetBoardQueryIsNotConstructed)
}

// BoardOrderResponse is one order card on the board.
type BoardOrderResponse struct {
	ID          kernel.UUID
	Number      string
	Position    int
	Status      string
	Priority    string
	DueDate     time.Time
	CompletedAt *time.Time
}

// BoardWorkCentreResponse is one work centre column with its queue sorted by
// position.
type BoardWorkCentreResponse struct {
	ID       kernel.UUID
	Name     string
	Capacity int
	IsActive bool
	Orders   []BoardOrderResponse
}

// GetBoardQueryResponse is the full board snapshot.
type GetBoardQueryResponse struct {
	WorkCentres []BoardWorkCentreResponse
	Unassigned  []BoardOrderResponse
}
