package queries

import (
	"errors"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/pkg/guard"
)

var ErrGetWorkCentresQueryIsNotConstructed = errors.New(
	"GetWorkCentresQuery must be created via NewGetWorkCentresQuery constructor",
)

// GetWorkCentresQuery retrieves every work centre with its current queue depth.
//
// Example:
//
//	query := NewGetWorkCentresQuery()
//	handler := NewGetWorkCentresQueryHandler(db)
//
//	centres, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list work centres: %w", err)
//	}
type GetWorkCentresQuery struct {
	guard guard.ConstructorGuard
}

// NewGetWorkCentresQuery creates a query to list work centres.
func NewGetWorkCentresQuery() GetWorkCentresQuery {
	return GetWorkCentresQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetWorkCentresQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkCentresQueryIsNotConstructed)
}

// GetWorkCentresQueryResponse is one work centre row with the live depth of
// its queue for capacity displays.
type GetWorkCentresQueryResponse struct {
	ID         kernel.UUID
	Name       string
	Capacity   int
	IsActive   bool
	QueueDepth int
}
