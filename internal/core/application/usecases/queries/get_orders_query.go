package queries

import (
	"errors"
	"time"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves every order on the board, optionally filtered by
// status.
type GetOrdersQuery struct {
	status string

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query to list orders. An empty status means no
// filter.
func NewGetOrdersQuery(status string) GetOrdersQuery {
	return GetOrdersQuery{status: status, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Status returns the status filter, empty for all orders.
func (q GetOrdersQuery) Status() string {
	return q.status
}

// GetOrdersQueryResponse is one order row.
type GetOrdersQueryResponse struct {
	ID           kernel.UUID
	Number       string
	Status       string
	Priority     string
	DueDate      time.Time
	WorkCentreID *kernel.UUID
	Position     int
	CompletedAt  *time.Time
}
