// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, and the event publisher.
// These interfaces enable dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/core/domain/model/order"
)

// OrderRepository is the persistence contract for order aggregates and their
// queue placement. It owns the ordered position sequence per work centre.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Delete removes an order. The caller is responsible for renumbering the
	// queue the order leaves behind.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves an order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its human-readable number.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// GetQueue retrieves the orders of one queue sorted by position.
	// A nil work centre ID addresses the unassigned queue.
	GetQueue(ctx context.Context, workCentreID *kernel.UUID) ([]*order.Order, error)

	// CountInQueue returns the current depth of one queue.
	CountInQueue(ctx context.Context, workCentreID *kernel.UUID) (int, error)

	// SaveQueuePositions assigns positions 0..n-1 to the given orders within
	// one queue as a single batch write. Orders absent from the list are not
	// touched; the caller guarantees the list is the queue's full membership.
	SaveQueuePositions(ctx context.Context, workCentreID *kernel.UUID, orderedIDs []kernel.UUID) error

	// ExistsInWorkCentre reports whether any order still references the work
	// centre, for the referential delete guard.
	ExistsInWorkCentre(ctx context.Context, workCentreID kernel.UUID) (bool, error)

	// GetOverdueCandidates retrieves in-progress orders whose due date lies
	// before the given instant.
	GetOverdueCandidates(ctx context.Context, now time.Time) ([]*order.Order, error)
}
