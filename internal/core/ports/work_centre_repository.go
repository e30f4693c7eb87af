package ports

import (
	"context"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/core/domain/model/workcentre"
)

// WorkCentreRepository is the persistence contract for work centre aggregates.
type WorkCentreRepository interface {
	// Add persists a new work centre.
	Add(ctx context.Context, aggregate *workcentre.WorkCentre) error

	// Update persists changes to an existing work centre.
	Update(ctx context.Context, aggregate *workcentre.WorkCentre) error

	// Delete removes a work centre. Callers must first verify no order
	// references it; the database foreign key backs this up.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a work centre by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*workcentre.WorkCentre, error)

	// GetByName retrieves a work centre by its display name, which is unique
	// across the board.
	GetByName(ctx context.Context, name string) (*workcentre.WorkCentre, error)

	// GetAll retrieves every work centre, sorted by name.
	GetAll(ctx context.Context) ([]*workcentre.WorkCentre, error)
}
