package queries

import (
	"context"

	"planboard/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetWorkCentresQueryHandler lists work centres with their queue depths in a
// single aggregate query.
type GetWorkCentresQueryHandler struct {
	db *gorm.DB
}

// NewGetWorkCentresQueryHandler creates a handler for work centre listing.
func NewGetWorkCentresQueryHandler(db *gorm.DB) GetWorkCentresQueryHandler {
	return GetWorkCentresQueryHandler{db: db}
}

// Handle executes the work centre listing query, sorted by name.
func (h GetWorkCentresQueryHandler) Handle(
	ctx context.Context,
	query GetWorkCentresQuery,
) ([]GetWorkCentresQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			wc.id,
			wc.name,
			wc.capacity,
			wc.is_active,
			COUNT(o.id) AS queue_depth
		FROM work_centres wc
		LEFT JOIN orders o ON o.work_centre_id = wc.id
		GROUP BY wc.id, wc.name, wc.capacity, wc.is_active
		ORDER BY wc.name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	centres := make([]GetWorkCentresQueryResponse, 0)

	for rows.Next() {
		var id uuid.UUID
		var centre GetWorkCentresQueryResponse

		err = rows.Scan(&id, &centre.Name, &centre.Capacity, &centre.IsActive, &centre.QueueDepth)
		if err != nil {
			return nil, err
		}

		centreID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		centre.ID = centreID

		centres = append(centres, centre)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return centres, nil
}
