package queries

import (
	"context"
	"database/sql"

	"planboard/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBoardQueryHandler loads the board snapshot from the database.
// Orders come back sorted by position within each queue so the response is
// ready to render without client-side sorting.
//
// Example:
//
//	handler := NewGetBoardQueryHandler(db)
//	board, err := handler.Handle(ctx, NewGetBoardQuery())
//	if err != nil {
//	    log.Printf("failed to load board: %v", err)
//	    return err
//	}
type GetBoardQueryHandler struct {
	db *gorm.DB
}

// NewGetBoardQueryHandler creates a handler for board queries.
func NewGetBoardQueryHandler(db *gorm.DB) GetBoardQueryHandler {
	return GetBoardQueryHandler{db: db}
}

// Handle executes the board query.
// Work centres are sorted by name; every queue, including the unassigned
// pool, is sorted by position.
func (h GetBoardQueryHandler) Handle(ctx context.Context, query GetBoardQuery) (GetBoardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBoardQueryResponse{}, err
	}

	centres, byCentre, err := h.loadWorkCentres(ctx)
	if err != nil {
		return GetBoardQueryResponse{}, err
	}

	unassigned, err := h.loadOrders(ctx, centres, byCentre)
	if err != nil {
		return GetBoardQueryResponse{}, err
	}

	return GetBoardQueryResponse{
		WorkCentres: centres,
		Unassigned:  unassigned,
	}, nil
}

func (h GetBoardQueryHandler) loadWorkCentres(
	ctx context.Context,
) ([]BoardWorkCentreResponse, map[kernel.UUID]int, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			capacity,
			is_active
		FROM work_centres
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	centres := make([]BoardWorkCentreResponse, 0)
	byCentre := make(map[kernel.UUID]int)

	for rows.Next() {
		var id uuid.UUID
		var centre BoardWorkCentreResponse

		if err = rows.Scan(&id, &centre.Name, &centre.Capacity, &centre.IsActive); err != nil {
			return nil, nil, err
		}

		centreID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, nil, idErr
		}

		centre.ID = centreID
		centre.Orders = make([]BoardOrderResponse, 0)
		byCentre[centreID] = len(centres)
		centres = append(centres, centre)
	}

	return centres, byCentre, rows.Err()
}

// loadOrders fills each centre's queue in place and returns the unassigned pool.
func (h GetBoardQueryHandler) loadOrders(
	ctx context.Context,
	centres []BoardWorkCentreResponse,
	byCentre map[kernel.UUID]int,
) ([]BoardOrderResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			work_centre_id,
			position,
			status,
			priority,
			due_date,
			completed_at
		FROM orders
		ORDER BY position
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	unassigned := make([]BoardOrderResponse, 0)

	for rows.Next() {
		var id uuid.UUID
		var workCentreID uuid.NullUUID
		var completedAt sql.NullTime
		var card BoardOrderResponse

		err = rows.Scan(
			&id,
			&card.Number,
			&workCentreID,
			&card.Position,
			&card.Status,
			&card.Priority,
			&card.DueDate,
			&completedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		card.ID = orderID

		if completedAt.Valid {
			stamped := completedAt.Time.UTC()
			card.CompletedAt = &stamped
		}

		if !workCentreID.Valid {
			unassigned = append(unassigned, card)
			continue
		}

		centreID, idErr := kernel.UUIDFromBytes(workCentreID.UUID[:])
		if idErr != nil {
			return nil, idErr
		}

		// an order referencing an unknown centre would be a broken foreign
		// key; surface it in the unassigned pool instead of dropping it
		idx, ok := byCentre[centreID]
		if !ok {
			unassigned = append(unassigned, card)
			continue
		}

		centres[idx].Orders = append(centres[idx].Orders, card)
	}

	return unassigned, rows.Err()
}
