package queries

import (
	"context"
	"database/sql"

	"planboard/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists orders across all queues.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the order listing query, sorted by number.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT id, number, status, priority, due_date, work_centre_id, position, completed_at
		FROM orders
	`
	args := make([]any, 0, 1)
	if query.Status() != "" {
		sqlQuery += ` WHERE status = ?`
		args = append(args, query.Status())
	}
	sqlQuery += ` ORDER BY number`

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)

	for rows.Next() {
		var id uuid.UUID
		var workCentreID uuid.NullUUID
		var completedAt sql.NullTime
		var row GetOrdersQueryResponse

		err = rows.Scan(&id, &row.Number, &row.Status, &row.Priority, &row.DueDate, &workCentreID, &row.Position, &completedAt)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		row.ID = orderID

		if workCentreID.Valid {
			centreID, idErr := kernel.UUIDFromBytes(workCentreID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			row.WorkCentreID = &centreID
		}

		if completedAt.Valid {
			completed := completedAt.Time
			row.CompletedAt = &completed
		}

		orders = append(orders, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
