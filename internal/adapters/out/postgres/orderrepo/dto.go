// Package orderrepo persists order aggregates and their queue placement.
// It owns the contiguous position sequence per work centre: the batch
// position write is the only place queue order is ever changed in the
// database.
package orderrepo

import (
	"time"

	"planboard/internal/adapters/out/postgres/workcentrerepo"
	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database representation of an order aggregate.
// Status and priority are stored as their wire strings so raw board queries
// need no decoding. The position index is deliberately not unique: every
// queue shift passes through intermediate states during the batch update.
// The RESTRICT foreign key to work_centres rejects a centre delete that
// races past the empty-queue check.
type OrderDTO struct {
	ID           uuid.UUID                     `gorm:"type:uuid;primaryKey"`
	Number       string                        `gorm:"uniqueIndex;not null"`
	WorkCentreID *uuid.UUID                    `gorm:"type:uuid;index:idx_orders_queue"`
	WorkCentre   *workcentrerepo.WorkCentreDTO `gorm:"foreignKey:WorkCentreID;constraint:OnDelete:RESTRICT"`
	Position     int                           `gorm:"index:idx_orders_queue"`
	Status       string                        `gorm:"index;not null"`
	Priority     string                        `gorm:"not null"`
	DueDate      time.Time                     `gorm:"not null"`
	CompletedAt  *time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var workCentreID *uuid.UUID
	if id := aggregate.WorkCentre(); id != nil {
		raw := id.Bytes()
		workCentreID = &raw
	}

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		Number:       aggregate.Number(),
		WorkCentreID: workCentreID,
		Position:     aggregate.Position(),
		Status:       aggregate.Status().String(),
		Priority:     aggregate.Priority().String(),
		DueDate:      aggregate.DueDate(),
		CompletedAt:  aggregate.CompletedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var workCentreID *kernel.UUID
	if dto.WorkCentreID != nil {
		wcID, wcErr := kernel.UUIDFromBytes((*dto.WorkCentreID)[:])
		if wcErr != nil {
			return nil, wcErr
		}
		workCentreID = &wcID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	priority, err := order.PriorityFromString(dto.Priority)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		workCentreID,
		dto.Position,
		status,
		priority,
		dto.DueDate,
		dto.CompletedAt,
	)
}
