package orderrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/core/domain/model/order"
	"planboard/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	// Select("*") forces zero values through: position 0 and a cleared work
	// centre must overwrite, and partial struct updates would skip them
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes an order by ID.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order by its human-readable number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", number)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetQueue retrieves one queue's orders sorted by position.
// A nil work centre ID addresses the unassigned queue.
func (r *GormOrderRepository) GetQueue(ctx context.Context, workCentreID *kernel.UUID) ([]*order.Order, error) {
	query := r.db.WithContext(ctx).Order("position")
	if workCentreID == nil {
		query = query.Where("work_centre_id IS NULL")
	} else {
		query = query.Where("work_centre_id = ?", workCentreID.Bytes())
	}

	var dtos []OrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// CountInQueue returns the current depth of one queue.
func (r *GormOrderRepository) CountInQueue(ctx context.Context, workCentreID *kernel.UUID) (int, error) {
	query := r.db.WithContext(ctx).Model(&OrderDTO{})
	if workCentreID == nil {
		query = query.Where("work_centre_id IS NULL")
	} else {
		query = query.Where("work_centre_id = ?", workCentreID.Bytes())
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}

// SaveQueuePositions assigns positions 0..n-1 to the listed orders within one
// queue as a single statement, so the contiguity invariant never depends on
// row-by-row update ordering. The listed orders are also pinned to the queue's
// work centre, which covers the moved order's membership change in the same
// write.
func (r *GormOrderRepository) SaveQueuePositions(
	ctx context.Context,
	workCentreID *kernel.UUID,
	orderedIDs []kernel.UUID,
) error {
	if len(orderedIDs) == 0 {
		return nil
	}

	var centre any
	if workCentreID != nil {
		centre = workCentreID.Bytes()
	}

	var sql strings.Builder
	args := make([]any, 0, 2*len(orderedIDs)+2)

	sql.WriteString("UPDATE orders SET work_centre_id = ?, position = CASE id ")
	args = append(args, centre)

	ids := make([]uuid.UUID, 0, len(orderedIDs))
	for position, id := range orderedIDs {
		sql.WriteString("WHEN ? THEN ? ")
		args = append(args, id.Bytes(), position)
		ids = append(ids, id.Bytes())
	}

	sql.WriteString("END WHERE id IN ?")
	args = append(args, ids)

	result := r.db.WithContext(ctx).Exec(sql.String(), args...)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected != int64(len(orderedIDs)) {
		return errs.NewObjectNotFoundError("orderedIDs", len(orderedIDs)-int(result.RowsAffected))
	}

	return nil
}

// ExistsInWorkCentre reports whether any order still references the work centre.
func (r *GormOrderRepository) ExistsInWorkCentre(ctx context.Context, workCentreID kernel.UUID) (bool, error) {
	if err := workCentreID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("work_centre_id = ?", workCentreID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetOverdueCandidates retrieves in-progress orders whose due date lies before
// the given instant.
func (r *GormOrderRepository) GetOverdueCandidates(ctx context.Context, now time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND due_date < ?", order.InProgress.String(), now).
		Order("due_date").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
