package workcentrerepo

import (
	"context"
	"errors"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/core/domain/model/workcentre"
	"planboard/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWorkCentreRepository implements ports.WorkCentreRepository using GORM.
type GormWorkCentreRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWorkCentreRepository creates a new GORM work centre repository.
func NewGormWorkCentreRepository(db *gorm.DB, tracker aggregateTracker) *GormWorkCentreRepository {
	return &GormWorkCentreRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new work centre to the database.
func (r *GormWorkCentreRepository) Add(ctx context.Context, aggregate *workcentre.WorkCentre) error {
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

// Update saves an existing work centre to the database.
func (r *GormWorkCentreRepository) Update(ctx context.Context, aggregate *workcentre.WorkCentre) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&WorkCentreDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("workCentre", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes a work centre by ID. The foreign key from orders rejects
// the delete when the queue gained an order after the caller's emptiness
// check; that violation surfaces as ErrObjectStillReferenced.
func (r *GormWorkCentreRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&WorkCentreDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return errs.NewObjectStillReferencedErrorWithCause("workCentre", id.String(), result.Error)
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("workCentre", id.String())
	}

	return nil
}

// Get retrieves a work centre by ID.
func (r *GormWorkCentreRepository) Get(ctx context.Context, id kernel.UUID) (*workcentre.WorkCentre, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WorkCentreDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("workCentre", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByName retrieves a work centre by its display name.
func (r *GormWorkCentreRepository) GetByName(ctx context.Context, name string) (*workcentre.WorkCentre, error) {
	var dto WorkCentreDTO
	if err := r.db.WithContext(ctx).First(&dto, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("workCentre", name)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every work centre sorted by name.
func (r *GormWorkCentreRepository) GetAll(ctx context.Context) ([]*workcentre.WorkCentre, error) {
	var dtos []WorkCentreDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	centres := make([]*workcentre.WorkCentre, 0, len(dtos))
	for _, dto := range dtos {
		wc, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		centres = append(centres, wc)
	}

	return centres, nil
}
