// Package workcentrerepo persists work centre aggregates.
package workcentrerepo

import (
	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/core/domain/model/workcentre"

	"github.com/google/uuid"
)

// WorkCentreDTO is the database representation of a work centre.
// The name carries a unique index: the handler's duplicate check is advisory
// and the index settles concurrent creates.
type WorkCentreDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"uniqueIndex;not null"`
	Capacity int       `gorm:"not null"`
	IsActive bool      `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "work_centres".
func (WorkCentreDTO) TableName() string {
	return "work_centres"
}

func fromDomain(aggregate *workcentre.WorkCentre) WorkCentreDTO {
	return WorkCentreDTO{
		ID:       aggregate.ID().Bytes(),
		Name:     aggregate.Name(),
		Capacity: aggregate.Capacity(),
		IsActive: aggregate.IsActive(),
	}
}

func toDomain(dto WorkCentreDTO) (*workcentre.WorkCentre, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return workcentre.RestoreWorkCentre(id, dto.Name, dto.Capacity, dto.IsActive)
}
