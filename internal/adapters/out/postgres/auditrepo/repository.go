package auditrepo

import (
	"context"

	"planboard/internal/core/domain/model/audit"

	"gorm.io/gorm"
)

// GormAuditRepository implements ports.AuditRepository using GORM.
// No tracker: audit entries are value objects, not aggregates with a
// post-commit lifecycle.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append writes one audit entry within the caller's transaction.
func (r *GormAuditRepository) Append(ctx context.Context, entry audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(entry)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}
