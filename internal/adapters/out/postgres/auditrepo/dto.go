// Package auditrepo persists the append-only audit trail. Entries are never
// updated or deleted; the repository exposes Append only.
package auditrepo

import (
	"encoding/json"
	"time"

	"planboard/internal/core/domain/model/audit"

	"github.com/google/uuid"
)

// AuditEntryDTO is the database representation of an audit entry.
// The structured payload is serialized to a jsonb column so per-event context
// (queue depths, reasons) stays queryable without schema churn.
type AuditEntryDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventType        string     `gorm:"index;not null"`
	OrderID          uuid.UUID  `gorm:"type:uuid;index;not null"`
	OrderNumber      string     `gorm:"not null"`
	FromWorkCentreID *uuid.UUID `gorm:"type:uuid"`
	ToWorkCentreID   *uuid.UUID `gorm:"type:uuid"`
	ActorID          uuid.UUID  `gorm:"type:uuid;not null"`
	ActorName        string     `gorm:"not null"`
	Payload          []byte     `gorm:"type:jsonb"`
	CreatedAt        time.Time  `gorm:"index;not null"`
}

// TableName overrides GORM's default naming to use "audit_entries".
func (AuditEntryDTO) TableName() string {
	return "audit_entries"
}

func fromDomain(entry audit.Entry) (AuditEntryDTO, error) {
	payload, err := json.Marshal(entry.Payload())
	if err != nil {
		return AuditEntryDTO{}, err
	}

	var fromID *uuid.UUID
	if id := entry.FromWorkCentre(); id != nil {
		raw := id.Bytes()
		fromID = &raw
	}

	var toID *uuid.UUID
	if id := entry.ToWorkCentre(); id != nil {
		raw := id.Bytes()
		toID = &raw
	}

	return AuditEntryDTO{
		ID:               entry.ID().Bytes(),
		EventType:        string(entry.Type()),
		OrderID:          entry.OrderID().Bytes(),
		OrderNumber:      entry.OrderNumber(),
		FromWorkCentreID: fromID,
		ToWorkCentreID:   toID,
		ActorID:          entry.ActorID().Bytes(),
		ActorName:        entry.ActorName(),
		Payload:          payload,
		CreatedAt:        entry.CreatedAt(),
	}, nil
}
