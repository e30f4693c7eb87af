package ports

import (
	"context"

	"planboard/internal/core/domain/model/audit"
)

// AuditRepository is the append-only persistence contract for the audit trail.
// There is deliberately no update, delete, or query surface here; reading the
// trail belongs to downstream analytics collaborators.
type AuditRepository interface {
	// Append writes one immutable audit entry.
	Append(ctx context.Context, entry audit.Entry) error
}
