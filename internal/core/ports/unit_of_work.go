package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command, ensuring isolation
// between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Position renumbering and the
// audit append for one movement must commit or roll back together; the unit
// of work is what makes that atomic.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Rolling back with no
	// active transaction returns an error, which deferred cleanup ignores.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// WorkCentreRepository returns a WorkCentreRepository bound to the current transaction.
	WorkCentreRepository() WorkCentreRepository

	// AuditRepository returns an AuditRepository bound to the current transaction.
	AuditRepository() AuditRepository
}
