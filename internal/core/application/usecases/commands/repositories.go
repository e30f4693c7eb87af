// Package commands contains the business operations that modify board state.
// It implements the Command pattern for write operations: every command is a
// validated value object, and every handler owns the transaction lifecycle of
// exactly one operation.
package commands

import (
	"context"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/core/ports"
	"planboard/internal/locks"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Narrower unions keep each handler honest about the aggregates it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// WorkCentreRepoFactory provides access to the work centre repository within a transaction.
	WorkCentreRepoFactory interface {
		WorkCentreRepository() ports.WorkCentreRepository
	}

	// AuditRepoFactory provides access to the audit repository within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// OrderUoW manages transactions for operations that touch orders and the
	// audit trail only.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		AuditRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// WorkCentreUoW manages transactions for work centre maintenance. It also
	// exposes the order repository for the referential delete guard.
	WorkCentreUoW interface {
		TxManager
		WorkCentreRepoFactory
		OrderRepoFactory
	}

	// WorkCentreUoWFactory creates new work centre unit of work instances.
	WorkCentreUoWFactory interface {
		Create() WorkCentreUoW
	}

	// BoardUoW manages transactions spanning orders, work centres, and the
	// audit trail, as a queue move does.
	BoardUoW interface {
		TxManager
		OrderRepoFactory
		WorkCentreRepoFactory
		AuditRepoFactory
	}

	// BoardUoWFactory creates new board unit of work instances.
	BoardUoWFactory interface {
		Create() BoardUoW
	}
)

// LockTable is the mutual-exclusion contract consumed by the move handlers.
// Satisfied by *locks.Table; an interface here so horizontal scaling can swap
// in an external store without touching the handlers.
type LockTable interface {
	Acquire(orderID, userID kernel.UUID, displayName, orderNumber string) (locks.Lock, error)
	Release(orderID, userID kernel.UUID) bool
	Peek(orderID kernel.UUID) (locks.Lock, bool)
}
