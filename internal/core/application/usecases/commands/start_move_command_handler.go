package commands

import (
	"context"

	"planboard/internal/core/ports"
	"planboard/internal/locks"
)

// StartMoveCommandHandler handles lock acquisition for the move protocol.
// Looks the order up first so the lock carries its number for conflict
// messages and broadcasts.
//
// Example:
//
//	handler := NewStartMoveCommandHandler(uowFactory, lockTable, publisher)
//	cmd, _ := NewStartMoveCommand(orderID, userID, "R. Santos")
//
//	lock, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    var conflict *locks.ConflictError
//	    if errors.As(err, &conflict) {
//	        // surface conflict.HolderName to the client
//	    }
//	    return err
//	}
type StartMoveCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      LockTable
	publisher  ports.EventPublisher
}

// NewStartMoveCommandHandler creates a handler for lock acquisition.
func NewStartMoveCommandHandler(
	uowFactory OrderUoWFactory,
	lockTable LockTable,
	publisher ports.EventPublisher,
) StartMoveCommandHandler {
	return StartMoveCommandHandler{
		uowFactory: uowFactory,
		locks:      lockTable,
		publisher:  publisher,
	}
}

// Handle acquires the movement lock on the order.
// Returns a ConflictError when another user already holds the lock. Acquiring
// a lock the actor already holds refreshes its expiry and succeeds.
func (h *StartMoveCommandHandler) Handle(ctx context.Context, cmd StartMoveCommand) (locks.Lock, error) {
	if err := cmd.Validate(); err != nil {
		return locks.Lock{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return locks.Lock{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	foundOrder, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return locks.Lock{}, err
	}

	lock, err := h.locks.Acquire(cmd.OrderID(), cmd.ActorID(), cmd.ActorName(), foundOrder.Number())
	if err != nil {
		return locks.Lock{}, err
	}

	h.publisher.OrderLocked(lock)
	return lock, nil
}
