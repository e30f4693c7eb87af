package commands

import (
	"context"

	"planboard/internal/core/ports"
)

// EndMoveCommandHandler handles lock release at the end of the move protocol.
// Releasing a lock that already expired, or that the actor never held, is a
// no-op so clients can call it unconditionally when a drag ends.
type EndMoveCommandHandler struct {
	locks     LockTable
	publisher ports.EventPublisher
}

// NewEndMoveCommandHandler creates a handler for lock release.
func NewEndMoveCommandHandler(lockTable LockTable, publisher ports.EventPublisher) EndMoveCommandHandler {
	return EndMoveCommandHandler{
		locks:     lockTable,
		publisher: publisher,
	}
}

// Handle releases the movement lock on the order.
// Returns true when the actor held the lock and it was released.
func (h *EndMoveCommandHandler) Handle(_ context.Context, cmd EndMoveCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	lock, held := h.locks.Peek(cmd.OrderID())
	if !held || !lock.UserID.IsEqual(cmd.ActorID()) {
		return false, nil
	}

	released := h.locks.Release(cmd.OrderID(), cmd.ActorID())
	if released {
		h.publisher.OrderUnlocked(lock.OrderID, lock.OrderNumber)
	}

	return released, nil
}
