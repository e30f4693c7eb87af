package commands

import (
	"errors"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/pkg/guard"
)

var ErrEndMoveCommandIsNotConstructed = errors.New(
	"EndMoveCommand must be created via NewEndMoveCommand constructor",
)

// EndMoveCommand represents a request to release the movement lock on an
// order, whether the drag was committed or abandoned.
//
// Example:
//
//	cmd, err := NewEndMoveCommand(orderID, userID, false)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewEndMoveCommandHandler(lockTable, publisher)
//	released, _ := handler.Handle(ctx, cmd)
//	// released is false when the lock already expired
type EndMoveCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorID   kernel.UUID
	completed bool

	guard guard.ConstructorGuard
}

// NewEndMoveCommand creates a command to release the movement lock on an order.
// completed=false marks a cancelled drag. The release semantics are identical
// either way; the flag records intent for callers that care.
func NewEndMoveCommand(orderID, actorID kernel.UUID, completed bool) (EndMoveCommand, error) {
	moveCommand := EndMoveCommand{
		completed: completed,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		moveCommand.setOrderID(orderID),
		moveCommand.setActorID(actorID),
	); err != nil {
		return EndMoveCommand{}, err
	}

	return moveCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c EndMoveCommand) Validate() error {
	return c.guard.Validate(ErrEndMoveCommandIsNotConstructed)
}

// OrderID returns the order whose lock is being released.
func (c EndMoveCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the user releasing the lock.
func (c EndMoveCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Completed reports whether a move was committed under this lock. False
// means the drag was abandoned.
func (c EndMoveCommand) Completed() bool {
	return c.completed
}

func (c *EndMoveCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *EndMoveCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
