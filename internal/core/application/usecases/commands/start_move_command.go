package commands

import (
	"errors"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/pkg/guard"
)

var (
	ErrStartMoveCommandIsNotConstructed = errors.New(
		"StartMoveCommand must be created via NewStartMoveCommand constructor",
	)
	ErrActorNameIsRequired = errors.New("actor name is required")
)

// StartMoveCommand represents a request to begin dragging an order on the
// board. Acquiring the lock gives the actor exclusive movement rights until
// the move ends or the lock expires.
//
// Example:
//
//	cmd, err := NewStartMoveCommand(orderID, userID, "R. Santos")
//	if err != nil {
//	    return fmt.Errorf("invalid move request: %w", err)
//	}
//
//	handler := NewStartMoveCommandHandler(uowFactory, lockTable, publisher)
//	lock, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order is being moved by someone else: %w", err)
//	}
type StartMoveCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorID   kernel.UUID
	actorName string

	guard guard.ConstructorGuard
}

// NewStartMoveCommand creates a command to acquire the movement lock on an order.
// Validates that both ids are valid and the actor name is not empty.
func NewStartMoveCommand(orderID, actorID kernel.UUID, actorName string) (StartMoveCommand, error) {
	moveCommand := StartMoveCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		moveCommand.setOrderID(orderID),
		moveCommand.setActorID(actorID),
		moveCommand.setActorName(actorName),
	); err != nil {
		return StartMoveCommand{}, err
	}

	return moveCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c StartMoveCommand) Validate() error {
	return c.guard.Validate(ErrStartMoveCommandIsNotConstructed)
}

// OrderID returns the order the actor wants to move.
func (c StartMoveCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the user requesting the lock.
func (c StartMoveCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorName returns the display name shown to other users while the lock is held.
func (c StartMoveCommand) ActorName() string {
	return c.actorName
}

func (c *StartMoveCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *StartMoveCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *StartMoveCommand) setActorName(actorName string) error {
	if actorName == "" {
		return ErrActorNameIsRequired
	}

	c.actorName = actorName
	return nil
}
