package commands

import (
	"errors"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand represents a request to remove an order from the board.
// The remaining orders in its queue close ranks so positions stay contiguous.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorID   kernel.UUID
	actorName string

	guard guard.ConstructorGuard
}

// NewDeleteOrderCommand creates a command to delete an order.
func NewDeleteOrderCommand(orderID, actorID kernel.UUID, actorName string) (DeleteOrderCommand, error) {
	deleteCommand := DeleteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		deleteCommand.setOrderID(orderID),
		deleteCommand.setActorID(actorID),
		deleteCommand.setActorName(actorName),
	); err != nil {
		return DeleteOrderCommand{}, err
	}

	return deleteCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

// OrderID returns the order to delete.
func (c DeleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the user requesting the deletion.
func (c DeleteOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorName returns the actor's display name for the audit trail.
func (c DeleteOrderCommand) ActorName() string {
	return c.actorName
}

func (c *DeleteOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DeleteOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *DeleteOrderCommand) setActorName(actorName string) error {
	if actorName == "" {
		return ErrActorNameIsRequired
	}

	c.actorName = actorName
	return nil
}
