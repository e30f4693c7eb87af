package commands

import (
	"errors"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/core/domain/model/order"
	"planboard/internal/pkg/guard"
)

var ErrChangeStatusCommandIsNotConstructed = errors.New(
	"ChangeStatusCommand must be created via NewChangeStatusCommand constructor",
)

// ChangeStatusCommand represents a request to transition an order to a new
// status. Only transitions allowed by the order lifecycle succeed.
//
// Example:
//
//	cmd, err := NewChangeStatusCommand(orderID, order.InProgress, userID, "R. Santos", "")
//	if err != nil {
//	    return err
//	}
//
//	handler := NewChangeStatusCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("status change rejected: %w", err)
//	}
type ChangeStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	newStatus order.Status
	actorID   kernel.UUID
	actorName string
	reason    string

	guard guard.ConstructorGuard
}

// NewChangeStatusCommand creates a command to transition an order's status.
// Validates ids, that the target status is a known value, and that the actor
// name is not empty.
func NewChangeStatusCommand(
	orderID kernel.UUID,
	newStatus order.Status,
	actorID kernel.UUID,
	actorName string,
	reason string,
) (ChangeStatusCommand, error) {
	statusCommand := ChangeStatusCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderID(orderID),
		statusCommand.setNewStatus(newStatus),
		statusCommand.setActorID(actorID),
		statusCommand.setActorName(actorName),
	); err != nil {
		return ChangeStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeStatusCommandIsNotConstructed)
}

// OrderID returns the order whose status is changing.
func (c ChangeStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewStatus returns the requested target status.
func (c ChangeStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// ActorID returns the user requesting the change.
func (c ChangeStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorName returns the actor's display name for the audit trail.
func (c ChangeStatusCommand) ActorName() string {
	return c.actorName
}

// Reason returns the optional free-text justification for the change.
func (c ChangeStatusCommand) Reason() string {
	return c.reason
}

func (c *ChangeStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeStatusCommand) setNewStatus(newStatus order.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	c.newStatus = newStatus
	return nil
}

func (c *ChangeStatusCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *ChangeStatusCommand) setActorName(actorName string) error {
	if actorName == "" {
		return ErrActorNameIsRequired
	}

	c.actorName = actorName
	return nil
}
