package commands

import (
	"errors"
	"time"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/core/domain/model/order"
	"planboard/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNumberIsRequired = errors.New("order number is required")
)

// CreateOrderCommand represents a request to register a new production order
// on the board. A nil work centre id places the order in the unassigned pool.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "WO-1042", order.PriorityHigh, dueDate, &weldingID, userID, "R. Santos")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	number       string
	priority     order.Priority
	dueDate      time.Time
	workCentreID *kernel.UUID
	actorID      kernel.UUID
	actorName    string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new production order.
// Validates ids, the order number, and the priority value.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	number string,
	priority order.Priority,
	dueDate time.Time,
	workCentreID *kernel.UUID,
	actorID kernel.UUID,
	actorName string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		dueDate: dueDate,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setNumber(number),
		orderCommand.setPriority(priority),
		orderCommand.setWorkCentreID(workCentreID),
		orderCommand.setActorID(actorID),
		orderCommand.setActorName(actorName),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Number returns the human-readable order number.
func (c CreateOrderCommand) Number() string {
	return c.number
}

// Priority returns the scheduling priority.
func (c CreateOrderCommand) Priority() order.Priority {
	return c.priority
}

// DueDate returns the date the order must be finished by.
func (c CreateOrderCommand) DueDate() time.Time {
	return c.dueDate
}

// WorkCentreID returns the initial queue, or nil for the unassigned pool.
func (c CreateOrderCommand) WorkCentreID() *kernel.UUID {
	return c.workCentreID
}

// ActorID returns the user creating the order.
func (c CreateOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorName returns the actor's display name for the audit trail.
func (c CreateOrderCommand) ActorName() string {
	return c.actorName
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setNumber(number string) error {
	if number == "" {
		return ErrOrderNumberIsRequired
	}

	c.number = number
	return nil
}

func (c *CreateOrderCommand) setPriority(priority order.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}

	c.priority = priority
	return nil
}

func (c *CreateOrderCommand) setWorkCentreID(workCentreID *kernel.UUID) error {
	if workCentreID == nil {
		return nil
	}

	if err := workCentreID.Validate(); err != nil {
		return err
	}

	id := *workCentreID
	c.workCentreID = &id
	return nil
}

func (c *CreateOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *CreateOrderCommand) setActorName(actorName string) error {
	if actorName == "" {
		return ErrActorNameIsRequired
	}

	c.actorName = actorName
	return nil
}
