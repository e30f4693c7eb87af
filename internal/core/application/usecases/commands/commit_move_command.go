package commands

import (
	"errors"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/pkg/errs"
	"planboard/internal/pkg/guard"
)

var ErrCommitMoveCommandIsNotConstructed = errors.New(
	"CommitMoveCommand must be created via NewCommitMoveCommand constructor",
)

// CommitMoveCommand represents a request to move an order to a work centre
// queue, or to the unassigned pool when the destination is nil. A nil target
// position appends to the end of the destination queue.
//
// Trusted commands come from integration callers that never acquired a lock;
// everything originating from an interactive drag must hold one.
//
// Example:
//
//	position := 2
//	cmd, err := NewCommitMoveCommand(orderID, &weldingID, &position, userID, "R. Santos", "rush job", false)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewCommitMoveCommandHandler(uowFactory, lockTable, publisher)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	if result.CapacityWarning {
//	    // destination queue is over its advisory capacity
//	}
type CommitMoveCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	toWorkCentreID *kernel.UUID
	targetPosition *int
	actorID        kernel.UUID
	actorName      string
	reason         string
	trusted        bool

	guard guard.ConstructorGuard
}

// NewCommitMoveCommand creates a command to commit an order move.
// A nil toWorkCentreID means the unassigned pool; a nil targetPosition means
// append. Validates ids, that the position is not negative, and that the
// actor name is not empty.
func NewCommitMoveCommand(
	orderID kernel.UUID,
	toWorkCentreID *kernel.UUID,
	targetPosition *int,
	actorID kernel.UUID,
	actorName string,
	reason string,
	trusted bool,
) (CommitMoveCommand, error) {
	moveCommand := CommitMoveCommand{
		reason:  reason,
		trusted: trusted,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		moveCommand.setOrderID(orderID),
		moveCommand.setToWorkCentreID(toWorkCentreID),
		moveCommand.setTargetPosition(targetPosition),
		moveCommand.setActorID(actorID),
		moveCommand.setActorName(actorName),
	); err != nil {
		return CommitMoveCommand{}, err
	}

	return moveCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CommitMoveCommand) Validate() error {
	return c.guard.Validate(ErrCommitMoveCommandIsNotConstructed)
}

// OrderID returns the order being moved.
func (c CommitMoveCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ToWorkCentreID returns the destination queue, or nil for the unassigned pool.
func (c CommitMoveCommand) ToWorkCentreID() *kernel.UUID {
	return c.toWorkCentreID
}

// TargetPosition returns the requested slot in the destination queue, or nil to append.
func (c CommitMoveCommand) TargetPosition() *int {
	return c.targetPosition
}

// ActorID returns the user performing the move.
func (c CommitMoveCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorName returns the actor's display name for the audit trail.
func (c CommitMoveCommand) ActorName() string {
	return c.actorName
}

// Reason returns the optional free-text justification for the move.
func (c CommitMoveCommand) Reason() string {
	return c.reason
}

// Trusted reports whether the caller is an integration exempt from the lock requirement.
func (c CommitMoveCommand) Trusted() bool {
	return c.trusted
}

func (c *CommitMoveCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CommitMoveCommand) setToWorkCentreID(toWorkCentreID *kernel.UUID) error {
	if toWorkCentreID == nil {
		return nil
	}

	if err := toWorkCentreID.Validate(); err != nil {
		return err
	}

	id := *toWorkCentreID
	c.toWorkCentreID = &id
	return nil
}

func (c *CommitMoveCommand) setTargetPosition(targetPosition *int) error {
	if targetPosition == nil {
		return nil
	}

	if *targetPosition < 0 {
		return errs.NewValueIsOutOfRangeError("targetPosition", *targetPosition, 0, int(^uint(0)>>1))
	}

	position := *targetPosition
	c.targetPosition = &position
	return nil
}

func (c *CommitMoveCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *CommitMoveCommand) setActorName(actorName string) error {
	if actorName == "" {
		return ErrActorNameIsRequired
	}

	c.actorName = actorName
	return nil
}
