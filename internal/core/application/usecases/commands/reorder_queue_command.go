package commands

import (
	"errors"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/pkg/errs"
	"planboard/internal/pkg/guard"
)

var ErrReorderQueueCommandIsNotConstructed = errors.New(
	"ReorderQueueCommand must be created via NewReorderQueueCommand constructor",
)

// ReorderQueueCommand represents a request to replace the full ordering of a
// single queue. The id list must contain exactly the orders currently in the
// queue, each once.
//
// Example:
//
//	cmd, err := NewReorderQueueCommand(&weldingID, orderedIDs, userID, "R. Santos")
//	if err != nil {
//	    return err
//	}
//
//	handler := NewReorderQueueCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("reorder rejected: %w", err)
//	}
type ReorderQueueCommand struct { //nolint:recvcheck //using for validation
	workCentreID *kernel.UUID
	orderedIDs   []kernel.UUID
	actorID      kernel.UUID
	actorName    string

	guard guard.ConstructorGuard
}

// NewReorderQueueCommand creates a command to reorder a queue.
// A nil workCentreID targets the unassigned pool. Validates that the id list
// is not empty and contains no duplicates.
func NewReorderQueueCommand(
	workCentreID *kernel.UUID,
	orderedIDs []kernel.UUID,
	actorID kernel.UUID,
	actorName string,
) (ReorderQueueCommand, error) {
	reorderCommand := ReorderQueueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		reorderCommand.setWorkCentreID(workCentreID),
		reorderCommand.setOrderedIDs(orderedIDs),
		reorderCommand.setActorID(actorID),
		reorderCommand.setActorName(actorName),
	); err != nil {
		return ReorderQueueCommand{}, err
	}

	return reorderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReorderQueueCommand) Validate() error {
	return c.guard.Validate(ErrReorderQueueCommandIsNotConstructed)
}

// WorkCentreID returns the queue being reordered, or nil for the unassigned pool.
func (c ReorderQueueCommand) WorkCentreID() *kernel.UUID {
	return c.workCentreID
}

// OrderedIDs returns the requested ordering, position 0 first.
func (c ReorderQueueCommand) OrderedIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.orderedIDs))
	copy(ids, c.orderedIDs)
	return ids
}

// ActorID returns the user requesting the reorder.
func (c ReorderQueueCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorName returns the actor's display name.
func (c ReorderQueueCommand) ActorName() string {
	return c.actorName
}

func (c *ReorderQueueCommand) setWorkCentreID(workCentreID *kernel.UUID) error {
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

func (c *ReorderQueueCommand) setOrderedIDs(orderedIDs []kernel.UUID) error {
	if len(orderedIDs) == 0 {
		return errs.NewValueIsRequiredError("orderedIDs")
	}

	seen := make(map[kernel.UUID]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, duplicate := seen[id]; duplicate {
			return errs.NewValueIsInvalidError("orderedIDs")
		}
		seen[id] = struct{}{}
	}

	c.orderedIDs = make([]kernel.UUID, len(orderedIDs))
	copy(c.orderedIDs, orderedIDs)
	return nil
}

func (c *ReorderQueueCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *ReorderQueueCommand) setActorName(actorName string) error {
	if actorName == "" {
		return ErrActorNameIsRequired
	}

	c.actorName = actorName
	return nil
}
