package commands

import (
	"errors"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/pkg/guard"
)

var ErrDeleteWorkCentreCommandIsNotConstructed = errors.New(
	"DeleteWorkCentreCommand must be created via NewDeleteWorkCentreCommand constructor",
)

// DeleteWorkCentreCommand represents a request to remove a work centre.
// Deletion is refused while any order still sits in its queue.
type DeleteWorkCentreCommand struct { //nolint:recvcheck //using for validation
	workCentreID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteWorkCentreCommand creates a command to delete a work centre.
func NewDeleteWorkCentreCommand(workCentreID kernel.UUID) (DeleteWorkCentreCommand, error) {
	deleteCommand := DeleteWorkCentreCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := deleteCommand.setWorkCentreID(workCentreID); err != nil {
		return DeleteWorkCentreCommand{}, err
	}

	return deleteCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteWorkCentreCommand) Validate() error {
	return c.guard.Validate(ErrDeleteWorkCentreCommandIsNotConstructed)
}

// WorkCentreID returns the work centre to delete.
func (c DeleteWorkCentreCommand) WorkCentreID() kernel.UUID {
	return c.workCentreID
}

func (c *DeleteWorkCentreCommand) setWorkCentreID(workCentreID kernel.UUID) error {
	if err := workCentreID.Validate(); err != nil {
		return err
	}

	c.workCentreID = workCentreID
	return nil
}
