package commands

import (
	"errors"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/pkg/guard"
)

var ErrCreateWorkCentreCommandIsNotConstructed = errors.New(
	"CreateWorkCentreCommand must be created via NewCreateWorkCentreCommand constructor",
)

// CreateWorkCentreCommand represents a request to add a work centre to the
// board. Capacity zero means the queue depth is unlimited.
type CreateWorkCentreCommand struct { //nolint:recvcheck //using for validation
	workCentreID kernel.UUID
	name         string
	capacity     int

	guard guard.ConstructorGuard
}

// NewCreateWorkCentreCommand creates a command to register a new work centre.
// The work centre aggregate validates the name and capacity.
func NewCreateWorkCentreCommand(workCentreID kernel.UUID, name string, capacity int) (CreateWorkCentreCommand, error) {
	centreCommand := CreateWorkCentreCommand{
		name:     name,
		capacity: capacity,
		guard:    guard.NewConstructorGuard(),
	}

	if err := centreCommand.setWorkCentreID(workCentreID); err != nil {
		return CreateWorkCentreCommand{}, err
	}

	return centreCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateWorkCentreCommand) Validate() error {
	return c.guard.Validate(ErrCreateWorkCentreCommandIsNotConstructed)
}

// WorkCentreID returns the unique identifier for the new work centre.
func (c CreateWorkCentreCommand) WorkCentreID() kernel.UUID {
	return c.workCentreID
}

// Name returns the display name.
func (c CreateWorkCentreCommand) Name() string {
	return c.name
}

// Capacity returns the advisory queue capacity, zero for unlimited.
func (c CreateWorkCentreCommand) Capacity() int {
	return c.capacity
}

func (c *CreateWorkCentreCommand) setWorkCentreID(workCentreID kernel.UUID) error {
	if err := workCentreID.Validate(); err != nil {
		return err
	}

	c.workCentreID = workCentreID
	return nil
}
