package commands

import (
	"errors"

	"planboard/internal/pkg/guard"
)

var ErrMarkOverdueOrdersCommandIsNotConstructed = errors.New(
	"MarkOverdueOrdersCommand must be created via NewMarkOverdueOrdersCommand constructor",
)

// MarkOverdueOrdersCommand represents the periodic sweep that flags orders
// still in progress past their due date. Triggered by the scheduler rather
// than a user.
//
// Example:
//
//	cmd, err := NewMarkOverdueOrdersCommand()
//	if err != nil {
//	    return err
//	}
//
//	handler := NewMarkOverdueOrdersCommandHandler(uowFactory, publisher, clock)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("overdue sweep failed: %w", err)
//	}
type MarkOverdueOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewMarkOverdueOrdersCommand creates a command to run the overdue sweep.
func NewMarkOverdueOrdersCommand() (MarkOverdueOrdersCommand, error) {
	return MarkOverdueOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOverdueOrdersCommand) Validate() error {
	return c.guard.Validate(ErrMarkOverdueOrdersCommandIsNotConstructed)
}
