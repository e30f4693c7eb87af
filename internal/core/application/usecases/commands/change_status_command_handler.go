package commands

import (
	"context"

	"planboard/internal/core/domain/model/audit"
	"planboard/internal/core/ports"
)

// ChangeStatusCommandHandler handles status transitions.
// The order aggregate enforces the lifecycle rules; the handler persists the
// result, appends the audit entry, and broadcasts the change. Transient
// storage failures are retried a bounded number of times.
//
// Example:
//
//	handler := NewChangeStatusCommandHandler(uowFactory, publisher)
//	cmd, _ := NewChangeStatusCommand(orderID, order.Complete, userID, "R. Santos", "")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    var invalid *order.InvalidTransitionError
//	    if errors.As(err, &invalid) {
//	        // the lifecycle forbids this transition
//	    }
//	    return err
//	}
type ChangeStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewChangeStatusCommandHandler creates a handler for status transitions.
func NewChangeStatusCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) ChangeStatusCommandHandler {
	return ChangeStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the status change command.
func (h *ChangeStatusCommandHandler) Handle(ctx context.Context, cmd ChangeStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var event ports.StatusChangedEvent

	err := withStorageRetry(func() error {
		var execErr error
		event, execErr = h.execute(ctx, cmd)
		return execErr
	})
	if err != nil {
		return err
	}

	h.publisher.StatusChanged(event)
	return nil
}

func (h *ChangeStatusCommandHandler) execute(ctx context.Context, cmd ChangeStatusCommand) (ports.StatusChangedEvent, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.StatusChangedEvent{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	changingOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return ports.StatusChangedEvent{}, err
	}

	previous := changingOrder.Status()
	if err = changingOrder.ChangeStatus(cmd.NewStatus()); err != nil {
		return ports.StatusChangedEvent{}, err
	}

	if err = orderRepo.Update(ctx, changingOrder); err != nil {
		return ports.StatusChangedEvent{}, err
	}

	entry, err := audit.NewEntry(
		audit.EventStatusChanged,
		changingOrder.ID(),
		changingOrder.Number(),
		changingOrder.WorkCentre(),
		changingOrder.WorkCentre(),
		cmd.ActorID(),
		cmd.ActorName(),
		map[string]any{
			"from":   previous.String(),
			"to":     cmd.NewStatus().String(),
			"reason": cmd.Reason(),
		},
	)
	if err != nil {
		return ports.StatusChangedEvent{}, err
	}

	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return ports.StatusChangedEvent{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ports.StatusChangedEvent{}, err
	}

	return ports.StatusChangedEvent{
		OrderID:     changingOrder.ID(),
		OrderNumber: changingOrder.Number(),
		From:        previous,
		To:          changingOrder.Status(),
		ActorName:   cmd.ActorName(),
	}, nil
}
