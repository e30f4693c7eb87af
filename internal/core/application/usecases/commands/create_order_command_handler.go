package commands

import (
	"context"
	"errors"

	"planboard/internal/core/domain/model/audit"
	"planboard/internal/core/domain/model/order"
	"planboard/internal/core/ports"
	"planboard/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// New orders join the end of their queue in "not started" status, and the
// creation is recorded in the audit trail.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), "WO-1042", order.PriorityNormal, dueDate, nil, userID, "R. Santos")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory BoardUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(uowFactory BoardUoWFactory, publisher ports.EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order creation command.
// Rejects duplicate order numbers and unknown work centres.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var position int

	err := withStorageRetry(func() error {
		var execErr error
		position, execErr = h.execute(ctx, cmd)
		return execErr
	})
	if err != nil {
		return err
	}

	h.publisher.BroadcastToRoom("order_created", map[string]any{
		"order_id":       cmd.OrderID().String(),
		"order_number":   cmd.Number(),
		"work_centre_id": uuidPointerString(cmd.WorkCentreID()),
		"position":       position,
		"priority":       cmd.Priority().String(),
		"due_date":       cmd.DueDate(),
		"actor_name":     cmd.ActorName(),
	})

	return nil
}

func (h *CreateOrderCommandHandler) execute(ctx context.Context, cmd CreateOrderCommand) (int, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	if _, err := orderRepo.GetByNumber(ctx, cmd.Number()); err == nil {
		return 0, ErrOrderNumberTaken
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return 0, err
	}

	if cmd.WorkCentreID() != nil {
		if _, err := uow.WorkCentreRepository().Get(ctx, *cmd.WorkCentreID()); err != nil {
			return 0, err
		}
	}

	position, err := orderRepo.CountInQueue(ctx, cmd.WorkCentreID())
	if err != nil {
		return 0, err
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.Number(), cmd.Priority(), cmd.DueDate())
	if err != nil {
		return 0, err
	}

	if err = newOrder.MoveTo(cmd.WorkCentreID(), position); err != nil {
		return 0, err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return 0, err
	}

	entry, err := audit.NewEntry(
		audit.EventOrderCreated,
		newOrder.ID(),
		newOrder.Number(),
		nil,
		cmd.WorkCentreID(),
		cmd.ActorID(),
		cmd.ActorName(),
		map[string]any{
			"priority":         cmd.Priority().String(),
			"due_date":         cmd.DueDate().Format("2006-01-02"),
			"queue_depth_after": position + 1,
		},
	)
	if err != nil {
		return 0, err
	}

	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return position, nil
}
