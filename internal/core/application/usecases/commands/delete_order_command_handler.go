package commands

import (
	"context"

	"planboard/internal/core/domain/model/audit"
	"planboard/internal/core/ports"
	"planboard/internal/locks"
)

// DeleteOrderCommandHandler handles order removal.
// Refuses to delete an order that another user is currently moving. The
// actor's own lock, if any, is released after the delete commits.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      LockTable
	publisher  ports.EventPublisher
}

// NewDeleteOrderCommandHandler creates a handler for order deletion.
func NewDeleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	lockTable LockTable,
	publisher ports.EventPublisher,
) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		locks:      lockTable,
		publisher:  publisher,
	}
}

// Handle processes the order deletion command.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if lock, held := h.locks.Peek(cmd.OrderID()); held && !lock.UserID.IsEqual(cmd.ActorID()) {
		return &locks.ConflictError{
			OrderID:     cmd.OrderID(),
			OrderNumber: lock.OrderNumber,
			HolderID:    lock.UserID,
			HolderName:  lock.DisplayName,
		}
	}

	var orderNumber string

	err := withStorageRetry(func() error {
		var execErr error
		orderNumber, execErr = h.execute(ctx, cmd)
		return execErr
	})
	if err != nil {
		return err
	}

	if h.locks.Release(cmd.OrderID(), cmd.ActorID()) {
		h.publisher.OrderUnlocked(cmd.OrderID(), orderNumber)
	}

	h.publisher.BroadcastToRoom("order_deleted", map[string]any{
		"order_id":     cmd.OrderID().String(),
		"order_number": orderNumber,
		"actor_name":   cmd.ActorName(),
	})

	return nil
}

func (h *DeleteOrderCommandHandler) execute(ctx context.Context, cmd DeleteOrderCommand) (string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	deletingOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return "", err
	}

	queue, err := orderRepo.GetQueue(ctx, deletingOrder.WorkCentre())
	if err != nil {
		return "", err
	}

	if err = orderRepo.Delete(ctx, deletingOrder.ID()); err != nil {
		return "", err
	}

	remaining := queueIDsExcluding(queue, deletingOrder.ID())
	if err = orderRepo.SaveQueuePositions(ctx, deletingOrder.WorkCentre(), remaining); err != nil {
		return "", err
	}

	entry, err := audit.NewEntry(
		audit.EventOrderDeleted,
		deletingOrder.ID(),
		deletingOrder.Number(),
		deletingOrder.WorkCentre(),
		nil,
		cmd.ActorID(),
		cmd.ActorName(),
		map[string]any{
			"status": deletingOrder.Status().String(),
		},
	)
	if err != nil {
		return "", err
	}

	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return deletingOrder.Number(), nil
}
