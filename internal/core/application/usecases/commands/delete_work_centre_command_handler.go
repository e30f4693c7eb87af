package commands

import (
	"context"
	"errors"

	"planboard/internal/core/ports"
	"planboard/internal/pkg/errs"
)

// DeleteWorkCentreCommandHandler handles work centre removal.
// A work centre with queued orders cannot be deleted; the orders must be
// moved elsewhere first.
type DeleteWorkCentreCommandHandler struct {
	uowFactory WorkCentreUoWFactory
	publisher  ports.EventPublisher
}

// NewDeleteWorkCentreCommandHandler creates a handler for work centre deletion.
func NewDeleteWorkCentreCommandHandler(
	uowFactory WorkCentreUoWFactory,
	publisher ports.EventPublisher,
) DeleteWorkCentreCommandHandler {
	return DeleteWorkCentreCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the work centre deletion command.
// Returns ErrWorkCentreNotEmpty when orders are still queued at the centre.
func (h *DeleteWorkCentreCommandHandler) Handle(ctx context.Context, cmd DeleteWorkCentreCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	err := withStorageRetry(func() error {
		return h.execute(ctx, cmd)
	})
	if err != nil {
		return err
	}

	h.publisher.BroadcastToRoom("work_centre_deleted", map[string]any{
		"work_centre_id": cmd.WorkCentreID().String(),
	})

	return nil
}

func (h *DeleteWorkCentreCommandHandler) execute(ctx context.Context, cmd DeleteWorkCentreCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.WorkCentreRepository().Get(ctx, cmd.WorkCentreID()); err != nil {
		return err
	}

	occupied, err := uow.OrderRepository().ExistsInWorkCentre(ctx, cmd.WorkCentreID())
	if err != nil {
		return err
	}
	if occupied {
		return ErrWorkCentreNotEmpty
	}

	// the foreign key from orders catches a queue that gained an order
	// after the emptiness check above
	if err = uow.WorkCentreRepository().Delete(ctx, cmd.WorkCentreID()); err != nil {
		if errors.Is(err, errs.ErrObjectStillReferenced) {
			return ErrWorkCentreNotEmpty
		}
		return err
	}

	return uow.Commit(ctx)
}
