package commands

import (
	"context"
	"errors"

	"planboard/internal/core/domain/model/workcentre"
	"planboard/internal/core/ports"
	"planboard/internal/pkg/errs"
)

// CreateWorkCentreCommandHandler handles work centre creation.
// New work centres start active with an empty queue. Display names are
// unique across the board; duplicates are rejected.
type CreateWorkCentreCommandHandler struct {
	uowFactory WorkCentreUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateWorkCentreCommandHandler creates a handler for work centre creation.
func NewCreateWorkCentreCommandHandler(
	uowFactory WorkCentreUoWFactory,
	publisher ports.EventPublisher,
) CreateWorkCentreCommandHandler {
	return CreateWorkCentreCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the work centre creation command.
func (h *CreateWorkCentreCommandHandler) Handle(ctx context.Context, cmd CreateWorkCentreCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newCentre, err := workcentre.NewWorkCentre(cmd.WorkCentreID(), cmd.Name(), cmd.Capacity())
	if err != nil {
		return err
	}

	err = withStorageRetry(func() error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		centreRepo := uow.WorkCentreRepository()

		if _, err := centreRepo.GetByName(ctx, cmd.Name()); err == nil {
			return ErrWorkCentreNameTaken
		} else if !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}

		if err := centreRepo.Add(ctx, newCentre); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
	if err != nil {
		return err
	}

	h.publisher.BroadcastToRoom("work_centre_created", map[string]any{
		"work_centre_id": cmd.WorkCentreID().String(),
		"name":           cmd.Name(),
		"capacity":       cmd.Capacity(),
	})

	return nil
}
