package commands

import (
	"context"
	"time"

	"planboard/internal/core/domain/model/audit"
	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/core/domain/model/order"
	"planboard/internal/core/ports"
)

// schedulerActorName identifies automated transitions in the audit trail.
const schedulerActorName = "scheduler"

// MarkOverdueOrdersCommandHandler flags in-progress orders whose due date has
// passed. Each flagged order gets a status change audit entry attributed to
// the scheduler, and a broadcast so open boards update.
type MarkOverdueOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	actorID    kernel.UUID
	now        func() time.Time
}

// NewMarkOverdueOrdersCommandHandler creates a handler for the overdue sweep.
// The now function is injectable for tests; pass time.Now in production.
func NewMarkOverdueOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	now func() time.Time,
) MarkOverdueOrdersCommandHandler {
	return MarkOverdueOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		actorID:    kernel.NewUUID(),
		now:        now,
	}
}

// Handle processes the overdue sweep.
// Orders already terminal, on hold, or not yet started are left alone.
func (h *MarkOverdueOrdersCommandHandler) Handle(ctx context.Context, cmd MarkOverdueOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var events []ports.StatusChangedEvent

	err := withStorageRetry(func() error {
		var execErr error
		events, execErr = h.execute(ctx)
		return execErr
	})
	if err != nil {
		return err
	}

	for _, event := range events {
		h.publisher.StatusChanged(event)
	}

	return nil
}

func (h *MarkOverdueOrdersCommandHandler) execute(ctx context.Context) ([]ports.StatusChangedEvent, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	candidates, err := orderRepo.GetOverdueCandidates(ctx, h.now())
	if err != nil {
		return nil, err
	}

	events := make([]ports.StatusChangedEvent, 0, len(candidates))

	for _, candidate := range candidates {
		previous := candidate.Status()
		if err = candidate.ChangeStatus(order.Overdue); err != nil {
			return nil, err
		}

		if err = orderRepo.Update(ctx, candidate); err != nil {
			return nil, err
		}

		entry, err := audit.NewEntry(
			audit.EventStatusChanged,
			candidate.ID(),
			candidate.Number(),
			candidate.WorkCentre(),
			candidate.WorkCentre(),
			h.actorID,
			schedulerActorName,
			map[string]any{
				"from":   previous.String(),
				"to":     order.Overdue.String(),
				"reason": "past due date",
			},
		)
		if err != nil {
			return nil, err
		}

		if err = uow.AuditRepository().Append(ctx, entry); err != nil {
			return nil, err
		}

		events = append(events, ports.StatusChangedEvent{
			OrderID:     candidate.ID(),
			OrderNumber: candidate.Number(),
			From:        previous,
			To:          order.Overdue,
			ActorName:   schedulerActorName,
		})
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return events, nil
}
