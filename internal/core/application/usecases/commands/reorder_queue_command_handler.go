package commands

import (
	"context"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/core/domain/model/order"
	"planboard/internal/core/ports"
)

// ReorderQueueCommandHandler handles bulk reordering of a single queue.
// The request must account for every order currently in the queue, so a
// client working from a stale board view gets a membership mismatch instead
// of silently dropping or resurrecting orders.
type ReorderQueueCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewReorderQueueCommandHandler creates a handler for queue reordering.
func NewReorderQueueCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) ReorderQueueCommandHandler {
	return ReorderQueueCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the reorder command.
// On success every order in the queue holds the position of its index in the
// requested list.
func (h *ReorderQueueCommandHandler) Handle(ctx context.Context, cmd ReorderQueueCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	err := withStorageRetry(func() error {
		return h.execute(ctx, cmd)
	})
	if err != nil {
		return err
	}

	h.publisher.BroadcastToRoom("queue_reordered", map[string]any{
		"work_centre_id": uuidPointerString(cmd.WorkCentreID()),
		"order_ids":      uuidStrings(cmd.OrderedIDs()),
		"actor_name":     cmd.ActorName(),
	})

	return nil
}

func (h *ReorderQueueCommandHandler) execute(ctx context.Context, cmd ReorderQueueCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	queue, err := orderRepo.GetQueue(ctx, cmd.WorkCentreID())
	if err != nil {
		return err
	}

	requested := cmd.OrderedIDs()
	if err = checkMembership(queue, requested); err != nil {
		return err
	}

	if err = orderRepo.SaveQueuePositions(ctx, cmd.WorkCentreID(), requested); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func checkMembership(queue []*order.Order, requested []kernel.UUID) error {
	current := make(map[kernel.UUID]struct{}, len(queue))
	for _, queued := range queue {
		current[queued.ID()] = struct{}{}
	}

	matched := 0
	for _, id := range requested {
		if _, ok := current[id]; ok {
			matched++
		}
	}

	if matched != len(queue) || len(requested) != len(queue) {
		return &MembershipMismatchError{Expected: len(queue), Got: matched}
	}

	return nil
}

func uuidPointerString(id *kernel.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

func uuidStrings(ids []kernel.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
