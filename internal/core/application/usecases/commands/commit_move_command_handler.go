package commands

import (
	"context"

	"planboard/internal/core/domain/model/audit"
	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/core/domain/model/order"
	"planboard/internal/core/domain/model/workcentre"
	"planboard/internal/core/ports"
	"planboard/internal/locks"
)

// MoveResult reports the outcome of a committed move.
type MoveResult struct {
	Order *order.Order
	// CapacityWarning is set when the destination queue now exceeds its
	// advisory capacity. The move still succeeds.
	CapacityWarning bool
}

// CommitMoveCommandHandler handles the business logic for moving an order
// between queues. Both queues are renumbered in a single transaction so
// positions stay contiguous from zero, and one audit entry records the move
// with queue depths before and after.
//
// Transient storage failures are retried a bounded number of times; business
// rule violations never are.
//
// Example:
//
//	handler := NewCommitMoveCommandHandler(uowFactory, lockTable, publisher)
//	cmd, _ := NewCommitMoveCommand(orderID, &weldingID, nil, userID, "R. Santos", "", false)
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("move failed: %w", err)
//	}
//	// result.Order now sits at the end of the welding queue
type CommitMoveCommandHandler struct {
	uowFactory BoardUoWFactory
	locks      LockTable
	publisher  ports.EventPublisher
}

// NewCommitMoveCommandHandler creates a handler for move commits.
func NewCommitMoveCommandHandler(
	uowFactory BoardUoWFactory,
	lockTable LockTable,
	publisher ports.EventPublisher,
) CommitMoveCommandHandler {
	return CommitMoveCommandHandler{
		uowFactory: uowFactory,
		locks:      lockTable,
		publisher:  publisher,
	}
}

// Handle processes the move commit.
// Requires the actor to hold the movement lock unless the command is trusted.
// A move that changes neither queue nor position is a no-op: no audit entry,
// no broadcast.
func (h *CommitMoveCommandHandler) Handle(ctx context.Context, cmd CommitMoveCommand) (MoveResult, error) {
	if err := cmd.Validate(); err != nil {
		return MoveResult{}, err
	}

	if !cmd.Trusted() {
		if err := h.checkLock(cmd); err != nil {
			return MoveResult{}, err
		}
	}

	var (
		result MoveResult
		event  ports.OrderMovedEvent
		moved  bool
	)

	err := withStorageRetry(func() error {
		var execErr error
		result, event, moved, execErr = h.execute(ctx, cmd)
		return execErr
	})
	if err != nil {
		return MoveResult{}, err
	}

	if moved {
		h.publisher.OrderMoved(event)
	}

	return result, nil
}

func (h *CommitMoveCommandHandler) checkLock(cmd CommitMoveCommand) error {
	lock, held := h.locks.Peek(cmd.OrderID())
	if !held {
		return &locks.ConflictError{OrderID: cmd.OrderID()}
	}

	if !lock.UserID.IsEqual(cmd.ActorID()) {
		return &locks.ConflictError{
			OrderID:     cmd.OrderID(),
			OrderNumber: lock.OrderNumber,
			HolderID:    lock.UserID,
			HolderName:  lock.DisplayName,
		}
	}

	return nil
}

func (h *CommitMoveCommandHandler) execute(
	ctx context.Context,
	cmd CommitMoveCommand,
) (MoveResult, ports.OrderMovedEvent, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return MoveResult{}, ports.OrderMovedEvent{}, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	movingOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return MoveResult{}, ports.OrderMovedEvent{}, false, err
	}

	if movingOrder.Status().IsTerminal() {
		return MoveResult{}, ports.OrderMovedEvent{}, false, &order.TerminalOrderError{
			Number: movingOrder.Number(),
			Status: movingOrder.Status(),
		}
	}

	destination, err := h.loadDestination(ctx, uow, cmd.ToWorkCentreID())
	if err != nil {
		return MoveResult{}, ports.OrderMovedEvent{}, false, err
	}

	sameQueue := movingOrder.IsInQueue(cmd.ToWorkCentreID())
	if sameQueue && cmd.TargetPosition() == nil {
		return MoveResult{Order: movingOrder}, ports.OrderMovedEvent{}, false, nil
	}

	from := movingOrder.WorkCentre()

	sourceQueue, err := orderRepo.GetQueue(ctx, from)
	if err != nil {
		return MoveResult{}, ports.OrderMovedEvent{}, false, err
	}
	sourceDepthBefore := len(sourceQueue)

	destQueue := sourceQueue
	if !sameQueue {
		destQueue, err = orderRepo.GetQueue(ctx, cmd.ToWorkCentreID())
		if err != nil {
			return MoveResult{}, ports.OrderMovedEvent{}, false, err
		}
	}
	destDepthBefore := len(destQueue)

	remaining := queueIDsExcluding(sourceQueue, movingOrder.ID())

	var destIDs []kernel.UUID
	var position int

	if sameQueue {
		position = clampPosition(cmd.TargetPosition(), len(remaining))
		destIDs = insertAt(remaining, position, movingOrder.ID())
	} else {
		position = clampPosition(cmd.TargetPosition(), len(destQueue))
		destIDs = insertAt(queueIDs(destQueue), position, movingOrder.ID())
	}

	if err = movingOrder.MoveTo(cmd.ToWorkCentreID(), position); err != nil {
		return MoveResult{}, ports.OrderMovedEvent{}, false, err
	}

	if err = orderRepo.Update(ctx, movingOrder); err != nil {
		return MoveResult{}, ports.OrderMovedEvent{}, false, err
	}

	if !sameQueue {
		if err = orderRepo.SaveQueuePositions(ctx, from, remaining); err != nil {
			return MoveResult{}, ports.OrderMovedEvent{}, false, err
		}
	}

	if err = orderRepo.SaveQueuePositions(ctx, cmd.ToWorkCentreID(), destIDs); err != nil {
		return MoveResult{}, ports.OrderMovedEvent{}, false, err
	}

	destDepthAfter := len(destIDs)
	sourceDepthAfter := len(remaining)
	if sameQueue {
		sourceDepthAfter = destDepthAfter
	}

	capacityWarning := destination != nil && !destination.HasCapacityFor(destDepthAfter)

	entry, err := audit.NewEntry(
		audit.EventOrderMoved,
		movingOrder.ID(),
		movingOrder.Number(),
		from,
		cmd.ToWorkCentreID(),
		cmd.ActorID(),
		cmd.ActorName(),
		map[string]any{
			"position":            position,
			"reason":              cmd.Reason(),
			"capacity_warning":    capacityWarning,
			"source_depth_before": sourceDepthBefore,
			"source_depth_after":  sourceDepthAfter,
			"dest_depth_before":   destDepthBefore,
			"dest_depth_after":    destDepthAfter,
		},
	)
	if err != nil {
		return MoveResult{}, ports.OrderMovedEvent{}, false, err
	}

	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return MoveResult{}, ports.OrderMovedEvent{}, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return MoveResult{}, ports.OrderMovedEvent{}, false, err
	}

	event := ports.OrderMovedEvent{
		OrderID:         movingOrder.ID(),
		OrderNumber:     movingOrder.Number(),
		FromWorkCentre:  from,
		ToWorkCentre:    cmd.ToWorkCentreID(),
		Position:        position,
		Status:          movingOrder.Status(),
		ActorName:       cmd.ActorName(),
		CapacityWarning: capacityWarning,
	}

	return MoveResult{Order: movingOrder, CapacityWarning: capacityWarning}, event, true, nil
}

func (h *CommitMoveCommandHandler) loadDestination(
	ctx context.Context,
	uow BoardUoW,
	toWorkCentreID *kernel.UUID,
) (*workcentre.WorkCentre, error) {
	if toWorkCentreID == nil {
		return nil, nil
	}

	destination, err := uow.WorkCentreRepository().Get(ctx, *toWorkCentreID)
	if err != nil {
		return nil, err
	}

	if !destination.IsActive() {
		return nil, ErrWorkCentreInactive
	}

	return destination, nil
}

func queueIDs(queue []*order.Order) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(queue))
	for _, queued := range queue {
		ids = append(ids, queued.ID())
	}
	return ids
}

func queueIDsExcluding(queue []*order.Order, excluded kernel.UUID) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(queue))
	for _, queued := range queue {
		if queued.ID().IsEqual(excluded) {
			continue
		}
		ids = append(ids, queued.ID())
	}
	return ids
}

// clampPosition resolves a requested position against a queue of the given
// length. Nil means append; anything past the end clamps to the end.
func clampPosition(requested *int, length int) int {
	if requested == nil || *requested > length {
		return length
	}
	return *requested
}

// insertAt returns a new id list with id placed at position; everything at
// and after the position shifts one slot down.
func insertAt(ids []kernel.UUID, position int, id kernel.UUID) []kernel.UUID {
	result := make([]kernel.UUID, 0, len(ids)+1)
	result = append(result, ids[:position]...)
	result = append(result, id)
	result = append(result, ids[position:]...)
	return result
}
