package commands_test

import (
	"errors"
	"testing"
	"time"

	"planboard/internal/core/application/usecases/commands"
	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/core/domain/model/order"
	"planboard/internal/core/domain/model/workcentre"
	"planboard/internal/core/ports"
	"planboard/internal/locks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func dueDate() time.Time {
	return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
}

func restoredOrder(t *testing.T, number string, workCentreID *kernel.UUID, position int, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(kernel.NewUUID(), number, workCentreID, position, status, order.PriorityNormal, dueDate(), nil)
	require.NoError(t, err)
	return o
}

func activeCentre(t *testing.T, id kernel.UUID, capacity int) *workcentre.WorkCentre {
	t.Helper()
	wc, err := workcentre.NewWorkCentre(id, "Welding", capacity)
	require.NoError(t, err)
	return wc
}

func heldLockTable(t *testing.T, orderID, userID kernel.UUID) *locks.Table {
	t.Helper()
	table := locks.NewTable()
	_, err := table.Acquire(orderID, userID, "R. Santos", "MO-001")
	require.NoError(t, err)
	return table
}

func TestCommitMoveCommandHandler_Handle_CrossQueueMove(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	sourceID := kernel.NewUUID()
	destID := kernel.NewUUID()

	moving := restoredOrder(t, "MO-001", &sourceID, 0, order.InProgress)
	staying := restoredOrder(t, "MO-002", &sourceID, 1, order.NotStarted)
	queued := restoredOrder(t, "MO-003", &destID, 0, order.NotStarted)

	cmd, err := commands.NewCommitMoveCommand(moving.ID(), &destID, nil, actorID, "R. Santos", "", false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	wcRepo := new(MockWorkCentreRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockBoardUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("WorkCentreRepository").Return(wcRepo)
	uow.On("AuditRepository").Return(auditRepo)

	orderRepo.On("Get", ctx, moving.ID()).Return(moving, nil).Once()
	wcRepo.On("Get", ctx, destID).Return(activeCentre(t, destID, 0), nil).Once()
	orderRepo.On("GetQueue", ctx, &sourceID).Return([]*order.Order{moving, staying}, nil).Once()
	orderRepo.On("GetQueue", ctx, &destID).Return([]*order.Order{queued}, nil).Once()
	orderRepo.On("Update", ctx, moving).Return(nil).Once()
	orderRepo.On("SaveQueuePositions", ctx, &sourceID, []kernel.UUID{staying.ID()}).Return(nil).Once()
	orderRepo.On("SaveQueuePositions", ctx, &destID, []kernel.UUID{queued.ID(), moving.ID()}).Return(nil).Once()
	auditRepo.On("Append", ctx, mock.AnythingOfType("audit.Entry")).Return(nil).Once()

	factory := new(MockBoardUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("OrderMoved", mock.AnythingOfType("ports.OrderMovedEvent")).Once()

	h := commands.NewCommitMoveCommandHandler(factory, heldLockTable(t, moving.ID(), actorID), publisher)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.False(t, result.CapacityWarning)
	require.NotNil(t, result.Order.WorkCentre())
	assert.True(t, result.Order.WorkCentre().IsEqual(destID))
	assert.Equal(t, 1, result.Order.Position())

	event := publisher.Calls[0].Arguments.Get(0).(ports.OrderMovedEvent)
	assert.Equal(t, "MO-001", event.OrderNumber)
	assert.Equal(t, 1, event.Position)
	require.NotNil(t, event.FromWorkCentre)
	assert.True(t, event.FromWorkCentre.IsEqual(sourceID))

	orderRepo.AssertExpectations(t)
	wcRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCommitMoveCommandHandler_Handle_CapacityWarning(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	destID := kernel.NewUUID()

	moving := restoredOrder(t, "MO-001", nil, 0, order.NotStarted)
	queued := restoredOrder(t, "MO-003", &destID, 0, order.NotStarted)

	cmd, err := commands.NewCommitMoveCommand(moving.ID(), &destID, nil, actorID, "R. Santos", "", false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	wcRepo := new(MockWorkCentreRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockBoardUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("WorkCentreRepository").Return(wcRepo)
	uow.On("AuditRepository").Return(auditRepo)

	orderRepo.On("Get", ctx, moving.ID()).Return(moving, nil).Once()
	// capacity 1, queue will grow to 2
	wcRepo.On("Get", ctx, destID).Return(activeCentre(t, destID, 1), nil).Once()
	orderRepo.On("GetQueue", ctx, (*kernel.UUID)(nil)).Return([]*order.Order{moving}, nil).Once()
	orderRepo.On("GetQueue", ctx, &destID).Return([]*order.Order{queued}, nil).Once()
	orderRepo.On("Update", ctx, moving).Return(nil).Once()
	orderRepo.On("SaveQueuePositions", ctx, (*kernel.UUID)(nil), []kernel.UUID{}).Return(nil).Once()
	orderRepo.On("SaveQueuePositions", ctx, &destID, []kernel.UUID{queued.ID(), moving.ID()}).Return(nil).Once()
	auditRepo.On("Append", ctx, mock.AnythingOfType("audit.Entry")).Return(nil).Once()

	factory := new(MockBoardUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("OrderMoved", mock.AnythingOfType("ports.OrderMovedEvent")).Once()

	h := commands.NewCommitMoveCommandHandler(factory, heldLockTable(t, moving.ID(), actorID), publisher)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, result.CapacityWarning)

	event := publisher.Calls[0].Arguments.Get(0).(ports.OrderMovedEvent)
	assert.True(t, event.CapacityWarning)
}

func TestCommitMoveCommandHandler_Handle_NoLockHeld(t *testing.T) {
	ctx := t.Context()
	destID := kernel.NewUUID()

	cmd, err := commands.NewCommitMoveCommand(kernel.NewUUID(), &destID, nil, kernel.NewUUID(), "R. Santos", "", false)
	require.NoError(t, err)

	factory := new(MockBoardUoWFactory)
	publisher := new(MockEventPublisher)

	h := commands.NewCommitMoveCommandHandler(factory, locks.NewTable(), publisher)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, locks.ErrOrderLocked)
	factory.AssertNotCalled(t, "Create")
}

func TestCommitMoveCommandHandler_Handle_LockHeldByOther(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	holderID := kernel.NewUUID()
	destID := kernel.NewUUID()

	cmd, err := commands.NewCommitMoveCommand(orderID, &destID, nil, kernel.NewUUID(), "R. Santos", "", false)
	require.NoError(t, err)

	h := commands.NewCommitMoveCommandHandler(
		new(MockBoardUoWFactory),
		heldLockTable(t, orderID, holderID),
		new(MockEventPublisher),
	)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)

	var conflict *locks.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.True(t, conflict.HolderID.IsEqual(holderID))
}

func TestCommitMoveCommandHandler_Handle_TrustedSkipsLock(t *testing.T) {
	ctx := t.Context()
	destID := kernel.NewUUID()

	moving := restoredOrder(t, "MO-001", nil, 0, order.NotStarted)

	cmd, err := commands.NewCommitMoveCommand(moving.ID(), &destID, nil, kernel.NewUUID(), "erp-sync", "", true)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	wcRepo := new(MockWorkCentreRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockBoardUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("WorkCentreRepository").Return(wcRepo)
	uow.On("AuditRepository").Return(auditRepo)

	orderRepo.On("Get", ctx, moving.ID()).Return(moving, nil).Once()
	wcRepo.On("Get", ctx, destID).Return(activeCentre(t, destID, 0), nil).Once()
	orderRepo.On("GetQueue", ctx, (*kernel.UUID)(nil)).Return([]*order.Order{moving}, nil).Once()
	orderRepo.On("GetQueue", ctx, &destID).Return([]*order.Order{}, nil).Once()
	orderRepo.On("Update", ctx, moving).Return(nil).Once()
	orderRepo.On("SaveQueuePositions", ctx, (*kernel.UUID)(nil), []kernel.UUID{}).Return(nil).Once()
	orderRepo.On("SaveQueuePositions", ctx, &destID, []kernel.UUID{moving.ID()}).Return(nil).Once()
	auditRepo.On("Append", ctx, mock.AnythingOfType("audit.Entry")).Return(nil).Once()

	factory := new(MockBoardUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("OrderMoved", mock.AnythingOfType("ports.OrderMovedEvent")).Once()

	// empty lock table: trusted callers never acquired one
	h := commands.NewCommitMoveCommandHandler(factory, locks.NewTable(), publisher)
	_, err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestCommitMoveCommandHandler_Handle_TerminalOrder(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	destID := kernel.NewUUID()

	completed := restoredOrder(t, "MO-001", nil, 0, order.Complete)

	cmd, err := commands.NewCommitMoveCommand(completed.ID(), &destID, nil, actorID, "R. Santos", "", false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockBoardUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", ctx, completed.ID()).Return(completed, nil).Once()

	factory := new(MockBoardUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewCommitMoveCommandHandler(factory, heldLockTable(t, completed.ID(), actorID), publisher)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrOrderIsTerminal)
	// terminal is a business error: exactly one attempt
	factory.AssertNumberOfCalls(t, "Create", 1)
	publisher.AssertNotCalled(t, "OrderMoved", mock.Anything)
}

func TestCommitMoveCommandHandler_Handle_SameQueueNoPositionIsNoOp(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	sourceID := kernel.NewUUID()

	moving := restoredOrder(t, "MO-001", &sourceID, 1, order.InProgress)

	cmd, err := commands.NewCommitMoveCommand(moving.ID(), &sourceID, nil, actorID, "R. Santos", "", false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	wcRepo := new(MockWorkCentreRepository)
	uow := new(MockBoardUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("WorkCentreRepository").Return(wcRepo)
	orderRepo.On("Get", ctx, moving.ID()).Return(moving, nil).Once()
	wcRepo.On("Get", ctx, sourceID).Return(activeCentre(t, sourceID, 0), nil).Once()

	factory := new(MockBoardUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewCommitMoveCommandHandler(factory, heldLockTable(t, moving.ID(), actorID), publisher)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Order.Position())

	orderRepo.AssertNotCalled(t, "SaveQueuePositions", mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "OrderMoved", mock.Anything)
}

func TestCommitMoveCommandHandler_Handle_SameQueueReposition(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	sourceID := kernel.NewUUID()

	first := restoredOrder(t, "MO-001", &sourceID, 0, order.NotStarted)
	second := restoredOrder(t, "MO-002", &sourceID, 1, order.NotStarted)
	moving := restoredOrder(t, "MO-003", &sourceID, 2, order.NotStarted)

	front := 0
	cmd, err := commands.NewCommitMoveCommand(moving.ID(), &sourceID, &front, actorID, "R. Santos", "rush", false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	wcRepo := new(MockWorkCentreRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockBoardUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("WorkCentreRepository").Return(wcRepo)
	uow.On("AuditRepository").Return(auditRepo)

	orderRepo.On("Get", ctx, moving.ID()).Return(moving, nil).Once()
	wcRepo.On("Get", ctx, sourceID).Return(activeCentre(t, sourceID, 0), nil).Once()
	orderRepo.On("GetQueue", ctx, &sourceID).Return([]*order.Order{first, second, moving}, nil).Once()
	orderRepo.On("Update", ctx, moving).Return(nil).Once()
	orderRepo.On("SaveQueuePositions", ctx, &sourceID,
		[]kernel.UUID{moving.ID(), first.ID(), second.ID()}).Return(nil).Once()
	auditRepo.On("Append", ctx, mock.AnythingOfType("audit.Entry")).Return(nil).Once()

	factory := new(MockBoardUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("OrderMoved", mock.AnythingOfType("ports.OrderMovedEvent")).Once()

	h := commands.NewCommitMoveCommandHandler(factory, heldLockTable(t, moving.ID(), actorID), publisher)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Order.Position())
	orderRepo.AssertExpectations(t)
}

func TestCommitMoveCommandHandler_Handle_InactiveDestination(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	destID := kernel.NewUUID()

	moving := restoredOrder(t, "MO-001", nil, 0, order.NotStarted)

	cmd, err := commands.NewCommitMoveCommand(moving.ID(), &destID, nil, actorID, "R. Santos", "", false)
	require.NoError(t, err)

	inactive := activeCentre(t, destID, 0)
	inactive.Deactivate()

	orderRepo := new(MockOrderRepository)
	wcRepo := new(MockWorkCentreRepository)
	uow := new(MockBoardUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("WorkCentreRepository").Return(wcRepo)
	orderRepo.On("Get", ctx, moving.ID()).Return(moving, nil).Once()
	wcRepo.On("Get", ctx, destID).Return(inactive, nil).Once()

	factory := new(MockBoardUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCommitMoveCommandHandler(factory, heldLockTable(t, moving.ID(), actorID), new(MockEventPublisher))
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrWorkCentreInactive)
}

func TestCommitMoveCommandHandler_Handle_RetriesStorageFailure(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	destID := kernel.NewUUID()

	cmd, err := commands.NewCommitMoveCommand(kernel.NewUUID(), &destID, nil, actorID, "R. Santos", "", false)
	require.NoError(t, err)

	uow := new(MockBoardUoW)
	uow.On("Begin", ctx).Return(errors.New("connection reset")).Times(3)

	factory := new(MockBoardUoWFactory)
	factory.On("Create").Return(uow).Times(3)

	h := commands.NewCommitMoveCommandHandler(factory, heldLockTable(t, cmd.OrderID(), actorID), new(MockEventPublisher))
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	factory.AssertNumberOfCalls(t, "Create", 3)
}

func TestCommitMoveCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CommitMoveCommand{} // not constructed properly

	h := commands.NewCommitMoveCommandHandler(new(MockBoardUoWFactory), locks.NewTable(), new(MockEventPublisher))
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
