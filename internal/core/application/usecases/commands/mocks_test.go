package commands_test

import (
	"context"
	"time"

	"planboard/internal/core/application/usecases/commands"
	"planboard/internal/core/domain/model/audit"
	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/core/domain/model/order"
	"planboard/internal/core/domain/model/workcentre"
	"planboard/internal/core/ports"
	"planboard/internal/locks"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetQueue(ctx context.Context, workCentreID *kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, workCentreID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountInQueue(ctx context.Context, workCentreID *kernel.UUID) (int, error) {
	args := m.Called(ctx, workCentreID)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) SaveQueuePositions(ctx context.Context, workCentreID *kernel.UUID, orderedIDs []kernel.UUID) error {
	args := m.Called(ctx, workCentreID, orderedIDs)
	return args.Error(0)
}

func (m *MockOrderRepository) ExistsInWorkCentre(ctx context.Context, workCentreID kernel.UUID) (bool, error) {
	args := m.Called(ctx, workCentreID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) GetOverdueCandidates(ctx context.Context, now time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockWorkCentreRepository struct{ mock.Mock }

func (m *MockWorkCentreRepository) Add(ctx context.Context, aggregate *workcentre.WorkCentre) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockWorkCentreRepository) Update(ctx context.Context, aggregate *workcentre.WorkCentre) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockWorkCentreRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkCentreRepository) Get(ctx context.Context, id kernel.UUID) (*workcentre.WorkCentre, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workcentre.WorkCentre), args.Error(1)
}

func (m *MockWorkCentreRepository) GetByName(ctx context.Context, name string) (*workcentre.WorkCentre, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workcentre.WorkCentre), args.Error(1)
}

func (m *MockWorkCentreRepository) GetAll(ctx context.Context) ([]*workcentre.WorkCentre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*workcentre.WorkCentre), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Append(ctx context.Context, entry audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockBoardUoW struct{ mock.Mock }

func (m *MockBoardUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBoardUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBoardUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBoardUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockBoardUoW) WorkCentreRepository() ports.WorkCentreRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkCentreRepository)
}

func (m *MockBoardUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

type MockBoardUoWFactory struct{ mock.Mock }

func (m *MockBoardUoWFactory) Create() commands.BoardUoW {
	args := m.Called()
	return args.Get(0).(commands.BoardUoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockWorkCentreUoW struct{ mock.Mock }

func (m *MockWorkCentreUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWorkCentreUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWorkCentreUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWorkCentreUoW) WorkCentreRepository() ports.WorkCentreRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkCentreRepository)
}

func (m *MockWorkCentreUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockWorkCentreUoWFactory struct{ mock.Mock }

func (m *MockWorkCentreUoWFactory) Create() commands.WorkCentreUoW {
	args := m.Called()
	return args.Get(0).(commands.WorkCentreUoW)
}

// MockEventPublisher records broadcasts without a real hub behind it.
type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) OrderLocked(lock locks.Lock) {
	m.Called(lock)
}

func (m *MockEventPublisher) OrderUnlocked(orderID kernel.UUID, orderNumber string) {
	m.Called(orderID, orderNumber)
}

func (m *MockEventPublisher) OrderMoved(event ports.OrderMovedEvent) {
	m.Called(event)
}

func (m *MockEventPublisher) StatusChanged(event ports.StatusChangedEvent) {
	m.Called(event)
}

func (m *MockEventPublisher) BroadcastToRoom(eventType string, payload map[string]any) {
	m.Called(eventType, payload)
}

func (m *MockEventPublisher) NotifyUser(userID kernel.UUID, payload map[string]any) {
	m.Called(userID, payload)
}
