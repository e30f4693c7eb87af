package ports

import (
	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/core/domain/model/order"
	"planboard/internal/locks"
)

// OrderMovedEvent carries everything viewers need to render a committed move
// without a follow-up fetch.
type OrderMovedEvent struct {
	OrderID         kernel.UUID
	OrderNumber     string
	FromWorkCentre  *kernel.UUID
	ToWorkCentre    *kernel.UUID
	Position        int
	Status          order.Status
	ActorName       string
	CapacityWarning bool
}

// StatusChangedEvent carries a committed status transition.
type StatusChangedEvent struct {
	OrderID     kernel.UUID
	OrderNumber string
	From        order.Status
	To          order.Status
	ActorName   string
}

// EventPublisher is the observer boundary between the state machine / lock
// table and the real-time fan-out. Publishing is fire-and-forget: delivery is
// best-effort and must never block or fail a committed operation.
type EventPublisher interface {
	// OrderLocked announces a granted lock the moment acquire succeeds.
	OrderLocked(lock locks.Lock)

	// OrderUnlocked announces a released or expired lock.
	OrderUnlocked(orderID kernel.UUID, orderNumber string)

	// OrderMoved announces a committed queue move.
	OrderMoved(event OrderMovedEvent)

	// StatusChanged announces a committed status transition.
	StatusChanged(event StatusChangedEvent)

	// BroadcastToRoom delivers an arbitrary event to every viewer, for
	// lower-frequency signals such as queue reorders and order creation.
	BroadcastToRoom(eventType string, payload map[string]any)

	// NotifyUser delivers a payload to every open connection of one user.
	NotifyUser(userID kernel.UUID, payload map[string]any)
}
