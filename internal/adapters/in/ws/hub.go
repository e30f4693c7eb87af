// Package ws fans board events out to every connected viewer over websockets.
// All viewers share one room: the board. A single goroutine owns the session
// map and the event sequence, so every connection observes events in the same
// order without locks. Delivery is best-effort: a viewer that cannot keep up
// is disconnected rather than allowed to stall the board.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/core/ports"
	"planboard/internal/locks"
)

// sendBuffer is the per-connection outbound queue. A full buffer marks the
// connection as too slow and it gets dropped.
const sendBuffer = 64

// queueBuffer sizes the hub's inbound event channels. Publishing never
// blocks a committed operation; events beyond the buffer are dropped with a
// warning.
const queueBuffer = 256

// Event is the wire envelope for every board broadcast. Seq is a
// board-global sequence number assigned at fan-out: clients use it to detect
// gaps and re-fetch the board.
type Event struct {
	Type    string         `json:"type"`
	Seq     uint64         `json:"seq"`
	Payload map[string]any `json:"payload"`
}

type outbound struct {
	eventType string
	payload   map[string]any
}

type directed struct {
	userID  kernel.UUID
	payload map[string]any
}

// Viewer is one distinct user currently watching the board.
type Viewer struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Connections int    `json:"connections"`
}

type presenceRequest struct {
	reply chan []Viewer
}

// LockLister provides the current lock table view for join snapshots.
// Satisfied by *locks.Table.
type LockLister interface {
	List() map[kernel.UUID]locks.View
}

// Hub owns all board websocket sessions and implements ports.EventPublisher.
// State is confined to the Run goroutine; every mutation arrives through a
// channel.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan outbound
	notify     chan directed
	presence   chan presenceRequest

	// owned by Run
	clients map[*Client]bool
	viewers map[kernel.UUID]int
	names   map[kernel.UUID]string
	seq     uint64

	lockLister LockLister
	logger     *slog.Logger
}

// NewHub creates a hub. The lock lister feeds the lock snapshot each joining
// connection receives before any live event.
func NewHub(lockLister LockLister, logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan outbound, queueBuffer),
		notify:     make(chan directed, queueBuffer),
		presence:   make(chan presenceRequest),
		clients:    make(map[*Client]bool),
		viewers:    make(map[kernel.UUID]int),
		names:      make(map[kernel.UUID]string),
		lockLister: lockLister,
		logger:     logger.With("component", "ws_hub"),
	}
}

// Run processes hub events until the context is cancelled. Exactly one Run
// goroutine may be active per hub.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return

		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)

		case message := <-h.broadcast:
			h.fanOut(message.eventType, message.payload)

		case message := <-h.notify:
			h.deliverToUser(message.userID, message.payload)

		case request := <-h.presence:
			request.reply <- h.currentViewers()
		}
	}
}

func (h *Hub) handleRegister(client *Client) {
	h.clients[client] = true
	h.viewers[client.userID]++
	h.names[client.userID] = client.displayName

	// snapshot first so the client can reconcile lock state before live
	// events arrive
	h.deliver(client, h.nextEvent("lock_snapshot", h.snapshotPayload()))

	if h.viewers[client.userID] == 1 {
		h.fanOut("user_joined", map[string]any{
			"user_id":      client.userID.String(),
			"display_name": client.displayName,
			"viewers":      len(h.viewers),
		})
	}

	h.logger.Info("viewer connected",
		"user_id", client.userID.String(),
		"connections", h.viewers[client.userID],
	)
}

func (h *Hub) handleUnregister(client *Client) {
	if !h.clients[client] {
		return
	}

	delete(h.clients, client)
	close(client.send)

	h.viewers[client.userID]--
	if h.viewers[client.userID] > 0 {
		return
	}

	delete(h.viewers, client.userID)
	displayName := h.names[client.userID]
	delete(h.names, client.userID)

	h.fanOut("user_left", map[string]any{
		"user_id":      client.userID.String(),
		"display_name": displayName,
		"viewers":      len(h.viewers),
	})
}

func (h *Hub) fanOut(eventType string, payload map[string]any) {
	message := h.nextEvent(eventType, payload)
	for client := range h.clients {
		h.deliver(client, message)
	}
}

func (h *Hub) deliverToUser(userID kernel.UUID, payload map[string]any) {
	message := h.nextEvent("notice", payload)
	for client := range h.clients {
		if client.userID.IsEqual(userID) {
			h.deliver(client, message)
		}
	}
}

// deliver enqueues the message on one connection. A full send buffer means
// the client stopped reading; it is cut off so the board never backs up.
func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.send <- message:
	default:
		delete(h.clients, client)
		close(client.send)
		h.viewers[client.userID]--
		if h.viewers[client.userID] <= 0 {
			delete(h.viewers, client.userID)
			delete(h.names, client.userID)
		}
		h.logger.Warn("dropping slow viewer", "user_id", client.userID.String())
	}
}

func (h *Hub) nextEvent(eventType string, payload map[string]any) []byte {
	h.seq++
	message, err := json.Marshal(Event{
		Type:    eventType,
		Seq:     h.seq,
		Payload: payload,
	})
	if err != nil {
		h.logger.Error("failed to encode event", "type", eventType, "error", err)
		return []byte(`{}`)
	}
	return message
}

func (h *Hub) currentViewers() []Viewer {
	viewers := make([]Viewer, 0, len(h.viewers))
	for userID, connections := range h.viewers {
		viewers = append(viewers, Viewer{
			UserID:      userID.String(),
			DisplayName: h.names[userID],
			Connections: connections,
		})
	}
	return viewers
}

// Presence returns the distinct users currently watching the board. It round
// trips through the Run goroutine, so it must not be called after the hub's
// context is cancelled.
func (h *Hub) Presence() []Viewer {
	request := presenceRequest{reply: make(chan []Viewer, 1)}
	h.presence <- request
	return <-request.reply
}

func (h *Hub) snapshotPayload() map[string]any {
	views := h.lockLister.List()
	entries := make([]map[string]any, 0, len(views))
	for _, view := range views {
		entries = append(entries, map[string]any{
			"order_id":          view.OrderID.String(),
			"order_number":      view.OrderNumber,
			"user_id":           view.UserID.String(),
			"display_name":      view.DisplayName,
			"remaining_seconds": int(view.Remaining / time.Second),
		})
	}
	return map[string]any{"locks": entries}
}

// enqueue hands an event to the Run loop without ever blocking the caller.
func (h *Hub) enqueue(eventType string, payload map[string]any) {
	select {
	case h.broadcast <- outbound{eventType: eventType, payload: payload}:
	default:
		h.logger.Warn("event queue full, dropping broadcast", "type", eventType)
	}
}

// OrderLocked implements ports.EventPublisher.
func (h *Hub) OrderLocked(lock locks.Lock) {
	h.enqueue("order_locked", map[string]any{
		"order_id":     lock.OrderID.String(),
		"order_number": lock.OrderNumber,
		"user_id":      lock.UserID.String(),
		"display_name": lock.DisplayName,
	})
}

// OrderUnlocked implements ports.EventPublisher.
func (h *Hub) OrderUnlocked(orderID kernel.UUID, orderNumber string) {
	h.enqueue("order_unlocked", map[string]any{
		"order_id":     orderID.String(),
		"order_number": orderNumber,
	})
}

// OrderMoved implements ports.EventPublisher.
func (h *Hub) OrderMoved(event ports.OrderMovedEvent) {
	payload := map[string]any{
		"order_id":         event.OrderID.String(),
		"order_number":     event.OrderNumber,
		"position":         event.Position,
		"status":           event.Status.String(),
		"actor_name":       event.ActorName,
		"capacity_warning": event.CapacityWarning,
	}

	payload["from_work_centre_id"] = nil
	if event.FromWorkCentre != nil {
		payload["from_work_centre_id"] = event.FromWorkCentre.String()
	}

	payload["to_work_centre_id"] = nil
	if event.ToWorkCentre != nil {
		payload["to_work_centre_id"] = event.ToWorkCentre.String()
	}

	h.enqueue("order_moved", payload)
}

// StatusChanged implements ports.EventPublisher.
func (h *Hub) StatusChanged(event ports.StatusChangedEvent) {
	h.enqueue("status_changed", map[string]any{
		"order_id":     event.OrderID.String(),
		"order_number": event.OrderNumber,
		"from":         event.From.String(),
		"to":           event.To.String(),
		"actor_name":   event.ActorName,
	})
}

// BroadcastToRoom implements ports.EventPublisher.
func (h *Hub) BroadcastToRoom(eventType string, payload map[string]any) {
	h.enqueue(eventType, payload)
}

// NotifyUser implements ports.EventPublisher.
func (h *Hub) NotifyUser(userID kernel.UUID, payload map[string]any) {
	select {
	case h.notify <- directed{userID: userID, payload: payload}:
	default:
		h.logger.Warn("notify queue full, dropping message", "user_id", userID.String())
	}
}
