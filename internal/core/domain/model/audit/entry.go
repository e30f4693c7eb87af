package audit

import (
	"errors"
	"time"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when an Entry was not created through NewEntry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// EventType classifies an audit entry.
type EventType string

const (
	EventOrderCreated  EventType = "created"
	EventOrderMoved    EventType = "moved"
	EventStatusChanged EventType = "status_changed"
	EventOrderDeleted  EventType = "deleted"
)

// Validate checks the event type against the known set.
func (t EventType) Validate() error {
	switch t {
	case EventOrderCreated, EventOrderMoved, EventStatusChanged, EventOrderDeleted:
		return nil
	default:
		return errs.NewValueIsInvalidError("eventType")
	}
}

// Entry is one immutable record of a movement decision: who did what to which
// order, between which queues, with enough structured context (queue depths,
// reason) to reconstruct why, not just what. Entries are append-only and are
// never updated or deleted.
type Entry struct {
	id               kernel.UUID
	eventType        EventType
	orderID          kernel.UUID
	orderNumber      string
	fromWorkCentreID *kernel.UUID
	toWorkCentreID   *kernel.UUID
	actorID          kernel.UUID
	actorName        string
	payload          map[string]any
	createdAt        time.Time

	isConstructed bool
}

// NewEntry creates an audit entry stamped with the current UTC time.
// The payload map is copied so later caller mutations cannot alter the record.
func NewEntry(
	eventType EventType,
	orderID kernel.UUID,
	orderNumber string,
	fromWorkCentreID *kernel.UUID,
	toWorkCentreID *kernel.UUID,
	actorID kernel.UUID,
	actorName string,
	payload map[string]any,
) (Entry, error) {
	if err := errors.Join(
		eventType.Validate(),
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return Entry{}, err
	}
	if orderNumber == "" {
		return Entry{}, errs.NewValueIsRequiredError("orderNumber")
	}

	copied := make(map[string]any, len(payload))
	for k, v := range payload {
		copied[k] = v
	}

	return Entry{
		id:               kernel.NewUUID(),
		eventType:        eventType,
		orderID:          orderID,
		orderNumber:      orderNumber,
		fromWorkCentreID: fromWorkCentreID,
		toWorkCentreID:   toWorkCentreID,
		actorID:          actorID,
		actorName:        actorName,
		payload:          copied,
		createdAt:        time.Now().UTC(),
		isConstructed:    true,
	}, nil
}

// Validate ensures the Entry was created via NewEntry.
func (e Entry) Validate() error {
	if !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e Entry) ID() kernel.UUID { return e.id }

// Type returns the event classification.
func (e Entry) Type() EventType { return e.eventType }

// OrderID returns the subject order's identifier.
func (e Entry) OrderID() kernel.UUID { return e.orderID }

// OrderNumber returns the denormalized order number at the time of the event.
func (e Entry) OrderNumber() string { return e.orderNumber }

// FromWorkCentre returns the source queue, nil for unassigned.
func (e Entry) FromWorkCentre() *kernel.UUID { return e.fromWorkCentreID }

// ToWorkCentre returns the destination queue, nil for unassigned.
func (e Entry) ToWorkCentre() *kernel.UUID { return e.toWorkCentreID }

// ActorID returns the identity that triggered the event.
func (e Entry) ActorID() kernel.UUID { return e.actorID }

// ActorName returns the actor's display name at the time of the event.
func (e Entry) ActorName() string { return e.actorName }

// Payload returns a copy of the structured context recorded with the event.
func (e Entry) Payload() map[string]any {
	copied := make(map[string]any, len(e.payload))
	for k, v := range e.payload {
		copied[k] = v
	}
	return copied
}

// CreatedAt returns the event timestamp (UTC).
func (e Entry) CreatedAt() time.Time { return e.createdAt }
