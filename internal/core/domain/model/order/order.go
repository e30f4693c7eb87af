package order

import (
	"errors"
	"fmt"
	"time"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIsTerminal is the unwrap target for TerminalOrderError.
	// It classifies the business-rule failure of mutating a complete or
	// cancelled order, which is distinct from an invalid status transition.
	ErrOrderIsTerminal = errors.New("order is in a terminal status")
)

// TerminalOrderError reports an attempt to move or reposition an order whose
// status is terminal (complete or cancelled).
type TerminalOrderError struct {
	Number string
	Status Status
}

func (e *TerminalOrderError) Error() string {
	return fmt.Sprintf("order %s is in terminal status %s and cannot be moved", e.Number, e.Status)
}

func (e *TerminalOrderError) Unwrap() error {
	return ErrOrderIsTerminal
}

// Order is the movable unit on the planning board: the aggregate root for a
// manufacturing order's queue placement and lifecycle status.
//
// Order maintains these invariants:
//   - Must have a valid unique identifier and a non-empty order number
//   - Work centre reference is nullable; nil means the "unassigned" queue
//   - Position is its rank within the current queue (0-based display order)
//   - Status transitions follow the Status transition table
//   - Terminal orders (complete, cancelled) can never change queue or position
//   - Can only be created through NewOrder or rehydrated through RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// number is the human-readable order number, unique across the board
	number string

	// workCentreID is the current queue; nil means unassigned
	workCentreID *kernel.UUID

	// position is the order's rank within its queue
	position int

	// status is the current lifecycle state
	status Status

	// priority ranks urgency for display
	priority Priority

	// dueDate is the promised completion date
	dueDate time.Time

	// completedAt is stamped on the transition to Complete
	completedAt *time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in the not_started status, placed in the
// unassigned queue at position 0. This is the only way to create a valid new
// order; all invariants are validated here.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - number: human-readable order number (must be non-empty)
//   - priority: urgency level (must be a valid Priority)
//   - dueDate: promised completion date (must be non-zero)
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "MO-001", order.PriorityNormal, due)
//	if err != nil {
//	    // handle validation error
//	}
func NewOrder(id kernel.UUID, number string, priority Priority, dueDate time.Time) (*Order, error) {
	o := &Order{
		status:        NotStarted,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setPriority(priority),
		o.setDueDate(dueDate),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rehydrates an Order from persistence without re-running the
// creation rules. The stored status and placement are trusted but still
// type-validated so corrupt rows surface as errors instead of invalid aggregates.
func RestoreOrder(
	id kernel.UUID,
	number string,
	workCentreID *kernel.UUID,
	position int,
	status Status,
	priority Priority,
	dueDate time.Time,
	completedAt *time.Time,
) (*Order, error) {
	o := &Order{
		workCentreID:  workCentreID,
		position:      position,
		completedAt:   completedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setPriority(priority),
		o.setDueDate(dueDate),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status

	if workCentreID != nil {
		if err := workCentreID.Validate(); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// WorkCentre returns the current queue's work centre ID, or nil when the
// order sits in the unassigned queue.
func (o *Order) WorkCentre() *kernel.UUID {
	return o.workCentreID
}

// Position returns the order's rank within its current queue.
func (o *Order) Position() int {
	return o.position
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Priority returns the order's urgency level.
func (o *Order) Priority() Priority {
	return o.priority
}

// DueDate returns the promised completion date.
func (o *Order) DueDate() time.Time {
	return o.dueDate
}

// CompletedAt returns the completion timestamp, or nil while unfinished.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// IsInQueue reports whether the order currently sits in the given queue.
// Both sides nil (unassigned) count as the same queue.
func (o *Order) IsInQueue(workCentreID *kernel.UUID) bool {
	if o.workCentreID == nil || workCentreID == nil {
		return o.workCentreID == nil && workCentreID == nil
	}
	return o.workCentreID.IsEqual(*workCentreID)
}

// MoveTo places the order into the given queue at the given position.
// A nil work centre ID moves the order to the unassigned queue.
//
// Business rules:
//   - Terminal orders cannot be moved (TerminalOrderError)
//   - Position must not be negative
//
// Renumbering of the surrounding queue members is the caller's concern; the
// aggregate only records its own placement.
func (o *Order) MoveTo(workCentreID *kernel.UUID, position int) error {
	if o.status.IsTerminal() {
		return &TerminalOrderError{Number: o.number, Status: o.status}
	}
	if position < 0 {
		return errs.NewValueIsInvalidErrorWithCause("position", fmt.Errorf("%d is negative", position))
	}
	if workCentreID != nil {
		if err := workCentreID.Validate(); err != nil {
			return err
		}
		id := *workCentreID
		o.workCentreID = &id
	} else {
		o.workCentreID = nil
	}
	o.position = position
	return nil
}

// SetPosition updates the order's rank within its current queue.
// Terminal orders keep their position frozen.
func (o *Order) SetPosition(position int) error {
	if o.status.IsTerminal() {
		return &TerminalOrderError{Number: o.number, Status: o.status}
	}
	if position < 0 {
		return errs.NewValueIsInvalidErrorWithCause("position", fmt.Errorf("%d is negative", position))
	}
	o.position = position
	return nil
}

// ChangeStatus transitions the order to a new lifecycle status.
// The transition must be allowed by the Status transition table; otherwise an
// InvalidTransitionError is returned and the order is left unchanged.
// The transition to Complete stamps the completion timestamp.
func (o *Order) ChangeStatus(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	if newStatus == Complete {
		now := time.Now().UTC()
		o.completedAt = &now
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	o.number = number
	return nil
}

func (o *Order) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	o.priority = priority
	return nil
}

func (o *Order) setDueDate(dueDate time.Time) error {
	if dueDate.IsZero() {
		return errs.NewValueIsRequiredError("dueDate")
	}
	o.dueDate = dueDate
	return nil
}
