package workcentre

import (
	"errors"
	"fmt"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/pkg/errs"
)

var (
	// ErrWorkCentreIsNotConstructed is returned when a WorkCentre instance was
	// not created through NewWorkCentre or RestoreWorkCentre.
	ErrWorkCentreIsNotConstructed = errors.New("WorkCentre must be created via NewWorkCentre constructor")
)

// WorkCentre is a named queue/station through which orders pass.
//
// Capacity is advisory: a configured soft limit surfaced as a warning when a
// queue grows past it, never enforced as a hard block. Zero means unlimited.
// Inactive work centres remain visible but refuse incoming moves.
type WorkCentre struct {
	id       kernel.UUID
	name     string
	capacity int
	isActive bool

	isConstructed bool
}

// NewWorkCentre creates an active work centre.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - name: display name (must be non-empty)
//   - capacity: advisory queue limit, 0 = unlimited (must not be negative)
func NewWorkCentre(id kernel.UUID, name string, capacity int) (*WorkCentre, error) {
	wc := &WorkCentre{
		isActive:      true,
		isConstructed: true,
	}

	if err := errors.Join(
		wc.setID(id),
		wc.setName(name),
		wc.setCapacity(capacity),
	); err != nil {
		return nil, err
	}

	return wc, nil
}

// RestoreWorkCentre rehydrates a work centre from persistence, preserving its
// stored active flag.
func RestoreWorkCentre(id kernel.UUID, name string, capacity int, isActive bool) (*WorkCentre, error) {
	wc, err := NewWorkCentre(id, name, capacity)
	if err != nil {
		return nil, err
	}
	wc.isActive = isActive
	return wc, nil
}

// Validate ensures the WorkCentre instance was properly constructed.
func (wc *WorkCentre) Validate() error {
	if wc == nil || !wc.isConstructed {
		return ErrWorkCentreIsNotConstructed
	}
	return nil
}

// ID returns the work centre's unique identifier.
func (wc *WorkCentre) ID() kernel.UUID {
	return wc.id
}

// Name returns the display name.
func (wc *WorkCentre) Name() string {
	return wc.name
}

// Capacity returns the advisory queue limit; 0 means unlimited.
func (wc *WorkCentre) Capacity() int {
	return wc.capacity
}

// IsActive reports whether the work centre accepts incoming moves.
func (wc *WorkCentre) IsActive() bool {
	return wc.isActive
}

// Activate marks the work centre as accepting moves.
func (wc *WorkCentre) Activate() {
	wc.isActive = true
}

// Deactivate stops the work centre from accepting moves. Orders already queued
// stay where they are.
func (wc *WorkCentre) Deactivate() {
	wc.isActive = false
}

// HasCapacityFor reports whether a queue depth fits within the advisory
// capacity. Always true for unlimited (0) capacity. Callers surface an
// overflow as a warning, never as a rejection.
func (wc *WorkCentre) HasCapacityFor(depth int) bool {
	if wc.capacity == 0 {
		return true
	}
	return depth <= wc.capacity
}

func (wc *WorkCentre) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	wc.id = id
	return nil
}

func (wc *WorkCentre) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	wc.name = name
	return nil
}

func (wc *WorkCentre) setCapacity(capacity int) error {
	if capacity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity", fmt.Errorf("%d is negative", capacity))
	}
	wc.capacity = capacity
	return nil
}
