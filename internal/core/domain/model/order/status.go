package order

import (
	"errors"
	"fmt"

	"planboard/internal/pkg/errs"
)

// ErrInvalidTransition is the unwrap target for InvalidTransitionError.
// Use errors.Is(err, ErrInvalidTransition) to classify transition failures.
var ErrInvalidTransition = errors.New("status transition is not allowed")

// Status represents the lifecycle state of a manufacturing order.
// It implements a state machine with a fixed transition table so orders
// follow the correct shop-floor workflow.
//
// State transitions:
//
//	not_started ──> in_progress | on_hold | cancelled
//	in_progress ──> complete | on_hold | cancelled | overdue
//	on_hold     ──> not_started | in_progress | cancelled
//	overdue     ──> in_progress | complete | cancelled
//	complete, cancelled: terminal, no outbound transitions
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// NotStarted is the initial status of a newly created order.
	NotStarted

	// InProgress indicates the order is actively being worked on.
	InProgress

	// OnHold indicates work on the order is paused.
	OnHold

	// Overdue indicates an in-progress order has passed its due date.
	Overdue

	// Complete indicates the order is finished. Terminal.
	Complete

	// Cancelled indicates the order was abandoned. Terminal.
	Cancelled
)

// getStatusStrings returns the string representation for every Status value,
// including Unknown.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		NotStarted: "not_started",
		InProgress: "in_progress",
		OnHold:     "on_hold",
		Overdue:    "overdue",
		Complete:   "complete",
		Cancelled:  "cancelled",
	}
}

// getValidStatusStrings returns only valid Status values, for validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		NotStarted: "not_started",
		InProgress: "in_progress",
		OnHold:     "on_hold",
		Overdue:    "overdue",
		Complete:   "complete",
		Cancelled:  "cancelled",
	}
}

// getAllowedTransitions returns the full transition table. A status missing
// from the map (or mapped to an empty set) has no outbound transitions.
func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		NotStarted: {InProgress, OnHold, Cancelled},
		InProgress: {Complete, OnHold, Cancelled, Overdue},
		OnHold:     {NotStarted, InProgress, Cancelled},
		Overdue:    {InProgress, Complete, Cancelled},
	}
}

// StatusFromString parses the wire representation of a status.
// Returns an error for unknown names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status has no outbound transitions.
func (s Status) IsTerminal() bool {
	return s == Complete || s == Cancelled
}

// CanTransitionTo reports whether the transition table allows moving from the
// current status to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getAllowedTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status when the transition is allowed.
// Any pair outside the transition table fails with an InvalidTransitionError
// naming the attempted from/to pair; the receiver is left untouched either way.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, &InvalidTransitionError{From: s, To: target}
	}
	return target, nil
}

// InvalidTransitionError reports a status change that the transition table
// does not allow, naming the attempted from/to pair.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("status transition is not allowed: %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
