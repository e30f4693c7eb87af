package order

import (
	"fmt"

	"planboard/internal/pkg/errs"
)

// Priority ranks an order's urgency on the planning board. It carries no
// scheduling semantics in the core; it exists for display and sorting.
type Priority int

const (
	// PriorityUnknown catches uninitialized Priority values.
	PriorityUnknown Priority = iota

	PriorityLow
	PriorityNormal
	PriorityHigh
	PriorityUrgent
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityUnknown: "unknown",
		PriorityLow:     "low",
		PriorityNormal:  "normal",
		PriorityHigh:    "high",
		PriorityUrgent:  "urgent",
	}
}

func getValidPriorityStrings() map[Priority]string {
	//nolint:exhaustive // PriorityUnknown is intentionally excluded as it's invalid
	return map[Priority]string{
		PriorityLow:    "low",
		PriorityNormal: "normal",
		PriorityHigh:   "high",
		PriorityUrgent: "urgent",
	}
}

// PriorityFromString parses the wire representation of a priority.
func PriorityFromString(s string) (Priority, error) {
	for priority, name := range getValidPriorityStrings() {
		if name == s {
			return priority, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a valid priority", s))
}

// Validate checks if the Priority value is one of the defined levels.
func (p Priority) Validate() error {
	if _, ok := getValidPriorityStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

// String returns the lowercase name of the priority.
func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "unknown"
}
