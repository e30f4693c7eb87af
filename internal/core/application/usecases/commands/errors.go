package commands

import (
	"errors"
	"fmt"

	"planboard/internal/core/domain/model/order"
	"planboard/internal/locks"
	"planboard/internal/pkg/errs"
)

var (
	// ErrWorkCentreInactive is returned when a move targets a deactivated work centre.
	ErrWorkCentreInactive = errors.New("work centre is not active")

	// ErrWorkCentreNotEmpty is returned when deleting a work centre that still has orders queued.
	ErrWorkCentreNotEmpty = errors.New("work centre still has orders in its queue")

	// ErrOrderNumberTaken is returned when creating an order with a number already in use.
	ErrOrderNumberTaken = errors.New("order number is already in use")

	// ErrWorkCentreNameTaken is returned when creating a work centre with a name already in use.
	ErrWorkCentreNameTaken = errors.New("work centre name is already in use")

	// ErrMembershipMismatch is returned when a reorder request does not list
	// exactly the orders currently in the queue.
	ErrMembershipMismatch = errors.New("ordered id list does not match queue membership")
)

// MembershipMismatchError reports a reorder request whose id list diverged
// from the queue's actual contents, usually because the client's view is stale.
type MembershipMismatchError struct {
	Expected int
	Got      int
}

func (e *MembershipMismatchError) Error() string {
	return fmt.Sprintf("ordered id list does not match queue membership: queue has %d orders, request lists %d valid ids", e.Expected, e.Got)
}

func (e *MembershipMismatchError) Unwrap() error {
	return ErrMembershipMismatch
}

// maxStorageAttempts bounds the retry loop for transient storage failures.
// Business rule violations are never retried.
const maxStorageAttempts = 3

// isBusinessError reports whether err represents a domain rule violation
// rather than a storage fault. Business errors surface to the caller
// immediately; everything else is assumed transient and eligible for retry.
func isBusinessError(err error) bool {
	for _, sentinel := range []error{
		locks.ErrOrderLocked,
		order.ErrInvalidTransition,
		order.ErrOrderIsTerminal,
		ErrWorkCentreInactive,
		ErrWorkCentreNotEmpty,
		ErrOrderNumberTaken,
		ErrWorkCentreNameTaken,
		ErrMembershipMismatch,
		errs.ErrObjectNotFound,
		errs.ErrObjectStillReferenced,
		errs.ErrValueIsInvalid,
		errs.ErrValueIsRequired,
		errs.ErrValueIsOutOfRange,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// withStorageRetry runs fn up to maxStorageAttempts times. A business error
// aborts the loop on first occurrence; a storage error is retried until the
// attempts run out.
func withStorageRetry(fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < maxStorageAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil || isBusinessError(lastErr) {
			return lastErr
		}
	}
	return lastErr
}
