package locks

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"planboard/internal/core/domain/model/kernel"
)

// DefaultTimeout is the single shared lock lifetime. Both the per-lock expiry
// timer and the periodic sweep read this constant so the two mechanisms can
// never diverge.
const DefaultTimeout = 30 * time.Second

// ErrOrderLocked is the unwrap target for ConflictError.
var ErrOrderLocked = errors.New("order is locked by another user")

// ConflictError reports a failed acquire or a commit-time lock check.
// HolderID is the zero UUID when no active lock exists (e.g. the caller's
// lock expired before commit); otherwise it names the current holder so the
// UI can show who is moving the order.
type ConflictError struct {
	OrderID     kernel.UUID
	OrderNumber string
	HolderID    kernel.UUID
	HolderName  string
}

func (e *ConflictError) Error() string {
	if e.HolderID.Validate() != nil {
		return fmt.Sprintf("no active lock held on order %s", e.OrderNumber)
	}
	return fmt.Sprintf("order %s is locked by %s", e.OrderNumber, e.HolderName)
}

func (e *ConflictError) Unwrap() error {
	return ErrOrderLocked
}

// Lock is a transient exclusivity claim on one order. Locks live only in
// process memory; losing them on restart is expected.
type Lock struct {
	OrderID     kernel.UUID
	OrderNumber string
	UserID      kernel.UUID
	DisplayName string
	AcquiredAt  time.Time
}

// View is a Lock enriched with the remaining lifetime, for clients joining
// mid-session that need to render existing locks.
type View struct {
	Lock
	Remaining time.Duration
}

type entry struct {
	lock  Lock
	timer *time.Timer
}

// Table tracks which order is currently being moved by which user.
//
// All operations are synchronous check-and-set under one mutex; Acquire never
// blocks or retries. Expiry is driven by a per-lock timer armed at acquisition
// plus an idempotent periodic sweep as a safety net; a lock older than the
// timeout ceases to exist even without an explicit release.
type Table struct {
	mu      sync.Mutex
	timeout time.Duration
	entries map[kernel.UUID]*entry

	// onExpire is invoked (outside the mutex) for every lock reclaimed by
	// timer or sweep, so expiry can be broadcast to viewers.
	onExpire func(Lock)
}

// Option configures a Table.
type Option func(*Table)

// WithTimeout overrides the lock lifetime. Intended for tests; production code
// uses DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(t *Table) {
		t.timeout = d
	}
}

// WithExpiryCallback registers a callback invoked for every automatically
// reclaimed lock.
func WithExpiryCallback(fn func(Lock)) Option {
	return func(t *Table) {
		t.onExpire = fn
	}
}

// NewTable creates an empty lock table.
func NewTable(opts ...Option) *Table {
	t := &Table{
		timeout: DefaultTimeout,
		entries: make(map[kernel.UUID]*entry),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Timeout returns the configured lock lifetime.
func (t *Table) Timeout() time.Duration {
	return t.timeout
}

// Acquire claims the lock on an order for a user.
//
// Semantics:
//   - no existing lock: the lock is granted and an expiry timer is armed
//   - existing lock held by the same user: idempotent re-acquire, the
//     acquisition timestamp and timer are refreshed
//   - existing lock held by another user: *ConflictError naming the holder
//
// Acquire is a single atomic check-and-set; it never blocks or queues.
func (t *Table) Acquire(orderID, userID kernel.UUID, displayName, orderNumber string) (Lock, error) {
	if err := orderID.Validate(); err != nil {
		return Lock{}, err
	}
	if err := userID.Validate(); err != nil {
		return Lock{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, ok := t.entries[orderID]; ok {
		if !existing.lock.UserID.IsEqual(userID) {
			return Lock{}, &ConflictError{
				OrderID:     orderID,
				OrderNumber: existing.lock.OrderNumber,
				HolderID:    existing.lock.UserID,
				HolderName:  existing.lock.DisplayName,
			}
		}
		// Re-acquire by the holder refreshes the clock.
		existing.lock.AcquiredAt = time.Now()
		existing.timer.Stop()
		existing.timer = t.scheduleExpiry(orderID, existing.lock.AcquiredAt)
		return existing.lock, nil
	}

	lk := Lock{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		UserID:      userID,
		DisplayName: displayName,
		AcquiredAt:  time.Now(),
	}
	t.entries[orderID] = &entry{
		lock:  lk,
		timer: t.scheduleExpiry(orderID, lk.AcquiredAt),
	}
	return lk, nil
}

// Release removes the lock if, and only if, the caller currently holds it.
// Releasing a lock you do not hold is a no-op returning false, not an error;
// this keeps a slow or duplicate release from clearing another user's lock.
func (t *Table) Release(orderID, userID kernel.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, ok := t.entries[orderID]
	if !ok || !existing.lock.UserID.IsEqual(userID) {
		return false
	}

	existing.timer.Stop()
	delete(t.entries, orderID)
	return true
}

// Peek returns the current lock on an order without side effects.
func (t *Table) Peek(orderID kernel.UUID) (Lock, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, ok := t.entries[orderID]
	if !ok {
		return Lock{}, false
	}
	return existing.lock, true
}

// List returns all current locks keyed by order ID, with the computed
// remaining lifetime.
func (t *Table) List() map[kernel.UUID]View {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	views := make(map[kernel.UUID]View, len(t.entries))
	for id, e := range t.entries {
		remaining := t.timeout - now.Sub(e.lock.AcquiredAt)
		if remaining < 0 {
			remaining = 0
		}
		views[id] = View{Lock: e.lock, Remaining: remaining}
	}
	return views
}

// SweepExpired removes every lock older than the timeout and returns the
// reclaimed locks. It is the safety net behind the per-lock timers and is
// safe to run at any frequency.
func (t *Table) SweepExpired() []Lock {
	t.mu.Lock()
	now := time.Now()
	var reclaimed []Lock
	for id, e := range t.entries {
		if now.Sub(e.lock.AcquiredAt) >= t.timeout {
			e.timer.Stop()
			delete(t.entries, id)
			reclaimed = append(reclaimed, e.lock)
		}
	}
	t.mu.Unlock()

	t.notifyExpired(reclaimed)
	return reclaimed
}

// scheduleExpiry arms the primary expiry mechanism for one lock. The timer
// re-checks the acquisition timestamp before reclaiming, so a lock refreshed
// by re-acquire survives timers armed for its earlier incarnation.
// Must be called with t.mu held.
func (t *Table) scheduleExpiry(orderID kernel.UUID, acquiredAt time.Time) *time.Timer {
	return time.AfterFunc(t.timeout, func() {
		t.mu.Lock()
		existing, ok := t.entries[orderID]
		if !ok || !existing.lock.AcquiredAt.Equal(acquiredAt) {
			t.mu.Unlock()
			return
		}
		reclaimed := existing.lock
		delete(t.entries, orderID)
		t.mu.Unlock()

		t.notifyExpired([]Lock{reclaimed})
	})
}

func (t *Table) notifyExpired(reclaimed []Lock) {
	if t.onExpire == nil {
		return
	}
	for _, lk := range reclaimed {
		t.onExpire(lk)
	}
}
