package locks_test

import (
	"sync"
	"testing"
	"time"

	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/locks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Acquire(t *testing.T) {
	orderID := kernel.NewUUID()
	userX := kernel.NewUUID()
	userY := kernel.NewUUID()

	t.Run("grants lock on free order", func(t *testing.T) {
		table := locks.NewTable()

		lk, err := table.Acquire(orderID, userX, "Xenia", "MO-001")

		require.NoError(t, err)
		assert.True(t, lk.OrderID.IsEqual(orderID))
		assert.True(t, lk.UserID.IsEqual(userX))
		assert.Equal(t, "MO-001", lk.OrderNumber)
		assert.False(t, lk.AcquiredAt.IsZero())
	})

	t.Run("conflicts when held by another user", func(t *testing.T) {
		table := locks.NewTable()
		_, err := table.Acquire(orderID, userX, "Xenia", "MO-001")
		require.NoError(t, err)

		_, err = table.Acquire(orderID, userY, "Yuri", "MO-001")

		require.Error(t, err)
		require.ErrorIs(t, err, locks.ErrOrderLocked)
		var conflict *locks.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.True(t, conflict.HolderID.IsEqual(userX))
		assert.Equal(t, "Xenia", conflict.HolderName)
		assert.Equal(t, "MO-001", conflict.OrderNumber)
	})

	t.Run("re-acquire by holder is idempotent and refreshes the clock", func(t *testing.T) {
		table := locks.NewTable()
		first, err := table.Acquire(orderID, userX, "Xenia", "MO-001")
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)
		second, err := table.Acquire(orderID, userX, "Xenia", "MO-001")

		require.NoError(t, err)
		assert.True(t, second.AcquiredAt.After(first.AcquiredAt))
	})

	t.Run("rejects zero-value identifiers", func(t *testing.T) {
		table := locks.NewTable()

		_, err := table.Acquire(kernel.UUID{}, userX, "Xenia", "MO-001")
		require.Error(t, err)

		_, err = table.Acquire(orderID, kernel.UUID{}, "Xenia", "MO-001")
		require.Error(t, err)
	})
}

// TestTable_MutualExclusion drives many concurrent acquires at one order and
// verifies exactly one succeeds.
func TestTable_MutualExclusion(t *testing.T) {
	table := locks.NewTable()
	orderID := kernel.NewUUID()

	const contenders = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0

	for range contenders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := table.Acquire(orderID, kernel.NewUUID(), "user", "MO-001"); err == nil {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, granted)
}

func TestTable_Release(t *testing.T) {
	orderID := kernel.NewUUID()
	userX := kernel.NewUUID()
	userY := kernel.NewUUID()

	t.Run("holder can release", func(t *testing.T) {
		table := locks.NewTable()
		_, err := table.Acquire(orderID, userX, "Xenia", "MO-001")
		require.NoError(t, err)

		assert.True(t, table.Release(orderID, userX))
		_, held := table.Peek(orderID)
		assert.False(t, held)
	})

	t.Run("releasing a lock you do not hold is a no-op", func(t *testing.T) {
		table := locks.NewTable()
		_, err := table.Acquire(orderID, userX, "Xenia", "MO-001")
		require.NoError(t, err)

		assert.False(t, table.Release(orderID, userY))

		// The real holder's lock is unaffected.
		lk, held := table.Peek(orderID)
		require.True(t, held)
		assert.True(t, lk.UserID.IsEqual(userX))
	})

	t.Run("releasing an absent lock is a no-op", func(t *testing.T) {
		table := locks.NewTable()

		assert.False(t, table.Release(orderID, userX))
	})
}

// TestTable_ScenarioHandOff covers the contended hand-off: X holds, Y is
// rejected, X releases, Y succeeds.
func TestTable_ScenarioHandOff(t *testing.T) {
	table := locks.NewTable()
	orderID := kernel.NewUUID()
	userX := kernel.NewUUID()
	userY := kernel.NewUUID()

	_, err := table.Acquire(orderID, userX, "Xenia", "MO-001")
	require.NoError(t, err)

	_, err = table.Acquire(orderID, userY, "Yuri", "MO-001")
	var conflict *locks.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Xenia", conflict.HolderName)

	require.True(t, table.Release(orderID, userX))

	lk, err := table.Acquire(orderID, userY, "Yuri", "MO-001")
	require.NoError(t, err)
	assert.True(t, lk.UserID.IsEqual(userY))
}

func TestTable_List(t *testing.T) {
	table := locks.NewTable()
	order1 := kernel.NewUUID()
	order2 := kernel.NewUUID()
	user := kernel.NewUUID()

	_, err := table.Acquire(order1, user, "Xenia", "MO-001")
	require.NoError(t, err)
	_, err = table.Acquire(order2, user, "Xenia", "MO-002")
	require.NoError(t, err)

	views := table.List()

	require.Len(t, views, 2)
	view, ok := views[order1]
	require.True(t, ok)
	assert.Equal(t, "MO-001", view.OrderNumber)
	assert.Greater(t, view.Remaining, time.Duration(0))
	assert.LessOrEqual(t, view.Remaining, table.Timeout())
}

func TestTable_TimerExpiry(t *testing.T) {
	t.Run("lock is absent after the timeout with no explicit release", func(t *testing.T) {
		expired := make(chan locks.Lock, 1)
		table := locks.NewTable(
			locks.WithTimeout(30*time.Millisecond),
			locks.WithExpiryCallback(func(lk locks.Lock) { expired <- lk }),
		)
		orderID := kernel.NewUUID()
		userX := kernel.NewUUID()
		userY := kernel.NewUUID()

		_, err := table.Acquire(orderID, userX, "Xenia", "MO-001")
		require.NoError(t, err)

		select {
		case lk := <-expired:
			assert.True(t, lk.UserID.IsEqual(userX))
		case <-time.After(time.Second):
			t.Fatal("expiry callback never fired")
		}

		_, held := table.Peek(orderID)
		assert.False(t, held)

		// A different user can now acquire.
		_, err = table.Acquire(orderID, userY, "Yuri", "MO-001")
		require.NoError(t, err)
	})

	t.Run("re-acquire outlives the original timer", func(t *testing.T) {
		table := locks.NewTable(locks.WithTimeout(50 * time.Millisecond))
		orderID := kernel.NewUUID()
		user := kernel.NewUUID()

		_, err := table.Acquire(orderID, user, "Xenia", "MO-001")
		require.NoError(t, err)

		// Refresh shortly before the first timer would fire.
		time.Sleep(30 * time.Millisecond)
		_, err = table.Acquire(orderID, user, "Xenia", "MO-001")
		require.NoError(t, err)

		// Past the original deadline the refreshed lock must survive.
		time.Sleep(30 * time.Millisecond)
		_, held := table.Peek(orderID)
		assert.True(t, held)
	})
}

func TestTable_SweepExpired(t *testing.T) {
	t.Run("reclaims stale locks and reports them", func(t *testing.T) {
		expired := make(chan locks.Lock, 2)
		table := locks.NewTable(
			locks.WithTimeout(10*time.Millisecond),
			locks.WithExpiryCallback(func(lk locks.Lock) { expired <- lk }),
		)
		orderID := kernel.NewUUID()

		_, err := table.Acquire(orderID, kernel.NewUUID(), "Xenia", "MO-001")
		require.NoError(t, err)

		time.Sleep(20 * time.Millisecond)
		reclaimed := table.SweepExpired()

		// Timer and sweep race over the same stale lock; whichever wins, the
		// lock is gone and the callback fired exactly once.
		assert.LessOrEqual(t, len(reclaimed), 1)
		_, held := table.Peek(orderID)
		assert.False(t, held)

		select {
		case <-expired:
		case <-time.After(time.Second):
			t.Fatal("expiry callback never fired")
		}
		assert.Empty(t, expired)
	})

	t.Run("leaves fresh locks alone", func(t *testing.T) {
		table := locks.NewTable()
		orderID := kernel.NewUUID()

		_, err := table.Acquire(orderID, kernel.NewUUID(), "Xenia", "MO-001")
		require.NoError(t, err)

		assert.Empty(t, table.SweepExpired())
		_, held := table.Peek(orderID)
		assert.True(t, held)
	})
}
