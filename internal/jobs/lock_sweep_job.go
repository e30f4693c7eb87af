package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"planboard/internal/locks"
)

// LockSweepJob periodically reclaims expired edit locks. The per-lock timers
// are the primary expiry mechanism; the sweep is the safety net behind them,
// so most runs reclaim nothing.
type LockSweepJob struct {
	table  *locks.Table
	cron   *cron.Cron
	logger *slog.Logger
}

// NewLockSweepJob creates a job sweeping the lock table every 30 seconds.
func NewLockSweepJob(table *locks.Table, logger *slog.Logger) *LockSweepJob {
	return &LockSweepJob{
		table:  table,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "lock_sweep_job"),
	}
}

// Start begins the periodic sweep. Reclaimed locks are announced to viewers
// through the table's expiry callback.
func (j *LockSweepJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		reclaimed := j.table.SweepExpired()
		if len(reclaimed) > 0 {
			j.logger.Info("reclaimed expired locks", "count", len(reclaimed))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Lock sweep job started (running every 30 seconds)")
	return nil
}

// Stop stops the sweep job.
func (j *LockSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Lock sweep job stopped")
}
