package jobs

import (
	"fmt"
	"log/slog"

	"planboard/internal/core/application/usecases/commands"
	"planboard/internal/locks"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	lockSweepJob    *LockSweepJob
	overdueCheckJob *OverdueCheckJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	lockTable *locks.Table,
	markOverdueHandler commands.MarkOverdueOrdersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		lockSweepJob:    NewLockSweepJob(lockTable, logger),
		overdueCheckJob: NewOverdueCheckJob(markOverdueHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.lockSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start lock sweep job: %w", err)
	}

	if err := jm.overdueCheckJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.lockSweepJob.Stop()
		return fmt.Errorf("failed to start overdue check job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueCheckJob.Stop()
	jm.lockSweepJob.Stop()
}
