// Package jobs provides scheduled background tasks for the planning board.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic maintenance the board needs.
//
// # Available Jobs
//
// 1. LockSweepJob - Runs every 30 seconds to reclaim expired edit locks
// 2. OverdueCheckJob - Runs every minute to flag in-progress orders past their due date
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(lockTable, markOverdueHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - The lock sweep never fails; expired locks are announced to viewers
//     through the lock table's expiry callback
//   - The overdue check logs all errors, as each run should succeed even
//     when no candidates exist
//   - Failed job starts will stop any already running jobs
package jobs
