package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"planboard/internal/core/application/usecases/commands"
)

// OverdueCheckJob flags in-progress orders whose due date has passed.
// Runs every minute; each run sweeps all candidates in one transaction.
type OverdueCheckJob struct {
	handler commands.MarkOverdueOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOverdueCheckJob creates a job for the overdue sweep.
func NewOverdueCheckJob(handler commands.MarkOverdueOrdersCommandHandler, logger *slog.Logger) *OverdueCheckJob {
	return &OverdueCheckJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "overdue_check_job"),
	}
}

// Start begins the overdue check to run at the top of every minute.
func (j *OverdueCheckJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewMarkOverdueOrdersCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to construct overdue sweep command", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Overdue check job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue check job started (running every minute)")
	return nil
}

// Stop stops the overdue check job.
func (j *OverdueCheckJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue check job stopped")
}
