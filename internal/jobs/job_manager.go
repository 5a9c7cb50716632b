// Package jobs provides the scheduled background tasks of the order service,
// built on github.com/robfig/cron/v3 and coordinated through JobManager.
package jobs

import (
	"fmt"
	"log/slog"

	"orders/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	overdueOrdersJob *OverdueOrdersJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	markLateOrdersHandler commands.MarkLateOrdersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		overdueOrdersJob: NewOverdueOrdersJob(markLateOrdersHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.overdueOrdersJob.Start(); err != nil {
		return fmt.Errorf("failed to start overdue orders job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueOrdersJob.Stop()
}
