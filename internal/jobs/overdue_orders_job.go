package jobs

import (
	"context"
	"log/slog"

	"orders/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// overdueSweepSchedule runs the sweep once a minute. Due dates have day
// granularity, so a tighter schedule buys nothing.
const overdueSweepSchedule = "0 * * * * *"

// OverdueOrdersJob periodically flags in-progress orders past their due
// date. The sweep is idempotent; an order already flagged is skipped, so
// overlapping runs are harmless.
type OverdueOrdersJob struct {
	handler commands.MarkLateOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOverdueOrdersJob creates the overdue-order sweep job.
func NewOverdueOrdersJob(handler commands.MarkLateOrdersCommandHandler, logger *slog.Logger) *OverdueOrdersJob {
	return &OverdueOrdersJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "overdue_orders_job"),
	}
}

// Start begins the sweep on its schedule.
func (j *OverdueOrdersJob) Start() error {
	_, err := j.cron.AddFunc(overdueSweepSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewMarkLateOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "overdue sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "overdue orders job started (running every minute)")
	return nil
}

// Stop stops the sweep.
func (j *OverdueOrdersJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "overdue orders job stopped")
}
