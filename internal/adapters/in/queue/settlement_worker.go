// Package queue hosts the asynchronous inbound adapters: the settlement
// worker draining the Redis task queue, and the review consumer reading
// review messages off the bus.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	asynqadapter "orders/internal/adapters/out/asynq"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"

	"github.com/hibiken/asynq"
)

// SettlementWorker processes settlement tasks. Task delivery is
// at-least-once; the command handlers are idempotent per payment, so a
// redelivered task settles nothing twice.
type SettlementWorker struct {
	server        *asynq.Server
	mux           *asynq.ServeMux
	refundHandler commands.RefundOrderPaymentsCommandHandler
	cancelHandler commands.CancelOrderPaymentsCommandHandler
	logger        *slog.Logger
}

// NewSettlementWorker creates a worker draining the settlement queue at the
// given Redis address.
func NewSettlementWorker(
	redisAddr string,
	refundHandler commands.RefundOrderPaymentsCommandHandler,
	cancelHandler commands.CancelOrderPaymentsCommandHandler,
	logger *slog.Logger,
) *SettlementWorker {
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				asynqadapter.Queue: 10,
			},
		},
	)

	w := &SettlementWorker{
		server:        server,
		mux:           asynq.NewServeMux(),
		refundHandler: refundHandler,
		cancelHandler: cancelHandler,
		logger:        logger.With("component", "settlement_worker"),
	}
	w.mux.HandleFunc(asynqadapter.TaskSettlementRefund, w.handleRefund)
	w.mux.HandleFunc(asynqadapter.TaskSettlementCancel, w.handleCancel)
	return w
}

// Start launches the worker. It returns once the server is running; task
// processing happens on the server's own goroutines.
func (w *SettlementWorker) Start() error {
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("failed to start settlement worker: %w", err)
	}
	w.logger.Info("settlement worker started")
	return nil
}

// Stop drains in-flight tasks and shuts the worker down.
func (w *SettlementWorker) Stop() {
	w.server.Shutdown()
	w.logger.Info("settlement worker stopped")
}

func (w *SettlementWorker) handleRefund(ctx context.Context, task *asynq.Task) error {
	orderID, err := orderIDFromTask(task)
	if err != nil {
		w.logger.ErrorContext(ctx, "dropping malformed refund task", "error", err)
		return fmt.Errorf("%w: %w", asynq.SkipRetry, err)
	}

	cmd, err := commands.NewRefundOrderPaymentsCommand(orderID)
	if err != nil {
		return fmt.Errorf("%w: %w", asynq.SkipRetry, err)
	}

	if err = w.refundHandler.Handle(ctx, cmd); err != nil {
		w.logger.WarnContext(ctx, "refund job failed, queue will retry",
			"orderId", orderID.String(), "error", err)
		return err
	}
	return nil
}

func (w *SettlementWorker) handleCancel(ctx context.Context, task *asynq.Task) error {
	orderID, err := orderIDFromTask(task)
	if err != nil {
		w.logger.ErrorContext(ctx, "dropping malformed cancel task", "error", err)
		return fmt.Errorf("%w: %w", asynq.SkipRetry, err)
	}

	cmd, err := commands.NewCancelOrderPaymentsCommand(orderID)
	if err != nil {
		return fmt.Errorf("%w: %w", asynq.SkipRetry, err)
	}

	if err = w.cancelHandler.Handle(ctx, cmd); err != nil {
		w.logger.WarnContext(ctx, "cancel job failed, queue will retry",
			"orderId", orderID.String(), "error", err)
		return err
	}
	return nil
}

func orderIDFromTask(task *asynq.Task) (kernel.UUID, error) {
	var payload asynqadapter.SettlementPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return kernel.UUID{}, fmt.Errorf("failed to decode settlement payload: %w", err)
	}
	return kernel.UUIDFromString(payload.OrderID)
}
