// Package asynq enqueues settlement jobs on the Redis-backed task queue.
// Delivery is at-least-once; the handlers behind these tasks are idempotent
// per payment, so retries never double-settle.
package asynq

import (
	"context"
	"encoding/json"
	"fmt"

	"orders/internal/core/domain/model/kernel"

	"github.com/hibiken/asynq"
)

// Task types processed by the settlement worker.
const (
	TaskSettlementRefund = "settlement:refund"
	TaskSettlementCancel = "settlement:cancel"
)

// Queue is the asynq queue settlement tasks run on.
const Queue = "settlement"

const maxRetry = 5

// SettlementPayload is the wire shape of a settlement task.
type SettlementPayload struct {
	OrderID string `json:"orderId"`
}

// SettlementQueue enqueues refund and cancellation jobs for an order's
// payments.
type SettlementQueue struct {
	client *asynq.Client
}

// NewSettlementQueue creates a queue on top of an existing asynq client.
func NewSettlementQueue(client *asynq.Client) *SettlementQueue {
	return &SettlementQueue{client: client}
}

// NewClient connects an asynq client to the given Redis address.
func NewClient(redisAddr string) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
}

// EnqueueRefund schedules a refund of the order's captured payments.
func (q *SettlementQueue) EnqueueRefund(ctx context.Context, orderID kernel.UUID) error {
	return q.enqueue(ctx, TaskSettlementRefund, orderID)
}

// EnqueueCancel schedules cancellation of the order's open charge intents.
func (q *SettlementQueue) EnqueueCancel(ctx context.Context, orderID kernel.UUID) error {
	return q.enqueue(ctx, TaskSettlementCancel, orderID)
}

func (q *SettlementQueue) enqueue(ctx context.Context, taskType string, orderID kernel.UUID) error {
	payload, err := json.Marshal(SettlementPayload{OrderID: orderID.String()})
	if err != nil {
		return fmt.Errorf("failed to marshal settlement payload: %w", err)
	}

	task := asynq.NewTask(taskType, payload)
	_, err = q.client.EnqueueContext(ctx, task, asynq.Queue(Queue), asynq.MaxRetry(maxRetry))
	if err != nil {
		return fmt.Errorf("failed to enqueue %s for order %s: %w", taskType, orderID.String(), err)
	}
	return nil
}

// Close shuts the underlying client down.
func (q *SettlementQueue) Close() error {
	return q.client.Close()
}
