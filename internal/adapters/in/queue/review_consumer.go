package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/IBM/sarama"
)

// ReviewsTopic carries review messages from the review service. Each message
// names the order, the reviewing account and the review content.
const ReviewsTopic = "reviews.created"

// reviewMessage is the wire shape of a review event.
type reviewMessage struct {
	OrderID    string `json:"orderId"`
	ReviewerID string `json:"reviewerId"`
	Rating     int    `json:"rating"`
	Review     string `json:"review"`
}

// ReviewConsumer attaches incoming reviews to their orders. Malformed or
// unmatchable messages are logged and dropped; the bus is not a work queue
// and a poison message must not wedge the partition.
type ReviewConsumer struct {
	consumer sarama.Consumer
	handler  commands.ApplyReviewCommandHandler
	logger   *slog.Logger
	done     chan struct{}
}

// NewReviewConsumer creates a consumer on top of an existing sarama
// consumer.
func NewReviewConsumer(
	consumer sarama.Consumer,
	handler commands.ApplyReviewCommandHandler,
	logger *slog.Logger,
) *ReviewConsumer {
	return &ReviewConsumer{
		consumer: consumer,
		handler:  handler,
		logger:   logger.With("component", "review_consumer"),
		done:     make(chan struct{}),
	}
}

// NewConsumer connects a sarama consumer to the given brokers.
func NewConsumer(brokers []string) (sarama.Consumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Return.Errors = true

	consumer, err := sarama.NewConsumer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer: %w", err)
	}
	return consumer, nil
}

// Start begins consuming the reviews topic on a background goroutine.
func (c *ReviewConsumer) Start() error {
	partition, err := c.consumer.ConsumePartition(ReviewsTopic, 0, sarama.OffsetNewest)
	if err != nil {
		return fmt.Errorf("failed to consume topic %s: %w", ReviewsTopic, err)
	}

	go func() {
		defer partition.Close()
		for {
			select {
			case msg := <-partition.Messages():
				c.process(msg.Value)
			case err := <-partition.Errors():
				c.logger.Error("review consumer error", "error", err)
			case <-c.done:
				return
			}
		}
	}()

	c.logger.Info("review consumer started", "topic", ReviewsTopic)
	return nil
}

// Stop terminates the consuming goroutine.
func (c *ReviewConsumer) Stop() {
	close(c.done)
	c.logger.Info("review consumer stopped")
}

func (c *ReviewConsumer) process(value []byte) {
	ctx := context.Background()

	var msg reviewMessage
	if err := json.Unmarshal(value, &msg); err != nil {
		c.logger.ErrorContext(ctx, "dropping malformed review message", "error", err)
		return
	}

	orderID, err := kernel.UUIDFromString(msg.OrderID)
	if err != nil {
		c.logger.ErrorContext(ctx, "dropping review with bad order id",
			"orderId", msg.OrderID, "error", err)
		return
	}

	cmd, err := commands.NewApplyReviewCommand(orderID, msg.ReviewerID, msg.Rating, msg.Review)
	if err != nil {
		c.logger.ErrorContext(ctx, "dropping invalid review",
			"orderId", msg.OrderID, "error", err)
		return
	}

	if err = c.handler.Handle(ctx, cmd); err != nil {
		var notFoundErr *errs.ObjectNotFoundError
		if errors.As(err, &notFoundErr) {
			c.logger.WarnContext(ctx, "review references unknown order", "orderId", msg.OrderID)
			return
		}
		c.logger.ErrorContext(ctx, "failed to apply review",
			"orderId", msg.OrderID, "error", err)
	}
}
