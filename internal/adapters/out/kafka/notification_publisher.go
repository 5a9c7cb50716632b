// Package kafka publishes order notifications to the message bus. Publishing
// is fire-and-forget from the caller's perspective: command handlers invoke
// Publish after commit and log failures without failing the operation.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"orders/internal/core/ports"

	"github.com/IBM/sarama"
)

// Topic carries every order notification; consumers filter on the event key.
const Topic = "orders.events"

// notificationMessage is the wire shape of a published notification.
type notificationMessage struct {
	Key            string    `json:"key"`
	OrderID        string    `json:"orderId"`
	InvoiceID      string    `json:"invoiceId"`
	GigTitle       string    `json:"gigTitle"`
	BuyerUsername  string    `json:"buyerUsername"`
	SellerUsername string    `json:"sellerUsername"`
	Recipient      string    `json:"recipient"`
	Message        string    `json:"message,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// SyncNotificationPublisher publishes notification events through a sarama
// synchronous producer. Messages are keyed by order id so all events of one
// order land on the same partition in order.
type SyncNotificationPublisher struct {
	producer sarama.SyncProducer
}

// NewSyncNotificationPublisher creates a publisher on top of an existing
// producer. The producer must be configured with Return.Successes.
func NewSyncNotificationPublisher(producer sarama.SyncProducer) *SyncNotificationPublisher {
	return &SyncNotificationPublisher{producer: producer}
}

// NewSyncProducer connects a sarama synchronous producer with full acks,
// suitable for NewSyncNotificationPublisher.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return producer, nil
}

// Publish sends the event to the notification topic.
func (p *SyncNotificationPublisher) Publish(_ context.Context, event ports.NotificationEvent) error {
	msg := notificationMessage{
		Key:            event.Key,
		OrderID:        event.OrderID,
		InvoiceID:      event.InvoiceID,
		GigTitle:       event.GigTitle,
		BuyerUsername:  event.BuyerUsername,
		SellerUsername: event.SellerUsername,
		Recipient:      event.Recipient.String(),
		Message:        event.Message,
		OccurredAt:     event.OccurredAt,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: Topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(data),
	})
	if err != nil {
		return fmt.Errorf("failed to publish notification %s: %w", event.Key, err)
	}
	return nil
}

// Close shuts the underlying producer down.
func (p *SyncNotificationPublisher) Close() error {
	return p.producer.Close()
}
