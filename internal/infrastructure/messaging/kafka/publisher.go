package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"storefront/internal/domain/model"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher emits order lifecycle events for downstream consumers
// (fulfillment, notifications). Events are keyed by order id so one order's
// events stay in one partition.
type Publisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewPublisher(broker, topic string, logger *zap.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: writer, logger: logger}
}

func (p *Publisher) PublishOrderCreated(ctx context.Context, event model.OrderCreatedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order created event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write order created event: %w", err)
	}

	p.logger.Info("Published order created event",
		zap.Int64("order_id", event.OrderID), zap.String("basket_id", event.BasketID))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
