package kafka

import (
	"context"
	"time"

	"github.com/Domenick1991/rocketbooking/config"
	"github.com/segmentio/kafka-go"
)

// Handler processes one consumed message. Returning an error stops the
// consume loop; transient problems should be handled and swallowed inside
// the handler.
type Handler func(ctx context.Context, msg kafka.Message) error

// Consumer reads a single topic as part of a consumer group. The worker
// uses it to drain the notifications topic.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(cfg config.KafkaConfig, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           cfg.Brokers,
			GroupID:           cfg.GroupID,
			Topic:             topic,
			MinBytes:          1,
			MaxBytes:          1 << 20,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

// Consume blocks, feeding messages to the handler until the context is
// canceled, the reader fails, or the handler returns an error. Offsets are
// committed by ReadMessage, so a message that reaches the handler is
// consumed at most once.
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}
		if err := handler(ctx, msg); err != nil {
			return err
		}
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}
