package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/SscSPs/car_market_app/internal/core/domain"
	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events as JSON to a single topic, keyed by Event.Key.
type KafkaPublisher struct {
	writer messageWriter
}

var _ portssvc.EventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates an asynchronous writer; delivery failures are logged by the
// completion callback instead of being returned to the request path.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			BatchTimeout:           50 * time.Millisecond,
			Async:                  true,
			AllowAutoTopicCreation: true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					logger.Error("Failed to deliver events to kafka",
						slog.Int("count", len(messages)),
						slog.String("topic", topic),
						slog.String("error", err.Error()))
				}
			},
		},
	}
}

// Publish enqueues the event for delivery.
func (k *KafkaPublisher) Publish(ctx context.Context, event domain.Event) error {
	msg, err := EncodeMessage(event)
	if err != nil {
		return err
	}
	return k.writer.WriteMessages(ctx, msg)
}

// Close flushes pending messages and releases the writer.
func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}

// EncodeMessage converts an event to a kafka message. Events without a timestamp are
// stamped with the current time in both the payload and the message.
func EncodeMessage(event domain.Event) (kafka.Message, error) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(event.Key()),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}, nil
}
