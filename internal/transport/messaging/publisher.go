package messaging

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
)

// EventPublisher writes outbox events to the product events topic, keyed by
// product id so events of one product stay ordered.
type EventPublisher struct {
	writer Writer
	topic  string
}

var _ contracts.EventPublisher = (*EventPublisher)(nil)

// NewEventPublisher creates a publisher for topic.
func NewEventPublisher(writer Writer, topic string) *EventPublisher {
	return &EventPublisher{writer: writer, topic: topic}
}

func (p *EventPublisher) Publish(ctx context.Context, event *contracts.OutboxEvent) error {
	headers := []kafka.Header{
		{Key: HeaderEventType, Value: []byte(event.EventType)},
		{Key: HeaderEventID, Value: []byte(event.EventID)},
		{Key: HeaderMessageID, Value: []byte(event.EventID)},
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic:   p.topic,
		Key:     []byte(event.AggregateID),
		Value:   []byte(event.Payload),
		Headers: injectTraceContext(ctx, headers),
		Time:    event.CreatedAt,
	})
}
