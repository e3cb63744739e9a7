package contracts

import "context"

// EventPublisher delivers outbox events to downstream subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event *OutboxEvent) error
}
