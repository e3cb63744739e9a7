package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-inventory-service/internal/models/m_outbox"
)

// OutboxEvent represents an enriched domain event ready for persistence.
type OutboxEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string // JSON
	Status      string
	CreatedAt   time.Time
	RetryCount  int64
}

// EnrichEvent converts a domain event to a pending outbox event.
func EnrichEvent(event domain.DomainEvent, now time.Time) (*OutboxEvent, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", event.EventType(), err)
	}
	return &OutboxEvent{
		EventID:     uuid.New().String(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     string(payload),
		Status:      m_outbox.StatusPending,
		CreatedAt:   now,
	}, nil
}

// OutboxStore reads and settles persisted outbox events.
type OutboxStore interface {
	// Pending returns up to limit pending events, oldest first.
	Pending(ctx context.Context, limit int) ([]*OutboxEvent, error)

	// MarkCompleted records a successful publish.
	MarkCompleted(ctx context.Context, eventID string, at time.Time) error

	// MarkRetry records a failed publish. When final is set the event moves
	// to the failed status and is no longer returned by Pending.
	MarkRetry(ctx context.Context, eventID string, retryCount int64, reason string, at time.Time, final bool) error

	// Purge deletes settled events processed before the cutoffs and returns
	// how many rows matched. With dryRun set nothing is deleted.
	Purge(ctx context.Context, completedBefore, failedBefore time.Time, dryRun bool) (int64, error)
}
