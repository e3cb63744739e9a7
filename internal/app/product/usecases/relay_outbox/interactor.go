package relay_outbox

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-inventory-service/internal/pkg/clock"
)

// Summary counts what one relay pass did.
type Summary struct {
	Published int
	Retried   int
	Failed    int
}

// Interactor moves pending outbox events to the event publisher.
type Interactor struct {
	outbox     contracts.OutboxStore
	publisher  contracts.EventPublisher
	clock      clock.Clock
	logger     *zap.Logger
	batchSize  int
	maxRetries int64
}

// NewInteractor creates a new relay outbox interactor.
func NewInteractor(
	outbox contracts.OutboxStore,
	publisher contracts.EventPublisher,
	clock clock.Clock,
	logger *zap.Logger,
	batchSize int,
	maxRetries int64,
) *Interactor {
	return &Interactor{
		outbox:     outbox,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
		batchSize:  batchSize,
		maxRetries: maxRetries,
	}
}

// Execute publishes one batch of pending events. A failed publish is
// recorded against the event and the batch continues; once an event has
// failed maxRetries times it is parked in the failed status.
func (i *Interactor) Execute(ctx context.Context) (*Summary, error) {
	events, err := i.outbox.Pending(ctx, i.batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending events: %w", err)
	}

	summary := &Summary{}
	for _, event := range events {
		if err := i.publisher.Publish(ctx, event); err != nil {
			attempts := event.RetryCount + 1
			final := attempts >= i.maxRetries
			if markErr := i.outbox.MarkRetry(ctx, event.EventID, attempts, err.Error(), i.clock.Now(), final); markErr != nil {
				return summary, fmt.Errorf("failed to record retry of event %s: %w", event.EventID, markErr)
			}
			if final {
				summary.Failed++
				i.logger.Error("giving up on outbox event",
					zap.String("event_id", event.EventID),
					zap.String("event_type", event.EventType),
					zap.Int64("attempts", attempts),
					zap.Error(err),
				)
			} else {
				summary.Retried++
				i.logger.Warn("outbox event publish failed",
					zap.String("event_id", event.EventID),
					zap.Int64("attempts", attempts),
					zap.Error(err),
				)
			}
			continue
		}

		if err := i.outbox.MarkCompleted(ctx, event.EventID, i.clock.Now()); err != nil {
			return summary, fmt.Errorf("failed to complete event %s: %w", event.EventID, err)
		}
		summary.Published++
	}

	if len(events) > 0 {
		i.logger.Debug("outbox relay pass",
			zap.Int("published", summary.Published),
			zap.Int("retried", summary.Retried),
			zap.Int("failed", summary.Failed),
		)
	}
	return summary, nil
}
