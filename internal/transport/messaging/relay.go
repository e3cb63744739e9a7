package messaging

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/usecases/relay_outbox"
)

// Relayer runs one outbox relay pass.
type Relayer interface {
	Execute(ctx context.Context) (*relay_outbox.Summary, error)
}

// OutboxRelay runs the relay on a fixed interval.
type OutboxRelay struct {
	relayer  Relayer
	interval time.Duration
	logger   *zap.Logger
}

// NewOutboxRelay creates a relay polling every interval.
func NewOutboxRelay(relayer Relayer, interval time.Duration, logger *zap.Logger) *OutboxRelay {
	return &OutboxRelay{relayer: relayer, interval: interval, logger: logger}
}

// Run polls until ctx is cancelled. Failed passes are logged and retried
// on the next tick.
func (r *OutboxRelay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started", zap.Duration("interval", r.interval))
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return nil
		case <-ticker.C:
			if _, err := r.relayer.Execute(ctx); err != nil && ctx.Err() == nil {
				r.logger.Error("outbox relay pass failed", zap.Error(err))
			}
		}
	}
}
