package messaging

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/usecases/adjust_quantities"
	"github.com/light-bringer/catalog-inventory-service/internal/transport/failures"
)

// Adjuster applies a batch of quantity deltas.
type Adjuster interface {
	Execute(ctx context.Context, req *adjust_quantities.Request) (*adjust_quantities.Report, error)
}

// QuantityHandler handles fetch-qty and restore-qty batches.
type QuantityHandler struct {
	adjuster  Adjuster
	direction domain.Direction
	guard     Guard
	logger    *zap.Logger
}

// NewQuantityHandler creates a handler applying deltas in direction.
// Deliveries already recorded by guard are acknowledged without effect.
func NewQuantityHandler(adjuster Adjuster, direction domain.Direction, guard Guard, logger *zap.Logger) *QuantityHandler {
	if guard == nil {
		guard = NoopGuard{}
	}
	return &QuantityHandler{
		adjuster:  adjuster,
		direction: direction,
		guard:     guard,
		logger:    logger,
	}
}

func (h *QuantityHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var items []domain.OrderItem
	if err := json.Unmarshal(msg.Value, &items); err != nil {
		return failures.InvalidRequest(err)
	}

	key := DeliveryKey(msg)

	// A guard failure must not block stock updates.
	seen, err := h.guard.Seen(ctx, key)
	if err != nil {
		h.logger.Warn("redelivery guard unavailable", zap.String("delivery_key", key), zap.Error(err))
	} else if seen {
		h.logger.Info("skipping redelivered batch",
			zap.String("delivery_key", key),
			zap.Stringer("direction", h.direction),
		)
		return nil
	}

	report, err := h.adjuster.Execute(ctx, &adjust_quantities.Request{
		Items:       items,
		Direction:   h.direction,
		DeliveryKey: key,
	})
	if err != nil {
		return err
	}

	if err := h.guard.Mark(ctx, key); err != nil {
		h.logger.Warn("failed to record delivery", zap.String("delivery_key", key), zap.Error(err))
	}

	h.logger.Info("quantity batch applied",
		zap.Stringer("direction", h.direction),
		zap.String("delivery_key", key),
		zap.Int("applied", len(report.Applied)),
		zap.Int("skipped", len(report.Skipped)),
	)
	return nil
}
