package adjust_quantities

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
)

// Request is a batch of order items to apply in one direction.
type Request struct {
	Items     []domain.OrderItem
	Direction domain.Direction

	// DeliveryKey identifies the broker delivery and is recorded with every
	// applied adjustment.
	DeliveryKey string
}

// Skip records an item that was not applied.
type Skip struct {
	Item   domain.OrderItem
	Reason error
}

// Report lists what happened to each item of a batch.
type Report struct {
	Applied []*domain.QuantityAdjustedEvent
	Skipped []Skip
}

// Interactor applies quantity deltas item by item.
type Interactor struct {
	store  contracts.ProductStore
	logger *zap.Logger
}

// NewInteractor creates a new adjust quantities interactor.
func NewInteractor(store contracts.ProductStore, logger *zap.Logger) *Interactor {
	return &Interactor{
		store:  store,
		logger: logger,
	}
}

// Execute applies every item independently. Items that do not resolve to a
// product are skipped and the batch continues, so a batch may be applied
// partially. Any other failure aborts the rest of the batch; the report
// returned alongside the error still lists what was applied before it.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Report, error) {
	report := &Report{}

	i.logger.Info("applying quantity deltas",
		zap.Stringer("direction", req.Direction),
		zap.Int("items", len(req.Items)),
		zap.String("delivery_key", req.DeliveryKey),
	)

	for _, item := range req.Items {
		id, err := domain.ParseProductID(item.ProductID)
		if err != nil {
			i.skip(report, item, err)
			continue
		}

		adjusted, err := i.store.UpdateQuantity(ctx, contracts.QuantityUpdate{
			ProductID:   id,
			Requested:   item.Quantity,
			Direction:   req.Direction,
			DeliveryKey: req.DeliveryKey,
		})
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				i.skip(report, item, err)
				continue
			}
			i.logger.Error("aborting quantity batch",
				zap.Stringer("item", item),
				zap.Int("applied", len(report.Applied)),
				zap.Int("remaining", len(req.Items)-len(report.Applied)-len(report.Skipped)),
				zap.Error(err),
			)
			return report, fmt.Errorf("%s %s: %w", req.Direction, item, err)
		}

		if adjusted.Current < 0 {
			i.logger.Warn("stock level went negative",
				zap.String("product_id", id),
				zap.Int64("qty", adjusted.Current),
			)
		}
		report.Applied = append(report.Applied, adjusted)
	}

	return report, nil
}

func (i *Interactor) skip(report *Report, item domain.OrderItem, reason error) {
	i.logger.Warn("skipping order item", zap.Stringer("item", item), zap.Error(reason))
	report.Skipped = append(report.Skipped, Skip{Item: item, Reason: reason})
}
