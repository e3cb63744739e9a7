package update_product

import (
	"context"

	"go.uber.org/zap"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-inventory-service/internal/pkg/clock"
)

// Request contains the data to update a product. Absent patch fields are
// left unchanged.
type Request struct {
	ProductID string
	Patch     domain.Patch
}

// Interactor handles the update product use case.
type Interactor struct {
	store  contracts.ProductStore
	clock  clock.Clock
	logger *zap.Logger
}

// NewInteractor creates a new update product interactor.
func NewInteractor(store contracts.ProductStore, clock clock.Clock, logger *zap.Logger) *Interactor {
	return &Interactor{
		store:  store,
		clock:  clock,
		logger: logger,
	}
}

// Execute merges the patch into the stored product and returns the
// resulting state. Nothing is written when the merge changes nothing.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	id, err := domain.ParseProductID(req.ProductID)
	if err != nil {
		return nil, err
	}

	product, err := i.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Clear events on function exit to prevent duplicates on retry
	defer product.ClearEvents()

	changed, err := product.Update(req.Patch, i.clock.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		i.logger.Info("product update changed nothing", zap.String("product_id", id))
		return product, nil
	}

	i.logger.Info("updating product",
		zap.String("product_id", id),
		zap.Strings("fields", product.Changes().DirtyFields()),
	)

	if err := i.store.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}
