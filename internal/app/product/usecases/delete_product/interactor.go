package delete_product

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
)

// Request identifies the product to delete.
type Request struct {
	ProductID string
}

// Interactor handles the delete product use case.
type Interactor struct {
	store  contracts.ProductStore
	logger *zap.Logger
}

// NewInteractor creates a new delete product interactor.
func NewInteractor(store contracts.ProductStore, logger *zap.Logger) *Interactor {
	return &Interactor{
		store:  store,
		logger: logger,
	}
}

// Execute deletes the product. A missing product is reported as not found
// and the store delete is never issued.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	id, err := domain.ParseProductID(req.ProductID)
	if err != nil {
		return err
	}

	exists, err := i.store.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check product existence: %w", err)
	}
	if !exists {
		return domain.NewProductNotFound(id)
	}

	i.logger.Info("deleting product", zap.String("product_id", id))

	return i.store.Delete(ctx, id)
}
