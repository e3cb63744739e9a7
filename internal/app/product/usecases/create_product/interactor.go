package create_product

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-inventory-service/internal/pkg/clock"
)

// Request contains the data needed to create a product.
type Request struct {
	Name     string
	Category domain.Category
	Price    domain.Money
	Quantity int64
}

// Interactor handles the create product use case.
type Interactor struct {
	store  contracts.ProductStore
	clock  clock.Clock
	logger *zap.Logger
}

// NewInteractor creates a new create product interactor.
func NewInteractor(store contracts.ProductStore, clock clock.Clock, logger *zap.Logger) *Interactor {
	return &Interactor{
		store:  store,
		clock:  clock,
		logger: logger,
	}
}

// Execute validates the request, rejects a taken name and persists the new
// product with a freshly assigned id.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	product, err := domain.NewProduct(
		uuid.New().String(),
		req.Name,
		req.Category,
		req.Price,
		req.Quantity,
		i.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	taken, err := i.store.ExistsByName(ctx, product.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to check product name: %w", err)
	}
	if taken {
		return nil, &domain.ProductNameConflictError{Name: product.Name()}
	}

	i.logger.Info("adding new product",
		zap.String("product_id", product.ID()),
		zap.String("name", product.Name()),
		zap.String("category", product.Category().String()),
	)

	if err := i.store.Insert(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}
