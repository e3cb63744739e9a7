package get_product

import (
	"context"

	"go.uber.org/zap"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
)

// Request contains the product ID to retrieve.
type Request struct {
	ProductID string
}

// Query handles the get product query use case.
type Query struct {
	store  contracts.ProductStore
	logger *zap.Logger
}

// NewQuery creates a new get product query.
func NewQuery(store contracts.ProductStore, logger *zap.Logger) *Query {
	return &Query{
		store:  store,
		logger: logger,
	}
}

// Execute retrieves a product view by ID.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.ProductView, error) {
	id, err := domain.ParseProductID(req.ProductID)
	if err != nil {
		return nil, err
	}

	q.logger.Info("fetching product", zap.String("product_id", id))

	product, err := q.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := domain.NewProductView(product)
	return &view, nil
}
