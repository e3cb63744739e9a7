package list_products

import (
	"context"

	"go.uber.org/zap"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
)

// Query handles the list products query use case.
type Query struct {
	store  contracts.ProductStore
	logger *zap.Logger
}

// NewQuery creates a new list products query.
func NewQuery(store contracts.ProductStore, logger *zap.Logger) *Query {
	return &Query{
		store:  store,
		logger: logger,
	}
}

// Execute returns a view of every product, ordered by name.
func (q *Query) Execute(ctx context.Context) ([]domain.ProductView, error) {
	products, err := q.store.List(ctx)
	if err != nil {
		return nil, err
	}

	q.logger.Info("fetched products", zap.Int("count", len(products)))
	return domain.NewProductViews(products), nil
}
