package contracts

import (
	"context"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
)

// QuantityUpdate describes one atomic read-modify-write of a product's
// stock level.
type QuantityUpdate struct {
	ProductID   string
	Requested   int64
	Direction   domain.Direction
	DeliveryKey string
}

// ProductStore is the persistence boundary of the catalog. Every mutating
// call writes the aggregate's pending domain events to the outbox in the
// same transaction.
//
// Lookups of a missing id return an error matching domain.ErrProductNotFound.
// Connectivity failures match domain.ErrStoreUnavailable.
type ProductStore interface {
	// GetByID loads a product aggregate.
	GetByID(ctx context.Context, productID string) (*domain.Product, error)

	// Exists checks if a product exists.
	Exists(ctx context.Context, productID string) (bool, error)

	// ExistsByName checks whether the name is already taken.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// List returns every product ordered by name.
	List(ctx context.Context) ([]*domain.Product, error)

	// Insert persists a new product. A duplicate name that slips past the
	// ExistsByName check fails with domain.ErrProductNameConflict.
	Insert(ctx context.Context, product *domain.Product) error

	// Update writes the dirty fields of product if its stored version still
	// equals product.Version(). A lost race fails with
	// domain.ErrConcurrentModification.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes the product row and records a deletion event.
	Delete(ctx context.Context, productID string) error

	// UpdateQuantity applies a stock delta atomically per product and
	// returns the resulting adjustment.
	UpdateQuantity(ctx context.Context, update QuantityUpdate) (*domain.QuantityAdjustedEvent, error)
}
