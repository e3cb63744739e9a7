package price_order_item

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
)

// Outcome tells the caller whether a price was produced.
type Outcome int

const (
	// OutcomePriced means Total holds price * requested quantity.
	OutcomePriced Outcome = iota
	// OutcomeSkipped means the item could not be priced for an expected
	// reason: the product is unknown or under-stocked. Reason says which.
	OutcomeSkipped
)

func (o Outcome) String() string {
	if o == OutcomePriced {
		return "priced"
	}
	return "skipped"
}

// Result is the outcome of pricing one order item.
type Result struct {
	Outcome   Outcome
	ProductID string
	Quantity  int64
	Total     domain.Money
	Reason    error
}

// Interactor prices single order lines against current stock.
type Interactor struct {
	store  contracts.ProductStore
	logger *zap.Logger
}

// NewInteractor creates a new price order item interactor.
func NewInteractor(store contracts.ProductStore, logger *zap.Logger) *Interactor {
	return &Interactor{
		store:  store,
		logger: logger,
	}
}

// Execute computes the total price of item. Unknown and under-stocked
// products yield OutcomeSkipped with a nil error. A non-nil error is always
// fatal to the delivery: a malformed reference or a store failure.
func (i *Interactor) Execute(ctx context.Context, item domain.OrderItem) (*Result, error) {
	id, err := domain.ParseProductID(item.ProductID)
	if err != nil {
		return nil, err
	}

	product, err := i.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			i.logger.Warn("cannot price order item", zap.Stringer("item", item), zap.Error(err))
			return skipped(id, item.Quantity, err), nil
		}
		return nil, err
	}

	total, err := product.TotalPrice(item.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientQuantity) {
			i.logger.Warn("cannot price order item", zap.Stringer("item", item), zap.Error(err))
			return skipped(id, item.Quantity, err), nil
		}
		return nil, err
	}

	i.logger.Info("priced order item",
		zap.String("product_id", id),
		zap.Int64("qty", item.Quantity),
		zap.Stringer("total", total),
	)

	return &Result{
		Outcome:   OutcomePriced,
		ProductID: id,
		Quantity:  item.Quantity,
		Total:     total,
	}, nil
}

func skipped(id string, qty int64, reason error) *Result {
	return &Result{
		Outcome:   OutcomeSkipped,
		ProductID: id,
		Quantity:  qty,
		Reason:    reason,
	}
}
