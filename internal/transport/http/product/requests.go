package product

import (
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/usecases/create_product"
)

type createProductBody struct {
	Name     string          `json:"name"`
	Category domain.Category `json:"category"`
	Price    domain.Money    `json:"price"`
	Quantity int64           `json:"qty"`
}

func (b createProductBody) toRequest() *create_product.Request {
	return &create_product.Request{
		Name:     b.Name,
		Category: b.Category,
		Price:    b.Price,
		Quantity: b.Quantity,
	}
}

// updateProductBody uses pointers so that absent fields stay absent.
type updateProductBody struct {
	Name     *string          `json:"name"`
	Category *domain.Category `json:"category"`
	Price    *domain.Money    `json:"price"`
	Quantity *int64           `json:"qty"`
}

func (b updateProductBody) toPatch() domain.Patch {
	var patch domain.Patch
	if b.Name != nil {
		patch.Name = domain.Some(*b.Name)
	}
	if b.Category != nil {
		patch.Category = domain.Some(*b.Category)
	}
	if b.Price != nil {
		patch.Price = domain.Some(*b.Price)
	}
	if b.Quantity != nil {
		patch.Quantity = domain.Some(*b.Quantity)
	}
	return patch
}
