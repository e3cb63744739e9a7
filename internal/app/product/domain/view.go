package domain

// ProductView is the read-only projection returned to API callers.
type ProductView struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    Money  `json:"price"`
	Quantity int64  `json:"qty"`
}

// NewProductView snapshots p.
func NewProductView(p *Product) ProductView {
	return ProductView{
		Name:     p.Name(),
		Category: p.Category().String(),
		Price:    p.Price(),
		Quantity: p.Quantity(),
	}
}

// NewProductViews snapshots a list of products, preserving order.
func NewProductViews(products []*Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p))
	}
	return views
}
