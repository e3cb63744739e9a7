package domain

// Optional distinguishes an absent field from a present zero value.
type Optional[T any] struct {
	value   T
	present bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None is the absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// Present reports whether a value was supplied.
func (o Optional[T]) Present() bool { return o.present }

// Patch is a partial update of a product. Absent fields are left alone.
type Patch struct {
	Name     Optional[string]
	Category Optional[Category]
	Price    Optional[Money]
	Quantity Optional[int64]
}

// IsEmpty reports whether no field is present.
func (p Patch) IsEmpty() bool {
	return !p.Name.Present() && !p.Category.Present() && !p.Price.Present() && !p.Quantity.Present()
}

// Merge applies the accepted fields of p onto prod and returns the names of
// the fields that changed. Blank names and non-positive prices or quantities
// are dropped rather than rejected. A positive price that does not fit the
// storage column fails with ErrPriceOverflow and leaves prod untouched.
func (p Patch) Merge(prod *Product) ([]string, error) {
	if price, ok := p.Price.Get(); ok && price.IsPositive() && !price.IsSafeForStorage() {
		return nil, ErrPriceOverflow
	}

	var applied []string

	if name, ok := p.Name.Get(); ok && !isBlank(name) && name != prod.name {
		prod.name = name
		prod.changes.MarkDirty(FieldName)
		applied = append(applied, FieldName)
	}

	if category, ok := p.Category.Get(); ok && category.Valid() && category != prod.category {
		prod.category = category
		prod.changes.MarkDirty(FieldCategory)
		applied = append(applied, FieldCategory)
	}

	if price, ok := p.Price.Get(); ok && price.IsPositive() && !price.Equals(prod.price) {
		prod.price = price
		prod.changes.MarkDirty(FieldPrice)
		applied = append(applied, FieldPrice)
	}

	if qty, ok := p.Quantity.Get(); ok && qty > 0 && qty != prod.quantity {
		prod.quantity = qty
		prod.changes.MarkDirty(FieldQuantity)
		applied = append(applied, FieldQuantity)
	}

	return applied, nil
}
