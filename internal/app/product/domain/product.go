package domain

import (
	"strings"
	"time"
)

// Field names for change tracking
const (
	FieldName     = "name"
	FieldCategory = "category"
	FieldPrice    = "price"
	FieldQuantity = "quantity"
)

// Product is the aggregate root of the catalog.
type Product struct {
	id        string
	name      string
	category  Category
	price     Money
	quantity  int64
	version   int64
	createdAt time.Time
	updatedAt time.Time

	// Change tracking for partial repository updates
	changes *ChangeTracker

	// Domain events to be written to the outbox
	events []DomainEvent
}

// NewProduct creates a product that has not been persisted yet.
func NewProduct(id, name string, category Category, price Money, quantity int64, now time.Time) (*Product, error) {
	if err := validate(name, category, price, quantity); err != nil {
		return nil, err
	}

	p := &Product{
		id:        id,
		name:      name,
		category:  category,
		price:     price,
		quantity:  quantity,
		createdAt: now,
		updatedAt: now,
		changes:   NewChangeTracker(),
	}

	p.changes.MarkDirty(FieldName, FieldCategory, FieldPrice, FieldQuantity)

	p.recordEvent(&ProductCreatedEvent{
		ProductID: p.id,
		Name:      p.name,
		Category:  p.category.String(),
		Price:     p.price,
		Quantity:  p.quantity,
		CreatedAt: now,
	})

	return p, nil
}

// ReconstructProduct rebuilds a product loaded from the store. Stored rows
// are trusted: the reconciliation path may have left a negative quantity.
func ReconstructProduct(
	id, name string,
	category Category,
	price Money,
	quantity, version int64,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:        id,
		name:      name,
		category:  category,
		price:     price,
		quantity:  quantity,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
		changes:   NewChangeTracker(),
	}
}

// Getters
func (p *Product) ID() string                  { return p.id }
func (p *Product) Name() string                { return p.name }
func (p *Product) Category() Category          { return p.category }
func (p *Product) Price() Money                { return p.price }
func (p *Product) Quantity() int64             { return p.quantity }
func (p *Product) Version() int64              { return p.version }
func (p *Product) CreatedAt() time.Time        { return p.createdAt }
func (p *Product) UpdatedAt() time.Time        { return p.updatedAt }
func (p *Product) Changes() *ChangeTracker     { return p.changes }
func (p *Product) DomainEvents() []DomainEvent { return p.events }

// Update merges a partial update. It returns false when nothing changed.
func (p *Product) Update(patch Patch, now time.Time) (bool, error) {
	applied, err := patch.Merge(p)
	if err != nil {
		return false, err
	}
	if len(applied) == 0 {
		return false, nil
	}

	p.updatedAt = now
	p.recordEvent(&ProductUpdatedEvent{
		ProductID: p.id,
		Fields:    applied,
		Name:      p.name,
		Category:  p.category.String(),
		Price:     p.price,
		Quantity:  p.quantity,
		UpdatedAt: now,
	})

	return true, nil
}

// TotalPrice prices requested units against current stock.
func (p *Product) TotalPrice(requested int64) (Money, error) {
	if requested > p.quantity {
		return Money{}, &InsufficientQuantityError{
			ProductID: p.id,
			Available: p.quantity,
			Requested: requested,
		}
	}
	return p.price.MultiplyQuantity(requested), nil
}

// ClearEvents clears recorded domain events once they are persisted.
func (p *Product) ClearEvents() {
	p.events = nil
}

func (p *Product) recordEvent(event DomainEvent) {
	p.events = append(p.events, event)
}

func validate(name string, category Category, price Money, quantity int64) error {
	if isBlank(name) {
		return ErrEmptyName
	}
	if !category.Valid() {
		return ErrInvalidCategory
	}
	if price.IsNegative() {
		return ErrInvalidPrice
	}
	if !price.IsSafeForStorage() {
		return ErrPriceOverflow
	}
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
