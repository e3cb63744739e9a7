package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
)

// MemStore is an in-memory ProductStore for tests. Quantity updates are
// atomic per call, like the real stores.
type MemStore struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	events   []domain.DomainEvent

	// Err, when set, is returned by every call.
	Err error
}

// NewMemStore creates a store seeded with products.
func NewMemStore(products ...*domain.Product) *MemStore {
	s := &MemStore{products: make(map[string]*domain.Product)}
	for _, p := range products {
		s.products[p.ID()] = p
	}
	return s
}

var _ contracts.ProductStore = (*MemStore)(nil)

// Quantity returns the stored quantity of id.
func (s *MemStore) Quantity(id string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Quantity()
}

// Events returns every event recorded so far.
func (s *MemStore) Events() []domain.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.DomainEvent(nil), s.events...)
}

func (s *MemStore) GetByID(_ context.Context, productID string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.products[productID]
	if !ok {
		return nil, domain.NewProductNotFound(productID)
	}
	return copyProduct(p), nil
}

func (s *MemStore) Exists(_ context.Context, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	_, ok := s.products[productID]
	return ok, nil
}

func (s *MemStore) ExistsByName(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	for _, p := range s.products {
		if p.Name() == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemStore) List(_ context.Context) ([]*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, copyProduct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

func (s *MemStore) Insert(_ context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, p := range s.products {
		if p.Name() == product.Name() {
			return &domain.ProductNameConflictError{Name: product.Name()}
		}
	}
	s.products[product.ID()] = copyProduct(product)
	s.events = append(s.events, product.DomainEvents()...)
	product.ClearEvents()
	product.Changes().Clear()
	return nil
}

func (s *MemStore) Update(_ context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	stored, ok := s.products[product.ID()]
	if !ok {
		return domain.NewProductNotFound(product.ID())
	}
	if stored.Version() != product.Version() {
		return domain.ErrConcurrentModification
	}
	for id, p := range s.products {
		if id != product.ID() && p.Name() == product.Name() {
			return &domain.ProductNameConflictError{Name: product.Name()}
		}
	}
	s.products[product.ID()] = domain.ReconstructProduct(product.ID(), product.Name(), product.Category(),
		product.Price(), product.Quantity(), product.Version()+1, product.CreatedAt(), product.UpdatedAt())
	s.events = append(s.events, product.DomainEvents()...)
	product.ClearEvents()
	product.Changes().Clear()
	return nil
}

func (s *MemStore) Delete(_ context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.products, productID)
	s.events = append(s.events, &domain.ProductDeletedEvent{ProductID: productID, DeletedAt: FixedTime})
	return nil
}

func (s *MemStore) UpdateQuantity(_ context.Context, update contracts.QuantityUpdate) (*domain.QuantityAdjustedEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.products[update.ProductID]
	if !ok {
		return nil, domain.NewProductNotFound(update.ProductID)
	}
	adjusted := domain.AdjustQuantity(p.ID(), p.Quantity(), update.Requested, update.Direction, update.DeliveryKey, FixedTime)
	s.products[p.ID()] = domain.ReconstructProduct(p.ID(), p.Name(), p.Category(), p.Price(),
		adjusted.Current, p.Version(), p.CreatedAt(), FixedTime)
	s.events = append(s.events, adjusted)
	return adjusted, nil
}

func copyProduct(p *domain.Product) *domain.Product {
	return domain.ReconstructProduct(p.ID(), p.Name(), p.Category(), p.Price(),
		p.Quantity(), p.Version(), p.CreatedAt(), p.UpdatedAt())
}
