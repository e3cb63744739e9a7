package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
)

// ProductStore is a testify mock of contracts.ProductStore.
type ProductStore struct {
	mock.Mock
}

var _ contracts.ProductStore = (*ProductStore)(nil)

func (m *ProductStore) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(*domain.Product)
	return p, args.Error(1)
}

func (m *ProductStore) Exists(ctx context.Context, productID string) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

func (m *ProductStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *ProductStore) List(ctx context.Context) ([]*domain.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]*domain.Product)
	return products, args.Error(1)
}

func (m *ProductStore) Insert(ctx context.Context, product *domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductStore) Update(ctx context.Context, product *domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductStore) Delete(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *ProductStore) UpdateQuantity(ctx context.Context, update contracts.QuantityUpdate) (*domain.QuantityAdjustedEvent, error) {
	args := m.Called(ctx, update)
	ev, _ := args.Get(0).(*domain.QuantityAdjustedEvent)
	return ev, args.Error(1)
}
