package update_product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts/mocks"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-inventory-service/internal/testutil"
)

func TestInteractor_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("applies present fields", func(t *testing.T) {
		store := new(mocks.ProductStore)
		product := testutil.StoredProduct("Kettle", "35.00", 12)
		store.On("GetByID", ctx, product.ID()).Return(product, nil)
		store.On("Update", ctx, product).Return(nil)

		updated, err := NewInteractor(store, testutil.NewMockClock(), zap.NewNop()).Execute(ctx, &Request{
			ProductID: product.ID(),
			Patch: domain.Patch{
				Price:    domain.Some(domain.MustMoney("32.50")),
				Category: domain.Some(domain.CategoryHealth),
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "Kettle", updated.Name())
		assert.Equal(t, domain.CategoryHealth, updated.Category())
		assert.True(t, updated.Price().Equals(domain.MustMoney("32.50")))
		assert.Empty(t, updated.DomainEvents())
		store.AssertExpectations(t)
	})

	t.Run("negative price leaves product unchanged", func(t *testing.T) {
		store := new(mocks.ProductStore)
		product := testutil.StoredProduct("Kettle", "35.00", 12)
		store.On("GetByID", ctx, product.ID()).Return(product, nil)

		updated, err := NewInteractor(store, testutil.NewMockClock(), zap.NewNop()).Execute(ctx, &Request{
			ProductID: product.ID(),
			Patch:     domain.Patch{Price: domain.Some(domain.MustMoney("-1"))},
		})
		require.NoError(t, err)

		assert.Equal(t, "35.00", updated.Price().String())
		store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("price beyond storage precision", func(t *testing.T) {
		store := new(mocks.ProductStore)
		product := testutil.StoredProduct("Kettle", "35.00", 12)
		store.On("GetByID", ctx, product.ID()).Return(product, nil)

		_, err := NewInteractor(store, testutil.NewMockClock(), zap.NewNop()).Execute(ctx, &Request{
			ProductID: product.ID(),
			Patch:     domain.Patch{Price: domain.Some(domain.MustMoney("0.0000000001"))},
		})

		assert.ErrorIs(t, err, domain.ErrPriceOverflow)
		store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("rename onto another product's name", func(t *testing.T) {
		kettle := testutil.StoredProduct("Kettle", "35.00", 12)
		toaster := testutil.StoredProduct("Toaster", "20.00", 3)
		store := testutil.NewMemStore(kettle, toaster)

		_, err := NewInteractor(store, testutil.NewMockClock(), zap.NewNop()).Execute(ctx, &Request{
			ProductID: toaster.ID(),
			Patch:     domain.Patch{Name: domain.Some("Kettle")},
		})

		var conflict *domain.ProductNameConflictError
		require.ErrorAs(t, err, &conflict)
		assert.ErrorIs(t, err, domain.ErrProductNameConflict)
		assert.Equal(t, "Kettle", conflict.Name)

		stored, err := store.GetByID(ctx, toaster.ID())
		require.NoError(t, err)
		assert.Equal(t, "Toaster", stored.Name())
	})

	t.Run("unknown product", func(t *testing.T) {
		store := new(mocks.ProductStore)
		id := "0b6b7c56-8e0f-4a59-9d7e-2a4f8c1b3d5e"
		store.On("GetByID", ctx, id).Return(nil, domain.NewProductNotFound(id))

		_, err := NewInteractor(store, testutil.NewMockClock(), zap.NewNop()).Execute(ctx, &Request{
			ProductID: id,
			Patch:     domain.Patch{Quantity: domain.Some(int64(3))},
		})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("lost optimistic race", func(t *testing.T) {
		store := new(mocks.ProductStore)
		product := testutil.StoredProduct("Kettle", "35.00", 12)
		store.On("GetByID", ctx, product.ID()).Return(product, nil)
		store.On("Update", ctx, product).Return(domain.ErrConcurrentModification)

		_, err := NewInteractor(store, testutil.NewMockClock(), zap.NewNop()).Execute(ctx, &Request{
			ProductID: product.ID(),
			Patch:     domain.Patch{Quantity: domain.Some(int64(3))},
		})
		assert.ErrorIs(t, err, domain.ErrConcurrentModification)
	})
}
