package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-inventory-service/internal/pkg/clock"
)

// FixedTime is the instant used by fixtures and mock clocks.
var FixedTime = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

// NewMockClock creates a mock clock fixed at FixedTime.
func NewMockClock() *clock.MockClock {
	return clock.NewMockClock(FixedTime)
}

// NewProduct builds a valid, unpersisted product with a fresh UUID.
func NewProduct(t *testing.T, name, price string, qty int64) *domain.Product {
	t.Helper()

	p, err := domain.NewProduct(uuid.New().String(), name, domain.CategoryElectronics, domain.MustMoney(price), qty, FixedTime)
	require.NoError(t, err, "failed to build test product")
	return p
}

// StoredProduct builds a product as if loaded from the store at version 1.
func StoredProduct(name, price string, qty int64) *domain.Product {
	return domain.ReconstructProduct(uuid.New().String(), name, domain.CategoryElectronics,
		domain.MustMoney(price), qty, 1, FixedTime, FixedTime)
}
