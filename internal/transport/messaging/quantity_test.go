package messaging

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/usecases/adjust_quantities"
	"github.com/light-bringer/catalog-inventory-service/internal/testutil"
	"github.com/light-bringer/catalog-inventory-service/internal/transport/failures"
)

func newQuantityHandler(store *testutil.MemStore, dir domain.Direction, guard Guard) *QuantityHandler {
	return NewQuantityHandler(adjust_quantities.NewInteractor(store, zap.NewNop()), dir, guard, zap.NewNop())
}

func batchJSON(items ...domain.OrderItem) string {
	body := "["
	for i, item := range items {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"productId":%q,"qty":%d}`, item.ProductID, item.Quantity)
	}
	return body + "]"
}

func TestQuantityHandler_AppliesDeltas(t *testing.T) {
	tests := []struct {
		name string
		dir  domain.Direction
		want int64
	}{
		{"restore adds stock", domain.Restore, 85},
		{"fetch removes stock", domain.Fetch, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := testutil.StoredProduct("Laptop", "10.00", 80)
			store := testutil.NewMemStore(product)
			h := newQuantityHandler(store, tt.dir, nil)

			err := h.Handle(context.Background(), message("qty", 1,
				batchJSON(domain.OrderItem{ProductID: product.ID(), Quantity: 5})))

			require.NoError(t, err)
			assert.Equal(t, tt.want, store.Quantity(product.ID()))
		})
	}
}

func TestQuantityHandler_SkipsUnknownItems(t *testing.T) {
	product := testutil.StoredProduct("Laptop", "10.00", 80)
	store := testutil.NewMemStore(product)
	h := newQuantityHandler(store, domain.Fetch, nil)

	err := h.Handle(context.Background(), message("fetch-qty", 1, batchJSON(
		domain.OrderItem{ProductID: product.ID(), Quantity: 5},
		domain.OrderItem{ProductID: "6f1c8c7e-3d7e-4a43-9d0b-2f9f1d7c8a11", Quantity: 5},
		domain.OrderItem{ProductID: "bogus", Quantity: 5},
	)))

	require.NoError(t, err)
	assert.Equal(t, int64(75), store.Quantity(product.ID()))
}

func TestQuantityHandler_RecordsDeliveryKey(t *testing.T) {
	product := testutil.StoredProduct("Laptop", "10.00", 80)
	store := testutil.NewMemStore(product)
	h := newQuantityHandler(store, domain.Fetch, nil)

	msg := message("fetch-qty", 9, batchJSON(domain.OrderItem{ProductID: product.ID(), Quantity: 1}))
	msg.Partition = 2
	require.NoError(t, h.Handle(context.Background(), msg))

	events := store.Events()
	require.Len(t, events, 1)
	adjusted, ok := events[0].(*domain.QuantityAdjustedEvent)
	require.True(t, ok)
	assert.Equal(t, "fetch-qty-2-9", adjusted.DeliveryKey)
}

func TestQuantityHandler_StoreFailureRejects(t *testing.T) {
	product := testutil.StoredProduct("Laptop", "10.00", 80)
	store := testutil.NewMemStore(product)
	store.Err = domain.NewStoreUnavailable("update quantity", errors.New("connection refused"))
	h := newQuantityHandler(store, domain.Fetch, nil)

	err := h.Handle(context.Background(), message("fetch-qty", 1,
		batchJSON(domain.OrderItem{ProductID: product.ID(), Quantity: 5})))

	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Equal(t, failures.Reject, failures.DeliveryFor(err))
}

func TestQuantityHandler_RejectsUndecodableBody(t *testing.T) {
	h := newQuantityHandler(testutil.NewMemStore(), domain.Restore, nil)

	err := h.Handle(context.Background(), message("restore-qty", 1, `{"productId":"x","qty":1}`))

	require.ErrorIs(t, err, failures.ErrInvalidRequest)
}

func TestQuantityHandler_IgnoresRedelivery(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	product := testutil.StoredProduct("Laptop", "10.00", 80)
	store := testutil.NewMemStore(product)
	h := newQuantityHandler(store, domain.Fetch, NewRedisGuard(client, "catalog:delivery:", time.Hour))

	msg := message("fetch-qty", 1, batchJSON(domain.OrderItem{ProductID: product.ID(), Quantity: 5}),
		kafka.Header{Key: HeaderMessageID, Value: []byte("order-7-fetch")})

	require.NoError(t, h.Handle(context.Background(), msg))
	require.NoError(t, h.Handle(context.Background(), msg))

	assert.Equal(t, int64(75), store.Quantity(product.ID()))
	assert.True(t, mr.Exists("catalog:delivery:order-7-fetch"))
}

func TestQuantityHandler_GuardOutageFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	product := testutil.StoredProduct("Laptop", "10.00", 80)
	store := testutil.NewMemStore(product)
	h := newQuantityHandler(store, domain.Restore, NewRedisGuard(client, "catalog:delivery:", time.Hour))

	err := h.Handle(context.Background(), message("restore-qty", 1,
		batchJSON(domain.OrderItem{ProductID: product.ID(), Quantity: 5})))

	require.NoError(t, err)
	assert.Equal(t, int64(85), store.Quantity(product.ID()))
}
