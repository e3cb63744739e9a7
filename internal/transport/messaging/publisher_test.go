package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-inventory-service/internal/testutil"
)

func TestEventPublisher_KeysByAggregate(t *testing.T) {
	writer := &fakeWriter{}
	p := NewEventPublisher(writer, "product-events")

	err := p.Publish(context.Background(), &contracts.OutboxEvent{
		EventID:     "e-1",
		EventType:   "product.quantity_adjusted",
		AggregateID: "p-1",
		Payload:     `{"productId":"p-1"}`,
		CreatedAt:   testutil.FixedTime,
	})

	require.NoError(t, err)
	sent := writer.Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "product-events", sent[0].Topic)
	assert.Equal(t, "p-1", string(sent[0].Key))
	assert.JSONEq(t, `{"productId":"p-1"}`, string(sent[0].Value))
	assert.Equal(t, "product.quantity_adjusted", Header(sent[0], HeaderEventType))
	assert.Equal(t, "e-1", Header(sent[0], HeaderMessageID))
}

func TestEventPublisher_PropagatesWriteErrors(t *testing.T) {
	p := NewEventPublisher(&fakeWriter{err: errBrokerDown}, "product-events")

	err := p.Publish(context.Background(), &contracts.OutboxEvent{EventID: "e-1"})

	assert.ErrorIs(t, err, errBrokerDown)
}
