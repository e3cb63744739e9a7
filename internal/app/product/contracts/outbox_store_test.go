package contracts

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-inventory-service/internal/models/m_outbox"
)

func TestEnrichEvent(t *testing.T) {
	now := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	event := domain.AdjustQuantity("p-1", 10, 4, domain.Fetch, "fetch-qty-1-7", now)

	out, err := EnrichEvent(event, now)
	require.NoError(t, err)

	_, err = uuid.Parse(out.EventID)
	assert.NoError(t, err)
	assert.Equal(t, "product.quantity_adjusted", out.EventType)
	assert.Equal(t, "p-1", out.AggregateID)
	assert.Equal(t, m_outbox.StatusPending, out.Status)
	assert.Equal(t, now, out.CreatedAt)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out.Payload), &payload))
	assert.Equal(t, "fetch", payload["direction"])
	assert.EqualValues(t, 6, payload["current"])
	assert.Equal(t, "fetch-qty-1-7", payload["deliveryKey"])
}
