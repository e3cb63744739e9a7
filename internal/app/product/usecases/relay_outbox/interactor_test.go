package relay_outbox

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts/mocks"
	"github.com/light-bringer/catalog-inventory-service/internal/testutil"
)

func pending(id string, retries int64) *contracts.OutboxEvent {
	return &contracts.OutboxEvent{
		EventID:     id,
		EventType:   "product.created",
		AggregateID: "agg-" + id,
		Payload:     `{}`,
		Status:      "pending",
		RetryCount:  retries,
	}
}

func TestExecute_PublishesAndCompletes(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewMockClock()
	outbox := &mocks.OutboxStore{}
	publisher := &mocks.EventPublisher{}

	e1, e2 := pending("e1", 0), pending("e2", 0)
	outbox.On("Pending", ctx, 10).Return([]*contracts.OutboxEvent{e1, e2}, nil)
	publisher.On("Publish", ctx, mock.Anything).Return(nil)
	outbox.On("MarkCompleted", ctx, "e1", testutil.FixedTime).Return(nil)
	outbox.On("MarkCompleted", ctx, "e2", testutil.FixedTime).Return(nil)

	summary, err := NewInteractor(outbox, publisher, clk, zap.NewNop(), 10, 3).Execute(ctx)

	require.NoError(t, err)
	assert.Equal(t, &Summary{Published: 2}, summary)
	outbox.AssertExpectations(t)
	publisher.AssertNumberOfCalls(t, "Publish", 2)
}

func TestExecute_RetriesThenParks(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewMockClock()
	outbox := &mocks.OutboxStore{}
	publisher := &mocks.EventPublisher{}

	fresh, tired := pending("fresh", 0), pending("tired", 2)
	outbox.On("Pending", ctx, 10).Return([]*contracts.OutboxEvent{fresh, tired}, nil)
	publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker down"))
	outbox.On("MarkRetry", ctx, "fresh", int64(1), "broker down", testutil.FixedTime, false).Return(nil)
	outbox.On("MarkRetry", ctx, "tired", int64(3), "broker down", testutil.FixedTime, true).Return(nil)

	summary, err := NewInteractor(outbox, publisher, clk, zap.NewNop(), 10, 3).Execute(ctx)

	require.NoError(t, err)
	assert.Equal(t, &Summary{Retried: 1, Failed: 1}, summary)
	outbox.AssertExpectations(t)
	outbox.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_PendingFails(t *testing.T) {
	ctx := context.Background()
	outbox := &mocks.OutboxStore{}
	outbox.On("Pending", ctx, 5).Return(nil, errors.New("store unavailable"))

	_, err := NewInteractor(outbox, &mocks.EventPublisher{}, testutil.NewMockClock(), zap.NewNop(), 5, 3).Execute(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "store unavailable")
}
