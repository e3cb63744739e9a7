package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
)

// OutboxStore is a testify mock of contracts.OutboxStore.
type OutboxStore struct {
	mock.Mock
}

var _ contracts.OutboxStore = (*OutboxStore)(nil)

func (m *OutboxStore) Pending(ctx context.Context, limit int) ([]*contracts.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	events, _ := args.Get(0).([]*contracts.OutboxEvent)
	return events, args.Error(1)
}

func (m *OutboxStore) MarkCompleted(ctx context.Context, eventID string, at time.Time) error {
	return m.Called(ctx, eventID, at).Error(0)
}

func (m *OutboxStore) MarkRetry(ctx context.Context, eventID string, retryCount int64, reason string, at time.Time, final bool) error {
	return m.Called(ctx, eventID, retryCount, reason, at, final).Error(0)
}

func (m *OutboxStore) Purge(ctx context.Context, completedBefore, failedBefore time.Time, dryRun bool) (int64, error) {
	args := m.Called(ctx, completedBefore, failedBefore, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
