package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
)

// EventPublisher is a testify mock of contracts.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

var _ contracts.EventPublisher = (*EventPublisher)(nil)

func (m *EventPublisher) Publish(ctx context.Context, event *contracts.OutboxEvent) error {
	return m.Called(ctx, event).Error(0)
}
