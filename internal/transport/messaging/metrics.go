package messaging

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/light-bringer/catalog-inventory-service/internal/transport/failures"
)

const instrumentationName = "github.com/light-bringer/catalog-inventory-service/internal/transport/messaging"

// Metrics records how consumed messages were settled.
type Metrics struct {
	processed metric.Int64Counter
	duration  metric.Float64Histogram
}

// NewMetrics registers the consumer instruments on provider.
func NewMetrics(provider metric.MeterProvider) (*Metrics, error) {
	meter := provider.Meter(instrumentationName)

	processed, err := meter.Int64Counter("catalog.messages.processed",
		metric.WithDescription("Messages settled by the catalog consumers"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("catalog.messages.duration",
		metric.WithDescription("Time spent handling a message"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{processed: processed, duration: duration}, nil
}

// Record counts one settled message.
func (m *Metrics) Record(ctx context.Context, topic string, delivery failures.Delivery, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("topic", topic),
		attribute.String("delivery", delivery.String()),
	)
	m.processed.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}
