package messaging

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func TestDeliveryKey(t *testing.T) {
	msg := kafka.Message{Topic: "fetch-qty", Partition: 3, Offset: 42}
	assert.Equal(t, "fetch-qty-3-42", DeliveryKey(msg))

	msg.Headers = []kafka.Header{{Key: HeaderMessageID, Value: []byte("abc")}}
	assert.Equal(t, "abc", DeliveryKey(msg))
}

func TestHeaderCarrier_RoundTripsTraceContext(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	parent := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	}))

	var headers []kafka.Header
	propagator := propagation.TraceContext{}
	propagator.Inject(parent, headerCarrier{headers: &headers})

	require.Len(t, headers, 1)
	assert.Equal(t, "traceparent", headers[0].Key)
	assert.Equal(t, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", string(headers[0].Value))

	extracted := trace.SpanContextFromContext(propagator.Extract(context.Background(), headerCarrier{headers: &headers}))
	assert.Equal(t, traceID, extracted.TraceID())
	assert.Equal(t, spanID, extracted.SpanID())
}

func TestHeaderCarrier_SetOverwrites(t *testing.T) {
	headers := []kafka.Header{{Key: "a", Value: []byte("1")}}
	c := headerCarrier{headers: &headers}

	c.Set("a", "2")
	c.Set("b", "3")

	assert.Equal(t, "2", c.Get("a"))
	assert.Equal(t, "3", c.Get("b"))
	assert.ElementsMatch(t, []string{"a", "b"}, c.Keys())
}
