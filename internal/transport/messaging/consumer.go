package messaging

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/light-bringer/catalog-inventory-service/internal/transport/failures"
)

const (
	settleTimeout = 10 * time.Second
	fetchBackoff  = time.Second
)

// Handler processes one message. A nil error, a missing product and
// insufficient stock acknowledge the message; any other error rejects it.
type Handler interface {
	Handle(ctx context.Context, msg kafka.Message) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, msg kafka.Message) error

func (f HandlerFunc) Handle(ctx context.Context, msg kafka.Message) error { return f(ctx, msg) }

// Consumer reads one topic and settles every message exactly once: the
// offset is committed after the handler finished, and rejected messages are
// dead-lettered first. A message whose handler was interrupted by shutdown
// is left uncommitted so the broker redelivers it.
type Consumer struct {
	topic      string
	reader     Reader
	handler    Handler
	deadLetter *DeadLetter
	metrics    *Metrics
	tracer     trace.Tracer
	logger     *zap.Logger
}

// NewConsumer creates a consumer for topic.
func NewConsumer(topic string, reader Reader, handler Handler, deadLetter *DeadLetter, metrics *Metrics, logger *zap.Logger) *Consumer {
	return &Consumer{
		topic:      topic,
		reader:     reader,
		handler:    handler,
		deadLetter: deadLetter,
		metrics:    metrics,
		tracer:     otel.Tracer(instrumentationName),
		logger:     logger.With(zap.String("topic", topic)),
	}
}

// Run consumes until ctx is cancelled or the reader is closed.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("consumer started")
	defer c.logger.Info("consumer stopped")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			c.logger.Error("failed to fetch message", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(fetchBackoff):
			}
			continue
		}

		c.process(ctx, msg)
	}
}

func (c *Consumer) process(ctx context.Context, msg kafka.Message) {
	start := time.Now()

	msgCtx, span := c.tracer.Start(extractTraceContext(ctx, msg), c.topic+" process",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			semconv.MessagingSystemKey.String("kafka"),
			semconv.MessagingDestinationNameKey.String(c.topic),
			attribute.Int("messaging.kafka.partition", msg.Partition),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		),
	)
	defer span.End()

	log := c.logger.With(
		zap.Int("partition", msg.Partition),
		zap.Int64("offset", msg.Offset),
	)

	err := c.handler.Handle(msgCtx, msg)
	if err != nil && ctx.Err() != nil {
		log.Info("interrupted by shutdown, leaving message for redelivery", zap.Error(err))
		span.SetStatus(codes.Error, "interrupted")
		return
	}

	settleCtx, cancel := context.WithTimeout(context.WithoutCancel(msgCtx), settleTimeout)
	defer cancel()

	delivery := failures.DeliveryFor(err)
	switch {
	case delivery == failures.Reject:
		log.Error("rejecting message", zap.ByteString("value", msg.Value), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if c.deadLetter != nil {
			if dlErr := c.deadLetter.Publish(settleCtx, msg, err); dlErr != nil {
				log.Error("failed to dead-letter message", zap.Error(dlErr))
			}
		}
	case err != nil:
		log.Warn("acknowledging message without result", zap.Error(err))
	}

	if err := c.reader.CommitMessages(settleCtx, msg); err != nil {
		log.Error("failed to commit offset", zap.Error(err))
	}

	if c.metrics != nil {
		c.metrics.Record(settleCtx, c.topic, delivery, time.Since(start))
	}
}
