package messaging

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/light-bringer/catalog-inventory-service/internal/pkg/clock"
)

// DeadLetter parks rejected messages on a separate topic with the reason
// they were rejected.
type DeadLetter struct {
	writer Writer
	topic  string
	clock  clock.Clock
}

// NewDeadLetter creates a dead-letter publisher for topic.
func NewDeadLetter(writer Writer, topic string, clock clock.Clock) *DeadLetter {
	return &DeadLetter{writer: writer, topic: topic, clock: clock}
}

// Publish copies msg to the dead-letter topic. The original headers are
// kept and the failure is described in x- headers.
func (d *DeadLetter) Publish(ctx context.Context, msg kafka.Message, reason error) error {
	headers := make([]kafka.Header, 0, len(msg.Headers)+5)
	headers = append(headers, msg.Headers...)
	headers = append(headers,
		kafka.Header{Key: HeaderOriginalTopic, Value: []byte(msg.Topic)},
		kafka.Header{Key: HeaderOriginalPartition, Value: []byte(strconv.Itoa(msg.Partition))},
		kafka.Header{Key: HeaderOriginalOffset, Value: []byte(strconv.FormatInt(msg.Offset, 10))},
		kafka.Header{Key: HeaderFailedAt, Value: []byte(d.clock.Now().Format(time.RFC3339Nano))},
	)
	if reason != nil {
		headers = append(headers, kafka.Header{Key: HeaderError, Value: []byte(reason.Error())})
	}

	err := d.writer.WriteMessages(ctx, kafka.Message{
		Topic:   d.topic,
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
	})
	if err != nil {
		return fmt.Errorf("failed to dead-letter %s/%d/%d: %w", msg.Topic, msg.Partition, msg.Offset, err)
	}
	return nil
}
