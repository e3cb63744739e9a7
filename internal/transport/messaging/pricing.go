package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/usecases/price_order_item"
	"github.com/light-bringer/catalog-inventory-service/internal/transport/failures"
)

// Pricer prices a single order line.
type Pricer interface {
	Execute(ctx context.Context, item domain.OrderItem) (*price_order_item.Result, error)
}

// PriceQuote is the reply to a total-price request.
type PriceQuote struct {
	ProductID  string       `json:"productId"`
	Quantity   int64        `json:"qty"`
	TotalPrice domain.Money `json:"totalPrice"`
}

// PricingHandler handles total-price requests. A priced item is answered on
// the request's reply-to topic; skipped items get no reply.
type PricingHandler struct {
	pricer     Pricer
	writer     Writer
	replyTopic string
	logger     *zap.Logger
}

// NewPricingHandler creates a handler replying on replyTopic unless the
// request names its own.
func NewPricingHandler(pricer Pricer, writer Writer, replyTopic string, logger *zap.Logger) *PricingHandler {
	return &PricingHandler{
		pricer:     pricer,
		writer:     writer,
		replyTopic: replyTopic,
		logger:     logger,
	}
}

func (h *PricingHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var item domain.OrderItem
	if err := json.Unmarshal(msg.Value, &item); err != nil {
		return failures.InvalidRequest(err)
	}

	result, err := h.pricer.Execute(ctx, item)
	if err != nil {
		return err
	}
	if result.Outcome != price_order_item.OutcomePriced {
		return nil
	}

	return h.reply(ctx, msg, result)
}

func (h *PricingHandler) reply(ctx context.Context, req kafka.Message, result *price_order_item.Result) error {
	payload, err := json.Marshal(PriceQuote{
		ProductID:  result.ProductID,
		Quantity:   result.Quantity,
		TotalPrice: result.Total,
	})
	if err != nil {
		return fmt.Errorf("failed to encode price quote: %w", err)
	}

	topic := Header(req, HeaderReplyTo)
	if topic == "" {
		topic = h.replyTopic
	}

	var headers []kafka.Header
	if id := Header(req, HeaderCorrelationID); id != "" {
		headers = append(headers, kafka.Header{Key: HeaderCorrelationID, Value: []byte(id)})
	}

	err = h.writer.WriteMessages(ctx, kafka.Message{
		Topic:   topic,
		Key:     []byte(result.ProductID),
		Value:   payload,
		Headers: injectTraceContext(ctx, headers),
	})
	if err != nil {
		return fmt.Errorf("failed to publish price quote to %s: %w", topic, err)
	}

	h.logger.Debug("sent price quote",
		zap.String("topic", topic),
		zap.String("product_id", result.ProductID),
		zap.Stringer("total", result.Total),
	)
	return nil
}
