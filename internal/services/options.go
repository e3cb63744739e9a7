package services

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/queries/get_product"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/queries/list_products"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/usecases/adjust_quantities"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/usecases/create_product"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/usecases/price_order_item"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/usecases/relay_outbox"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/usecases/update_product"
	"github.com/light-bringer/catalog-inventory-service/internal/config"
	"github.com/light-bringer/catalog-inventory-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-inventory-service/internal/platform/observability"
	"github.com/light-bringer/catalog-inventory-service/internal/transport/http/product"
	"github.com/light-bringer/catalog-inventory-service/internal/transport/messaging"
)

const dedupKeyPrefix = "catalog:delivery:"

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Stores         *Stores
	ProductHandler *product.Handler

	// Workers are the topic consumers and the outbox relay.
	Workers []messaging.Worker

	writer  *kafka.Writer
	readers []*kafka.Reader
	redis   *redis.Client
	logger  *zap.Logger
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, telemetry *observability.Providers, logger *zap.Logger) (*ServiceOptions, error) {
	// 1. Create infrastructure components
	clk := clock.NewRealClock()

	stores, err := OpenStores(ctx, cfg, clk)
	if err != nil {
		return nil, err
	}
	opts := &ServiceOptions{Stores: stores, logger: logger}

	opts.writer = messaging.NewWriter(cfg.KafkaBrokers)

	guard := messaging.Guard(messaging.NoopGuard{})
	if cfg.DedupEnabled() {
		opts.redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		guard = messaging.NewRedisGuard(opts.redis, dedupKeyPrefix, cfg.DedupTTL)
	}

	metrics, err := messaging.NewMetrics(telemetry.MeterProvider)
	if err != nil {
		opts.Close()
		return nil, fmt.Errorf("failed to register consumer metrics: %w", err)
	}

	// 2. Create command use cases (write operations)
	createProductUseCase := create_product.NewInteractor(stores.Products, clk, logger)
	updateProductUseCase := update_product.NewInteractor(stores.Products, clk, logger)
	deleteProductUseCase := delete_product.NewInteractor(stores.Products, logger)
	priceOrderItemUseCase := price_order_item.NewInteractor(stores.Products, logger)
	adjustQuantitiesUseCase := adjust_quantities.NewInteractor(stores.Products, logger)
	relayOutboxUseCase := relay_outbox.NewInteractor(stores.Outbox,
		messaging.NewEventPublisher(opts.writer, cfg.Topics.Events),
		clk, logger, cfg.OutboxBatchSize, cfg.OutboxMaxRetries)

	// 3. Create query use cases (read operations)
	getProductQuery := get_product.NewQuery(stores.Products, logger)
	listProductsQuery := list_products.NewQuery(stores.Products, logger)

	// 4. Create HTTP handler
	opts.ProductHandler = product.NewHandler(
		createProductUseCase,
		updateProductUseCase,
		deleteProductUseCase,
		getProductQuery,
		listProductsQuery,
		clk,
		logger,
	)

	// 5. Create message consumers
	deadLetter := messaging.NewDeadLetter(opts.writer, cfg.Topics.DeadLetter, clk)
	routes := map[string]messaging.Handler{
		cfg.Topics.TotalPrice: messaging.NewPricingHandler(priceOrderItemUseCase, opts.writer, cfg.Topics.PriceReplies, logger),
		cfg.Topics.FetchQty:   messaging.NewQuantityHandler(adjustQuantitiesUseCase, domain.Fetch, guard, logger),
		cfg.Topics.RestoreQty: messaging.NewQuantityHandler(adjustQuantitiesUseCase, domain.Restore, guard, logger),
	}
	for topic, handler := range routes {
		for i := 0; i < cfg.ConsumerWorkers; i++ {
			reader := messaging.NewReader(cfg.KafkaBrokers, cfg.KafkaGroupID, topic)
			opts.readers = append(opts.readers, reader)
			opts.Workers = append(opts.Workers, messaging.NewConsumer(topic, reader, handler, deadLetter, metrics,
				logger.With(zap.Int("worker", i))))
		}
	}

	opts.Workers = append(opts.Workers, messaging.NewOutboxRelay(relayOutboxUseCase, cfg.OutboxInterval, logger))

	return opts, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	for _, r := range s.readers {
		if err := r.Close(); err != nil {
			s.logger.Warn("failed to close Kafka reader", zap.Error(err))
		}
	}
	if s.writer != nil {
		if err := s.writer.Close(); err != nil {
			s.logger.Warn("failed to close Kafka writer", zap.Error(err))
		}
	}
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.Stores != nil {
		s.Stores.Close()
	}
}
