package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/repo"
	"github.com/light-bringer/catalog-inventory-service/internal/config"
	"github.com/light-bringer/catalog-inventory-service/internal/pkg/clock"
)

// Stores is the product and outbox persistence for the configured driver.
type Stores struct {
	Products contracts.ProductStore
	Outbox   contracts.OutboxStore

	spannerClient *spanner.Client
	postgresPool  *pgxpool.Pool
}

// OpenStores connects to the database selected by cfg.StoreDriver.
func OpenStores(ctx context.Context, cfg *config.Config, clk clock.Clock) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.DriverSpanner:
		client, err := spanner.NewClient(ctx, cfg.SpannerDB)
		if err != nil {
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		return &Stores{
			Products:      repo.NewSpannerStore(client, clk),
			Outbox:        repo.NewSpannerOutbox(client),
			spannerClient: client,
		}, nil

	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to create Postgres pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to reach Postgres: %w", err)
		}
		return &Stores{
			Products:     repo.NewPostgresStore(pool, clk),
			Outbox:       repo.NewPostgresOutbox(pool),
			postgresPool: pool,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// Close releases the database connections.
func (s *Stores) Close() {
	if s.spannerClient != nil {
		s.spannerClient.Close()
	}
	if s.postgresPool != nil {
		s.postgresPool.Close()
	}
}
