package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-inventory-service/internal/config"
	"github.com/light-bringer/catalog-inventory-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-inventory-service/internal/platform/logging"
	"github.com/light-bringer/catalog-inventory-service/internal/services"
)

// Options for the outbox cleanup job
type Options struct {
	CompletedRetentionDays int
	FailedRetentionDays    int
	DryRun                 bool
}

func main() {
	// Parse command-line flags; the store comes from the service environment
	opts := Options{}
	flag.IntVar(&opts.CompletedRetentionDays, "completed-retention", 30, "Retention days for completed events")
	flag.IntVar(&opts.FailedRetentionDays, "failed-retention", 90, "Retention days for failed events")
	flag.BoolVar(&opts.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, "catalog-cleanup-outbox")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	clk := clock.NewRealClock()

	stores, err := services.OpenStores(ctx, cfg, clk)
	if err != nil {
		logger.Fatal("failed to open stores", zap.Error(err))
	}
	defer stores.Close()

	if _, err := cleanupOutbox(ctx, stores.Outbox, clk, opts, logger); err != nil {
		logger.Fatal("cleanup failed", zap.Error(err))
	}
}

func cleanupOutbox(ctx context.Context, outbox contracts.OutboxStore, clk clock.Clock, opts Options, logger *zap.Logger) (int64, error) {
	if opts.CompletedRetentionDays < 0 || opts.FailedRetentionDays < 0 {
		return 0, fmt.Errorf("retention days must not be negative")
	}

	// Calculate cutoff timestamps
	now := clk.Now()
	completedCutoff := now.AddDate(0, 0, -opts.CompletedRetentionDays)
	failedCutoff := now.AddDate(0, 0, -opts.FailedRetentionDays)

	logger.Info("starting outbox cleanup",
		zap.String("completed_cutoff", completedCutoff.Format(time.RFC3339)),
		zap.String("failed_cutoff", failedCutoff.Format(time.RFC3339)),
		zap.Bool("dry_run", opts.DryRun),
	)

	count, err := outbox.Purge(ctx, completedCutoff, failedCutoff, opts.DryRun)
	if err != nil {
		return 0, fmt.Errorf("failed to purge outbox: %w", err)
	}

	if opts.DryRun {
		logger.Info("dry run: events would be deleted", zap.Int64("count", count))
	} else {
		logger.Info("deleted outbox events", zap.Int64("count", count))
	}
	return count, nil
}
