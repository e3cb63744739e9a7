package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/light-bringer/catalog-inventory-service/internal/config"
	"github.com/light-bringer/catalog-inventory-service/internal/platform/logging"
	"github.com/light-bringer/catalog-inventory-service/internal/platform/observability"
	"github.com/light-bringer/catalog-inventory-service/internal/services"
	"github.com/light-bringer/catalog-inventory-service/internal/transport/grpc/health"
	httpproduct "github.com/light-bringer/catalog-inventory-service/internal/transport/http/product"
	"github.com/light-bringer/catalog-inventory-service/internal/transport/messaging"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, config.ServiceName)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting catalog inventory service",
		zap.String("store_driver", cfg.StoreDriver),
		zap.Strings("kafka_brokers", cfg.KafkaBrokers),
		zap.String("grpc_port", cfg.GRPCPort),
		zap.String("http_port", cfg.HTTPPort),
		zap.Bool("dedup", cfg.DedupEnabled()),
	)

	telemetry, err := observability.Setup(ctx, observability.Settings{
		ServiceName:    config.ServiceName,
		ServiceVersion: config.ServiceVersion,
		Endpoint:       cfg.OTelEndpoint,
		Insecure:       cfg.OTelInsecure,
	})
	if err != nil {
		return fmt.Errorf("failed to set up telemetry: %w", err)
	}

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg, telemetry, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. Start gRPC health server
	healthServer := health.NewServer(config.ServiceName, logger)
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}
	go func() {
		logger.Info("gRPC server listening", zap.String("port", cfg.GRPCPort))
		if err := healthServer.Serve(lis); err != nil {
			logger.Error("gRPC server error", zap.Error(err))
		}
	}()

	// 4. Start HTTP server
	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: httpproduct.NewRouter(serviceOpts.ProductHandler, config.ServiceName, logger),
	}
	go func() {
		logger.Info("HTTP server listening", zap.String("port", cfg.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// 5. Run consumers and the outbox relay until a signal arrives
	healthServer.SetServing(true)
	workersErr := messaging.RunAll(ctx, serviceOpts.Workers...)
	if workersErr != nil {
		logger.Error("worker failed", zap.Error(workersErr))
	}

	// 6. Graceful shutdown
	logger.Info("shutting down gracefully")
	healthServer.SetServing(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}
	healthServer.Shutdown()

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown error", zap.Error(err))
	}

	return workersErr
}
