package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	// Adapters
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/adapter/http/handler"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/adapter/http/router"
	natsAdapter "github.com/Abdurahmanit/GroupProject/listing-rest/internal/adapter/messaging/nats"
	mongoRepo "github.com/Abdurahmanit/GroupProject/listing-rest/internal/adapter/repository/mongodb"

	// Config
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/config"
	// Domain & Usecase
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/listing/usecase"
	// Platform
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/platform/tracer"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// eventPublisher is satisfied by both the NATS and the no-op publisher.
type eventPublisher interface {
	domain.EventPublisher
	Close()
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	appLogger := logger.NewLogger()
	defer func() { _ = appLogger.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	appLogger.Info("Application starting...",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.Bool("mongo_uri_set", cfg.Mongo.URI != ""),
		zap.String("nats_url", cfg.NATSURL),
		zap.String("prometheus_port", cfg.PrometheusMetricsPort),
	)

	tp := tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, appLogger)

	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)

	store := mongoRepo.NewClient(cfg.Mongo, appLogger)
	if err := store.Connect(context.Background()); err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	collection, err := store.Collection(config.DatabaseName, config.CollectionName)
	if err != nil {
		appLogger.Fatal("Failed to open listings collection", zap.Error(err))
	}
	listingRepo := mongoRepo.NewListingRepository(collection, appLogger)

	var publisher eventPublisher = natsAdapter.NopPublisher{}
	if cfg.NATSURL != "" {
		p, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
		if err != nil {
			appLogger.Fatal("Failed to initialize NATS publisher", zap.Error(err))
		}
		publisher = p
		appLogger.Info("NATS Publisher initialized.")
	} else {
		appLogger.Info("NATS publishing disabled (NATS_URL not set).")
	}

	listingUsecase := usecase.NewListingUsecase(listingRepo, publisher, metricsManager, appLogger)

	r := router.NewRouter(router.Deps{
		Listings:  handler.NewListingHandler(listingUsecase, appLogger),
		Health:    handler.NewHealthHandler(store, appLogger),
		Metrics:   metricsManager,
		Logger:    appLogger,
		StaticDir: cfg.StaticDir,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	metricsSrv := metrics.NewMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager)
	if metricsSrv != nil {
		go func() {
			appLogger.Info("Starting Prometheus metrics server", zap.String("address", metricsSrv.Addr))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("Prometheus metrics server failed", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(ctx); err != nil {
			appLogger.Error("Prometheus metrics server shutdown failed", zap.Error(err))
		}
	}
	publisher.Close()
	if err := tp.Shutdown(ctx); err != nil {
		appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
	}
	if err := store.Disconnect(ctx); err != nil {
		appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
	}
	appLogger.Info("Application stopped.")
}
