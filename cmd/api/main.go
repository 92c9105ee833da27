// Package main provides the entrypoint for the BikeScope API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/bikescope/bikescope/internal/alert"
	"github.com/bikescope/bikescope/internal/analytics"
	"github.com/bikescope/bikescope/internal/api"
	"github.com/bikescope/bikescope/internal/api/middleware"
	"github.com/bikescope/bikescope/internal/database"
	"github.com/bikescope/bikescope/internal/gbfs"
	"github.com/bikescope/bikescope/internal/ingest"
	"github.com/bikescope/bikescope/internal/station"
	"github.com/bikescope/bikescope/internal/telemetry"
	"github.com/bikescope/bikescope/internal/trip"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "bikescope-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting BikeScope API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	cycleMetrics, err := ingest.NewCycleMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize cycle metrics")
		os.Exit(1)
	}

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to provision schema")
	}

	// Initialize repositories
	stationRepo := station.NewPostgresRepository(pool)
	alertRepo := alert.NewPostgresRepository(pool)
	tripRepo := trip.NewPostgresRepository(pool)

	// Initialize feed client and ingestion pipeline
	feeds := gbfs.NewClient(gbfs.ClientConfig{
		InformationURL: os.Getenv("GBFS_INFORMATION_URL"),
		StatusURL:      os.Getenv("GBFS_STATUS_URL"),
		Logger:         log,
	})

	scheduler := ingest.NewScheduler(ingest.SchedulerConfig{
		Feeds:   feeds,
		Merger:  ingest.NewMerger(ingest.MergerConfig{Stations: stationRepo, Logger: log}),
		Alerts:  alertRepo,
		Logger:  log,
		Metrics: cycleMetrics,
	})

	// Seed station state before the loop starts so the API has data to
	// serve immediately. A failure here is not fatal; the loop retries.
	if err := scheduler.RunCycle(ctx); err != nil {
		log.Error().Err(err).Msg("initial ingestion cycle failed")
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// Optional Pub/Sub refresh trigger
	if projectID := os.Getenv("PUBSUB_PROJECT_ID"); projectID != "" {
		subscription := os.Getenv("PUBSUB_SUBSCRIPTION")
		if subscription == "" {
			subscription = "station-refresh"
		}

		pubsubHandler, err := ingest.NewPubSubHandler(ctx, ingest.PubSubConfig{
			ProjectID:        projectID,
			SubscriptionName: subscription,
			Scheduler:        scheduler,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}
		defer pubsubHandler.Close()

		go func() {
			if err := pubsubHandler.Start(ctx); err != nil {
				log.Error().Err(err).Msg("pubsub subscriber stopped")
			}
		}()
	}

	aggregator := analytics.NewAggregator(analytics.AggregatorConfig{
		Trips:    tripRepo,
		Stations: stationRepo,
		Logger:   log,
	})

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		Metrics:     metrics,
		Stations:    stationRepo,
		Alerts:      alertRepo,
		Aggregator:  aggregator,
		Refresher:   scheduler,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
