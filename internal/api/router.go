// Package api provides the HTTP API for BikeScope.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/bikescope/bikescope/internal/alert"
	"github.com/bikescope/bikescope/internal/analytics"
	"github.com/bikescope/bikescope/internal/api/handler"
	"github.com/bikescope/bikescope/internal/api/middleware"
	"github.com/bikescope/bikescope/internal/station"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics
	Stations    station.Repository
	Alerts      alert.Repository
	Aggregator  *analytics.Aggregator
	Refresher   handler.CycleRunner
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "bikescope-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime)
	stationHandler := handler.NewStationHandler(cfg.Stations, cfg.Refresher)
	alertHandler := handler.NewAlertHandler(cfg.Alerts)
	analyticsHandler := handler.NewAnalyticsHandler(cfg.Aggregator)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", opsHandler.HealthCheck)

		r.Route("/stations", func(r chi.Router) {
			// Refresh runs a full ingestion cycle, so it gets the strict limit.
			r.With(expensiveRateLimit).Post("/refresh", stationHandler.RefreshStations)
			r.With(standardRateLimit).Get("/{tenantID}", stationHandler.ListStations)
		})

		r.With(standardRateLimit).Get("/alerts/{tenantID}", alertHandler.ListAlerts)
		r.With(standardRateLimit).Get("/analytics/{tenantID}", analyticsHandler.GetAnalytics)
	})

	return r
}
