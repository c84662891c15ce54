// Package server provides the HTTP server for the planning API
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/net/http2"

	"github.com/ayurplan/engine/internal/infrastructure/config"
	"github.com/ayurplan/engine/internal/infrastructure/http/handlers"
	"github.com/ayurplan/engine/internal/infrastructure/http/middleware"
	"github.com/ayurplan/engine/internal/infrastructure/monitoring"
	"github.com/ayurplan/engine/pkg/healthcheck"
)

// Server represents the HTTP server
type Server struct {
	config  *config.Config
	logger  *zap.Logger
	router  *chi.Mux
	handler http.Handler
	server  *http.Server
	api     *handlers.APIHandlers
	mw      *middleware.Middleware
	metrics *monitoring.MetricsCollector
	tracing *monitoring.TracingProvider
	health  *healthcheck.HealthCheck
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	api *handlers.APIHandlers,
	metrics *monitoring.MetricsCollector,
	tracing *monitoring.TracingProvider,
	health *healthcheck.HealthCheck,
) *Server {
	s := &Server{
		config:  cfg,
		logger:  logger.Named("server"),
		api:     api,
		mw:      middleware.New(cfg, logger),
		metrics: metrics,
		tracing: tracing,
		health:  health,
	}

	s.router = s.setupRouter()
	s.handler = s.router
	if tracing != nil {
		s.handler = tracing.Handler(s.router)
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}

	return s
}

// Handler exposes the router with server tracing applied
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	if s.config.Server.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(s.mw.RequestID)
	r.Use(s.mw.Recovery)
	if s.tracing != nil {
		r.Use(s.tracing.RouteNamer)
	}
	if s.metrics != nil {
		r.Use(s.metrics.HTTPMiddleware)
	}
	r.Use(s.mw.Logger)
	r.Use(s.mw.Security)
	r.Use(s.mw.CORS)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"Route not found"}}` + "\n"))
	})

	r.Method(http.MethodGet, s.config.Monitoring.HealthCheckPath, s.health.Handler())
	if s.metrics != nil && s.config.Monitoring.EnableMetrics {
		r.Method(http.MethodGet, s.config.Monitoring.MetricsPath, s.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.mw.RateLimit)
		r.Use(s.mw.JSONOnly)
		s.setupAPIRoutes(r)
	})

	return r
}

// setupAPIRoutes configures REST API routes
func (s *Server) setupAPIRoutes(r chi.Router) {
	h := s.api

	r.Post("/compliance/validate", h.ValidateCompliance)
	r.Post("/meal-suggestions", h.SuggestMeal)
	r.Post("/nutrition/totals", h.NutritionTotals)
	r.Post("/foods/score", h.ScoreFood)
	r.Get("/doshas/{doshaType}/guidelines", h.Guidelines)

	r.Route("/diet-charts", func(r chi.Router) {
		r.Post("/", h.CreateDietChart)
		r.Get("/{id}", h.GetDietChart)
		r.Patch("/{id}/status", h.UpdateDietChartStatus)
		r.Delete("/{id}", h.DeleteDietChart)
	})
	r.Get("/patients/{id}/diet-charts", h.ListPatientDietCharts)
}

// Start starts the HTTP server and blocks until it stops.
// A graceful shutdown is not reported as an error.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	// Enable HTTP/2
	if err := http2.ConfigureServer(s.server, nil); err != nil {
		s.logger.Error("Failed to configure HTTP/2", zap.Error(err))
	}

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
