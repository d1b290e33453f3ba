// Package apiserver provides the JSON API HTTP server
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/enduraplan/v2/internal/infrastructure/config"
	"github.com/enduraplan/v2/internal/infrastructure/http/handlers"
	"github.com/enduraplan/v2/internal/infrastructure/http/middleware"
	"github.com/enduraplan/v2/internal/infrastructure/monitoring"
	"github.com/enduraplan/v2/internal/ports/inbound"
	"github.com/enduraplan/v2/pkg/healthcheck"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// APIServer serves the fueling plan REST API
type APIServer struct {
	config          *config.Config
	logger          *zap.Logger
	server          *http.Server
	router          *chi.Mux
	planningService inbound.PlanningService
	health          *healthcheck.HealthCheck
	metrics         *monitoring.MetricsCollector
}

// NewAPIServer creates a new API server instance
func NewAPIServer(
	cfg *config.Config,
	log *zap.Logger,
	planningService inbound.PlanningService,
	health *healthcheck.HealthCheck,
	metrics *monitoring.MetricsCollector,
) *APIServer {
	server := &APIServer{
		config:          cfg,
		logger:          log,
		planningService: planningService,
		health:          health,
		metrics:         metrics,
	}

	server.router = server.setupRoutes()
	server.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return server
}

// setupRoutes configures the JSON API routes
func (s *APIServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS())
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.JSONOnly())

	if s.metrics != nil {
		r.Use(middleware.Metrics(s.metrics))
		r.Method(http.MethodGet, s.config.Monitoring.MetricsPath, s.metrics.Handler())
	}

	r.Get(s.config.Monitoring.HealthCheckPath, s.health.Handler())
	r.Get("/health/live", s.health.LivenessHandler())
	r.Get("/health/ready", s.health.ReadinessHandler())

	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIV1Routes(r)
	})

	return r
}

// setupAPIV1Routes configures API v1 endpoints
func (s *APIServer) setupAPIV1Routes(r chi.Router) {
	h := handlers.NewAPIHandlers(s.planningService, s.logger)

	r.Route("/plans", func(r chi.Router) {
		r.Post("/", h.GeneratePlans)
		r.Post("/accepted", h.AcceptPlan)
		r.Get("/accepted", h.ListAcceptedPlans)
	})

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", h.ListCatalog)
		r.Put("/items", h.UpsertCatalogItem)
	})
}

// Router exposes the configured router, used by tests
func (s *APIServer) Router() http.Handler {
	return s.router
}

// Start begins serving; blocks until the listener fails or is closed
func (s *APIServer) Start() error {
	s.logger.Info("API server starting", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts the server down
func (s *APIServer) Stop(ctx context.Context) error {
	s.logger.Info("API server stopping")
	ctx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}
