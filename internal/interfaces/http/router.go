// Package http assembles the gateway's HTTP surface: the chi route tree,
// middleware chain, and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/BiasLens-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/BiasLens-Intelligence/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies needed to
// build the route tree.
type RouterConfig struct {
	AnalysisHandler *handlers.AnalysisHandler
	HealthHandler   *handlers.HealthHandler

	Logger           logging.Logger
	Metrics          middleware.HTTPObserver
	MetricsCollector prometheus.MetricsCollector
}

// NewRouter wires middleware, probes, metrics, and the API v1 routes into
// a single handler.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if cfg.Logger != nil {
		r.Use(middleware.RequestLogging(cfg.Logger, middleware.DefaultLoggingConfig()))
	}
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		r.Handle("/metrics", cfg.MetricsCollector.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		registerAnalysisRoutes(api, cfg.AnalysisHandler)
	})

	return r
}

func registerAnalysisRoutes(r chi.Router, h *handlers.AnalysisHandler) {
	if h == nil {
		return
	}
	r.Post("/analyse", h.Analyse)
	r.Post("/analyse/{category}", h.AnalyseCategory)
	r.Post("/lexicon", h.Lexicon)
	r.Post("/sentiment", h.Sentiment)
	r.Get("/categories", h.Categories)
}
