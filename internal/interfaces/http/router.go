// Package http assembles the route tree and the server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/gamotph/adr-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/gamotph/adr-intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/gamotph/adr-intelligence/internal/interfaces/http/handlers"
	"github.com/gamotph/adr-intelligence/internal/interfaces/http/middleware"
)

// RouterConfig aggregates handler and middleware dependencies.
type RouterConfig struct {
	AnalyticsHandler *handlers.AnalyticsHandler
	HealthHandler    *handlers.HealthHandler

	Logger           logging.Logger
	MetricsCollector prometheus.MetricsCollector
	Metrics          *prometheus.AppMetrics
}

// NewRouter builds the complete route tree.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
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
		registerAnalyticsRoutes(api, cfg.AnalyticsHandler)
	})

	return r
}

func registerAnalyticsRoutes(r chi.Router, h *handlers.AnalyticsHandler) {
	if h == nil {
		return
	}
	r.Route("/analytics", func(ar chi.Router) {
		ar.Get("/top-adrs", h.TopADRs)
		ar.Get("/top-medicines", h.TopMedicines)
		ar.Get("/medicine-names", h.MedicineNames)
		ar.Get("/reaction-summary", h.ReactionSummary)
		ar.Post("/normalize-reactions", h.NormalizeReactions)
	})
}
