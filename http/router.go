package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"propcalc/config"
	"propcalc/observability"
	"propcalc/service"
)

var tracer = otel.Tracer("http")

// Services are the dependencies the router hands to its handlers.
type Services struct {
	Calculator *service.CalculatorService
	Listings   *service.ListingExtractor
	Snapshots  *service.SnapshotService
	Defaults   *config.Defaults
	Limiter    *RateLimiter

	// Ready, when set, backs /healthz (for example a Redis ping).
	Ready func(context.Context) error
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(s Services, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	r.Get("/healthz", healthzHandler(s.Ready, logger))
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mortgage := NewMortgageHandler(s.Calculator, logger)
	properties := NewPropertyHandler(s.Calculator, s.Defaults.Screening, logger)
	decision := NewDecisionHandler(s.Calculator, logger)
	listings := NewListingHandler(s.Listings, logger)
	snapshots := NewSnapshotHandler(s.Snapshots, logger)

	r.Route("/v1", func(r chi.Router) {
		if s.Limiter != nil {
			r.Use(RateLimitMiddleware(s.Limiter))
		}

		r.Post("/mortgage/debt-service", mortgage.DebtService)
		r.Post("/mortgage/schedule", mortgage.Schedule)

		r.Post("/properties/current", properties.Current)
		r.Post("/properties/candidate", properties.Candidate)
		r.Post("/properties/compare", properties.Compare)
		r.Post("/properties/screen", properties.Screen)

		r.Post("/decision", decision.Decide)

		r.Post("/listings/extract", listings.Extract)

		r.Post("/snapshots", snapshots.Save)
		r.Get("/snapshots/{id}", snapshots.Load)

		r.Get("/defaults", defaultsHandler(s.Defaults))
	})

	return r
}

func healthzHandler(ready func(context.Context) error, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ready != nil {
			if err := ready(r.Context()); err != nil {
				logger.Warn("health check failed", zap.Error(err))
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func defaultsHandler(defaults *config.Defaults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, defaults)
	}
}
