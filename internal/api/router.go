package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nutriscan/nutriscan/internal/events"
	"github.com/nutriscan/nutriscan/internal/openfoodfacts"
	"github.com/nutriscan/nutriscan/internal/score"
	"github.com/nutriscan/nutriscan/internal/store"
)

// NewRouter builds the public API surface. The store and events client may
// be nil; the service then runs without scan history or event publishing.
func NewRouter(engine *score.Engine, products openfoodfacts.Client, s store.Store, ev events.Client, adminToken string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	scoreHandler := NewScoreHandler(engine)
	productsHandler := NewProductsHandler(engine, products, s, ev, logger)
	citationsHandler := NewCitationsHandler(engine.Registry())
	scansHandler := NewScansHandler(s)
	admin := NewAdminHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/score", scoreHandler.Score)
		r.Get("/products/{barcode}", productsHandler.Analyze)
		r.Get("/citations", citationsHandler.List)
		r.Get("/scans", scansHandler.List)
		r.Get("/scans/{id}", scansHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Get("/stats", admin.Stats)
		})
	})

	return r
}

// NewMetricsRouter serves liveness and Prometheus metrics on a separate port.
func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
