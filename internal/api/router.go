package api

import (
	"net/http"
	"shop-delivery-service/internal/api/handlers"
	"shop-delivery-service/internal/platform/metrics"
	"shop-delivery-service/internal/ports"

	"github.com/go-chi/chi"
)

// Dependencies groups what the HTTP layer needs. Geocoder and Metrics may be nil.
type Dependencies struct {
	Repo         ports.ShopRepository
	Geocoder     ports.Geocoder
	Metrics      *metrics.Metrics
	PlanDefaults handlers.PlanDefaults
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Dependencies) http.Handler {
	router := chi.NewRouter()
	router.Use(requestIDMiddleware, loggingMiddleware(deps.Metrics), corsMiddleware())

	shopHandler := &handlers.ShopHandler{Repo: deps.Repo}
	deliveryHandler := &handlers.DeliveryHandler{Repo: deps.Repo}
	planHandler := &handlers.PlanHandler{
		Repo:     deps.Repo,
		Geocoder: deps.Geocoder,
		Defaults: deps.PlanDefaults,
		Metrics:  deps.Metrics,
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Get("/shops", shopHandler.List)
		r.Get("/shops/{id}/delivery-week", shopHandler.DeliveryWeek)

		r.Get("/deliveries", deliveryHandler.List)
		r.Post("/plans", planHandler.Plan)

		r.Get("/geo/distance", handlers.Distance)
	})

	if deps.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	return router
}
