package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/v1/products", func(r chi.Router) {
		r.Get("/", productHandler.List)
		r.Post("/new", productHandler.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", productHandler.GetByID)
			r.Patch("/", productHandler.Update)
			r.Delete("/", productHandler.Delete)
			r.Post("/warranty", productHandler.AppendWarranty)
			r.Get("/stats", productHandler.Stats)
		})
	})

	r.Route("/v1/carts", func(r chi.Router) {
		r.Post("/", cartHandler.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", cartHandler.GetByID)
			r.Delete("/", cartHandler.Delete)
			r.Post("/items", cartHandler.AddItem)
			r.Delete("/items/{itemID}", cartHandler.RemoveItem)
		})
	})

	return r
}
