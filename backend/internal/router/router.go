package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/taskboard-dev/taskboard/backend/internal/idempotency"
	"github.com/taskboard-dev/taskboard/backend/internal/setup"
	mw "github.com/taskboard-dev/taskboard/shared/middleware"
	"github.com/taskboard-dev/taskboard/shared/middleware/metrics"
)

// New creates and configures a new chi router with all the routes.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.Compress(5))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Public.Cors.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", idempotency.HeaderKey},
		MaxAge:         300,
	}))

	// JSON API only, strict CSP
	r.Use(mw.SecurityHeaders(false))

	h := deps.Handler

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	dedupe := idempotency.Middleware(deps.Deduper)

	r.Route("/api", func(r chi.Router) {
		r.Route("/boards", func(r chi.Router) {
			r.Get("/", h.GetBoards)
			r.With(dedupe).Post("/", h.CreateBoard)
			r.Delete("/{boardId}", h.DeleteBoard)
			r.With(dedupe).Post("/{boardId}/cards", h.CreateCard)
		})

		r.Route("/cards/{cardId}", func(r chi.Router) {
			r.Patch("/color", h.UpdateCardColor)
			r.Delete("/", h.DeleteCard)
			r.With(dedupe).Post("/items", h.CreateItem)
			r.Get("/items", h.ListItems)
		})

		r.Route("/items/{itemId}", func(r chi.Router) {
			r.Patch("/", h.UpdateItem)
			r.Patch("/move", h.MoveItem)
			r.Delete("/", h.DeleteItem)
		})
	})

	return r
}
