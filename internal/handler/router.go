package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires all routes. The /slack group is the webhook boundary the
// chat platform calls into; /api is the direct web surface.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		}))

		r.Route("/leaves", func(r chi.Router) {
			r.Post("/", h.IngestLeave)
			r.Get("/", h.ListLeaves)
		})
	})

	r.Route("/slack", func(r chi.Router) {
		r.Post("/commands", h.SlashCommand)
		r.Post("/interactions", h.Interaction)
	})

	return r
}
