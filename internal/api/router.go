// Package api exposes a reel session as a local JSON API using chi.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rogersnm/reel/internal/session"
)

// NewRouter creates the API routes, mounted under /api by NewServer.
func NewRouter(sess *session.Session, logger *slog.Logger) chi.Router {
	h := NewHandler(sess, logger)

	r := chi.NewRouter()

	// Draft.
	r.Get("/draft", h.GetDraft)
	r.Patch("/draft", h.PatchDraft)
	r.Post("/draft/tags", h.AddTag)
	r.Delete("/draft/tags/{tag}", h.RemoveTag)
	r.Post("/draft/promote", h.Promote)

	// Projects.
	r.Get("/projects", h.ListProjects)
	r.Get("/projects/{id}", h.GetProject)
	r.Post("/projects/{id}/transition", h.Transition)
	r.Post("/projects/{id}/advance", h.Advance)

	r.Get("/stats", h.Stats)
	r.Get("/search", h.Search)

	return r
}

// NewServer builds the full handler: middleware, health check and /api.
func NewServer(sess *session.Session, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Mount("/api", NewRouter(sess, logger))
	return r
}
