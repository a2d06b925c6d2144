package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/registry"
	"github.com/starford/raido/internal/waypoint"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(reg *registry.DB, engine *waypoint.Engine, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(reg, engine)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/waypoints", h.ListWaypoints)
	r.Get("/waypoints/nearest", h.Nearest)
	r.Post("/waypoints/rescan", h.Rescan)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
