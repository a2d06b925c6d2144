package api

import (
	"net/http"

	"github.com/starford/raido/internal/registry"
	"github.com/starford/raido/internal/waypoint"
)

// Handler holds API route handlers.
type Handler struct {
	reg    *registry.DB
	engine *waypoint.Engine
}

// NewHandler creates a new Handler.
func NewHandler(reg *registry.DB, engine *waypoint.Engine) *Handler {
	return &Handler{reg: reg, engine: engine}
}

// WaypointListResponse wraps the registry listing.
type WaypointListResponse struct {
	Waypoints []registry.Row `json:"waypoints"`
	Total     int            `json:"total"`
}

// NearestResponse is the result of an ancestor-index lookup.
type NearestResponse struct {
	Note string `json:"note"`
	Kind string `json:"kind"`
}

// ListWaypoints returns every registered index block.
// GET /api/waypoints
func (h *Handler) ListWaypoints(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reg.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	if rows == nil {
		rows = []registry.Row{}
	}
	writeJSON(w, http.StatusOK, WaypointListResponse{Waypoints: rows, Total: len(rows)})
}

// Nearest resolves the closest marker-bearing ancestor folder note for a
// path, without mutating anything.
// GET /api/waypoints/nearest?path=Projects/Alpha/note.md
func (h *Handler) Nearest(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Query().Get("path")
	if p == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path query parameter is required"))
		return
	}
	note, kind, ok := h.engine.Nearest(p)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("no ancestor index found"))
		return
	}
	writeJSON(w, http.StatusOK, NearestResponse{Note: note, Kind: kind.String()})
}

// Rescan runs a full regeneration pass over the vault.
// POST /api/waypoints/rescan
func (h *Handler) Rescan(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.SyncAll(); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "rescanned"})
}
