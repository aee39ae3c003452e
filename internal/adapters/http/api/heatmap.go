// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"

	"github.com/okian/solvemap/internal/domain/heatmap"
)

// dateLayout is the query-parameter date format for heatmap windows.
const dateLayout = "2006-01-02"

// HeatmapHandler handles calendar aggregation requests.
type HeatmapHandler struct {
	deps HeatmapDependencies
}

// NewHeatmapHandler creates a new heatmap handler.
func NewHeatmapHandler(deps HeatmapDependencies) *HeatmapHandler {
	return &HeatmapHandler{deps: deps}
}

// HandleGetHeatmap handles GET /api/heatmap?mode=count|difficulty with
// optional start/end dates (YYYY-MM-DD). The default window is the first
// of the month eleven months back, through today.
func (h *HeatmapHandler) HandleGetHeatmap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	mode, err := heatmap.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	start, end := h.deps.DefaultWindow()
	if v := r.URL.Query().Get("start"); v != "" {
		start, err = time.Parse(dateLayout, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
	}
	if v := r.URL.Query().Get("end"); v != "" {
		end, err = time.Parse(dateLayout, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	grid, err := h.deps.Heatmap(r.Context(), mode, start, end)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grid)
}
