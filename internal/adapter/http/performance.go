package httpadapter

import (
	"net/http"
	"time"
)

// handleGetPerformance returns the aggregated performance summary for a
// campaign. The optional `window` query parameter is a Go duration
// string (e.g. 30m, 24h) and defaults to 24 hours. A window with no
// logged metrics produces HTTP 404.
func (h *Handler) handleGetPerformance(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	window := 24 * time.Hour
	if raw := r.URL.Query().Get("window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			http.Error(w, "invalid window", http.StatusBadRequest)
			return
		}
		window = d
	}
	summary, err := h.svc.GetPerformance(r.Context(), id, window)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}
