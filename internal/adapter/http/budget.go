package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// handleBudgetSummary returns the aggregated budget status across all
// active campaigns, or for a single campaign when the `campaign_id`
// query parameter is given.
func (h *Handler) handleBudgetSummary(w http.ResponseWriter, r *http.Request) {
	var campaignID *uuid.UUID
	if raw := r.URL.Query().Get("campaign_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid campaign_id", http.StatusBadRequest)
			return
		}
		campaignID = &id
	}
	summary, err := h.svc.BudgetSummary(r.Context(), campaignID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

// adjustBudgetRequest is the JSON body for a manual budget change.
// Values are integer cents; a zero total budget removes the total cap.
type adjustBudgetRequest struct {
	DailyBudget int64  `json:"daily_budget"`
	TotalBudget int64  `json:"total_budget"`
	Reason      string `json:"reason"`
}

// handleAdjustBudget applies new budget figures to a campaign and
// returns the freshly evaluated budget status.
func (h *Handler) handleAdjustBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var body adjustBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	st, err := h.svc.AdjustBudget(r.Context(), id, body.DailyBudget, body.TotalBudget, body.Reason)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, st)
}
