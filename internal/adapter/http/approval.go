package httpadapter

import (
	"encoding/json"
	"net/http"
)

// approvalResponseRequest is the JSON body for resolving an approval.
type approvalResponseRequest struct {
	Approve    bool   `json:"approve"`
	ResolvedBy string `json:"resolved_by"`
	Notes      string `json:"notes"`
}

// handleRespondToApproval resolves a pending approval request. The
// workflow waiting on it observes the resolution on its next poll, so
// this endpoint returns as soon as the decision is recorded.
func (h *Handler) handleRespondToApproval(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var body approvalResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.svc.RespondToApproval(r.Context(), id, body.Approve, body.ResolvedBy, body.Notes); err != nil {
		h.writeError(w, err)
		return
	}
	status := "rejected"
	if body.Approve {
		status = "approved"
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": status})
}
