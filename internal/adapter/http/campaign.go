package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"adflow/internal/core/domain"
	"adflow/internal/core/port"
)

// createCampaignRequest is the JSON body for campaign creation. Budget
// values are integer cents. Dates are RFC3339; both default when
// omitted (start now, end one month out).
type createCampaignRequest struct {
	Name        string       `json:"name"`
	Objective   string       `json:"objective"`
	Platform    string       `json:"platform"`
	DailyBudget int64        `json:"daily_budget"`
	TotalBudget int64        `json:"total_budget"`
	StartDate   *time.Time   `json:"start_date"`
	EndDate     *time.Time   `json:"end_date"`
	Brief       domain.Brief `json:"brief"`
}

// handleCreateCampaign persists a campaign and starts its workflow. On
// success it returns HTTP 202 with the campaign id and initial status;
// the workflow proceeds asynchronously. Parsing errors produce HTTP
// 400, validation failures HTTP 400 with a reason.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	req := port.CreateCampaignReq{
		Name:        body.Name,
		Objective:   body.Objective,
		Platform:    body.Platform,
		DailyBudget: body.DailyBudget,
		TotalBudget: body.TotalBudget,
		Brief:       body.Brief,
	}
	if body.StartDate != nil {
		req.StartDate = *body.StartDate
	}
	if body.EndDate != nil {
		req.EndDate = *body.EndDate
	}

	resp, err := h.svc.CreateCampaign(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, map[string]any{
		"campaign_id": resp.CampaignID,
		"status":      resp.Status,
	})
}

// handleGetCampaign returns a single campaign by id.
func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	c, err := h.svc.GetCampaign(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

// handleListCampaigns returns all campaigns, newest first.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListCampaigns(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

// handleDeleteCampaign cancels any running workflow and removes the
// campaign with its dependent records.
func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteCampaign(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePauseCampaign pauses delivery on the ad platform and in the
// store. Pausing an already-paused campaign succeeds without effect.
func (h *Handler) handlePauseCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.PauseCampaign(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "paused"})
}

// handleForceOptimize runs one optimization pass immediately,
// regardless of the current status color.
func (h *Handler) handleForceOptimize(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	logEntry, err := h.svc.ForceOptimize(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, logEntry)
}
