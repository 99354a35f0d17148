package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ExecutionLog is one append-only record of a workflow or tracker
// action, used for audit and failure reporting.
type ExecutionLog struct {
	ID         uuid.UUID  `json:"id"`
	CampaignID *uuid.UUID `json:"campaign_id,omitempty"` // nil for cross-campaign runs
	Component  string     `json:"component"`
	Action     string     `json:"action"`
	Status     string     `json:"status"` // completed, failed
	Error      string     `json:"error,omitempty"`
	DurationMS int64      `json:"duration_ms"`
	CreatedAt  time.Time  `json:"created_at"`
}

// OptimizationLog records one optimization or budget change applied to
// a campaign, with the metrics that triggered it.
type OptimizationLog struct {
	ID            uuid.UUID       `json:"id"`
	CampaignID    uuid.UUID       `json:"campaign_id"`
	Kind          string          `json:"kind"` // automated_optimization, budget_adjustment, spend_rate_reduction
	TriggerReason string          `json:"trigger_reason"`
	Changes       json.RawMessage `json:"changes,omitempty"`
	Success       bool            `json:"success"`
	CreatedAt     time.Time       `json:"created_at"`
}
