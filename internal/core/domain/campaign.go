package domain

import (
	"time"

	"github.com/google/uuid"
)

// CampaignStatus is the lifecycle status persisted for a campaign.
type CampaignStatus string

const (
	CampaignStatusDraft           CampaignStatus = "draft"
	CampaignStatusPendingApproval CampaignStatus = "pending_approval"
	CampaignStatusActive          CampaignStatus = "active"
	CampaignStatusPaused          CampaignStatus = "paused"
	CampaignStatusRejected        CampaignStatus = "rejected"
	CampaignStatusCompleted       CampaignStatus = "completed"
	CampaignStatusFailed          CampaignStatus = "failed"
)

// Campaign represents a marketing campaign.
// Budgets and spend are stored in integer units (e.g. cents).
type Campaign struct {
	ID                 uuid.UUID      `json:"id"`
	Name               string         `json:"name"`
	Objective          string         `json:"objective"`
	Platform           string         `json:"platform"` // meta, google, both
	DailyBudget        int64          `json:"daily_budget"`
	TotalBudget        int64          `json:"total_budget"` // 0 means no total cap
	Status             CampaignStatus `json:"status"`
	PlatformCampaignID string         `json:"platform_campaign_id,omitempty"` // assigned by the ad platform on launch
	StartDate          time.Time      `json:"start_date"`
	EndDate            time.Time      `json:"end_date"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}
