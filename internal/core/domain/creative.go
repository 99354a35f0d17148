package domain

import (
	"time"

	"github.com/google/uuid"
)

// CreativeStatus tracks the review lifecycle of a creative.
type CreativeStatus string

const (
	CreativeStatusPendingApproval CreativeStatus = "pending_approval"
	CreativeStatusApproved        CreativeStatus = "approved"
	CreativeStatusRejected        CreativeStatus = "rejected"
)

// AdContent is the generated copy for a creative.
type AdContent struct {
	Headlines    []string `json:"headlines"`
	Description  string   `json:"description"`
	CallToAction string   `json:"call_to_action"`
	Generator    string   `json:"generator"`
}

// ImageAsset references a generated visual. Image generation is
// optional; a creative may carry no asset at all.
type ImageAsset struct {
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
}

// Creative represents an individual advertisement: generated copy plus
// an optional visual, bound to one campaign.
type Creative struct {
	ID         uuid.UUID      `json:"id"`
	CampaignID uuid.UUID      `json:"campaign_id"`
	Content    AdContent      `json:"content"`
	Image      *ImageAsset    `json:"image,omitempty"` // nil when image generation was skipped or failed
	Status     CreativeStatus `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
