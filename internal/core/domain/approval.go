package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ApprovalStatus is the resolution state of a human approval request.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// ApprovalKind names what is being approved.
type ApprovalKind string

const (
	ApprovalKindCreative  ApprovalKind = "creative"
	ApprovalKindBudget    ApprovalKind = "budget_increase"
	ApprovalKindEmergency ApprovalKind = "emergency"
)

// Approval is a request for a human decision. It is created by the
// system, resolved exogenously through the control surface, and polled
// by the workflow engine.
type Approval struct {
	ID          uuid.UUID       `json:"id"`
	CampaignID  uuid.UUID       `json:"campaign_id"`
	CreativeID  *uuid.UUID      `json:"creative_id,omitempty"` // nil for budget approvals
	Kind        ApprovalKind    `json:"kind"`
	Status      ApprovalStatus  `json:"status"`
	Details     json.RawMessage `json:"details,omitempty"`
	ResolvedBy  string          `json:"resolved_by,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	RequestedAt time.Time       `json:"requested_at"`
	ResolvedAt  *time.Time      `json:"resolved_at,omitempty"`
}
