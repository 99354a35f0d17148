package domain

import (
	"time"

	"github.com/google/uuid"
)

// Step is one node of the campaign state machine.
type Step string

const (
	StepGenerateContent    Step = "generate_content"
	StepCreateVisuals      Step = "create_visuals"
	StepRequestApproval    Step = "request_approval"
	StepCheckApproval      Step = "check_approval"
	StepLaunchCampaign     Step = "launch_campaign"
	StepMonitorPerformance Step = "monitor_performance"
	StepCheckBudgets       Step = "check_budgets"
	StepOptimizeCampaign   Step = "optimize_campaign"
	StepEnd                Step = "end"
	StepFailed             Step = "failed"
)

// Terminal reports whether no further transitions occur from s.
func (s Step) Terminal() bool {
	return s == StepEnd || s == StepFailed
}

// WorkflowApproval is the approval dimension of a workflow instance.
// It is "none" until human gating creates a request.
type WorkflowApproval string

const (
	WorkflowApprovalNone     WorkflowApproval = "none"
	WorkflowApprovalPending  WorkflowApproval = "pending"
	WorkflowApprovalApproved WorkflowApproval = "approved"
	WorkflowApprovalRejected WorkflowApproval = "rejected"
)

// LaunchResult records a successful platform launch.
type LaunchResult struct {
	PlatformCampaignID string    `json:"platform_campaign_id"`
	Platform           string    `json:"platform"`
	LaunchedAt         time.Time `json:"launched_at"`
}

// Payload holds the artifacts produced by completed steps. Each
// pointer field is nil until its producing step has succeeded, so a
// later step cannot read output that was never made.
type Payload struct {
	Brief       Brief               `json:"brief"`
	Content     *AdContent          `json:"content,omitempty"`
	Image       *ImageAsset         `json:"image,omitempty"`
	CreativeID  *uuid.UUID          `json:"creative_id,omitempty"`
	ApprovalID  *uuid.UUID          `json:"approval_id,omitempty"`
	Launch      *LaunchResult       `json:"launch,omitempty"`
	Performance *PerformanceSummary `json:"performance,omitempty"`
	Budget      *BudgetStatus       `json:"budget,omitempty"`
}

// WorkflowState is the durable state of one campaign's workflow
// instance. It has a single writer, the workflow engine, and is
// persisted after every applied step.
type WorkflowState struct {
	CampaignID uuid.UUID
	Current    Step
	Payload    Payload
	Approval   WorkflowApproval
	RetryCount int
	MaxRetries int
	LastError  string
	Terminal   bool
	UpdatedAt  time.Time
}

// NewWorkflowState returns the initial state for a campaign, entered
// once the campaign record exists.
func NewWorkflowState(campaignID uuid.UUID, brief Brief, maxRetries int) *WorkflowState {
	return &WorkflowState{
		CampaignID: campaignID,
		Current:    StepGenerateContent,
		Payload:    Payload{Brief: brief},
		Approval:   WorkflowApprovalNone,
		MaxRetries: maxRetries,
	}
}

// OutcomeKind classifies the result of one step execution.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeRetryable
	OutcomeFatal
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeRetryable:
		return "retryable_failure"
	case OutcomeFatal:
		return "fatal_failure"
	default:
		return "success"
	}
}

// Outcome is the uniform result of a step executor.
type Outcome struct {
	Kind   OutcomeKind
	Reason string
}

func Success() Outcome                { return Outcome{Kind: OutcomeSuccess} }
func Retryable(reason string) Outcome { return Outcome{Kind: OutcomeRetryable, Reason: reason} }
func Fatal(reason string) Outcome     { return Outcome{Kind: OutcomeFatal, Reason: reason} }
