package port

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"adflow/internal/core/domain"
)

// ErrWorkflowRunning is returned when a workflow instance is requested
// for a campaign that already has one active. The single-writer
// invariant forbids two concurrent instances per campaign.
var ErrWorkflowRunning = errors.New("workflow already running for campaign")

// ErrNotFound marks a lookup for a record that does not exist. The
// HTTP layer maps it to 404.
var ErrNotFound = errors.New("not found")

// ErrNoPerformanceData is returned when a performance query covers a
// window with no logged metrics.
var ErrNoPerformanceData = errors.New("no performance data")

// ErrInvalidInput marks a request rejected by validation. The HTTP
// layer maps it to 400.
var ErrInvalidInput = errors.New("invalid input")

// CampaignRepository persists campaigns. Implementations must be
// concurrency-safe; getters return nil, nil when the row is absent.
type CampaignRepository interface {
	CreateCampaign(ctx context.Context, c *domain.Campaign, brief domain.Brief) error
	GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	GetCampaignBrief(ctx context.Context, id uuid.UUID) (*domain.Brief, error)
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	ListActiveCampaigns(ctx context.Context) ([]domain.Campaign, error)
	UpdateCampaignStatus(ctx context.Context, id uuid.UUID, status domain.CampaignStatus) error
	SetPlatformCampaignID(ctx context.Context, id uuid.UUID, platformID string) error
	// UpdateCampaignBudget applies the new figures atomically; a zero
	// total keeps the campaign uncapped.
	UpdateCampaignBudget(ctx context.Context, id uuid.UUID, daily, total int64) error
	DeleteCampaign(ctx context.Context, id uuid.UUID) error
}

// CreativeRepository persists generated creatives.
type CreativeRepository interface {
	CreateCreative(ctx context.Context, cr *domain.Creative) error
	GetCreative(ctx context.Context, id uuid.UUID) (*domain.Creative, error)
	ListCampaignCreatives(ctx context.Context, campaignID uuid.UUID) ([]domain.Creative, error)
	UpdateCreativeStatus(ctx context.Context, id uuid.UUID, status domain.CreativeStatus) error
}

// ApprovalRepository persists human approval requests. Requests are
// resolved exogenously through the control surface and polled by the
// workflow engine.
type ApprovalRepository interface {
	CreateApproval(ctx context.Context, a *domain.Approval) error
	GetApproval(ctx context.Context, id uuid.UUID) (*domain.Approval, error)
	ResolveApproval(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus, resolvedBy, notes string) error
}

// LogRepository holds the append-only execution, optimization and
// performance history.
type LogRepository interface {
	AppendExecutionLog(ctx context.Context, l *domain.ExecutionLog) error
	AppendOptimizationLog(ctx context.Context, l *domain.OptimizationLog) error
	AppendPerformanceLog(ctx context.Context, l *domain.PerformanceLog) error
	GetPerformanceLogs(ctx context.Context, campaignID uuid.UUID, since time.Time) ([]domain.PerformanceLog, error)
}

// WorkflowRepository persists workflow state between steps. Save must
// apply the whole state as a single atomic write so a cancelled
// instance never leaves a partially-applied step behind.
type WorkflowRepository interface {
	SaveWorkflowState(ctx context.Context, s *domain.WorkflowState) error
	GetWorkflowState(ctx context.Context, campaignID uuid.UUID) (*domain.WorkflowState, error)
}

// Store aggregates the full persistence surface consumed by the core.
type Store interface {
	CampaignRepository
	CreativeRepository
	ApprovalRepository
	LogRepository
	WorkflowRepository
}
