package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"adflow/internal/core/domain"
)

// ContentProducer generates ad copy from a campaign brief. Calls are
// time-bounded by the supplied context.
type ContentProducer interface {
	ProduceContent(ctx context.Context, brief domain.Brief) (*domain.AdContent, error)
}

// ImageProducer generates a visual for a creative. Image generation is
// optional at the workflow level; failures here degrade gracefully.
type ImageProducer interface {
	ProduceImage(ctx context.Context, brief domain.Brief, content domain.AdContent) (*domain.ImageAsset, error)
}

// AdPlatform is the outbound adapter for the ad network. Pause and
// AdjustSpendRate must be idempotent: repeating them against the same
// platform campaign succeeds without effect.
type AdPlatform interface {
	Launch(ctx context.Context, c domain.Campaign, cr domain.Creative) (*domain.LaunchResult, error)
	Pause(ctx context.Context, platformCampaignID string) error
	AdjustSpendRate(ctx context.Context, platformCampaignID string, reduction float64) error
}

// MetricsSource fetches a fresh metrics snapshot from the ad platform.
// It returns nil, nil when the platform has no data for the window.
type MetricsSource interface {
	FetchMetrics(ctx context.Context, c domain.Campaign, window time.Duration) (*domain.MetricsSnapshot, error)
}

// CreateCampaignReq is the inbound DTO for campaign creation.
type CreateCampaignReq struct {
	Name        string
	Objective   string
	Platform    string
	DailyBudget int64
	TotalBudget int64
	StartDate   time.Time
	EndDate     time.Time
	Brief       domain.Brief
}

// CreateCampaignResp reports the created campaign and the workflow
// start result.
type CreateCampaignResp struct {
	CampaignID uuid.UUID
	Status     domain.CampaignStatus
}

// BudgetSummary aggregates budget status across campaigns.
type BudgetSummary struct {
	TotalDailyBudget   int64
	TotalDailySpend    int64
	OverallUtilization float64
	CampaignsChecked   int
	CampaignsAlerting  int
	Campaigns          []domain.BudgetStatus
}

// CampaignUseCase is the primary inbound port. The HTTP surface maps
// requests onto it and holds no business logic of its own.
type CampaignUseCase interface {
	// CreateCampaign persists the campaign and starts its workflow
	// instance.
	CreateCampaign(ctx context.Context, req CreateCampaignReq) (*CreateCampaignResp, error)
	GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	DeleteCampaign(ctx context.Context, id uuid.UUID) error

	// RespondToApproval resolves a pending approval request. The
	// waiting workflow observes the resolution on its next poll.
	RespondToApproval(ctx context.Context, approvalID uuid.UUID, approve bool, resolvedBy, notes string) error

	// PauseCampaign pauses on the platform and in the store. Pausing
	// an already-paused campaign is a no-op success.
	PauseCampaign(ctx context.Context, id uuid.UUID) error

	// ForceOptimize runs one optimization pass outside the workflow
	// loop regardless of the current status color.
	ForceOptimize(ctx context.Context, id uuid.UUID) (*domain.OptimizationLog, error)

	GetPerformance(ctx context.Context, id uuid.UUID, window time.Duration) (*domain.PerformanceSummary, error)
	BudgetSummary(ctx context.Context, campaignID *uuid.UUID) (*BudgetSummary, error)
	AdjustBudget(ctx context.Context, id uuid.UUID, daily, total int64, reason string) (*domain.BudgetStatus, error)
}
