package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"adflow/internal/core/domain"
	"adflow/internal/core/port"
)

// Service is the inbound application facade implementing
// port.CampaignUseCase. It constructs or resumes workflow state and
// delegates to the engine; no policy decisions live here.
type Service struct {
	store  port.Store
	engine *Engine
	logger *slog.Logger
}

// NewService creates the facade over the shared store and engine.
func NewService(store port.Store, engine *Engine, logger *slog.Logger) *Service {
	return &Service{store: store, engine: engine, logger: logger}
}

// CreateCampaign persists a new campaign and starts its workflow
// instance at GenerateContent.
func (s *Service) CreateCampaign(ctx context.Context, req port.CreateCampaignReq) (*port.CreateCampaignResp, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: campaign name required", port.ErrInvalidInput)
	}
	if req.DailyBudget <= 0 {
		return nil, fmt.Errorf("%w: daily budget must be positive", port.ErrInvalidInput)
	}

	now := time.Now().UTC()
	start, end := req.StartDate, req.EndDate
	if start.IsZero() {
		start = now
	}
	if end.IsZero() {
		end = start.AddDate(0, 1, 0)
	}
	c := &domain.Campaign{
		ID:          uuid.New(),
		Name:        req.Name,
		Objective:   req.Objective,
		Platform:    req.Platform,
		DailyBudget: req.DailyBudget,
		TotalBudget: req.TotalBudget,
		Status:      domain.CampaignStatusDraft,
		StartDate:   start,
		EndDate:     end,
	}
	if c.Platform == "" {
		c.Platform = "meta"
	}
	if err := s.store.CreateCampaign(ctx, c, req.Brief); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}

	if err := s.engine.StartWorkflow(c.ID, req.Brief); err != nil {
		return nil, fmt.Errorf("start workflow: %w", err)
	}
	s.logger.Info("campaign created",
		slog.String("campaign_id", c.ID.String()),
		slog.String("name", c.Name))
	return &port.CreateCampaignResp{CampaignID: c.ID, Status: c.Status}, nil
}

func (s *Service) GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	c, err := s.store.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, port.ErrNotFound
	}
	return c, nil
}

func (s *Service) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return s.store.ListCampaigns(ctx)
}

// DeleteCampaign cancels any running workflow instance and removes the
// campaign with its dependent rows.
func (s *Service) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	c, err := s.store.GetCampaign(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return port.ErrNotFound
	}
	s.engine.CancelWorkflow(id)
	return s.store.DeleteCampaign(ctx, id)
}

// RespondToApproval resolves a pending approval. Creative approvals
// update the creative's review status; approved budget requests apply
// the recommended daily budget attached to the request. The waiting
// workflow observes the resolution on its next poll.
func (s *Service) RespondToApproval(ctx context.Context, approvalID uuid.UUID, approve bool, resolvedBy, notes string) error {
	a, err := s.store.GetApproval(ctx, approvalID)
	if err != nil {
		return err
	}
	if a == nil {
		return port.ErrNotFound
	}
	if a.Status != domain.ApprovalPending {
		return fmt.Errorf("%w: approval already %s", port.ErrInvalidInput, a.Status)
	}

	status := domain.ApprovalRejected
	if approve {
		status = domain.ApprovalApproved
	}
	if err := s.store.ResolveApproval(ctx, approvalID, status, resolvedBy, notes); err != nil {
		return fmt.Errorf("resolve approval: %w", err)
	}

	if a.CreativeID != nil {
		cs := domain.CreativeStatusRejected
		if approve {
			cs = domain.CreativeStatusApproved
		}
		if err := s.store.UpdateCreativeStatus(ctx, *a.CreativeID, cs); err != nil {
			return fmt.Errorf("update creative status: %w", err)
		}
	}

	if approve && (a.Kind == domain.ApprovalKindBudget || a.Kind == domain.ApprovalKindEmergency) {
		if err := s.applyApprovedBudget(ctx, a); err != nil {
			return err
		}
	}

	s.logger.Info("approval resolved",
		slog.String("approval_id", approvalID.String()),
		slog.String("status", string(status)),
		slog.String("resolved_by", resolvedBy))
	return nil
}

// applyApprovedBudget reads the recommendation persisted with the
// approval request and applies it as the new daily budget.
func (s *Service) applyApprovedBudget(ctx context.Context, a *domain.Approval) error {
	var details struct {
		Recommendation domain.BudgetRecommendation `json:"recommendation"`
	}
	if err := json.Unmarshal(a.Details, &details); err != nil || details.Recommendation.RecommendedDaily <= 0 {
		return nil // request carried no applicable recommendation
	}

	c, err := s.store.GetCampaign(ctx, a.CampaignID)
	if err != nil {
		return err
	}
	if c == nil {
		return port.ErrNotFound
	}
	if _, err := s.AdjustBudget(ctx, a.CampaignID, details.Recommendation.RecommendedDaily, c.TotalBudget, "approved "+string(a.Kind)); err != nil {
		return err
	}
	return nil
}

// PauseCampaign pauses on the platform and in the store. Pausing an
// already-paused campaign returns success without a duplicate
// transition.
func (s *Service) PauseCampaign(ctx context.Context, id uuid.UUID) error {
	c, err := s.store.GetCampaign(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return port.ErrNotFound
	}
	return s.engine.pauseCampaign(ctx, *c, "manual pause")
}

// ForceOptimize runs one optimization pass over the last 24 hours of
// data regardless of the current status color.
func (s *Service) ForceOptimize(ctx context.Context, id uuid.UUID) (*domain.OptimizationLog, error) {
	summary, err := s.GetPerformance(ctx, id, 24*time.Hour)
	if err != nil {
		return nil, err
	}

	plan := planStrategies(*summary, s.engine.cfg.Thresholds)
	changes, _ := json.Marshal(plan)
	l := &domain.OptimizationLog{
		ID:            uuid.New(),
		CampaignID:    id,
		Kind:          "automated_optimization",
		TriggerReason: "manual optimization request",
		Changes:       changes,
		Success:       true,
	}
	if err := s.store.AppendOptimizationLog(ctx, l); err != nil {
		return nil, fmt.Errorf("append optimization log: %w", err)
	}
	return l, nil
}

func (s *Service) GetPerformance(ctx context.Context, id uuid.UUID, window time.Duration) (*domain.PerformanceSummary, error) {
	c, err := s.store.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, port.ErrNotFound
	}
	logs, err := s.store.GetPerformanceLogs(ctx, id, time.Now().Add(-window))
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, port.ErrNoPerformanceData
	}
	summary := domain.SummarizeMetrics(id, window, logs, s.engine.cfg.Thresholds)
	return &summary, nil
}

// BudgetSummary aggregates budget status over all active campaigns, or
// a single one when campaignID is set.
func (s *Service) BudgetSummary(ctx context.Context, campaignID *uuid.UUID) (*port.BudgetSummary, error) {
	var campaigns []domain.Campaign
	if campaignID != nil {
		c, err := s.store.GetCampaign(ctx, *campaignID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, port.ErrNotFound
		}
		campaigns = []domain.Campaign{*c}
	} else {
		var err error
		campaigns, err = s.store.ListActiveCampaigns(ctx)
		if err != nil {
			return nil, err
		}
	}

	out := &port.BudgetSummary{CampaignsChecked: len(campaigns)}
	for _, c := range campaigns {
		bs, err := s.engine.budgetStatus(ctx, c)
		if err != nil {
			return nil, err
		}
		out.Campaigns = append(out.Campaigns, bs)
		out.TotalDailyBudget += bs.DailyBudget
		out.TotalDailySpend += bs.DailySpend
		if bs.Alert != domain.AlertNone {
			out.CampaignsAlerting++
		}
	}
	if out.TotalDailyBudget > 0 {
		out.OverallUtilization = float64(out.TotalDailySpend) / float64(out.TotalDailyBudget)
	}
	return out, nil
}

// AdjustBudget applies new budget figures and records the change in
// the optimization log.
func (s *Service) AdjustBudget(ctx context.Context, id uuid.UUID, daily, total int64, reason string) (*domain.BudgetStatus, error) {
	if daily <= 0 {
		return nil, fmt.Errorf("%w: daily budget must be positive", port.ErrInvalidInput)
	}
	c, err := s.store.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, port.ErrNotFound
	}

	if err := s.store.UpdateCampaignBudget(ctx, id, daily, total); err != nil {
		return nil, fmt.Errorf("update budget: %w", err)
	}

	changes, _ := json.Marshal(map[string]any{
		"old_daily_budget": c.DailyBudget,
		"new_daily_budget": daily,
		"old_total_budget": c.TotalBudget,
		"new_total_budget": total,
		"reason":           reason,
	})
	l := &domain.OptimizationLog{
		ID:            uuid.New(),
		CampaignID:    id,
		Kind:          "budget_adjustment",
		TriggerReason: reason,
		Changes:       changes,
		Success:       true,
	}
	if err := s.store.AppendOptimizationLog(ctx, l); err != nil {
		s.logger.Warn("append optimization log", slog.Any("error", err))
	}

	c.DailyBudget = daily
	c.TotalBudget = total
	bs, err := s.engine.budgetStatus(ctx, *c)
	if err != nil {
		return nil, err
	}
	return &bs, nil
}
