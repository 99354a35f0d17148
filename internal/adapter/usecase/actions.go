package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"adflow/internal/core/domain"
)

// applyActions dispatches policy-engine actions. Both the in-workflow
// budget check and the periodic tracker call this for the same
// campaign; every action is idempotent so concurrent triggers cannot
// conflict (pausing an already-paused campaign is a no-op success).
func (e *Engine) applyActions(ctx context.Context, c domain.Campaign, bs domain.BudgetStatus, actions []domain.Action) error {
	for _, a := range actions {
		var err error
		switch a.Kind {
		case domain.ActionPauseCampaign:
			err = e.pauseCampaign(ctx, c, a.Reason)
		case domain.ActionReduceSpendRate:
			err = e.reduceSpendRate(ctx, c, a)
		case domain.ActionRequestApproval:
			err = e.requestBudgetApproval(ctx, c, bs, a)
		case domain.ActionNotify:
			e.logger.Warn("budget notification",
				slog.String("campaign_id", c.ID.String()),
				slog.String("alert", string(bs.Alert)),
				slog.Float64("daily_utilization", bs.DailyUtilization),
				slog.String("reason", a.Reason))
		}
		if err != nil {
			return fmt.Errorf("action %s: %w", a.Kind, err)
		}
	}
	return nil
}

// pauseCampaign pauses on the platform and in the store. A campaign
// that is already paused is left untouched.
func (e *Engine) pauseCampaign(ctx context.Context, c domain.Campaign, reason string) error {
	if c.Status == domain.CampaignStatusPaused {
		return nil
	}
	if c.PlatformCampaignID != "" {
		if err := e.platform.Pause(ctx, c.PlatformCampaignID); err != nil {
			return fmt.Errorf("platform pause: %w", err)
		}
	}
	if err := e.store.UpdateCampaignStatus(ctx, c.ID, domain.CampaignStatusPaused); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	e.logger.Info("campaign paused",
		slog.String("campaign_id", c.ID.String()),
		slog.String("reason", reason))
	return nil
}

func (e *Engine) reduceSpendRate(ctx context.Context, c domain.Campaign, a domain.Action) error {
	if c.PlatformCampaignID != "" {
		if err := e.platform.AdjustSpendRate(ctx, c.PlatformCampaignID, a.SpendReduction); err != nil {
			return fmt.Errorf("platform adjust: %w", err)
		}
	}
	changes, _ := json.Marshal(map[string]any{"spend_reduction": a.SpendReduction})
	return e.store.AppendOptimizationLog(ctx, &domain.OptimizationLog{
		ID:            uuid.New(),
		CampaignID:    c.ID,
		Kind:          "spend_rate_reduction",
		TriggerReason: a.Reason,
		Changes:       changes,
		Success:       true,
	})
}

func (e *Engine) requestBudgetApproval(ctx context.Context, c domain.Campaign, bs domain.BudgetStatus, a domain.Action) error {
	rec := domain.RecommendBudgetIncrease(bs.DailyUtilization, c.DailyBudget)
	details, _ := json.Marshal(struct {
		Budget         domain.BudgetStatus         `json:"budget_status"`
		Recommendation domain.BudgetRecommendation `json:"recommendation"`
		Urgency        domain.AlertLevel           `json:"urgency"`
	}{bs, rec, bs.Alert})

	return e.store.CreateApproval(ctx, &domain.Approval{
		ID:         uuid.New(),
		CampaignID: c.ID,
		Kind:       a.ApprovalKind,
		Status:     domain.ApprovalPending,
		Details:    details,
		Notes:      a.Reason,
	})
}

// Strategy is one rule-based optimization step recorded in the
// optimization log.
type Strategy struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// planStrategies derives optimization strategies from the metrics that
// breached their thresholds.
func planStrategies(summary domain.PerformanceSummary, t domain.Thresholds) []Strategy {
	agg := summary.Aggregate
	var plan []Strategy
	if agg.CTR < t.CTRFloor {
		plan = append(plan,
			Strategy{Type: "creative_refresh", Description: "click-through rate below floor, rotate creatives"},
			Strategy{Type: "content_optimization", Description: "regenerate headlines for stronger hooks"},
		)
	}
	if agg.CPC > t.CPCCeiling {
		plan = append(plan, Strategy{Type: "bid_adjustment", Description: "cost per click above ceiling, lower bids"})
	}
	if agg.ROAS < t.ROASFloor {
		plan = append(plan, Strategy{Type: "targeting_adjustment", Description: "return on ad spend below floor, narrow audience"})
	}
	if plan == nil {
		plan = append(plan, Strategy{Type: "budget_adjustment", Description: "performance healthy, budget pressure only"})
	}
	return plan
}
