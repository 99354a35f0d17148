package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"adflow/internal/core/domain"
)

// stepResult is the uniform return of a step executor: the payload to
// apply on success, an optional approval override, and the outcome.
// Executors never write WorkflowState; the engine applies results
// atomically.
type stepResult struct {
	payload  domain.Payload
	approval domain.WorkflowApproval // empty means unchanged
	outcome  domain.Outcome
}

type stepFunc func(ctx context.Context, st *domain.WorkflowState) stepResult

// executorFor maps a node to the executor wrapping its external call.
func (e *Engine) executorFor(step domain.Step) stepFunc {
	switch step {
	case domain.StepGenerateContent:
		return e.execGenerateContent
	case domain.StepCreateVisuals:
		return e.execCreateVisuals
	case domain.StepRequestApproval:
		return e.execRequestApproval
	case domain.StepCheckApproval:
		return e.execCheckApproval
	case domain.StepLaunchCampaign:
		return e.execLaunchCampaign
	case domain.StepMonitorPerformance:
		return e.execMonitorPerformance
	case domain.StepCheckBudgets:
		return e.execCheckBudgets
	case domain.StepOptimizeCampaign:
		return e.execOptimizeCampaign
	default:
		return func(context.Context, *domain.WorkflowState) stepResult {
			return stepResult{outcome: domain.Fatal("no executor for step " + string(step))}
		}
	}
}

func (e *Engine) execGenerateContent(ctx context.Context, st *domain.WorkflowState) stepResult {
	content, err := e.content.ProduceContent(ctx, st.Payload.Brief)
	if err != nil {
		return stepResult{outcome: domain.ClassifyError(err)}
	}
	p := st.Payload
	p.Content = content
	return stepResult{payload: p, outcome: domain.Success()}
}

// execCreateVisuals generates the image and persists the creative.
// Image generation is optional: a producer failure degrades to a
// creative without an asset and the workflow still advances.
func (e *Engine) execCreateVisuals(ctx context.Context, st *domain.WorkflowState) stepResult {
	p := st.Payload
	if p.Content == nil {
		return stepResult{outcome: domain.Fatal("create visuals: no content produced")}
	}

	img, err := e.image.ProduceImage(ctx, p.Brief, *p.Content)
	if err != nil {
		e.logger.Warn("image generation failed, continuing without image",
			slog.String("campaign_id", st.CampaignID.String()),
			slog.Any("error", err))
	} else {
		p.Image = img
	}

	status := domain.CreativeStatusPendingApproval
	if !e.cfg.HumanApprovalRequired {
		status = domain.CreativeStatusApproved
	}
	cr := &domain.Creative{
		ID:         uuid.New(),
		CampaignID: st.CampaignID,
		Content:    *p.Content,
		Image:      p.Image,
		Status:     status,
	}
	if err := e.store.CreateCreative(ctx, cr); err != nil {
		return stepResult{outcome: domain.Retryable("persist creative: " + err.Error())}
	}
	p.CreativeID = &cr.ID
	return stepResult{payload: p, outcome: domain.Success()}
}

func (e *Engine) execRequestApproval(ctx context.Context, st *domain.WorkflowState) stepResult {
	p := st.Payload
	if p.CreativeID == nil {
		return stepResult{outcome: domain.Fatal("request approval: no creative persisted")}
	}

	campaign, err := e.store.GetCampaign(ctx, st.CampaignID)
	if err != nil {
		return stepResult{outcome: domain.Retryable("load campaign: " + err.Error())}
	}
	if campaign == nil {
		return stepResult{outcome: domain.Fatal("request approval: campaign not found")}
	}

	details, _ := json.Marshal(struct {
		Content     *domain.AdContent  `json:"content"`
		Image       *domain.ImageAsset `json:"image,omitempty"`
		DailyBudget int64              `json:"daily_budget"`
		Platform    string             `json:"platform"`
	}{p.Content, p.Image, campaign.DailyBudget, campaign.Platform})

	a := &domain.Approval{
		ID:         uuid.New(),
		CampaignID: st.CampaignID,
		CreativeID: p.CreativeID,
		Kind:       domain.ApprovalKindCreative,
		Status:     domain.ApprovalPending,
		Details:    details,
	}
	if err := e.store.CreateApproval(ctx, a); err != nil {
		return stepResult{outcome: domain.Retryable("persist approval: " + err.Error())}
	}
	if err := e.store.UpdateCampaignStatus(ctx, st.CampaignID, domain.CampaignStatusPendingApproval); err != nil {
		return stepResult{outcome: domain.Retryable("update campaign status: " + err.Error())}
	}
	p.ApprovalID = &a.ID
	return stepResult{payload: p, approval: domain.WorkflowApprovalPending, outcome: domain.Success()}
}

func (e *Engine) execCheckApproval(ctx context.Context, st *domain.WorkflowState) stepResult {
	if st.Payload.ApprovalID == nil {
		return stepResult{outcome: domain.Fatal("check approval: no approval requested")}
	}
	a, err := e.store.GetApproval(ctx, *st.Payload.ApprovalID)
	if err != nil {
		return stepResult{outcome: domain.Retryable("load approval: " + err.Error())}
	}
	if a == nil {
		return stepResult{outcome: domain.Fatal("check approval: approval record missing")}
	}

	approval := domain.WorkflowApprovalPending
	switch a.Status {
	case domain.ApprovalApproved:
		approval = domain.WorkflowApprovalApproved
	case domain.ApprovalRejected:
		approval = domain.WorkflowApprovalRejected
	}
	return stepResult{payload: st.Payload, approval: approval, outcome: domain.Success()}
}

func (e *Engine) execLaunchCampaign(ctx context.Context, st *domain.WorkflowState) stepResult {
	p := st.Payload
	if p.CreativeID == nil {
		return stepResult{outcome: domain.Fatal("launch: no creative persisted")}
	}
	campaign, err := e.store.GetCampaign(ctx, st.CampaignID)
	if err != nil {
		return stepResult{outcome: domain.Retryable("load campaign: " + err.Error())}
	}
	if campaign == nil {
		return stepResult{outcome: domain.Fatal("launch: campaign not found")}
	}
	creative, err := e.store.GetCreative(ctx, *p.CreativeID)
	if err != nil {
		return stepResult{outcome: domain.Retryable("load creative: " + err.Error())}
	}
	if creative == nil {
		return stepResult{outcome: domain.Fatal("launch: creative not found")}
	}

	launch, err := e.platform.Launch(ctx, *campaign, *creative)
	if err != nil {
		return stepResult{outcome: domain.ClassifyError(err)}
	}
	if err := e.store.SetPlatformCampaignID(ctx, st.CampaignID, launch.PlatformCampaignID); err != nil {
		return stepResult{outcome: domain.Retryable("persist platform id: " + err.Error())}
	}
	if err := e.store.UpdateCampaignStatus(ctx, st.CampaignID, domain.CampaignStatusActive); err != nil {
		return stepResult{outcome: domain.Retryable("update campaign status: " + err.Error())}
	}
	p.Launch = launch
	return stepResult{payload: p, outcome: domain.Success()}
}

// execMonitorPerformance pulls a fresh snapshot, appends it to the
// performance history and summarizes the monitor window. A platform
// with no data yet is not a failure; the summary is simply empty.
func (e *Engine) execMonitorPerformance(ctx context.Context, st *domain.WorkflowState) stepResult {
	campaign, err := e.store.GetCampaign(ctx, st.CampaignID)
	if err != nil {
		return stepResult{outcome: domain.Retryable("load campaign: " + err.Error())}
	}
	if campaign == nil {
		return stepResult{outcome: domain.Fatal("monitor: campaign not found")}
	}

	snap, err := e.metrics.FetchMetrics(ctx, *campaign, e.cfg.MonitorWindow)
	if err != nil {
		return stepResult{outcome: domain.ClassifyError(err)}
	}
	if snap != nil {
		log := &domain.PerformanceLog{
			ID:          uuid.New(),
			CampaignID:  st.CampaignID,
			Snapshot:    *snap,
			StatusColor: domain.ClassifyPerformance(*snap, e.cfg.Thresholds),
		}
		if err := e.store.AppendPerformanceLog(ctx, log); err != nil {
			return stepResult{outcome: domain.Retryable("append performance log: " + err.Error())}
		}
	}

	logs, err := e.store.GetPerformanceLogs(ctx, st.CampaignID, time.Now().Add(-e.cfg.MonitorWindow))
	if err != nil {
		return stepResult{outcome: domain.Retryable("load performance logs: " + err.Error())}
	}
	summary := domain.SummarizeMetrics(st.CampaignID, e.cfg.MonitorWindow, logs, e.cfg.Thresholds)

	p := st.Payload
	p.Performance = &summary
	return stepResult{payload: p, outcome: domain.Success()}
}

// execCheckBudgets recomputes the budget status from the latest spend
// history and dispatches any policy actions it demands. Budget
// decisions feed the optimization routing through the payload.
func (e *Engine) execCheckBudgets(ctx context.Context, st *domain.WorkflowState) stepResult {
	campaign, err := e.store.GetCampaign(ctx, st.CampaignID)
	if err != nil {
		return stepResult{outcome: domain.Retryable("load campaign: " + err.Error())}
	}
	if campaign == nil {
		return stepResult{outcome: domain.Fatal("check budgets: campaign not found")}
	}

	bs, err := e.budgetStatus(ctx, *campaign)
	if err != nil {
		return stepResult{outcome: domain.Retryable("compute budget status: " + err.Error())}
	}

	p := st.Payload
	p.Budget = &bs

	status := domain.Status{Color: domain.StatusGreen, BudgetAlert: bs.Alert}
	if p.Performance != nil {
		status.Color = p.Performance.Status
	}
	if actions := domain.Decide(status); len(actions) > 0 {
		if err := e.applyActions(ctx, *campaign, bs, actions); err != nil {
			return stepResult{outcome: domain.Retryable("apply budget actions: " + err.Error())}
		}
	}
	return stepResult{payload: p, outcome: domain.Success()}
}

// execOptimizeCampaign applies rule-based optimization when the
// combined status demands attention and records what was changed.
func (e *Engine) execOptimizeCampaign(ctx context.Context, st *domain.WorkflowState) stepResult {
	status := workflowStatus(st)
	if !status.NeedsAttention() {
		return stepResult{payload: st.Payload, outcome: domain.Success()}
	}
	if st.Payload.Performance == nil {
		return stepResult{payload: st.Payload, outcome: domain.Success()}
	}

	plan := planStrategies(*st.Payload.Performance, e.cfg.Thresholds)
	changes, _ := json.Marshal(plan)
	log := &domain.OptimizationLog{
		ID:            uuid.New(),
		CampaignID:    st.CampaignID,
		Kind:          "automated_optimization",
		TriggerReason: "performance monitoring: " + string(status.Color) + "/" + string(status.BudgetAlert),
		Changes:       changes,
		Success:       true,
	}
	if err := e.store.AppendOptimizationLog(ctx, log); err != nil {
		return stepResult{outcome: domain.Retryable("append optimization log: " + err.Error())}
	}
	return stepResult{payload: st.Payload, outcome: domain.Success()}
}

// budgetStatus derives the current budget figures for a campaign from
// its performance history: daily spend over the last 24 hours, total
// spend since the campaign was created.
func (e *Engine) budgetStatus(ctx context.Context, c domain.Campaign) (domain.BudgetStatus, error) {
	daily, err := e.store.GetPerformanceLogs(ctx, c.ID, time.Now().Add(-24*time.Hour))
	if err != nil {
		return domain.BudgetStatus{}, err
	}
	var dailySpend int64
	for _, l := range daily {
		dailySpend += l.Snapshot.Spend
	}

	var totalSpend int64
	if c.TotalBudget > 0 {
		all, err := e.store.GetPerformanceLogs(ctx, c.ID, c.CreatedAt)
		if err != nil {
			return domain.BudgetStatus{}, err
		}
		for _, l := range all {
			totalSpend += l.Snapshot.Spend
		}
	}

	bs := domain.EvaluateBudget(domain.BudgetFigures{
		DailyBudget: c.DailyBudget,
		DailySpend:  dailySpend,
		TotalBudget: c.TotalBudget,
		TotalSpend:  totalSpend,
	}, e.cfg.Thresholds)
	bs.CampaignID = c.ID.String()
	return bs, nil
}
