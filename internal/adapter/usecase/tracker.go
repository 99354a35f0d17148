package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"adflow/internal/core/domain"
)

// Tracker runs the recurring performance cycle: on a fixed interval it
// fetches fresh metrics for every active campaign, appends them to the
// performance history and enforces budget policy. It shares the
// engine's idempotent action dispatch, so a pause decided here and a
// pause decided by the in-workflow budget check cannot conflict.
type Tracker struct {
	engine   *Engine
	interval time.Duration
	logger   *slog.Logger
}

// NewTracker builds a tracker over the engine's collaborators. A
// non-positive interval falls back to 60 minutes.
func NewTracker(engine *Engine, interval time.Duration, logger *slog.Logger) *Tracker {
	if interval <= 0 {
		interval = 60 * time.Minute
	}
	return &Tracker{engine: engine, interval: interval, logger: logger}
}

// Start blocks, running tracking cycles until ctx is cancelled.
func (t *Tracker) Start(ctx context.Context) {
	t.logger.Info("performance tracker started", slog.Duration("interval", t.interval))
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("performance tracker stopped")
			return
		case <-ticker.C:
			t.trackAll(ctx)
		}
	}
}

// trackAll runs one cycle across all active campaigns. Per-campaign
// failures are logged and skipped; one bad campaign never blocks the
// rest of the cycle.
func (t *Tracker) trackAll(ctx context.Context) {
	started := time.Now()
	e := t.engine

	campaigns, err := e.store.ListActiveCampaigns(ctx)
	if err != nil {
		t.logger.Error("list active campaigns", slog.Any("error", err))
		return
	}

	tracked := 0
	for _, c := range campaigns {
		if err := t.trackOne(ctx, c); err != nil {
			t.logger.Error("track campaign",
				slog.String("campaign_id", c.ID.String()),
				slog.Any("error", err))
			continue
		}
		tracked++
	}

	status := "completed"
	l := &domain.ExecutionLog{
		ID:         uuid.New(),
		Component:  "performance_tracker",
		Action:     "track_all_campaigns",
		Status:     status,
		DurationMS: time.Since(started).Milliseconds(),
	}
	if err := e.store.AppendExecutionLog(ctx, l); err != nil {
		t.logger.Warn("append execution log", slog.Any("error", err))
	}
	t.logger.Info("tracking cycle finished",
		slog.Int("campaigns", len(campaigns)),
		slog.Int("tracked", tracked),
		slog.Duration("took", time.Since(started)))
}

func (t *Tracker) trackOne(ctx context.Context, c domain.Campaign) error {
	e := t.engine

	snap, err := e.metrics.FetchMetrics(ctx, c, t.interval)
	if err != nil {
		return err
	}
	if snap != nil {
		log := &domain.PerformanceLog{
			ID:          uuid.New(),
			CampaignID:  c.ID,
			Snapshot:    *snap,
			StatusColor: domain.ClassifyPerformance(*snap, e.cfg.Thresholds),
		}
		if err := e.store.AppendPerformanceLog(ctx, log); err != nil {
			return err
		}
	}

	bs, err := e.budgetStatus(ctx, c)
	if err != nil {
		return err
	}

	status := domain.Status{Color: domain.StatusGreen, BudgetAlert: bs.Alert}
	if snap != nil {
		status.Color = domain.ClassifyPerformance(*snap, e.cfg.Thresholds)
	}
	if actions := domain.Decide(status); len(actions) > 0 {
		return e.applyActions(ctx, c, bs, actions)
	}
	return nil
}
