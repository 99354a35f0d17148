package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"adflow/internal/core/domain"
)

// AppendExecutionLog appends one audit record.
func (r *Repository) AppendExecutionLog(ctx context.Context, l *domain.ExecutionLog) error {
	l.CreatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO execution_logs (id, campaign_id, component, action, status, error, duration_ms, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		l.ID, l.CampaignID, l.Component, l.Action, l.Status, l.Error, l.DurationMS, l.CreatedAt)
	return err
}

// AppendOptimizationLog appends one optimization record.
func (r *Repository) AppendOptimizationLog(ctx context.Context, l *domain.OptimizationLog) error {
	l.CreatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO optimization_logs (id, campaign_id, kind, trigger_reason, changes, success, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		l.ID, l.CampaignID, l.Kind, l.TriggerReason, l.Changes, l.Success, l.CreatedAt)
	return err
}

// AppendPerformanceLog appends one metrics row with its status color.
func (r *Repository) AppendPerformanceLog(ctx context.Context, l *domain.PerformanceLog) error {
	l.CreatedAt = time.Now().UTC()
	if l.Snapshot.ObservedAt.IsZero() {
		l.Snapshot.ObservedAt = l.CreatedAt
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO performance_logs (id, campaign_id, platform, impressions, clicks, spend, conversions, revenue, ctr, cpc, roas, status_color, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		l.ID, l.CampaignID, l.Snapshot.Platform, l.Snapshot.Impressions, l.Snapshot.Clicks,
		l.Snapshot.Spend, l.Snapshot.Conversions, l.Snapshot.Revenue,
		l.Snapshot.CTR, l.Snapshot.CPC, l.Snapshot.ROAS, l.StatusColor, l.CreatedAt)
	return err
}

// GetPerformanceLogs returns metrics rows newer than since, newest
// first.
func (r *Repository) GetPerformanceLogs(ctx context.Context, campaignID uuid.UUID, since time.Time) ([]domain.PerformanceLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, campaign_id, platform, impressions, clicks, spend, conversions, revenue, ctr, cpc, roas, status_color, created_at
		FROM performance_logs
		WHERE campaign_id = $1 AND created_at >= $2
		ORDER BY created_at DESC`, campaignID, since)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PerformanceLog, error) {
		var l domain.PerformanceLog
		err := row.Scan(&l.ID, &l.CampaignID, &l.Snapshot.Platform, &l.Snapshot.Impressions, &l.Snapshot.Clicks,
			&l.Snapshot.Spend, &l.Snapshot.Conversions, &l.Snapshot.Revenue,
			&l.Snapshot.CTR, &l.Snapshot.CPC, &l.Snapshot.ROAS, &l.StatusColor, &l.CreatedAt)
		l.Snapshot.CampaignID = l.CampaignID
		l.Snapshot.ObservedAt = l.CreatedAt
		return l, err
	})
}
