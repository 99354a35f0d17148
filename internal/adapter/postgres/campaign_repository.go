package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"adflow/internal/core/domain"
)

const campaignColumns = `id, name, objective, platform, daily_budget, total_budget, status, platform_campaign_id, start_date, end_date, created_at, updated_at`

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(&c.ID, &c.Name, &c.Objective, &c.Platform, &c.DailyBudget, &c.TotalBudget,
		&c.Status, &c.PlatformCampaignID, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCampaign inserts the campaign together with its brief.
func (r *Repository) CreateCampaign(ctx context.Context, c *domain.Campaign, brief domain.Brief) error {
	briefJSON, err := json.Marshal(brief)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err = r.pool.Exec(ctx, `
		INSERT INTO campaigns (id, name, objective, platform, daily_budget, total_budget, status, platform_campaign_id, brief, start_date, end_date, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		c.ID, c.Name, c.Objective, c.Platform, c.DailyBudget, c.TotalBudget, c.Status,
		c.PlatformCampaignID, briefJSON, c.StartDate, c.EndDate, c.CreatedAt, c.UpdatedAt)
	return err
}

// GetCampaign returns a campaign by id.
func (r *Repository) GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	return scanCampaign(r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id))
}

// GetCampaignBrief returns the stored brief for a campaign.
func (r *Repository) GetCampaignBrief(ctx context.Context, id uuid.UUID) (*domain.Brief, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT brief FROM campaigns WHERE id = $1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var brief domain.Brief
	if err := json.Unmarshal(raw, &brief); err != nil {
		return nil, err
	}
	return &brief, nil
}

func (r *Repository) listCampaigns(ctx context.Context, query string, args ...any) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		var c domain.Campaign
		err := row.Scan(&c.ID, &c.Name, &c.Objective, &c.Platform, &c.DailyBudget, &c.TotalBudget,
			&c.Status, &c.PlatformCampaignID, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	})
}

// ListCampaigns returns all campaigns, newest first.
func (r *Repository) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return r.listCampaigns(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY created_at DESC`)
}

// ListActiveCampaigns returns campaigns currently delivering.
func (r *Repository) ListActiveCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return r.listCampaigns(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE status = $1 ORDER BY created_at DESC`, domain.CampaignStatusActive)
}

// UpdateCampaignStatus sets the lifecycle status.
func (r *Repository) UpdateCampaignStatus(ctx context.Context, id uuid.UUID, status domain.CampaignStatus) error {
	_, err := r.pool.Exec(ctx, `UPDATE campaigns SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	return err
}

// SetPlatformCampaignID records the ID assigned by the ad platform.
func (r *Repository) SetPlatformCampaignID(ctx context.Context, id uuid.UUID, platformID string) error {
	_, err := r.pool.Exec(ctx, `UPDATE campaigns SET platform_campaign_id = $1, updated_at = now() WHERE id = $2`, platformID, id)
	return err
}

// UpdateCampaignBudget applies new budget figures atomically. The row
// is locked so a concurrent adjustment cannot interleave.
func (r *Repository) UpdateCampaignBudget(ctx context.Context, id uuid.UUID, daily, total int64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	var exists bool
	err = tx.QueryRow(ctx, `SELECT true FROM campaigns WHERE id = $1 FOR UPDATE`, id).Scan(&exists)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `UPDATE campaigns SET daily_budget = $1, total_budget = $2, updated_at = now() WHERE id = $3`, daily, total, id)
	return err
}

// DeleteCampaign removes a campaign; dependent rows cascade.
func (r *Repository) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	return err
}
