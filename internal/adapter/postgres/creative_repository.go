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

// CreateCreative inserts a creative with its copy and optional image.
func (r *Repository) CreateCreative(ctx context.Context, cr *domain.Creative) error {
	contentJSON, err := json.Marshal(cr.Content)
	if err != nil {
		return err
	}
	var imageJSON []byte
	if cr.Image != nil {
		if imageJSON, err = json.Marshal(cr.Image); err != nil {
			return err
		}
	}
	now := time.Now().UTC()
	cr.CreatedAt = now
	cr.UpdatedAt = now
	_, err = r.pool.Exec(ctx, `
		INSERT INTO creatives (id, campaign_id, content, image, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		cr.ID, cr.CampaignID, contentJSON, imageJSON, cr.Status, cr.CreatedAt, cr.UpdatedAt)
	return err
}

func scanCreative(row pgx.Row) (*domain.Creative, error) {
	var (
		cr         domain.Creative
		contentRaw []byte
		imageRaw   []byte
	)
	err := row.Scan(&cr.ID, &cr.CampaignID, &contentRaw, &imageRaw, &cr.Status, &cr.CreatedAt, &cr.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(contentRaw, &cr.Content); err != nil {
		return nil, err
	}
	if len(imageRaw) > 0 {
		cr.Image = &domain.ImageAsset{}
		if err := json.Unmarshal(imageRaw, cr.Image); err != nil {
			return nil, err
		}
	}
	return &cr, nil
}

// GetCreative returns a creative by id.
func (r *Repository) GetCreative(ctx context.Context, id uuid.UUID) (*domain.Creative, error) {
	return scanCreative(r.pool.QueryRow(ctx,
		`SELECT id, campaign_id, content, image, status, created_at, updated_at FROM creatives WHERE id = $1`, id))
}

// ListCampaignCreatives returns all creatives for a campaign.
func (r *Repository) ListCampaignCreatives(ctx context.Context, campaignID uuid.UUID) ([]domain.Creative, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, campaign_id, content, image, status, created_at, updated_at FROM creatives WHERE campaign_id = $1 ORDER BY created_at DESC`, campaignID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Creative, error) {
		cr, err := scanCreative(row)
		if err != nil {
			return domain.Creative{}, err
		}
		return *cr, nil
	})
}

// UpdateCreativeStatus sets the review status of a creative.
func (r *Repository) UpdateCreativeStatus(ctx context.Context, id uuid.UUID, status domain.CreativeStatus) error {
	_, err := r.pool.Exec(ctx, `UPDATE creatives SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	return err
}
