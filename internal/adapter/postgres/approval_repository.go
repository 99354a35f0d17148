package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"adflow/internal/core/domain"
)

// CreateApproval inserts a pending approval request.
func (r *Repository) CreateApproval(ctx context.Context, a *domain.Approval) error {
	a.RequestedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO approvals (id, campaign_id, creative_id, kind, status, details, resolved_by, notes, requested_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		a.ID, a.CampaignID, a.CreativeID, a.Kind, a.Status, a.Details, a.ResolvedBy, a.Notes, a.RequestedAt)
	return err
}

// GetApproval returns an approval request by id.
func (r *Repository) GetApproval(ctx context.Context, id uuid.UUID) (*domain.Approval, error) {
	var a domain.Approval
	err := r.pool.QueryRow(ctx, `
		SELECT id, campaign_id, creative_id, kind, status, details, resolved_by, notes, requested_at, resolved_at
		FROM approvals WHERE id = $1`, id).
		Scan(&a.ID, &a.CampaignID, &a.CreativeID, &a.Kind, &a.Status, &a.Details, &a.ResolvedBy, &a.Notes, &a.RequestedAt, &a.ResolvedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ResolveApproval records a human decision on a pending request.
func (r *Repository) ResolveApproval(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus, resolvedBy, notes string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE approvals SET status = $1, resolved_by = $2, notes = $3, resolved_at = now()
		WHERE id = $4`, status, resolvedBy, notes, id)
	return err
}
