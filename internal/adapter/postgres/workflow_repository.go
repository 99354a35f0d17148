package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"adflow/internal/core/domain"
)

// SaveWorkflowState upserts the full workflow state in one statement,
// so an observer always sees the last fully-applied step.
func (r *Repository) SaveWorkflowState(ctx context.Context, s *domain.WorkflowState) error {
	payloadJSON, err := json.Marshal(s.Payload)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO workflow_states (campaign_id, current_step, payload, approval, retry_count, max_retries, last_error, terminal, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (campaign_id) DO UPDATE SET
			current_step = EXCLUDED.current_step,
			payload = EXCLUDED.payload,
			approval = EXCLUDED.approval,
			retry_count = EXCLUDED.retry_count,
			max_retries = EXCLUDED.max_retries,
			last_error = EXCLUDED.last_error,
			terminal = EXCLUDED.terminal,
			updated_at = EXCLUDED.updated_at`,
		s.CampaignID, s.Current, payloadJSON, s.Approval, s.RetryCount, s.MaxRetries, s.LastError, s.Terminal, s.UpdatedAt)
	return err
}

// GetWorkflowState returns the persisted state for a campaign.
func (r *Repository) GetWorkflowState(ctx context.Context, campaignID uuid.UUID) (*domain.WorkflowState, error) {
	var (
		s          domain.WorkflowState
		payloadRaw []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT campaign_id, current_step, payload, approval, retry_count, max_retries, last_error, terminal, updated_at
		FROM workflow_states WHERE campaign_id = $1`, campaignID).
		Scan(&s.CampaignID, &s.Current, &payloadRaw, &s.Approval, &s.RetryCount, &s.MaxRetries, &s.LastError, &s.Terminal, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payloadRaw, &s.Payload); err != nil {
		return nil, err
	}
	return &s, nil
}
