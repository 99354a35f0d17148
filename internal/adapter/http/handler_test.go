package httpadapter

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adflow/internal/core/domain"
	"adflow/internal/core/port"
)

// stubUseCase returns canned values; fields left nil produce the
// matching sentinel error.
type stubUseCase struct {
	campaign *domain.Campaign
	created  *port.CreateCampaignResp
	summary  *domain.PerformanceSummary
}

func (s *stubUseCase) CreateCampaign(_ context.Context, req port.CreateCampaignReq) (*port.CreateCampaignResp, error) {
	if req.Name == "" {
		return nil, port.ErrInvalidInput
	}
	return s.created, nil
}

func (s *stubUseCase) GetCampaign(context.Context, uuid.UUID) (*domain.Campaign, error) {
	if s.campaign == nil {
		return nil, port.ErrNotFound
	}
	return s.campaign, nil
}

func (s *stubUseCase) ListCampaigns(context.Context) ([]domain.Campaign, error) {
	if s.campaign == nil {
		return nil, nil
	}
	return []domain.Campaign{*s.campaign}, nil
}

func (s *stubUseCase) DeleteCampaign(context.Context, uuid.UUID) error {
	if s.campaign == nil {
		return port.ErrNotFound
	}
	return nil
}

func (s *stubUseCase) RespondToApproval(context.Context, uuid.UUID, bool, string, string) error {
	return nil
}

func (s *stubUseCase) PauseCampaign(context.Context, uuid.UUID) error { return nil }

func (s *stubUseCase) ForceOptimize(context.Context, uuid.UUID) (*domain.OptimizationLog, error) {
	return &domain.OptimizationLog{ID: uuid.New()}, nil
}

func (s *stubUseCase) GetPerformance(context.Context, uuid.UUID, time.Duration) (*domain.PerformanceSummary, error) {
	if s.summary == nil {
		return nil, port.ErrNoPerformanceData
	}
	return s.summary, nil
}

func (s *stubUseCase) BudgetSummary(context.Context, *uuid.UUID) (*port.BudgetSummary, error) {
	return &port.BudgetSummary{}, nil
}

func (s *stubUseCase) AdjustBudget(context.Context, uuid.UUID, int64, int64, string) (*domain.BudgetStatus, error) {
	return &domain.BudgetStatus{}, nil
}

func newTestServer(stub *stubUseCase) *httptest.Server {
	h := NewHandler(stub, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return httptest.NewServer(h.Router())
}

func TestCreateCampaignAccepted(t *testing.T) {
	id := uuid.New()
	srv := newTestServer(&stubUseCase{created: &port.CreateCampaignResp{CampaignID: id, Status: domain.CampaignStatusDraft}})
	defer srv.Close()

	body := `{"name":"Widget Launch","daily_budget":5000,"brief":{"product_name":"Widget"}}`
	resp, err := http.Post(srv.URL+"/api/v1/campaigns", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
}

func TestCreateCampaignValidation(t *testing.T) {
	srv := newTestServer(&stubUseCase{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/v1/campaigns", "application/json", strings.NewReader(`{"daily_budget":5000}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetCampaignNotFound(t *testing.T) {
	srv := newTestServer(&stubUseCase{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/campaigns/" + uuid.NewString())
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetCampaignInvalidID(t *testing.T) {
	srv := newTestServer(&stubUseCase{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/campaigns/not-a-uuid")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetPerformanceNoData(t *testing.T) {
	srv := newTestServer(&stubUseCase{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/campaigns/" + uuid.NewString() + "/performance?window=1h")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&stubUseCase{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
