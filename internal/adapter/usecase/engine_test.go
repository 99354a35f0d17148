package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adflow/internal/core/domain"
	"adflow/internal/core/port"
)

// memStore is an in-memory port.Store for engine tests.
type memStore struct {
	mu        sync.Mutex
	campaigns map[uuid.UUID]domain.Campaign
	briefs    map[uuid.UUID]domain.Brief
	creatives map[uuid.UUID]domain.Creative
	approvals map[uuid.UUID]domain.Approval
	states    map[uuid.UUID]domain.WorkflowState
	perfLogs  []domain.PerformanceLog
	execLogs  []domain.ExecutionLog
	optLogs   []domain.OptimizationLog
}

func newMemStore() *memStore {
	return &memStore{
		campaigns: make(map[uuid.UUID]domain.Campaign),
		briefs:    make(map[uuid.UUID]domain.Brief),
		creatives: make(map[uuid.UUID]domain.Creative),
		approvals: make(map[uuid.UUID]domain.Approval),
		states:    make(map[uuid.UUID]domain.WorkflowState),
	}
}

func (m *memStore) CreateCampaign(_ context.Context, c *domain.Campaign, brief domain.Brief) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.CreatedAt = time.Now().UTC()
	m.campaigns[c.ID] = *c
	m.briefs[c.ID] = brief
	return nil
}

func (m *memStore) GetCampaign(_ context.Context, id uuid.UUID) (*domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memStore) GetCampaignBrief(_ context.Context, id uuid.UUID) (*domain.Brief, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.briefs[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *memStore) ListCampaigns(_ context.Context) ([]domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Campaign, 0, len(m.campaigns))
	for _, c := range m.campaigns {
		out = append(out, c)
	}
	return out, nil
}

func (m *memStore) ListActiveCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	all, _ := m.ListCampaigns(ctx)
	var out []domain.Campaign
	for _, c := range all {
		if c.Status == domain.CampaignStatusActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) UpdateCampaignStatus(_ context.Context, id uuid.UUID, status domain.CampaignStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.campaigns[id]
	c.Status = status
	m.campaigns[id] = c
	return nil
}

func (m *memStore) SetPlatformCampaignID(_ context.Context, id uuid.UUID, platformID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.campaigns[id]
	c.PlatformCampaignID = platformID
	m.campaigns[id] = c
	return nil
}

func (m *memStore) UpdateCampaignBudget(_ context.Context, id uuid.UUID, daily, total int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.campaigns[id]
	c.DailyBudget = daily
	c.TotalBudget = total
	m.campaigns[id] = c
	return nil
}

func (m *memStore) DeleteCampaign(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.campaigns, id)
	return nil
}

func (m *memStore) CreateCreative(_ context.Context, cr *domain.Creative) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creatives[cr.ID] = *cr
	return nil
}

func (m *memStore) GetCreative(_ context.Context, id uuid.UUID) (*domain.Creative, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cr, ok := m.creatives[id]
	if !ok {
		return nil, nil
	}
	return &cr, nil
}

func (m *memStore) ListCampaignCreatives(_ context.Context, campaignID uuid.UUID) ([]domain.Creative, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Creative
	for _, cr := range m.creatives {
		if cr.CampaignID == campaignID {
			out = append(out, cr)
		}
	}
	return out, nil
}

func (m *memStore) UpdateCreativeStatus(_ context.Context, id uuid.UUID, status domain.CreativeStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cr := m.creatives[id]
	cr.Status = status
	m.creatives[id] = cr
	return nil
}

func (m *memStore) CreateApproval(_ context.Context, a *domain.Approval) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.RequestedAt = time.Now().UTC()
	m.approvals[a.ID] = *a
	return nil
}

func (m *memStore) GetApproval(_ context.Context, id uuid.UUID) (*domain.Approval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.approvals[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *memStore) ResolveApproval(_ context.Context, id uuid.UUID, status domain.ApprovalStatus, resolvedBy, notes string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.approvals[id]
	now := time.Now().UTC()
	a.Status = status
	a.ResolvedBy = resolvedBy
	a.Notes = notes
	a.ResolvedAt = &now
	m.approvals[id] = a
	return nil
}

func (m *memStore) AppendExecutionLog(_ context.Context, l *domain.ExecutionLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.CreatedAt = time.Now().UTC()
	m.execLogs = append(m.execLogs, *l)
	return nil
}

func (m *memStore) AppendOptimizationLog(_ context.Context, l *domain.OptimizationLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.CreatedAt = time.Now().UTC()
	m.optLogs = append(m.optLogs, *l)
	return nil
}

func (m *memStore) AppendPerformanceLog(_ context.Context, l *domain.PerformanceLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.CreatedAt = time.Now().UTC()
	m.perfLogs = append(m.perfLogs, *l)
	return nil
}

func (m *memStore) GetPerformanceLogs(_ context.Context, campaignID uuid.UUID, since time.Time) ([]domain.PerformanceLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.PerformanceLog
	for _, l := range m.perfLogs {
		if l.CampaignID == campaignID && !l.CreatedAt.Before(since) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memStore) SaveWorkflowState(_ context.Context, s *domain.WorkflowState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[s.CampaignID] = *s
	return nil
}

func (m *memStore) GetWorkflowState(_ context.Context, campaignID uuid.UUID) (*domain.WorkflowState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.states[campaignID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memStore) workflowState(id uuid.UUID) (domain.WorkflowState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.states[id]
	return s, ok
}

func (m *memStore) campaign(id uuid.UUID) domain.Campaign {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.campaigns[id]
}

func (m *memStore) firstApproval(kind domain.ApprovalKind) (domain.Approval, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.approvals {
		if a.Kind == kind {
			return a, true
		}
	}
	return domain.Approval{}, false
}

// fake collaborators

type fakeContent struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeContent) ProduceContent(_ context.Context, brief domain.Brief) (*domain.AdContent, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &domain.AdContent{
		Headlines:    []string{"New " + brief.ProductName},
		Description:  "Try " + brief.ProductName,
		CallToAction: "Shop Now",
		Generator:    "template",
	}, nil
}

func (f *fakeContent) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeImage struct {
	err error
}

func (f *fakeImage) ProduceImage(context.Context, domain.Brief, domain.AdContent) (*domain.ImageAsset, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ImageAsset{URL: "/images/test.png", Prompt: "test"}, nil
}

type fakePlatform struct {
	mu         sync.Mutex
	launches   int
	pauseCalls int
	launchErr  error
}

func (f *fakePlatform) Launch(context.Context, domain.Campaign, domain.Creative) (*domain.LaunchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.launchErr != nil {
		return nil, f.launchErr
	}
	f.launches++
	return &domain.LaunchResult{PlatformCampaignID: "plt-test-1", Platform: "meta", LaunchedAt: time.Now()}, nil
}

func (f *fakePlatform) Pause(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauseCalls++
	return nil
}

func (f *fakePlatform) AdjustSpendRate(context.Context, string, float64) error { return nil }

func (f *fakePlatform) launchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.launches
}

func (f *fakePlatform) pauseCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pauseCalls
}

type fakeMetrics struct {
	snap *domain.MetricsSnapshot
}

func (f *fakeMetrics) FetchMetrics(_ context.Context, c domain.Campaign, _ time.Duration) (*domain.MetricsSnapshot, error) {
	if f.snap == nil {
		return nil, nil
	}
	s := *f.snap
	s.CampaignID = c.ID
	return &s, nil
}

func healthySnapshot() *domain.MetricsSnapshot {
	s := domain.NewMetricsSnapshot(uuid.Nil, "meta", 10000, 350, 35000, 35, 140000, time.Now())
	return &s
}

func overspendSnapshot() *domain.MetricsSnapshot {
	// spend exceeds the default 100000 daily cap
	s := domain.NewMetricsSnapshot(uuid.Nil, "meta", 10000, 350, 150000, 35, 600000, time.Now())
	return &s
}

func testConfig(approval bool) Config {
	return Config{
		Thresholds:            domain.DefaultThresholds(),
		MaxRetries:            2,
		StepTimeout:           time.Second,
		RetryBackoff:          time.Millisecond,
		ApprovalPollInterval:  2 * time.Millisecond,
		MonitorWindow:         time.Hour,
		MonitorInterval:       time.Millisecond,
		HumanApprovalRequired: approval,
	}
}

type testRig struct {
	store    *memStore
	content  *fakeContent
	image    *fakeImage
	platform *fakePlatform
	metrics  *fakeMetrics
	engine   *Engine
}

func newTestRig(t *testing.T, cfg Config) *testRig {
	t.Helper()
	rig := &testRig{
		store:    newMemStore(),
		content:  &fakeContent{},
		image:    &fakeImage{},
		platform: &fakePlatform{},
		metrics:  &fakeMetrics{snap: healthySnapshot()},
	}
	e, err := NewEngine(rig.store, rig.content, rig.image, rig.platform, rig.metrics, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	rig.engine = e
	e.Start(context.Background())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = e.Stop(ctx)
	})
	return rig
}

func (r *testRig) createCampaign(t *testing.T) uuid.UUID {
	t.Helper()
	c := &domain.Campaign{
		ID:          uuid.New(),
		Name:        "Test Campaign",
		Platform:    "meta",
		DailyBudget: 100000,
		Status:      domain.CampaignStatusDraft,
	}
	require.NoError(t, r.store.CreateCampaign(context.Background(), c, domain.Brief{ProductName: "Widget"}))
	return c.ID
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached within deadline")
}

var _ port.Store = (*memStore)(nil)

func TestWorkflowHappyPathWithoutApproval(t *testing.T) {
	rig := newTestRig(t, testConfig(false))
	id := rig.createCampaign(t)

	require.NoError(t, rig.engine.StartWorkflow(id, domain.Brief{ProductName: "Widget"}))
	waitFor(t, func() bool {
		st, ok := rig.store.workflowState(id)
		return ok && st.Terminal
	})

	st, _ := rig.store.workflowState(id)
	assert.Equal(t, domain.StepEnd, st.Current)
	assert.Equal(t, domain.WorkflowApprovalNone, st.Approval)
	assert.Equal(t, 1, rig.platform.launchCount())

	c := rig.store.campaign(id)
	assert.Equal(t, domain.CampaignStatusActive, c.Status)
	assert.Equal(t, "plt-test-1", c.PlatformCampaignID)

	// the creative was persisted pre-approved, and no approval request
	// was ever created
	creatives, _ := rig.store.ListCampaignCreatives(context.Background(), id)
	require.Len(t, creatives, 1)
	assert.Equal(t, domain.CreativeStatusApproved, creatives[0].Status)
	_, found := rig.store.firstApproval(domain.ApprovalKindCreative)
	assert.False(t, found)
}

func TestWorkflowBlocksUntilApproved(t *testing.T) {
	rig := newTestRig(t, testConfig(true))
	id := rig.createCampaign(t)

	require.NoError(t, rig.engine.StartWorkflow(id, domain.Brief{ProductName: "Widget"}))

	// the workflow parks on the approval poll without launching
	waitFor(t, func() bool {
		_, ok := rig.store.firstApproval(domain.ApprovalKindCreative)
		return ok
	})
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, rig.platform.launchCount())
	assert.Equal(t, domain.CampaignStatusPendingApproval, rig.store.campaign(id).Status)

	a, _ := rig.store.firstApproval(domain.ApprovalKindCreative)
	require.NoError(t, rig.store.ResolveApproval(context.Background(), a.ID, domain.ApprovalApproved, "reviewer", "looks good"))

	waitFor(t, func() bool {
		st, ok := rig.store.workflowState(id)
		return ok && st.Terminal
	})
	st, _ := rig.store.workflowState(id)
	assert.Equal(t, domain.StepEnd, st.Current)
	assert.Equal(t, domain.WorkflowApprovalApproved, st.Approval)
	assert.Equal(t, 1, rig.platform.launchCount())
	assert.Equal(t, domain.CampaignStatusActive, rig.store.campaign(id).Status)
}

func TestWorkflowRejectionEndsWithoutLaunch(t *testing.T) {
	rig := newTestRig(t, testConfig(true))
	id := rig.createCampaign(t)

	require.NoError(t, rig.engine.StartWorkflow(id, domain.Brief{ProductName: "Widget"}))
	waitFor(t, func() bool {
		_, ok := rig.store.firstApproval(domain.ApprovalKindCreative)
		return ok
	})
	a, _ := rig.store.firstApproval(domain.ApprovalKindCreative)
	require.NoError(t, rig.store.ResolveApproval(context.Background(), a.ID, domain.ApprovalRejected, "reviewer", "off brand"))

	waitFor(t, func() bool {
		st, ok := rig.store.workflowState(id)
		return ok && st.Terminal
	})
	st, _ := rig.store.workflowState(id)
	assert.Equal(t, domain.StepEnd, st.Current)
	assert.Equal(t, domain.WorkflowApprovalRejected, st.Approval)
	assert.Equal(t, 0, rig.platform.launchCount())
	assert.Equal(t, domain.CampaignStatusRejected, rig.store.campaign(id).Status)
}

// A step that keeps failing transiently is attempted exactly
// maxRetries+1 times before the workflow fails.
func TestWorkflowRetryBound(t *testing.T) {
	rig := newTestRig(t, testConfig(false))
	rig.content.err = errors.New("copywriter unavailable")
	id := rig.createCampaign(t)

	require.NoError(t, rig.engine.StartWorkflow(id, domain.Brief{ProductName: "Widget"}))
	waitFor(t, func() bool {
		st, ok := rig.store.workflowState(id)
		return ok && st.Terminal
	})

	st, _ := rig.store.workflowState(id)
	assert.Equal(t, domain.StepFailed, st.Current)
	assert.Contains(t, st.LastError, "copywriter unavailable")
	assert.Equal(t, 3, rig.content.callCount()) // maxRetries=2 -> 3 attempts
	assert.Equal(t, domain.CampaignStatusFailed, rig.store.campaign(id).Status)
}

// A fatal step error fails the workflow immediately, with no retries.
func TestWorkflowFatalSkipsRetries(t *testing.T) {
	rig := newTestRig(t, testConfig(false))
	rig.content.err = &domain.FatalError{Err: errors.New("empty brief")}
	id := rig.createCampaign(t)

	require.NoError(t, rig.engine.StartWorkflow(id, domain.Brief{}))
	waitFor(t, func() bool {
		st, ok := rig.store.workflowState(id)
		return ok && st.Terminal
	})

	st, _ := rig.store.workflowState(id)
	assert.Equal(t, domain.StepFailed, st.Current)
	assert.Equal(t, 1, rig.content.callCount())
}

// Image generation failure degrades to a creative without an asset;
// the workflow still launches.
func TestWorkflowImageFailureDegrades(t *testing.T) {
	rig := newTestRig(t, testConfig(false))
	rig.image.err = errors.New("diffusion backend down")
	id := rig.createCampaign(t)

	require.NoError(t, rig.engine.StartWorkflow(id, domain.Brief{ProductName: "Widget"}))
	waitFor(t, func() bool {
		st, ok := rig.store.workflowState(id)
		return ok && st.Terminal
	})

	st, _ := rig.store.workflowState(id)
	assert.Equal(t, domain.StepEnd, st.Current)
	assert.Equal(t, 1, rig.platform.launchCount())

	creatives, _ := rig.store.ListCampaignCreatives(context.Background(), id)
	require.Len(t, creatives, 1)
	assert.Nil(t, creatives[0].Image)
}

func TestStartWorkflowSingleFlight(t *testing.T) {
	rig := newTestRig(t, testConfig(true))
	id := rig.createCampaign(t)

	require.NoError(t, rig.engine.StartWorkflow(id, domain.Brief{ProductName: "Widget"}))
	err := rig.engine.StartWorkflow(id, domain.Brief{ProductName: "Widget"})
	assert.ErrorIs(t, err, port.ErrWorkflowRunning)

	assert.True(t, rig.engine.CancelWorkflow(id))
}

// Overspending past the daily cap pauses the campaign and files an
// emergency approval; repeated budget checks do not pause twice.
func TestWorkflowBudgetEmergency(t *testing.T) {
	rig := newTestRig(t, testConfig(false))
	rig.metrics.snap = overspendSnapshot()
	id := rig.createCampaign(t)

	require.NoError(t, rig.engine.StartWorkflow(id, domain.Brief{ProductName: "Widget"}))
	waitFor(t, func() bool {
		return rig.store.campaign(id).Status == domain.CampaignStatusPaused
	})
	waitFor(t, func() bool {
		_, ok := rig.store.firstApproval(domain.ApprovalKindEmergency)
		return ok
	})

	// let the monitor loop run a few more cycles, then stop it
	time.Sleep(20 * time.Millisecond)
	rig.engine.CancelWorkflow(id)

	assert.Equal(t, domain.CampaignStatusPaused, rig.store.campaign(id).Status)
	assert.Equal(t, 1, rig.platform.pauseCount())
}

func TestPauseCampaignIdempotent(t *testing.T) {
	rig := newTestRig(t, testConfig(false))
	id := rig.createCampaign(t)
	require.NoError(t, rig.store.SetPlatformCampaignID(context.Background(), id, "plt-test-1"))
	require.NoError(t, rig.store.UpdateCampaignStatus(context.Background(), id, domain.CampaignStatusActive))

	ctx := context.Background()
	c := rig.store.campaign(id)
	require.NoError(t, rig.engine.pauseCampaign(ctx, c, "budget emergency"))
	assert.Equal(t, domain.CampaignStatusPaused, rig.store.campaign(id).Status)

	// a second pause against the refreshed campaign is a no-op
	c = rig.store.campaign(id)
	require.NoError(t, rig.engine.pauseCampaign(ctx, c, "tracker cycle"))
	assert.Equal(t, 1, rig.platform.pauseCount())
}

// After a restart, persisted non-terminal instances resume where they
// stopped; finished ones are left alone.
func TestResumeAllContinuesInFlight(t *testing.T) {
	rig := newTestRig(t, testConfig(true))
	ctx := context.Background()
	id := rig.createCampaign(t)

	content := &domain.AdContent{Headlines: []string{"New Widget"}, Generator: "template"}
	cr := &domain.Creative{ID: uuid.New(), CampaignID: id, Content: *content, Status: domain.CreativeStatusPendingApproval}
	require.NoError(t, rig.store.CreateCreative(ctx, cr))
	a := &domain.Approval{ID: uuid.New(), CampaignID: id, CreativeID: &cr.ID, Kind: domain.ApprovalKindCreative, Status: domain.ApprovalPending}
	require.NoError(t, rig.store.CreateApproval(ctx, a))

	st := domain.NewWorkflowState(id, domain.Brief{ProductName: "Widget"}, 2)
	st.Current = domain.StepCheckApproval
	st.Approval = domain.WorkflowApprovalPending
	st.Payload.Content = content
	st.Payload.CreativeID = &cr.ID
	st.Payload.ApprovalID = &a.ID
	require.NoError(t, rig.store.SaveWorkflowState(ctx, st))

	require.NoError(t, rig.engine.ResumeAll(ctx))
	require.NoError(t, rig.store.ResolveApproval(ctx, a.ID, domain.ApprovalApproved, "reviewer", ""))

	waitFor(t, func() bool {
		got, ok := rig.store.workflowState(id)
		return ok && got.Terminal
	})
	got, _ := rig.store.workflowState(id)
	assert.Equal(t, domain.StepEnd, got.Current)
	assert.Equal(t, 1, rig.platform.launchCount())
}

func TestResumeWorkflowRefusesTerminal(t *testing.T) {
	rig := newTestRig(t, testConfig(false))
	ctx := context.Background()
	id := rig.createCampaign(t)

	st := domain.NewWorkflowState(id, domain.Brief{ProductName: "Widget"}, 2)
	st.Current = domain.StepFailed
	st.Terminal = true
	require.NoError(t, rig.store.SaveWorkflowState(ctx, st))

	assert.Error(t, rig.engine.ResumeWorkflow(ctx, id))
	// ResumeAll skips it silently
	require.NoError(t, rig.engine.ResumeAll(ctx))
	rig.engine.mu.Lock()
	_, running := rig.engine.running[id]
	rig.engine.mu.Unlock()
	assert.False(t, running)
}

// Cancelling a workflow parked on the approval poll releases it
// promptly; the persisted state stays at the poll step, non-terminal.
func TestCancelReleasesApprovalPoll(t *testing.T) {
	rig := newTestRig(t, testConfig(true))
	id := rig.createCampaign(t)

	require.NoError(t, rig.engine.StartWorkflow(id, domain.Brief{ProductName: "Widget"}))
	waitFor(t, func() bool {
		_, ok := rig.store.firstApproval(domain.ApprovalKindCreative)
		return ok
	})
	require.True(t, rig.engine.CancelWorkflow(id))

	waitFor(t, func() bool {
		rig.engine.mu.Lock()
		defer rig.engine.mu.Unlock()
		_, running := rig.engine.running[id]
		return !running
	})
	st, ok := rig.store.workflowState(id)
	require.True(t, ok)
	assert.False(t, st.Terminal)
	assert.Equal(t, domain.StepCheckApproval, st.Current)
}
