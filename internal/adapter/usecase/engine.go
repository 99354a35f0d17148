package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"adflow/internal/core/domain"
	"adflow/internal/core/port"
)

// Config carries the engine knobs, supplied at process start and
// immutable for the process lifetime.
type Config struct {
	Thresholds            domain.Thresholds
	MaxRetries            int
	StepTimeout           time.Duration
	RetryBackoff          time.Duration
	ApprovalPollInterval  time.Duration
	MonitorWindow         time.Duration
	MonitorInterval       time.Duration // delay before re-entering the monitor loop
	HumanApprovalRequired bool
}

func (c *Config) applyDefaults() {
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.StepTimeout <= 0 {
		c.StepTimeout = time.Minute
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = 5 * time.Second
	}
	if c.ApprovalPollInterval <= 0 {
		c.ApprovalPollInterval = 30 * time.Second
	}
	if c.MonitorWindow <= 0 {
		c.MonitorWindow = time.Hour
	}
	if c.MonitorInterval <= 0 {
		c.MonitorInterval = time.Hour
	}
	if c.Thresholds == (domain.Thresholds{}) {
		c.Thresholds = domain.DefaultThresholds()
	}
}

// Engine drives campaign workflow instances through the state machine.
// It is the single writer of WorkflowState: at most one instance runs
// per campaign at any time, and state is persisted after every applied
// step. Different campaigns run fully independently.
type Engine struct {
	store    port.Store
	content  port.ContentProducer
	image    port.ImageProducer
	platform port.AdPlatform
	metrics  port.MetricsSource
	cfg      Config
	logger   *slog.Logger
	machine  *machine

	baseCtx    context.Context
	baseCancel context.CancelFunc

	mu      sync.Mutex
	running map[uuid.UUID]context.CancelFunc
	wg      sync.WaitGroup
}

// NewEngine wires the engine and validates the state machine
// definition; an inconsistent transition table fails construction.
func NewEngine(store port.Store, content port.ContentProducer, image port.ImageProducer,
	platform port.AdPlatform, metrics port.MetricsSource, cfg Config, logger *slog.Logger) (*Engine, error) {

	cfg.applyDefaults()
	m, err := newMachine(cfg.HumanApprovalRequired)
	if err != nil {
		return nil, err
	}
	return &Engine{
		store:    store,
		content:  content,
		image:    image,
		platform: platform,
		metrics:  metrics,
		cfg:      cfg,
		logger:   logger,
		machine:  m,
		running:  make(map[uuid.UUID]context.CancelFunc),
	}, nil
}

// Start binds the engine to its lifetime context. Workflows started
// afterwards are children of it.
func (e *Engine) Start(ctx context.Context) {
	e.baseCtx, e.baseCancel = context.WithCancel(ctx)
}

// Stop cancels all running workflow instances and waits for them to
// wind down or for ctx to expire. State always reflects the last fully
// applied step, so stopping mid-workflow is safe.
func (e *Engine) Stop(ctx context.Context) error {
	if e.baseCancel != nil {
		e.baseCancel()
	}
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StartWorkflow begins a fresh workflow instance for a campaign,
// entered at GenerateContent. It returns ErrWorkflowRunning when an
// instance is already active for the campaign.
func (e *Engine) StartWorkflow(campaignID uuid.UUID, brief domain.Brief) error {
	st := domain.NewWorkflowState(campaignID, brief, e.cfg.MaxRetries)
	return e.launch(st)
}

// ResumeWorkflow picks up a persisted, non-terminal instance, e.g.
// after a process restart. Terminal instances are not resumed: a
// failed campaign needs explicit external re-entry via StartWorkflow.
func (e *Engine) ResumeWorkflow(ctx context.Context, campaignID uuid.UUID) error {
	st, err := e.store.GetWorkflowState(ctx, campaignID)
	if err != nil {
		return fmt.Errorf("load workflow state: %w", err)
	}
	if st == nil {
		return fmt.Errorf("no workflow state for campaign %s", campaignID)
	}
	if st.Terminal {
		return fmt.Errorf("workflow for campaign %s is terminal at %s", campaignID, st.Current)
	}
	return e.launch(st)
}

// ResumeAll restarts every persisted non-terminal workflow instance,
// called once after process start. Campaigns without an instance, or
// with a finished one, are left alone.
func (e *Engine) ResumeAll(ctx context.Context) error {
	campaigns, err := e.store.ListCampaigns(ctx)
	if err != nil {
		return fmt.Errorf("list campaigns: %w", err)
	}
	resumed := 0
	for _, c := range campaigns {
		st, err := e.store.GetWorkflowState(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("load workflow state for %s: %w", c.ID, err)
		}
		if st == nil || st.Terminal {
			continue
		}
		if err := e.launch(st); err != nil {
			return fmt.Errorf("resume workflow for %s: %w", c.ID, err)
		}
		resumed++
	}
	if resumed > 0 {
		e.logger.Info("workflows resumed", slog.Int("count", resumed))
	}
	return nil
}

// CancelWorkflow stops the instance for a campaign, releasing any
// pending approval poll. It reports whether an instance was running.
func (e *Engine) CancelWorkflow(campaignID uuid.UUID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	cancel, ok := e.running[campaignID]
	if ok {
		cancel()
	}
	return ok
}

func (e *Engine) launch(st *domain.WorkflowState) error {
	if e.baseCtx == nil {
		return errors.New("engine not started")
	}

	e.mu.Lock()
	if _, ok := e.running[st.CampaignID]; ok {
		e.mu.Unlock()
		return port.ErrWorkflowRunning
	}
	ctx, cancel := context.WithCancel(e.baseCtx)
	e.running[st.CampaignID] = cancel
	e.wg.Add(1)
	e.mu.Unlock()

	go func() {
		defer func() {
			e.mu.Lock()
			delete(e.running, st.CampaignID)
			e.mu.Unlock()
			cancel()
			e.wg.Done()
		}()
		e.run(ctx, st)
	}()
	return nil
}

// run executes the state machine until a terminal node or
// cancellation. One iteration = execute the current step, apply its
// result, persist, then route.
func (e *Engine) run(ctx context.Context, st *domain.WorkflowState) {
	log := e.logger.With(slog.String("campaign_id", st.CampaignID.String()))
	log.Info("workflow started", slog.String("step", string(st.Current)))

	if err := e.persist(ctx, st); err != nil {
		log.Error("persist initial workflow state", slog.Any("error", err))
		return
	}

	for !st.Terminal {
		if ctx.Err() != nil {
			log.Info("workflow cancelled", slog.String("step", string(st.Current)))
			return
		}

		prev := st.Current
		started := time.Now()
		stepCtx, cancel := context.WithTimeout(ctx, e.cfg.StepTimeout)
		res := e.executorFor(st.Current)(stepCtx, st)
		cancel()

		next := e.apply(st, res)
		e.logStep(ctx, st.CampaignID, prev, res.outcome, time.Since(started))

		if next == domain.StepFailed {
			st.LastError = res.outcome.Reason
			if err := e.store.UpdateCampaignStatus(ctx, st.CampaignID, domain.CampaignStatusFailed); err != nil {
				log.Error("mark campaign failed", slog.Any("error", err))
			}
			log.Error("workflow failed",
				slog.String("step", string(prev)),
				slog.String("reason", res.outcome.Reason),
				slog.Int("retries", st.RetryCount))
		}

		if next == domain.StepEnd && st.Approval == domain.WorkflowApprovalRejected {
			if err := e.store.UpdateCampaignStatus(ctx, st.CampaignID, domain.CampaignStatusRejected); err != nil {
				log.Error("mark campaign rejected", slog.Any("error", err))
			}
		}

		st.Current = next
		st.Terminal = next.Terminal()
		st.UpdatedAt = time.Now().UTC()
		if err := e.persist(ctx, st); err != nil {
			log.Error("persist workflow state", slog.Any("error", err))
			return
		}

		switch {
		case res.outcome.Kind == domain.OutcomeRetryable && next == prev:
			if !sleepCtx(ctx, e.cfg.RetryBackoff) {
				return
			}
		case next == domain.StepCheckApproval && prev == domain.StepCheckApproval:
			if !sleepCtx(ctx, e.cfg.ApprovalPollInterval) {
				return
			}
		case next == domain.StepMonitorPerformance && prev == domain.StepOptimizeCampaign:
			if !sleepCtx(ctx, e.cfg.MonitorInterval) {
				return
			}
		}
	}

	log.Info("workflow finished", slog.String("final_step", string(st.Current)))
}

// apply folds a step result into the state and resolves the successor.
// On success the returned payload replaces the old one atomically and
// the retry counter resets; retryable failures self-transition while
// the bound allows, then fail the workflow.
func (e *Engine) apply(st *domain.WorkflowState, res stepResult) domain.Step {
	switch res.outcome.Kind {
	case domain.OutcomeSuccess:
		st.Payload = res.payload
		if res.approval != "" {
			st.Approval = res.approval
		}
		st.RetryCount = 0
		st.LastError = ""
	case domain.OutcomeRetryable:
		if st.RetryCount >= st.MaxRetries {
			return domain.StepFailed
		}
		st.RetryCount++
		st.LastError = res.outcome.Reason
	case domain.OutcomeFatal:
		st.LastError = res.outcome.Reason
		return domain.StepFailed
	}

	next, err := e.machine.next(st, res.outcome)
	if err != nil {
		// Unreachable with a validated table; fail closed.
		st.LastError = err.Error()
		return domain.StepFailed
	}
	return next
}

// persist saves the workflow state, retrying with backoff while the
// store is unreachable. Persistence failures are always retryable at
// the engine level.
func (e *Engine) persist(ctx context.Context, st *domain.WorkflowState) error {
	var err error
	for attempt := 0; attempt <= e.cfg.MaxRetries; attempt++ {
		if err = e.store.SaveWorkflowState(ctx, st); err == nil {
			return nil
		}
		if !sleepCtx(ctx, e.cfg.RetryBackoff) {
			return err
		}
	}
	return err
}

func (e *Engine) logStep(ctx context.Context, campaignID uuid.UUID, step domain.Step, out domain.Outcome, took time.Duration) {
	status := "completed"
	if out.Kind != domain.OutcomeSuccess {
		status = "failed"
	}
	l := &domain.ExecutionLog{
		ID:         uuid.New(),
		CampaignID: &campaignID,
		Component:  "workflow_engine",
		Action:     string(step),
		Status:     status,
		Error:      out.Reason,
		DurationMS: took.Milliseconds(),
	}
	if err := e.store.AppendExecutionLog(ctx, l); err != nil {
		e.logger.Warn("append execution log", slog.Any("error", err))
	}
}

// sleepCtx waits d or until ctx is done, reporting whether the full
// wait elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
