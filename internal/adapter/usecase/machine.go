package usecase

import (
	"fmt"

	"adflow/internal/core/domain"
)

// conditionFn picks the successor of a conditional node from the state
// produced by its step.
type conditionFn func(*domain.WorkflowState) domain.Step

// transition defines the successor of a node for every possible step
// outcome. onRetryable is taken while retries remain; exhausting the
// bound or a fatal outcome routes to onFatal.
type transition struct {
	onSuccess   domain.Step
	successCond conditionFn // overrides onSuccess when set
	onRetryable domain.Step
	onFatal     domain.Step
}

// machine is the campaign state machine definition: an enumerated
// transition table validated at construction so a missing or dangling
// edge is a startup error, not a runtime surprise.
type machine struct {
	transitions map[domain.Step]transition
}

// newMachine builds the transition table. With human approval disabled
// the approval nodes are bypassed entirely and visuals route straight
// to launch.
func newMachine(approvalRequired bool) (*machine, error) {
	afterVisuals := domain.StepRequestApproval
	if !approvalRequired {
		afterVisuals = domain.StepLaunchCampaign
	}

	m := &machine{transitions: map[domain.Step]transition{
		domain.StepGenerateContent: {
			onSuccess:   domain.StepCreateVisuals,
			onRetryable: domain.StepGenerateContent,
			onFatal:     domain.StepFailed,
		},
		// A failed image degrades to "no image" inside the executor,
		// so retryable here only covers persistence of the creative.
		domain.StepCreateVisuals: {
			onSuccess:   afterVisuals,
			onRetryable: domain.StepCreateVisuals,
			onFatal:     domain.StepFailed,
		},
		domain.StepRequestApproval: {
			onSuccess:   domain.StepCheckApproval,
			onRetryable: domain.StepRequestApproval,
			onFatal:     domain.StepFailed,
		},
		domain.StepCheckApproval: {
			successCond: approvalCondition,
			onRetryable: domain.StepCheckApproval,
			onFatal:     domain.StepFailed,
		},
		domain.StepLaunchCampaign: {
			onSuccess:   domain.StepMonitorPerformance,
			onRetryable: domain.StepLaunchCampaign,
			onFatal:     domain.StepFailed,
		},
		domain.StepMonitorPerformance: {
			onSuccess:   domain.StepCheckBudgets,
			onRetryable: domain.StepMonitorPerformance,
			onFatal:     domain.StepFailed,
		},
		domain.StepCheckBudgets: {
			onSuccess:   domain.StepOptimizeCampaign,
			onRetryable: domain.StepCheckBudgets,
			onFatal:     domain.StepFailed,
		},
		domain.StepOptimizeCampaign: {
			successCond: optimizationCondition,
			onRetryable: domain.StepOptimizeCampaign,
			onFatal:     domain.StepFailed,
		},
	}}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// validate checks that every non-terminal node has a defined successor
// for every outcome and that all edges land on a defined node or a
// terminal.
func (m *machine) validate() error {
	defined := func(s domain.Step) bool {
		if s.Terminal() {
			return true
		}
		_, ok := m.transitions[s]
		return ok
	}
	for step, tr := range m.transitions {
		if tr.onSuccess == "" && tr.successCond == nil {
			return fmt.Errorf("state machine: %s has no success edge", step)
		}
		if tr.onSuccess != "" && !defined(tr.onSuccess) {
			return fmt.Errorf("state machine: %s success edge targets undefined node %s", step, tr.onSuccess)
		}
		if tr.onRetryable == "" || !defined(tr.onRetryable) {
			return fmt.Errorf("state machine: %s has invalid retry edge %q", step, tr.onRetryable)
		}
		if tr.onFatal != domain.StepFailed {
			return fmt.Errorf("state machine: %s must fail to %s, has %q", step, domain.StepFailed, tr.onFatal)
		}
	}
	return nil
}

// next resolves the successor for a step outcome. Retry exhaustion is
// decided by the engine, which calls this only while retries remain.
func (m *machine) next(st *domain.WorkflowState, out domain.Outcome) (domain.Step, error) {
	tr, ok := m.transitions[st.Current]
	if !ok {
		return "", fmt.Errorf("state machine: no transition for %s", st.Current)
	}
	switch out.Kind {
	case domain.OutcomeSuccess:
		if tr.successCond != nil {
			return tr.successCond(st), nil
		}
		return tr.onSuccess, nil
	case domain.OutcomeRetryable:
		return tr.onRetryable, nil
	default:
		return tr.onFatal, nil
	}
}

// approvalCondition routes on the polled approval resolution.
func approvalCondition(st *domain.WorkflowState) domain.Step {
	switch st.Approval {
	case domain.WorkflowApprovalApproved:
		return domain.StepLaunchCampaign
	case domain.WorkflowApprovalRejected:
		return domain.StepEnd
	default:
		return domain.StepCheckApproval
	}
}

// optimizationCondition keeps the monitor-optimize loop running while
// the combined status is at least yellow/warning.
func optimizationCondition(st *domain.WorkflowState) domain.Step {
	if workflowStatus(st).NeedsAttention() {
		return domain.StepMonitorPerformance
	}
	return domain.StepEnd
}

// workflowStatus derives the combined classification from the payload.
// Unproduced dimensions count as healthy.
func workflowStatus(st *domain.WorkflowState) domain.Status {
	s := domain.Status{Color: domain.StatusGreen, BudgetAlert: domain.AlertNone}
	if st.Payload.Performance != nil {
		s.Color = st.Payload.Performance.Status
	}
	if st.Payload.Budget != nil {
		s.BudgetAlert = st.Payload.Budget.Alert
	}
	return s
}
