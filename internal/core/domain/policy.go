package domain

// ActionKind names a remedial action requested by the policy engine.
type ActionKind string

const (
	ActionPauseCampaign   ActionKind = "pause_campaign"
	ActionReduceSpendRate ActionKind = "reduce_spend_rate"
	ActionRequestApproval ActionKind = "request_approval"
	ActionNotify          ActionKind = "notify"
)

// Action is a requested side effect. The policy engine only decides;
// the workflow engine dispatches actions to the step executors, which
// keeps policy decisions testable apart from their execution.
type Action struct {
	Kind           ActionKind
	Reason         string
	ApprovalKind   ApprovalKind // set for ActionRequestApproval
	SpendReduction float64      // set for ActionReduceSpendRate, fraction of current rate
}

// spendReductionStep is the fixed bid/spend-rate cut applied on a
// critical budget alert.
const spendReductionStep = 0.20

// Decide maps a combined status to the remedial actions for its budget
// alert level. Warning only notifies; the campaign continues
// unmodified. All returned actions are idempotent when dispatched.
func Decide(s Status) []Action {
	switch s.BudgetAlert {
	case AlertEmergency:
		return []Action{
			{Kind: ActionPauseCampaign, Reason: "emergency budget threshold reached"},
			{Kind: ActionRequestApproval, Reason: "campaign paused due to budget emergency", ApprovalKind: ApprovalKindEmergency},
		}
	case AlertCritical:
		return []Action{
			{Kind: ActionReduceSpendRate, Reason: "critical budget threshold reached", SpendReduction: spendReductionStep},
			{Kind: ActionRequestApproval, Reason: "critical budget utilization", ApprovalKind: ApprovalKindBudget},
		}
	case AlertWarning:
		return []Action{
			{Kind: ActionNotify, Reason: "warning budget threshold reached"},
		}
	default:
		return nil
	}
}

// BudgetRecommendation is the suggested daily-budget increase attached
// to budget approval requests.
type BudgetRecommendation struct {
	CurrentDaily     int64   `json:"current_daily_budget"`
	RecommendedDaily int64   `json:"recommended_daily_budget"`
	IncreasePct      float64 `json:"increase_percentage"`
}

// RecommendBudgetIncrease tiers the suggested increase by utilization:
// above 95% utilization +50%, above 90% +30%, otherwise +20%, applied
// multiplicatively to the current daily budget.
func RecommendBudgetIncrease(utilization float64, currentDaily int64) BudgetRecommendation {
	var pct float64
	switch {
	case utilization > 0.95:
		pct = 0.50
	case utilization > 0.90:
		pct = 0.30
	default:
		pct = 0.20
	}
	return BudgetRecommendation{
		CurrentDaily:     currentDaily,
		RecommendedDaily: int64(float64(currentDaily) * (1 + pct)),
		IncreasePct:      pct,
	}
}
