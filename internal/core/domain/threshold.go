package domain

// StatusColor classifies campaign performance against the configured
// thresholds.
type StatusColor string

const (
	StatusGreen  StatusColor = "green"
	StatusYellow StatusColor = "yellow"
	StatusRed    StatusColor = "red"
)

// Rank orders colors by severity for routing decisions.
func (c StatusColor) Rank() int {
	switch c {
	case StatusYellow:
		return 1
	case StatusRed:
		return 2
	default:
		return 0
	}
}

// AlertLevel classifies budget utilization severity.
type AlertLevel string

const (
	AlertNone      AlertLevel = "none"
	AlertWarning   AlertLevel = "warning"
	AlertCritical  AlertLevel = "critical"
	AlertEmergency AlertLevel = "emergency"
)

// Rank orders alert levels by severity.
func (l AlertLevel) Rank() int {
	switch l {
	case AlertWarning:
		return 1
	case AlertCritical:
		return 2
	case AlertEmergency:
		return 3
	default:
		return 0
	}
}

// Thresholds is the fixed classification configuration, supplied at
// process start and immutable for the process lifetime.
type Thresholds struct {
	CTRFloor   float64 // minimum acceptable click-through rate
	CPCCeiling int64   // maximum acceptable cost per click, cents
	ROASFloor  float64 // minimum acceptable return on ad spend
	DailyCap   int64   // global daily spend ceiling across any single campaign, cents

	WarningUtilization   float64
	CriticalUtilization  float64
	EmergencyUtilization float64
}

// DefaultThresholds mirrors the production defaults: CTR 2%, CPC $2.00,
// ROAS 3.0, daily cap $1000, utilization bands 80/90/95%.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CTRFloor:             0.02,
		CPCCeiling:           200,
		ROASFloor:            3.0,
		DailyCap:             100_000,
		WarningUtilization:   0.80,
		CriticalUtilization:  0.90,
		EmergencyUtilization: 0.95,
	}
}

// BudgetFigures carries the spend inputs for one budget evaluation.
type BudgetFigures struct {
	DailyBudget int64
	DailySpend  int64
	TotalBudget int64 // 0 means no total cap
	TotalSpend  int64
}

// BudgetStatus is the derived budget classification. It is recomputed
// on every check and never cached beyond one evaluation cycle.
type BudgetStatus struct {
	CampaignID       string     `json:"campaign_id,omitempty"`
	DailyBudget      int64      `json:"daily_budget"`
	DailySpend       int64      `json:"daily_spend"`
	DailyUtilization float64    `json:"daily_utilization"`
	TotalBudget      int64      `json:"total_budget"`
	TotalSpend       int64      `json:"total_spend"`
	TotalUtilization float64    `json:"total_utilization"`
	RemainingDaily   int64      `json:"remaining_daily"`
	RemainingTotal   int64      `json:"remaining_total"`
	Alert            AlertLevel `json:"alert"`
	ActionRequired   bool       `json:"action_required"`
}

// Status is the combined performance/budget classification that drives
// optimization routing.
type Status struct {
	Color       StatusColor
	BudgetAlert AlertLevel
}

// NeedsAttention reports whether the combined severity is at least
// yellow/warning, i.e. the monitor-optimize loop must continue.
func (s Status) NeedsAttention() bool {
	return s.Color.Rank() >= StatusYellow.Rank() || s.BudgetAlert.Rank() >= AlertWarning.Rank()
}

// ClassifyPerformance maps a metrics snapshot to a status color. Red
// when any hard threshold is breached, yellow when CTR or CPC drifts
// into the margin band, green otherwise. Snapshots with no traffic are
// green; there is nothing to judge yet.
func ClassifyPerformance(m MetricsSnapshot, t Thresholds) StatusColor {
	if m.Impressions == 0 && m.Spend == 0 {
		return StatusGreen
	}
	if m.CTR < t.CTRFloor || m.CPC > t.CPCCeiling || m.ROAS < t.ROASFloor {
		return StatusRed
	}
	if m.CTR < t.CTRFloor*1.5 || float64(m.CPC) > float64(t.CPCCeiling)*0.8 {
		return StatusYellow
	}
	return StatusGreen
}

// EvaluateBudget derives the budget status for one campaign. A zero
// daily budget defines daily utilization as 0, so that dimension never
// alerts on its own. Spend above the global daily cap forces emergency
// regardless of utilization. A critical total-budget alert coexists
// with, and never overrides, an already-computed emergency.
func EvaluateBudget(fig BudgetFigures, t Thresholds) BudgetStatus {
	st := BudgetStatus{
		DailyBudget: fig.DailyBudget,
		DailySpend:  fig.DailySpend,
		TotalBudget: fig.TotalBudget,
		TotalSpend:  fig.TotalSpend,
		Alert:       AlertNone,
	}

	if fig.DailyBudget > 0 {
		st.DailyUtilization = float64(fig.DailySpend) / float64(fig.DailyBudget)
	}
	if fig.TotalBudget > 0 {
		st.TotalUtilization = float64(fig.TotalSpend) / float64(fig.TotalBudget)
	}
	st.RemainingDaily = max(0, fig.DailyBudget-fig.DailySpend)
	if fig.TotalBudget > 0 {
		st.RemainingTotal = max(0, fig.TotalBudget-fig.TotalSpend)
	}

	switch {
	case st.DailyUtilization >= t.EmergencyUtilization:
		st.Alert = AlertEmergency
	case st.DailyUtilization >= t.CriticalUtilization:
		st.Alert = AlertCritical
	case st.DailyUtilization >= t.WarningUtilization:
		st.Alert = AlertWarning
	}

	if fig.TotalBudget > 0 {
		switch {
		case st.TotalUtilization >= t.EmergencyUtilization:
			st.Alert = AlertEmergency
		case st.TotalUtilization >= t.CriticalUtilization:
			if st.Alert != AlertEmergency {
				st.Alert = AlertCritical
			}
		case st.TotalUtilization >= t.WarningUtilization:
			if st.Alert == AlertNone {
				st.Alert = AlertWarning
			}
		}
	}

	if t.DailyCap > 0 && fig.DailySpend > t.DailyCap {
		st.Alert = AlertEmergency
	}

	st.ActionRequired = st.Alert.Rank() >= AlertCritical.Rank()
	return st
}

// Classify combines the performance and budget dimensions into the
// Status that drives workflow routing. Pure and total for any
// well-formed input.
func Classify(m MetricsSnapshot, fig BudgetFigures, t Thresholds) Status {
	return Status{
		Color:       ClassifyPerformance(m, t),
		BudgetAlert: EvaluateBudget(fig, t).Alert,
	}
}
