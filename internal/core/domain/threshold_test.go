package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func snapshot(ctr float64, cpc int64, roas float64) MetricsSnapshot {
	return MetricsSnapshot{Impressions: 10000, Clicks: 300, Spend: 30000, CTR: ctr, CPC: cpc, ROAS: roas}
}

func TestClassifyPerformance(t *testing.T) {
	th := DefaultThresholds()

	cases := []struct {
		name string
		m    MetricsSnapshot
		want StatusColor
	}{
		{"healthy", snapshot(0.035, 100, 4.0), StatusGreen},
		{"no traffic yet", MetricsSnapshot{}, StatusGreen},
		{"ctr below floor", snapshot(0.01, 100, 4.0), StatusRed},
		{"cpc above ceiling", snapshot(0.035, 250, 4.0), StatusRed},
		{"roas below floor", snapshot(0.035, 100, 2.0), StatusRed},
		{"ctr in margin band", snapshot(0.025, 100, 4.0), StatusYellow},
		{"cpc in margin band", snapshot(0.035, 170, 4.0), StatusYellow},
		{"exactly at floors", snapshot(0.03, 160, 3.0), StatusGreen},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyPerformance(tc.m, th))
		})
	}
}

func TestEvaluateBudgetBands(t *testing.T) {
	th := DefaultThresholds()

	cases := []struct {
		name           string
		fig            BudgetFigures
		wantAlert      AlertLevel
		wantActionable bool
	}{
		{"low utilization", BudgetFigures{DailyBudget: 10000, DailySpend: 5000}, AlertNone, false},
		{"warning band", BudgetFigures{DailyBudget: 10000, DailySpend: 8500}, AlertWarning, false},
		{"critical band", BudgetFigures{DailyBudget: 10000, DailySpend: 9200}, AlertCritical, true},
		{"emergency band", BudgetFigures{DailyBudget: 10000, DailySpend: 9600}, AlertEmergency, true},
		{"total budget critical", BudgetFigures{DailyBudget: 10000, DailySpend: 1000, TotalBudget: 100000, TotalSpend: 92000}, AlertCritical, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := EvaluateBudget(tc.fig, th)
			assert.Equal(t, tc.wantAlert, st.Alert)
			assert.Equal(t, tc.wantActionable, st.ActionRequired)
		})
	}
}

// A campaign with no daily budget defines utilization as zero, so it
// can never alert on the daily dimension alone.
func TestEvaluateBudgetZeroDailyBudget(t *testing.T) {
	st := EvaluateBudget(BudgetFigures{DailyBudget: 0, DailySpend: 5000}, DefaultThresholds())
	assert.Equal(t, 0.0, st.DailyUtilization)
	assert.Equal(t, AlertNone, st.Alert)
	assert.False(t, st.ActionRequired)
}

// Spend above the global daily cap forces emergency even when the
// campaign's own budget is barely utilized.
func TestEvaluateBudgetDailyCapOverride(t *testing.T) {
	th := DefaultThresholds() // cap 100000
	st := EvaluateBudget(BudgetFigures{DailyBudget: 1000000, DailySpend: 150000}, th)
	assert.Less(t, st.DailyUtilization, th.WarningUtilization)
	assert.Equal(t, AlertEmergency, st.Alert)
}

// A critical total-budget band must not downgrade an emergency already
// raised by the daily dimension.
func TestEvaluateBudgetEmergencyNotDowngraded(t *testing.T) {
	st := EvaluateBudget(BudgetFigures{
		DailyBudget: 10000, DailySpend: 9700,
		TotalBudget: 100000, TotalSpend: 91000,
	}, DefaultThresholds())
	assert.Equal(t, AlertEmergency, st.Alert)
}

// Increasing spend never lowers the alert level.
func TestEvaluateBudgetMonotonic(t *testing.T) {
	th := DefaultThresholds()
	prev := 0
	for spend := int64(0); spend <= 10000; spend += 100 {
		st := EvaluateBudget(BudgetFigures{DailyBudget: 10000, DailySpend: spend}, th)
		if st.Alert.Rank() < prev {
			t.Fatalf("alert rank dropped from %d to %d at spend %d", prev, st.Alert.Rank(), spend)
		}
		prev = st.Alert.Rank()
	}
}

func TestStatusNeedsAttention(t *testing.T) {
	assert.False(t, Status{Color: StatusGreen, BudgetAlert: AlertNone}.NeedsAttention())
	assert.True(t, Status{Color: StatusYellow, BudgetAlert: AlertNone}.NeedsAttention())
	assert.True(t, Status{Color: StatusRed, BudgetAlert: AlertNone}.NeedsAttention())
	assert.True(t, Status{Color: StatusGreen, BudgetAlert: AlertWarning}.NeedsAttention())
	assert.True(t, Status{Color: StatusRed, BudgetAlert: AlertEmergency}.NeedsAttention())
}
