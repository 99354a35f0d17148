package configs

import "time"

// Engine configures the campaign workflow engine, the performance
// tracker and the classification thresholds. Money values are integer
// cents. Utilization bands are fractions of budget spent; crossing a
// band raises the corresponding alert level.
type Engine struct {
	// CTRFloor is the minimum acceptable click-through rate.
	CTRFloor float64 `env:"CTR_FLOOR" envDefault:"0.02"`
	// CPCCeiling is the maximum acceptable cost per click, in cents.
	CPCCeiling int64 `env:"CPC_CEILING" envDefault:"200"`
	// ROASFloor is the minimum acceptable return on ad spend.
	ROASFloor float64 `env:"ROAS_FLOOR" envDefault:"3.0"`
	// DailyCap is the hard daily spend ceiling per campaign, in cents.
	DailyCap int64 `env:"DAILY_CAP" envDefault:"100000"`

	WarningUtilization   float64 `env:"WARNING_UTILIZATION" envDefault:"0.80"`
	CriticalUtilization  float64 `env:"CRITICAL_UTILIZATION" envDefault:"0.90"`
	EmergencyUtilization float64 `env:"EMERGENCY_UTILIZATION" envDefault:"0.95"`

	// MaxRetries bounds retryable step failures before a workflow is
	// declared failed.
	MaxRetries int `env:"MAX_RETRIES" envDefault:"3"`
	// StepTimeout bounds a single step execution.
	StepTimeout time.Duration `env:"STEP_TIMEOUT" envDefault:"1m"`
	// RetryBackoff is the delay between retries of the same step.
	RetryBackoff time.Duration `env:"RETRY_BACKOFF" envDefault:"5s"`
	// ApprovalPollInterval is the delay between approval status checks
	// while a workflow waits on a human decision.
	ApprovalPollInterval time.Duration `env:"APPROVAL_POLL_INTERVAL" envDefault:"30s"`
	// MonitorWindow is the lookback window for performance summaries.
	MonitorWindow time.Duration `env:"MONITOR_WINDOW" envDefault:"1h"`
	// MonitorInterval is the delay before a workflow re-enters its
	// monitoring loop after an optimization pass.
	MonitorInterval time.Duration `env:"MONITOR_INTERVAL" envDefault:"1h"`
	// TrackingInterval is the period of the background performance
	// tracker covering all active campaigns.
	TrackingInterval time.Duration `env:"TRACKING_INTERVAL" envDefault:"60m"`
	// HumanApprovalRequired gates campaign launch on an explicit human
	// decision. When false the approval steps are bypassed.
	HumanApprovalRequired bool `env:"HUMAN_APPROVAL_REQUIRED" envDefault:"true"`
}
