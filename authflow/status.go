package authflow

import "time"

// State is the lifecycle position of a flow instance.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status is the UI-visible snapshot of a flow. Error and Success are mutually
// exclusive; at most one is non-empty.
type Status struct {
	State   State
	Error   string
	Success string

	// Kind is set when State is StateFailed because of a provider error.
	Kind FailureKind

	// CanResendVerification is raised when login failed on an unconfirmed
	// account, enabling the resend-verification action.
	CanResendVerification bool

	// Redirect and RedirectAfter are set when success schedules navigation.
	Redirect      string
	RedirectAfter time.Duration
}

// redirectDelay is how long success banners stay visible before navigation.
const redirectDelay = 2 * time.Second

const dashboardPath = "/dashboard"
