package authflow

import (
	"context"
	"strings"
	"sync"

	"domiva/validation"
)

// ResetRequestFlow drives the "forgot password" form: it asks the provider to
// email a recovery link.
type ResetRequestFlow struct {
	provider Provider

	mu     sync.Mutex
	email  string
	status Status
}

// NewResetRequestFlow creates an idle reset-request flow.
func NewResetRequestFlow(provider Provider) *ResetRequestFlow {
	return &ResetRequestFlow{provider: provider}
}

// Status returns the current UI-visible snapshot.
func (f *ResetRequestFlow) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// SetEmail updates the email field, clearing a previous error.
func (f *ResetRequestFlow) SetEmail(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status.State == StateSubmitting {
		return
	}
	f.email = email
	if f.status.Error != "" {
		f.status = Status{State: StateIdle}
	}
}

// Submit requests the recovery email. The field is cleared on success and the
// success banner stays displayed.
func (f *ResetRequestFlow) Submit(ctx context.Context) Status {
	f.mu.Lock()
	if f.status.State == StateSubmitting {
		defer f.mu.Unlock()
		return f.status
	}
	email := strings.TrimSpace(f.email)

	if email == "" {
		f.status = Status{State: StateIdle, Error: msgEmailRequired}
		defer f.mu.Unlock()
		return f.status
	}

	f.status = Status{State: StateSubmitting}
	f.mu.Unlock()

	err := f.provider.ResetPasswordForEmail(ctx, email)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.status = Status{State: StateFailed, Error: msgResetSendFailed, Kind: KindOf(err)}
		return f.status
	}

	f.email = ""
	f.status = Status{State: StateSuccess, Success: msgResetSent}
	return f.status
}

// ResetCompletionFlow drives the "set a new password" page reached from the
// recovery link. Without an active session the form is never enabled.
type ResetCompletionFlow struct {
	provider Provider

	mu           sync.Mutex
	sessionValid bool
	mounted      bool
	status       Status
}

// NewResetCompletionFlow creates a flow that still needs Mount.
func NewResetCompletionFlow(provider Provider) *ResetCompletionFlow {
	return &ResetCompletionFlow{provider: provider}
}

// Status returns the current UI-visible snapshot.
func (f *ResetCompletionFlow) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// SessionValid reports whether the recovery session check passed.
func (f *ResetCompletionFlow) SessionValid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessionValid
}

// Mount verifies that a recovery session exists. Without one the flow shows a
// fixed invalid-session error for its whole lifetime.
func (f *ResetCompletionFlow) Mount(ctx context.Context) Status {
	user, err := f.provider.CurrentUser(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.mounted = true
	if err != nil || user == nil {
		f.sessionValid = false
		f.status = Status{State: StateFailed, Error: msgInvalidSession}
		return f.status
	}

	f.sessionValid = true
	f.status = Status{State: StateIdle}
	return f.status
}

// Submit validates and applies the new password. It never reaches the
// provider when the session check failed.
func (f *ResetCompletionFlow) Submit(ctx context.Context, password, confirmPassword string) Status {
	f.mu.Lock()
	if !f.mounted || !f.sessionValid {
		f.status = Status{State: StateFailed, Error: msgInvalidSession}
		defer f.mu.Unlock()
		return f.status
	}
	if f.status.State == StateSubmitting {
		defer f.mu.Unlock()
		return f.status
	}

	if password == "" {
		f.status = Status{State: StateIdle, Error: msgNewPassRequired}
		defer f.mu.Unlock()
		return f.status
	}
	if check := validation.ValidatePassword(password); !check.Valid {
		f.status = Status{State: StateIdle, Error: check.Message}
		defer f.mu.Unlock()
		return f.status
	}
	if password != confirmPassword {
		f.status = Status{State: StateIdle, Error: msgPasswordsDiffer}
		defer f.mu.Unlock()
		return f.status
	}

	f.status = Status{State: StateSubmitting}
	f.mu.Unlock()

	err := f.provider.UpdatePassword(ctx, password)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.status = Status{State: StateFailed, Error: msgUpdateFailed, Kind: KindOf(err)}
		return f.status
	}

	f.status = Status{
		State:         StateSuccess,
		Success:       msgPasswordUpdated,
		Redirect:      dashboardPath,
		RedirectAfter: redirectDelay,
	}
	return f.status
}
