package authflow

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"domiva/ratelimit"
	"domiva/validation"
)

// Registration throttle defaults, mirroring the site-wide policy of five
// sign-up attempts per hour per client.
const (
	registrationAction      = "registration"
	registrationRateLimit   = 5
	registrationRateWindow  = time.Hour
	msgAccountReady         = "Conta criada com sucesso! Já pode fazer login."
	verificationPendingCopy = "Conta criada! Enviámos um email de confirmação para %s. Verifique a sua caixa de entrada."
)

// RegistrationFlow drives one registration form instance from input to
// provider sign-up. At most one submission is in flight at a time.
type RegistrationFlow struct {
	provider Provider
	limiter  *ratelimit.Limiter
	scope    string

	mu     sync.Mutex
	form   validation.RegistrationForm
	status Status
}

// NewRegistrationFlow creates an idle registration flow.
func NewRegistrationFlow(provider Provider, limiter *ratelimit.Limiter) *RegistrationFlow {
	return &RegistrationFlow{provider: provider, limiter: limiter}
}

// WithScope narrows the throttle key to one client, for servers that share a
// limiter store across callers. Without a scope the budget is per store.
func (f *RegistrationFlow) WithScope(scope string) *RegistrationFlow {
	f.scope = scope
	return f
}

func (f *RegistrationFlow) throttleAction() string {
	if f.scope == "" {
		return registrationAction
	}
	return registrationAction + ":" + f.scope
}

// Status returns the current UI-visible snapshot.
func (f *RegistrationFlow) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Form returns the current field values.
func (f *RegistrationFlow) Form() validation.RegistrationForm {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form
}

// SetForm replaces the form fields. Editing after a failure returns the flow
// to idle and clears the previous error.
func (f *RegistrationFlow) SetForm(form validation.RegistrationForm) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status.State == StateSubmitting {
		return
	}
	f.form = form
	if f.status.State == StateFailed || f.status.Error != "" {
		f.status = Status{State: StateIdle}
	}
}

// Submit runs the full registration sequence: client throttle, suspicious
// input screen, field validation, then the provider call with a sanitized
// payload. It returns the resulting status.
func (f *RegistrationFlow) Submit(ctx context.Context) Status {
	f.mu.Lock()
	if f.status.State == StateSubmitting {
		defer f.mu.Unlock()
		return f.status
	}
	form := f.form

	if !f.limiter.Allow(ctx, f.throttleAction(), registrationRateLimit, registrationRateWindow) {
		f.status = Status{State: StateIdle, Error: msgClientThrottled}
		defer f.mu.Unlock()
		return f.status
	}

	for _, raw := range []string{form.Name, form.Email, form.Phone} {
		if validation.DetectSuspiciousActivity(raw) {
			f.status = Status{State: StateIdle, Error: msgSuspiciousInput}
			defer f.mu.Unlock()
			return f.status
		}
	}

	if result := validation.ValidateRegistrationForm(form); !result.IsValid {
		_, first := result.First()
		f.status = Status{State: StateIdle, Error: first}
		defer f.mu.Unlock()
		return f.status
	}

	f.status = Status{State: StateSubmitting}
	f.mu.Unlock()

	params := SignUpParams{
		Email:    strings.ToLower(validation.SanitizeString(form.Email)),
		Password: form.Password,
		Name:     validation.SanitizeString(form.Name),
		Phone:    validation.SanitizeString(form.Phone),
		UserType: form.UserType,
	}

	user, err := f.provider.SignUp(ctx, params)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		kind := KindOf(err)
		f.status = Status{State: StateFailed, Error: UserMessage(kind), Kind: kind}
		return f.status
	}

	success := msgAccountReady
	if !user.Confirmed() {
		success = fmt.Sprintf(verificationPendingCopy, params.Email)
	}
	f.form = validation.RegistrationForm{}
	f.status = Status{State: StateSuccess, Success: success}
	return f.status
}
