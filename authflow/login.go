package authflow

import (
	"context"
	"sync"

	"domiva/validation"
)

// LoginFlow drives one login form instance. The server re-validates
// credentials, so only syntactic checks run client-side.
type LoginFlow struct {
	provider Provider

	mu             sync.Mutex
	form           validation.LoginForm
	status         Status
	submittedEmail string
	resendCount    int
}

// NewLoginFlow creates an idle login flow.
func NewLoginFlow(provider Provider) *LoginFlow {
	return &LoginFlow{provider: provider}
}

// Status returns the current UI-visible snapshot.
func (f *LoginFlow) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// SetForm replaces the credentials. Editing after a failure returns the flow
// to idle and withdraws the resend-verification action.
func (f *LoginFlow) SetForm(form validation.LoginForm) {
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

// Submit signs the user in and schedules the dashboard redirect on success.
// An unconfirmed-email failure exposes the resend-verification action.
func (f *LoginFlow) Submit(ctx context.Context) Status {
	f.mu.Lock()
	if f.status.State == StateSubmitting {
		defer f.mu.Unlock()
		return f.status
	}
	form := f.form

	if result := validation.ValidateLoginForm(form); !result.IsValid {
		_, first := result.First()
		f.status = Status{State: StateIdle, Error: first}
		defer f.mu.Unlock()
		return f.status
	}

	f.status = Status{State: StateSubmitting}
	f.mu.Unlock()

	_, err := f.provider.SignIn(ctx, Credentials{Email: form.Email, Password: form.Password})

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		kind := KindOf(err)
		f.status = Status{
			State:                 StateFailed,
			Error:                 UserMessage(kind),
			Kind:                  kind,
			CanResendVerification: kind == KindUnconfirmedEmail,
		}
		f.submittedEmail = form.Email
		return f.status
	}

	f.status = Status{
		State:         StateSuccess,
		Success:       msgLoginSuccess,
		Redirect:      dashboardPath,
		RedirectAfter: redirectDelay,
	}
	return f.status
}

// ResendVerification re-sends the confirmation email for the address that
// just failed login as unconfirmed. It is a no-op unless that action is
// currently exposed.
func (f *LoginFlow) ResendVerification(ctx context.Context) Status {
	f.mu.Lock()
	if !f.status.CanResendVerification {
		defer f.mu.Unlock()
		return f.status
	}
	email := f.submittedEmail
	f.resendCount++
	f.mu.Unlock()

	err := f.provider.ResendVerificationEmail(ctx, email)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		kind := KindOf(err)
		f.status.Error = UserMessage(kind)
		f.status.Success = ""
		return f.status
	}

	f.status.Error = ""
	f.status.Success = msgVerificationSent
	return f.status
}

// SocialSignIn starts an OAuth sign-in with the named provider and schedules
// the dashboard redirect on success.
func (f *LoginFlow) SocialSignIn(ctx context.Context, providerName string) Status {
	f.mu.Lock()
	if f.status.State == StateSubmitting {
		defer f.mu.Unlock()
		return f.status
	}
	f.status = Status{State: StateSubmitting}
	f.mu.Unlock()

	_, err := f.provider.SignInWithProvider(ctx, providerName)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		kind := KindOf(err)
		f.status = Status{State: StateFailed, Error: UserMessage(kind), Kind: kind}
		return f.status
	}

	f.status = Status{
		State:         StateSuccess,
		Success:       msgLoginSuccess,
		Redirect:      dashboardPath,
		RedirectAfter: redirectDelay,
	}
	return f.status
}
