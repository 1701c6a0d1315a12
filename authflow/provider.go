// Package authflow sequences validation, calls to the authentication
// provider, and the user-facing state transitions for the registration,
// login and password-recovery flows.
package authflow

import (
	"context"
	"time"
)

// User is the provider's view of an authenticated account.
type User struct {
	ID               string
	Email            string
	Name             string
	Phone            string
	UserType         string
	EmailConfirmedAt *time.Time
}

// Confirmed reports whether the account's email address has been verified.
func (u *User) Confirmed() bool {
	return u != nil && u.EmailConfirmedAt != nil
}

// Profile is the public account record shown on the dashboard.
type Profile struct {
	ID    string
	Name  string
	Email string
	Phone string
	Role  string
}

// SignUpParams carries the sanitized payload for account creation.
type SignUpParams struct {
	Email    string
	Password string
	Name     string
	Phone    string
	UserType string
}

// Credentials carries login input.
type Credentials struct {
	Email    string
	Password string
}

// Provider is the external authentication/storage collaborator. Failures are
// reported as *Error values carrying a closed FailureKind so callers never
// re-parse backend text.
type Provider interface {
	SignUp(ctx context.Context, params SignUpParams) (*User, error)
	SignIn(ctx context.Context, creds Credentials) (*User, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (*User, error)
	IsAuthenticated(ctx context.Context) bool
	ResetPasswordForEmail(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, newPassword string) error
	SignInWithProvider(ctx context.Context, providerName string) (*User, error)
	ResendVerificationEmail(ctx context.Context, email string) error
	UserProfile(ctx context.Context, userID string) (*Profile, error)
}
