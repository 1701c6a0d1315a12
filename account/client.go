package account

import (
	"context"
	"errors"
	"sync"

	"domiva/authflow"
	"domiva/profile"
)

// Client implements authflow.Provider over the account service. One Client
// corresponds to one browser session: it carries the current session token
// and translates sentinel errors into closed failure kinds exactly once, at
// this boundary.
type Client struct {
	svc      *Service
	profiles *profile.Service

	// oauth, when set, performs social sign-in with the named provider.
	oauth func(ctx context.Context, providerName string) (*authflow.User, error)

	mu    sync.Mutex
	token string
	user  *User
}

// NewClient creates an unauthenticated client.
func NewClient(svc *Service, profiles *profile.Service) *Client {
	return &Client{svc: svc, profiles: profiles}
}

// WithOAuth installs a social sign-in hook.
func (c *Client) WithOAuth(hook func(ctx context.Context, providerName string) (*authflow.User, error)) *Client {
	c.oauth = hook
	return c
}

// SignUp registers a new account.
func (c *Client) SignUp(ctx context.Context, params authflow.SignUpParams) (*authflow.User, error) {
	if !c.svc.Configured() {
		return nil, authflow.NewError(authflow.KindMisconfigured, "account service not configured")
	}

	user, err := c.svc.Register(ctx, RegisterParams{
		Email:    params.Email,
		Password: params.Password,
		Name:     params.Name,
		Phone:    params.Phone,
		UserType: UserType(params.UserType),
	})
	if err != nil {
		return nil, classify(err)
	}
	return toFlowUser(user), nil
}

// SignIn authenticates and stores the session token on the client.
func (c *Client) SignIn(ctx context.Context, creds authflow.Credentials) (*authflow.User, error) {
	if !c.svc.Configured() {
		return nil, authflow.NewError(authflow.KindMisconfigured, "account service not configured")
	}

	user, token, err := c.svc.Authenticate(ctx, creds.Email, creds.Password)
	if err != nil {
		return nil, classify(err)
	}

	c.mu.Lock()
	c.token = token
	c.user = user
	c.mu.Unlock()

	return toFlowUser(user), nil
}

// SignOut drops the current session.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	c.token = ""
	c.user = nil
	c.mu.Unlock()
	return nil
}

// CurrentUser returns the signed-in user, or nil without error when there is
// no session.
func (c *Client) CurrentUser(ctx context.Context) (*authflow.User, error) {
	c.mu.Lock()
	user := c.user
	c.mu.Unlock()

	if user == nil {
		return nil, nil
	}
	return toFlowUser(user), nil
}

// IsAuthenticated reports whether a session is active.
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user != nil && c.token != ""
}

// SessionToken returns the current session token, empty when signed out.
func (c *Client) SessionToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// ResumeSession restores the session from a bearer token, as happens when a
// browser replays its stored token.
func (c *Client) ResumeSession(ctx context.Context, token string) error {
	userID, err := c.svc.VerifySessionToken(token)
	if err != nil {
		return classify(err)
	}
	user, err := c.svc.UserByID(ctx, userID)
	if err != nil {
		return classify(err)
	}

	c.mu.Lock()
	c.token = token
	c.user = user
	c.mu.Unlock()
	return nil
}

// ResumeRecovery establishes the short-lived session granted by a password
// recovery link.
func (c *Client) ResumeRecovery(ctx context.Context, token string) error {
	userID, err := c.svc.VerifyRecoveryToken(token)
	if err != nil {
		return classify(err)
	}
	user, err := c.svc.UserByID(ctx, userID)
	if err != nil {
		return classify(err)
	}

	c.mu.Lock()
	c.token = token
	c.user = user
	c.mu.Unlock()
	return nil
}

// ResetPasswordForEmail requests a recovery email.
func (c *Client) ResetPasswordForEmail(ctx context.Context, email string) error {
	if !c.svc.Configured() {
		return authflow.NewError(authflow.KindMisconfigured, "account service not configured")
	}
	if err := c.svc.StartPasswordReset(ctx, email); err != nil {
		return classify(err)
	}
	return nil
}

// UpdatePassword changes the password for the current session's user.
func (c *Client) UpdatePassword(ctx context.Context, newPassword string) error {
	c.mu.Lock()
	user := c.user
	c.mu.Unlock()

	if user == nil {
		return authflow.NewError(authflow.KindUnknown, "no active session")
	}
	if err := c.svc.UpdatePassword(ctx, user.ID, newPassword); err != nil {
		return classify(err)
	}
	return nil
}

// SignInWithProvider performs social sign-in when a hook is installed.
func (c *Client) SignInWithProvider(ctx context.Context, providerName string) (*authflow.User, error) {
	if c.oauth == nil {
		return nil, authflow.NewError(authflow.KindMisconfigured, "oauth provider not configured")
	}
	user, err := c.oauth(ctx, providerName)
	if err != nil {
		return nil, classify(err)
	}
	return user, nil
}

// ResendVerificationEmail re-sends the confirmation email.
func (c *Client) ResendVerificationEmail(ctx context.Context, email string) error {
	if err := c.svc.ResendVerification(ctx, email); err != nil {
		return classify(err)
	}
	return nil
}

// UserProfile fetches the dashboard profile. A missing profile is reported
// with authflow.ErrProfileNotFound so callers can create one.
func (c *Client) UserProfile(ctx context.Context, userID string) (*authflow.Profile, error) {
	p, err := c.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, authflow.ErrProfileNotFound
		}
		return nil, classify(err)
	}
	return toFlowProfile(p), nil
}

// EnsureProfile fetches the dashboard profile, creating it from account
// metadata when missing.
func (c *Client) EnsureProfile(ctx context.Context) (*authflow.Profile, error) {
	c.mu.Lock()
	user := c.user
	c.mu.Unlock()

	if user == nil {
		return nil, authflow.NewError(authflow.KindUnknown, "no active session")
	}

	p, err := c.profiles.Ensure(ctx, profile.Seed{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Phone:  user.Phone,
		Role:   string(user.UserType),
	})
	if err != nil {
		return nil, classify(err)
	}
	return toFlowProfile(p), nil
}

// classify converts sentinel service errors into tagged flow errors. Anything
// unrecognized collapses to KindUnknown.
func classify(err error) error {
	var flowErr *authflow.Error
	if errors.As(err, &flowErr) {
		return err
	}

	kind := authflow.KindUnknown
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		kind = authflow.KindDuplicateEmail
	case errors.Is(err, ErrInvalidCredentials):
		kind = authflow.KindInvalidCredentials
	case errors.Is(err, ErrEmailNotConfirmed):
		kind = authflow.KindUnconfirmedEmail
	case errors.Is(err, ErrWeakPassword):
		kind = authflow.KindPasswordPolicy
	case errors.Is(err, ErrInvalidToken):
		kind = authflow.KindInvalidCredentials
	}
	return authflow.NewError(kind, err.Error())
}

func toFlowUser(user *User) *authflow.User {
	if user == nil {
		return nil
	}
	return &authflow.User{
		ID:               user.ID,
		Email:            user.Email,
		Name:             user.Name,
		Phone:            user.Phone,
		UserType:         string(user.UserType),
		EmailConfirmedAt: user.EmailConfirmedAt,
	}
}

func toFlowProfile(p *profile.Profile) *authflow.Profile {
	if p == nil {
		return nil
	}
	return &authflow.Profile{
		ID:    p.UserID,
		Name:  p.Name,
		Email: p.Email,
		Phone: p.Phone,
		Role:  p.Role,
	}
}
