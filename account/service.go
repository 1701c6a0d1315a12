package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials signals wrong email or password.
	ErrInvalidCredentials = errors.New("account: invalid credentials")
	// ErrWeakPassword signals the password doesn't meet the storage policy.
	ErrWeakPassword = errors.New("account: password must be at least 8 characters")
	// ErrEmailNotConfirmed signals login on an unverified account.
	ErrEmailNotConfirmed = errors.New("account: email not confirmed")
	// ErrInvalidToken signals an unparseable or expired token.
	ErrInvalidToken = errors.New("account: invalid token")
)

// Token purposes embedded in issued JWTs.
const (
	purposeSession  = "session"
	purposeRecovery = "recovery"
	purposeVerify   = "verify"
)

const (
	sessionTTL  = 24 * time.Hour
	recoveryTTL = time.Hour
)

// Mailer delivers account emails. Implementations own transport and copy;
// the service only supplies the address and a one-shot token.
type Mailer interface {
	SendVerification(ctx context.Context, email, token string) error
	SendPasswordReset(ctx context.Context, email, token string) error
}

// Service handles account business logic: registration, credential checks,
// token issuance and password recovery.
type Service struct {
	repo      Repository
	mailer    Mailer
	jwtSecret []byte
}

// NewService creates an account service.
func NewService(repo Repository, mailer Mailer, jwtSecret string) *Service {
	return &Service{
		repo:      repo,
		mailer:    mailer,
		jwtSecret: []byte(jwtSecret),
	}
}

// Configured reports whether the service can issue tokens. Callers surface a
// misconfiguration error instead of panicking when the secret is absent.
func (s *Service) Configured() bool {
	return s != nil && len(s.jwtSecret) > 0
}

// Register creates a new account and sends the verification email.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	if len(params.Password) < 8 {
		return nil, ErrWeakPassword
	}
	if params.Email == "" || params.Name == "" {
		return nil, fmt.Errorf("account: email and name are required")
	}

	userType := UserType(strings.TrimSpace(string(params.UserType)))
	if userType == "" {
		userType = TypeParticular
	}
	if userType != TypeParticular && userType != TypeAgente {
		return nil, fmt.Errorf("account: invalid user type %q", userType)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("account: hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, CreateUserParams{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(params.Email),
		Name:         params.Name,
		Phone:        params.Phone,
		PasswordHash: string(passwordHash),
		UserType:     userType,
	})
	if err != nil {
		return nil, err
	}

	if err := s.sendVerification(ctx, user); err != nil {
		// The account exists; verification can be re-sent later.
		return &user, nil
	}

	return &user, nil
}

// Authenticate checks credentials and returns the user with a session token.
// Unverified accounts are rejected with ErrEmailNotConfirmed.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.Confirmed() {
		return nil, "", ErrEmailNotConfirmed
	}

	token, err := s.generateToken(user.ID, purposeSession, sessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("account: generate token: %w", err)
	}

	return &user, token, nil
}

// UserByID retrieves account information by ID.
func (s *Service) UserByID(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// StartPasswordReset emails a recovery link for the address. An unknown email
// is not an error: recovery never reveals whether an account exists.
func (s *Service) StartPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, err := s.generateToken(user.ID, purposeRecovery, recoveryTTL)
	if err != nil {
		return fmt.Errorf("account: generate recovery token: %w", err)
	}

	if s.mailer == nil {
		return nil
	}
	if err := s.mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
		return fmt.Errorf("account: send recovery email: %w", err)
	}
	return nil
}

// UpdatePassword replaces the password for an authenticated user. The full
// strength policy is enforced by the flow layer; storage only requires the
// minimum length.
func (s *Service) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("account: hash password: %w", err)
	}
	return s.repo.UpdatePasswordHash(ctx, userID, string(hash))
}

// ResendVerification re-sends the confirmation email for the address.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return err
	}
	if user.Confirmed() {
		return nil
	}
	return s.sendVerification(ctx, user)
}

// ConfirmEmail marks the account from a verification token as confirmed.
func (s *Service) ConfirmEmail(ctx context.Context, token string) error {
	userID, err := s.verifyToken(token, purposeVerify)
	if err != nil {
		return err
	}
	if err := s.repo.ConfirmEmail(ctx, userID, time.Now().UTC()); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Already confirmed or gone; verification links are idempotent.
			return nil
		}
		return err
	}
	return nil
}

// VerifySessionToken validates a session JWT and returns the user ID.
func (s *Service) VerifySessionToken(token string) (string, error) {
	return s.verifyToken(token, purposeSession)
}

// VerifyRecoveryToken validates a recovery JWT and returns the user ID.
func (s *Service) VerifyRecoveryToken(token string) (string, error) {
	return s.verifyToken(token, purposeRecovery)
}

func (s *Service) sendVerification(ctx context.Context, user User) error {
	if s.mailer == nil {
		return nil
	}
	token, err := s.generateToken(user.ID, purposeVerify, recoveryTTL)
	if err != nil {
		return fmt.Errorf("account: generate verification token: %w", err)
	}
	if err := s.mailer.SendVerification(ctx, user.Email, token); err != nil {
		return fmt.Errorf("account: send verification email: %w", err)
	}
	return nil
}

func (s *Service) generateToken(userID, purpose string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"purpose": purpose,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *Service) verifyToken(tokenString, wantPurpose string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	purpose, ok := claims["purpose"].(string)
	if !ok || purpose != wantPurpose {
		return "", ErrInvalidToken
	}

	return userID, nil
}
