package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestService_RegisterAndAuthenticate(t *testing.T) {
	repo := newFakeRepository()
	mailer := &fakeMailer{}
	svc := NewService(repo, mailer, "test-secret")
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterParams{
		Email:    "maria@example.com",
		Password: "MyStr0ngPwd",
		Name:     "Maria José",
		Phone:    "912345678",
		UserType: TypeParticular,
	})
	if err != nil {
		t.Fatalf("register: unexpected error: %v", err)
	}
	if user.Confirmed() {
		t.Fatal("register: new accounts start unconfirmed")
	}
	if len(mailer.verifications) != 1 {
		t.Fatalf("expected one verification email, got %d", len(mailer.verifications))
	}

	// Login before confirmation is rejected.
	if _, _, err := svc.Authenticate(ctx, "maria@example.com", "MyStr0ngPwd"); !errors.Is(err, ErrEmailNotConfirmed) {
		t.Fatalf("expected ErrEmailNotConfirmed, got %v", err)
	}

	if err := svc.ConfirmEmail(ctx, mailer.verifications[0].token); err != nil {
		t.Fatalf("confirm email: %v", err)
	}

	got, token, err := svc.Authenticate(ctx, "maria@example.com", "MyStr0ngPwd")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if token == "" {
		t.Fatal("authenticate: expected session token")
	}
	if got.ID != user.ID {
		t.Fatalf("authenticate: expected user %q, got %q", user.ID, got.ID)
	}

	userID, err := svc.VerifySessionToken(token)
	if err != nil {
		t.Fatalf("verify session token: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("verify session token: expected %q, got %q", user.ID, userID)
	}
}

func TestService_RegisterValidation(t *testing.T) {
	svc := NewService(newFakeRepository(), nil, "test-secret")
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterParams{
		Email:    "maria@example.com",
		Password: "short",
		Name:     "Maria",
	}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	if _, err := svc.Register(ctx, RegisterParams{
		Email:    "",
		Password: "MyStr0ngPwd",
		Name:     "",
	}); err == nil {
		t.Fatal("expected validation error for missing fields")
	}

	if _, err := svc.Register(ctx, RegisterParams{
		Email:    "maria@example.com",
		Password: "MyStr0ngPwd",
		Name:     "Maria",
		UserType: "empresa",
	}); err == nil {
		t.Fatal("expected error for unsupported user type")
	}
}

func TestService_DuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepository(), nil, "test-secret")
	ctx := context.Background()

	params := RegisterParams{
		Email:    "maria@example.com",
		Password: "MyStr0ngPwd",
		Name:     "Maria",
	}
	if _, err := svc.Register(ctx, params); err != nil {
		t.Fatalf("first register: %v", err)
	}

	if _, err := svc.Register(ctx, params); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestService_AuthenticateInvalidCredentials(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil, "test-secret")
	ctx := context.Background()

	if _, _, err := svc.Authenticate(ctx, "unknown@example.com", "irrelevant"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	registerConfirmed(t, svc, repo, "maria@example.com", "MyStr0ngPwd")

	if _, _, err := svc.Authenticate(ctx, "maria@example.com", "WrongPass99"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestService_PasswordResetRoundTrip(t *testing.T) {
	repo := newFakeRepository()
	mailer := &fakeMailer{}
	svc := NewService(repo, mailer, "test-secret")
	ctx := context.Background()

	user := registerConfirmed(t, svc, repo, "maria@example.com", "MyStr0ngPwd")

	if err := svc.StartPasswordReset(ctx, "maria@example.com"); err != nil {
		t.Fatalf("start reset: %v", err)
	}
	if len(mailer.resets) != 1 {
		t.Fatalf("expected one recovery email, got %d", len(mailer.resets))
	}

	userID, err := svc.VerifyRecoveryToken(mailer.resets[0].token)
	if err != nil {
		t.Fatalf("verify recovery token: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("recovery token for wrong user: %q", userID)
	}

	if err := svc.UpdatePassword(ctx, user.ID, "NewStr0ngPwd"); err != nil {
		t.Fatalf("update password: %v", err)
	}

	if _, _, err := svc.Authenticate(ctx, "maria@example.com", "MyStr0ngPwd"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("old password must stop working")
	}
	if _, _, err := svc.Authenticate(ctx, "maria@example.com", "NewStr0ngPwd"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestService_ResetUnknownEmailIsSilent(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewService(newFakeRepository(), mailer, "test-secret")

	if err := svc.StartPasswordReset(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("reset for unknown email must not error: %v", err)
	}
	if len(mailer.resets) != 0 {
		t.Fatal("no email should be sent for unknown address")
	}
}

func TestService_TokenPurposesAreNotInterchangeable(t *testing.T) {
	repo := newFakeRepository()
	mailer := &fakeMailer{}
	svc := NewService(repo, mailer, "test-secret")
	ctx := context.Background()

	registerConfirmed(t, svc, repo, "maria@example.com", "MyStr0ngPwd")
	if err := svc.StartPasswordReset(ctx, "maria@example.com"); err != nil {
		t.Fatalf("start reset: %v", err)
	}

	recovery := mailer.resets[0].token
	if _, err := svc.VerifySessionToken(recovery); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("recovery token must not open a login session, got %v", err)
	}

	if _, err := svc.VerifySessionToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

// registerConfirmed registers a user and marks the email confirmed.
func registerConfirmed(t *testing.T, svc *Service, repo *fakeRepository, email, password string) *User {
	t.Helper()

	user, err := svc.Register(context.Background(), RegisterParams{
		Email:    email,
		Password: password,
		Name:     "Maria José",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := repo.ConfirmEmail(context.Background(), user.ID, time.Now().UTC()); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	confirmed, err := svc.UserByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	return confirmed
}

type fakeRepository struct {
	usersByEmail map[string]User
	usersByID    map[string]User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		usersByEmail: make(map[string]User),
		usersByID:    make(map[string]User),
	}
}

func (f *fakeRepository) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	key := strings.ToLower(params.Email)
	if _, exists := f.usersByEmail[key]; exists {
		return User{}, ErrDuplicateEmail
	}

	id := params.ID
	if id == "" {
		id = fmt.Sprintf("user-%d", len(f.usersByID)+1)
	}
	user := User{
		ID:           id,
		Email:        params.Email,
		Name:         params.Name,
		Phone:        params.Phone,
		PasswordHash: params.PasswordHash,
		UserType:     params.UserType,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	f.usersByEmail[key] = user
	f.usersByID[user.ID] = user
	return user, nil
}

func (f *fakeRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	user, ok := f.usersByEmail[strings.ToLower(email)]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepository) GetUserByID(ctx context.Context, userID string) (User, error) {
	user, ok := f.usersByID[userID]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	user, ok := f.usersByID[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()
	f.usersByID[userID] = user
	f.usersByEmail[strings.ToLower(user.Email)] = user
	return nil
}

func (f *fakeRepository) ConfirmEmail(ctx context.Context, userID string, at time.Time) error {
	user, ok := f.usersByID[userID]
	if !ok {
		return ErrUserNotFound
	}
	if user.EmailConfirmedAt != nil {
		return ErrUserNotFound
	}
	user.EmailConfirmedAt = &at
	f.usersByID[userID] = user
	f.usersByEmail[strings.ToLower(user.Email)] = user
	return nil
}

type sentMail struct {
	email string
	token string
}

type fakeMailer struct {
	verifications []sentMail
	resets        []sentMail
}

func (m *fakeMailer) SendVerification(ctx context.Context, email, token string) error {
	m.verifications = append(m.verifications, sentMail{email: email, token: token})
	return nil
}

func (m *fakeMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	m.resets = append(m.resets, sentMail{email: email, token: token})
	return nil
}
