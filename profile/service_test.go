package profile

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGet_NotFoundIsDistinguishable(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestEnsure_CreatesFromSeed(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	seed := Seed{
		UserID: "u1",
		Name:   "Maria José",
		Email:  "maria@example.com",
		Phone:  "912345678",
		Role:   "particular",
	}

	p, err := svc.Ensure(context.Background(), seed)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if p.Name != seed.Name || p.Role != seed.Role {
		t.Fatalf("profile not seeded from metadata: %+v", p)
	}

	// Second call returns the existing row without creating again.
	if _, err := svc.Ensure(context.Background(), seed); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if repo.creates != 1 {
		t.Fatalf("expected one create, got %d", repo.creates)
	}
}

func TestEnsure_ToleratesConcurrentCreate(t *testing.T) {
	repo := newFakeRepository()
	repo.createErr = ErrDuplicateProfile
	repo.profiles["u1"] = Profile{UserID: "u1", Name: "Winner"}

	svc := NewService(repo)
	repo.missOnce = true

	p, err := svc.Ensure(context.Background(), Seed{UserID: "u1", Name: "Loser"})
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if p.Name != "Winner" {
		t.Fatalf("expected winner's row, got %+v", p)
	}
}

type fakeRepository struct {
	profiles  map[string]Profile
	creates   int
	createErr error
	missOnce  bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{profiles: make(map[string]Profile)}
}

func (f *fakeRepository) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	if f.missOnce {
		f.missOnce = false
		return Profile{}, ErrProfileNotFound
	}
	p, ok := f.profiles[userID]
	if !ok {
		return Profile{}, ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeRepository) Create(ctx context.Context, seed Seed) (Profile, error) {
	if f.createErr != nil {
		return Profile{}, f.createErr
	}
	f.creates++
	p := Profile{
		UserID:    seed.UserID,
		Name:      seed.Name,
		Email:     seed.Email,
		Phone:     seed.Phone,
		Role:      seed.Role,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	f.profiles[seed.UserID] = p
	return p, nil
}
