// Package profile manages the public account records shown on the dashboard.
// Profiles are derived from account metadata and created lazily: the first
// dashboard visit after registration materializes the row.
package profile

import (
	"context"
	"errors"
)

// Service handles profile reads and lazy creation.
type Service struct {
	repo Repository
}

// NewService creates a profile service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get fetches the profile for a user. A missing profile is reported with
// ErrProfileNotFound rather than a generic failure.
func (s *Service) Get(ctx context.Context, userID string) (*Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Ensure fetches the profile for the seeded user, creating it from the seed
// when missing. A concurrent create by another request is not an error; the
// winner's row is returned.
func (s *Service) Ensure(ctx context.Context, seed Seed) (*Profile, error) {
	p, err := s.repo.GetByUserID(ctx, seed.UserID)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}

	created, err := s.repo.Create(ctx, seed)
	if err != nil {
		if errors.Is(err, ErrDuplicateProfile) {
			p, err := s.repo.GetByUserID(ctx, seed.UserID)
			if err != nil {
				return nil, err
			}
			return &p, nil
		}
		return nil, err
	}
	return &created, nil
}
