// Package listing serves the landing page's featured adverts and site-wide
// counters.
package listing

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
)

const (
	defaultFeaturedLimit = 6
	maxFeaturedLimit     = 24

	// satisfactionRate is editorial, not measured.
	satisfactionRate = 98
)

// fallbackStats are shown when the real counters cannot be fetched. The page
// degrades to plausible numbers instead of an error.
var fallbackStats = Stats{Listings: 1250, Users: 850, Satisfaction: satisfactionRate}

// Service handles listing reads for the public site.
type Service struct {
	repo Repository
}

// NewService creates a listing service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Featured returns the newest active listings. A non-positive limit falls
// back to the default page size.
func (s *Service) Featured(ctx context.Context, limit int) ([]Listing, error) {
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}
	if limit > maxFeaturedLimit {
		limit = maxFeaturedLimit
	}
	return s.repo.Featured(ctx, limit)
}

// Stats fetches the site counters, listings and users concurrently. Counter
// failures degrade to fallback values rather than failing the page.
func (s *Service) Stats(ctx context.Context) Stats {
	stats := Stats{Satisfaction: satisfactionRate}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.repo.CountActiveListings(ctx)
		if err != nil {
			return err
		}
		stats.Listings = n
		return nil
	})
	g.Go(func() error {
		n, err := s.repo.CountUsers(ctx)
		if err != nil {
			return err
		}
		stats.Users = n
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("listing: stats degraded to fallback: %v", err)
		return fallbackStats
	}
	return stats
}
