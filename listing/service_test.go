package listing

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRepository struct {
	listings []Listing

	listingCount int
	userCount    int
	countErr     error

	lastLimit int
}

func (f *fakeRepository) Featured(ctx context.Context, limit int) ([]Listing, error) {
	f.lastLimit = limit
	if limit < len(f.listings) {
		return f.listings[:limit], nil
	}
	return f.listings, nil
}

func (f *fakeRepository) CountActiveListings(ctx context.Context) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.listingCount, nil
}

func (f *fakeRepository) CountUsers(ctx context.Context) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.userCount, nil
}

func sampleListings(n int) []Listing {
	listings := make([]Listing, n)
	for i := range listings {
		listings[i] = Listing{
			ID:        "l" + string(rune('a'+i)),
			Title:     "Apartamento T2",
			Price:     250000,
			Status:    "active",
			CreatedAt: time.Now().Add(-time.Duration(i) * time.Hour),
		}
	}
	return listings
}

func TestFeatured_DefaultLimit(t *testing.T) {
	repo := &fakeRepository{listings: sampleListings(10)}
	svc := NewService(repo)

	got, err := svc.Featured(context.Background(), 0)
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if repo.lastLimit != defaultFeaturedLimit {
		t.Fatalf("expected default limit %d, got %d", defaultFeaturedLimit, repo.lastLimit)
	}
	if len(got) != defaultFeaturedLimit {
		t.Fatalf("expected %d listings, got %d", defaultFeaturedLimit, len(got))
	}
}

func TestFeatured_LimitClamped(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewService(repo)

	if _, err := svc.Featured(context.Background(), 1000); err != nil {
		t.Fatalf("featured: %v", err)
	}
	if repo.lastLimit != maxFeaturedLimit {
		t.Fatalf("expected clamped limit %d, got %d", maxFeaturedLimit, repo.lastLimit)
	}
}

func TestStats_RealCounters(t *testing.T) {
	repo := &fakeRepository{listingCount: 42, userCount: 17}
	svc := NewService(repo)

	stats := svc.Stats(context.Background())
	if stats.Listings != 42 || stats.Users != 17 {
		t.Fatalf("unexpected counters: %+v", stats)
	}
	if stats.Satisfaction != satisfactionRate {
		t.Fatalf("expected fixed satisfaction %d, got %d", satisfactionRate, stats.Satisfaction)
	}
}

func TestStats_FallbackOnError(t *testing.T) {
	repo := &fakeRepository{countErr: errors.New("connection refused")}
	svc := NewService(repo)

	stats := svc.Stats(context.Background())
	if stats != fallbackStats {
		t.Fatalf("expected fallback stats %+v, got %+v", fallbackStats, stats)
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		price int64
		want  string
	}{
		{0, "0 €"},
		{950, "950 €"},
		{1000, "1 000 €"},
		{250000, "250 000 €"},
		{1250000, "1 250 000 €"},
	}
	for _, tc := range cases {
		if got := FormatPrice(tc.price); got != tc.want {
			t.Errorf("FormatPrice(%d) = %q, want %q", tc.price, got, tc.want)
		}
	}
}

func TestFormatArea(t *testing.T) {
	area := 120
	if got := FormatArea(&area); got != "120m²" {
		t.Errorf("FormatArea(120) = %q", got)
	}
	if got := FormatArea(nil); got != "N/A" {
		t.Errorf("FormatArea(nil) = %q", got)
	}
}

func TestFormatCount(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{850, "850"},
		{999, "999"},
		{1000, "1k+"},
		{1250, "1k+"},
		{12500, "12k+"},
	}
	for _, tc := range cases {
		if got := FormatCount(tc.n); got != tc.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestFormatSatisfaction(t *testing.T) {
	if got := FormatSatisfaction(98); got != "98%" {
		t.Errorf("FormatSatisfaction(98) = %q", got)
	}
}
