package listing

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles data access for listings and site counters.
type Repository interface {
	Featured(ctx context.Context, limit int) ([]Listing, error)
	CountActiveListings(ctx context.Context) (int, error)
	CountUsers(ctx context.Context) (int, error)
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed listing repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Featured returns the newest active listings with their owner's public
// profile, up to limit.
func (r *PGRepository) Featured(ctx context.Context, limit int) ([]Listing, error) {
	selectSQL := `
		SELECT l.id, l.title, l.price, l.location_text, l.typology,
		       l.rooms, l.bathrooms, l.area, l.images, l.status, l.created_at,
		       p.name, p.role
		FROM listings l
		LEFT JOIN profiles p ON p.user_id = l.user_id
		WHERE l.status = 'active'
		ORDER BY l.created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, selectSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("listing: query featured: %w", err)
	}
	defer rows.Close()

	var listings []Listing
	for rows.Next() {
		var (
			l         Listing
			ownerName *string
			ownerRole *string
		)
		err := rows.Scan(&l.ID, &l.Title, &l.Price, &l.LocationText, &l.Typology,
			&l.Rooms, &l.Bathrooms, &l.Area, &l.Images, &l.Status, &l.CreatedAt,
			&ownerName, &ownerRole)
		if err != nil {
			return nil, fmt.Errorf("listing: scan featured: %w", err)
		}
		if ownerName != nil {
			role := ""
			if ownerRole != nil {
				role = *ownerRole
			}
			l.Owner = &Owner{Name: *ownerName, Role: role}
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing: iterate featured: %w", err)
	}
	return listings, nil
}

// CountActiveListings counts published listings.
func (r *PGRepository) CountActiveListings(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM listings WHERE status = 'active'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("listing: count listings: %w", err)
	}
	return count, nil
}

// CountUsers counts registered accounts.
func (r *PGRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("listing: count users: %w", err)
	}
	return count, nil
}
