package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrProfileNotFound signals that no profile exists for the user.
	ErrProfileNotFound = errors.New("profile: not found")
	// ErrDuplicateProfile signals a concurrent create for the same user.
	ErrDuplicateProfile = errors.New("profile: already exists")
)

// Repository handles data access for dashboard profiles.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (Profile, error)
	Create(ctx context.Context, seed Seed) (Profile, error)
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed profile repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const profileColumns = `user_id, name, email, phone, role, created_at, updated_at`

// GetByUserID retrieves the profile for a user.
func (r *PGRepository) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	selectSQL := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	p, err := scanProfile(r.pool.QueryRow(ctx, selectSQL, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, fmt.Errorf("profile: get by user id: %w", err)
	}
	return p, nil
}

// Create inserts a profile from account metadata.
func (r *PGRepository) Create(ctx context.Context, seed Seed) (Profile, error) {
	insertSQL := `
		INSERT INTO profiles (user_id, name, email, phone, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + profileColumns

	p, err := scanProfile(r.pool.QueryRow(ctx, insertSQL,
		seed.UserID, seed.Name, seed.Email, seed.Phone, seed.Role))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Profile{}, ErrDuplicateProfile
		}
		return Profile{}, fmt.Errorf("profile: create: %w", err)
	}
	return p, nil
}

func scanProfile(row pgx.Row) (Profile, error) {
	var (
		p     Profile
		phone *string
	)
	err := row.Scan(&p.UserID, &p.Name, &p.Email, &phone, &p.Role, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Profile{}, err
	}
	if phone != nil {
		p.Phone = *phone
	}
	return p, nil
}
