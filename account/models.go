package account

import "time"

// UserType mirrors the two account types offered at registration.
type UserType string

const (
	TypeParticular UserType = "particular"
	TypeAgente     UserType = "agente"
)

// User is the domain representation of a registered account. It mirrors the
// users table and carries no JSON annotations so it can be reused by
// different presentation layers.
type User struct {
	ID               string
	Email            string
	Name             string
	Phone            string
	PasswordHash     string
	UserType         UserType
	EmailConfirmedAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Confirmed reports whether the account's email has been verified.
func (u *User) Confirmed() bool {
	return u != nil && u.EmailConfirmedAt != nil
}

// RegisterParams contains the sanitized registration payload.
type RegisterParams struct {
	Email    string
	Password string
	Name     string
	Phone    string
	UserType UserType
}
