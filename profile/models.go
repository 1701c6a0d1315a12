package profile

import "time"

// Profile is the public account record shown on the dashboard. It mirrors the
// profiles table.
type Profile struct {
	UserID    string
	Name      string
	Email     string
	Phone     string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Seed carries the account metadata used to create a missing profile.
type Seed struct {
	UserID string
	Name   string
	Email  string
	Phone  string
	Role   string
}
