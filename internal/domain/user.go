package domain

import "time"

// UserRole distinguishes the kinds of accounts on the platform.
type UserRole string

const (
	RoleClient   UserRole = "CLIENT"
	RoleOwner    UserRole = "OWNER"
	RoleDelivery UserRole = "DELIVERY"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleClient, RoleOwner, RoleDelivery:
		return true
	}
	return false
}

// User is the domain model for accounts. PasswordHash always holds the bcrypt
// hash, never the plaintext submitted by a caller.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         UserRole
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
