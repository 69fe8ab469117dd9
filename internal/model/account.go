package model

import "time"

// Account is a staff login.  Passwords are stored only as bcrypt
// hashes.  The role is STAFF for the front of house or ADMIN for
// accounts allowed to change the table plan.
type Account struct {
	ID           uint64    // accounts.id
	Username     string    // accounts.username
	PasswordHash string    // accounts.password_hash
	Role         string    // accounts.role
	IsActive     bool      // accounts.is_active
	CreatedAt    time.Time // accounts.created_at
	UpdatedAt    time.Time // accounts.updated_at
}
