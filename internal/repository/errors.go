// Package repository defines sentinel errors shared across the
// repositories so handlers can map failure scenarios onto HTTP
// responses.  ErrTableTaken is the authoritative double-booking signal:
// it is produced when the UNIQUE (table_id, booking_date) key rejects an
// insert or update, which closes the check-then-act window that a purely
// in-memory conflict check would leave open.
package repository

import (
	"errors"
	"strings"
)

// ErrTableTaken is returned when a booking insert or update collides
// with an existing booking for the same table and date.  Handlers
// translate this into an HTTP 409 with a user-facing message.
var ErrTableTaken = errors.New("table already booked for that date")

// ErrConflict is returned when a delete cannot proceed because of
// dependent records, such as removing a table that still has bookings.
// Handlers translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrUsernameExists is returned when creating an account whose username
// is already registered.
var ErrUsernameExists = errors.New("username already exists")

// isDuplicateKey reports whether err is MySQL error 1062 (duplicate
// entry for a unique key).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
