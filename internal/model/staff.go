package model

import "time"

// Staff identifies an employee who can be assigned to handle a
// booking.  Staff rows are seeded at startup and rarely change.
type Staff struct {
	ID        uint64    // staff.id
	Name      string    // staff.name
	CreatedAt time.Time // staff.created_at
}
