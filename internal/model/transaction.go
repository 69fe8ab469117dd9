package model

import "time"

// Transaction is the monetary record attached one-to-one to a booking.
// It is created together with the booking and afterwards only its
// status changes (Created, Confirmed, Pending, Cancelled).  Amounts
// are stored in cents to avoid floating point drift.
type Transaction struct {
	ID          uint64    // transactions.id
	Reference   string    // transactions.reference (UUID, printed on receipts)
	AmountCents uint32    // transactions.amount_cents
	Status      string    // transactions.status
	BookingID   uint64    // transactions.booking_id
	CreatedAt   time.Time // transactions.created_at
}
