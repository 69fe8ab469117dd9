// Package queue defines the booking lifecycle messages exchanged over
// the broker and the background consumer that records them.
package queue

// BookingCreatedEvent is published after a booking and its transaction
// commit.  It carries enough for downstream consumers to log or notify
// without querying the primary database.
type BookingCreatedEvent struct {
	BookingID    uint64 `json:"booking_id"`
	TableNumber  uint32 `json:"table_number"`
	BookingDate  string `json:"booking_date"`
	BookingTime  string `json:"booking_time"`
	GuestCount   uint32 `json:"guest_count"`
	CustomerName string `json:"customer_name"`
	AmountCents  uint32 `json:"amount_cents"`
	Reference    string `json:"reference"`
	CreatedAt    string `json:"created_at"`
}

// BookingCancelledEvent is published when a booking is deleted.
type BookingCancelledEvent struct {
	BookingID    uint64 `json:"booking_id"`
	TableNumber  uint32 `json:"table_number"`
	BookingDate  string `json:"booking_date"`
	CustomerName string `json:"customer_name"`
	CancelledAt  string `json:"cancelled_at"`
}

// BookingReminderEvent is published by the nightly scheduler for each
// booking happening the next day.
type BookingReminderEvent struct {
	BookingID     uint64  `json:"booking_id"`
	TableNumber   uint32  `json:"table_number"`
	BookingDate   string  `json:"booking_date"`
	BookingTime   string  `json:"booking_time"`
	GuestCount    uint32  `json:"guest_count"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
}
