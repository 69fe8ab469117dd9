package model

import "time"

// Booking records the reservation of one table by one customer for a
// single calendar date.  The date alone decides conflicts: a table
// booked at any time that day is occupied for the whole day.  The
// clock time is kept only to place the booking on the calendar view.
//
// Fields:
//
//	ID            – primary key identifier.
//	BookingDate   – calendar date being reserved (time of day ignored).
//	BookingTime   – arrival time, display only ("15:04" wall clock).
//	GuestCount    – size of the party.
//	CustomerName  – name the booking is held under.
//	CustomerPhone – optional contact number, at most 15 characters.
//	TableID       – table being reserved.
//	StaffID       – employee handling the booking, if assigned.
//	CreatedAt     – creation timestamp.
//	UpdatedAt     – last update timestamp.
type Booking struct {
	ID            uint64    // bookings.id
	BookingDate   time.Time // bookings.booking_date
	BookingTime   string    // bookings.booking_time
	GuestCount    uint32    // bookings.guest_count
	CustomerName  string    // bookings.customer_name
	CustomerPhone *string   // bookings.customer_phone (nullable)
	TableID       uint64    // bookings.table_id
	StaffID       *uint64   // bookings.staff_id (nullable)
	CreatedAt     time.Time // bookings.created_at
	UpdatedAt     time.Time // bookings.updated_at
}
