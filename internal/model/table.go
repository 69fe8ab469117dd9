package model

import "time"

// Table describes a physical dining table in the restaurant.  Tables
// are uniquely identified by their display number and carry a fixed
// seat count.  The is_available flag soft-retires a table from the
// booking form without deleting its history.
//
// Fields:
//
//	ID          – primary key identifier.
//	TableNumber – display number shown to staff and customers.
//	Seats       – number of seats at the table.
//	IsAvailable – whether the table is offered for new bookings.
//	CreatedAt   – creation timestamp.
//	UpdatedAt   – last update timestamp.
type Table struct {
	ID          uint64    // restaurant_tables.id
	TableNumber uint32    // restaurant_tables.table_number
	Seats       uint32    // restaurant_tables.seats
	IsAvailable bool      // restaurant_tables.is_available
	CreatedAt   time.Time // restaurant_tables.created_at
	UpdatedAt   time.Time // restaurant_tables.updated_at
}
