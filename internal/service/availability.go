// Package service holds the booking rules that are worth testing in
// isolation: the date-conflict check, the per-day availability layout
// and the pricing rule.  The logic runs over narrow data-source
// interfaces so tests can drive it with in-memory fakes instead of a
// database; in production the repositories satisfy them directly.
package service

import (
	"context"
	"time"

	"github.com/byronjee/restaurant-reservation/internal/model"
)

// FloorSource supplies the table plan ordered by table number.
type FloorSource interface {
	TablesByNumber(ctx context.Context) ([]model.Table, error)
}

// BookingSource supplies the bookings of a single calendar date.
type BookingSource interface {
	BookingsOn(ctx context.Context, date time.Time) ([]model.Booking, error)
}

// TableAvailability is the per-table entry of a day layout.  BookingID
// is set only when the table is occupied.
type TableAvailability struct {
	TableID     uint64  `json:"table_id"`
	TableNumber uint32  `json:"table_number"`
	Seats       uint32  `json:"seats"`
	IsBookable  bool    `json:"is_bookable"`
	IsAvailable bool    `json:"is_available"`
	BookingID   *uint64 `json:"booking_id,omitempty"`
}

// SeatSummary counts free versus total tables within one seat bucket.
type SeatSummary struct {
	Available int `json:"available"`
	Total     int `json:"total"`
}

// DayLayout is the snapshot of one calendar date: every table in
// display order plus the availability counts grouped by seat count.
type DayLayout struct {
	Date           string                 `json:"date"`
	Tables         []TableAvailability    `json:"tables"`
	SummaryBySeats map[uint32]SeatSummary `json:"summary_by_seats"`
}

// Availability implements the day-granularity booking rules.  A table
// booked at any time on a date counts as occupied for that whole date;
// no time-slot overlap is modelled.
type Availability struct {
	floor    FloorSource
	bookings BookingSource
}

// NewAvailability wires the rule set to its data sources.
func NewAvailability(floor FloorSource, bookings BookingSource) *Availability {
	return &Availability{floor: floor, bookings: bookings}
}

// DateOnly truncates t to its calendar date in UTC.  All conflict and
// layout comparisons run on this normalized form.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CanBook reports whether the table is free on the given calendar date,
// i.e. no existing booking holds the same table on the same date.  This
// is the early validation pass; the database's unique key remains the
// authoritative guard at insert time.
func (a *Availability) CanBook(ctx context.Context, tableID uint64, date time.Time) (bool, error) {
	day := DateOnly(date)
	booked, err := a.bookings.BookingsOn(ctx, day)
	if err != nil {
		return false, err
	}
	for _, b := range booked {
		if b.TableID == tableID && DateOnly(b.BookingDate).Equal(day) {
			return false, nil
		}
	}
	return true, nil
}

// DayLayout builds the availability snapshot for one date: tables in
// table-number order, each marked free or occupied (with the occupying
// booking id), plus available/total counts per seat bucket.  Purely a
// read; deterministic for the same underlying rows.
func (a *Availability) DayLayout(ctx context.Context, date time.Time) (*DayLayout, error) {
	day := DateOnly(date)
	tables, err := a.floor.TablesByNumber(ctx)
	if err != nil {
		return nil, err
	}
	booked, err := a.bookings.BookingsOn(ctx, day)
	if err != nil {
		return nil, err
	}

	// At most one booking per table per date, so a plain index suffices.
	byTable := make(map[uint64]uint64, len(booked))
	for _, b := range booked {
		if DateOnly(b.BookingDate).Equal(day) {
			byTable[b.TableID] = b.ID
		}
	}

	layout := &DayLayout{
		Date:           day.Format("2006-01-02"),
		Tables:         make([]TableAvailability, 0, len(tables)),
		SummaryBySeats: make(map[uint32]SeatSummary),
	}
	for _, t := range tables {
		entry := TableAvailability{
			TableID:     t.ID,
			TableNumber: t.TableNumber,
			Seats:       t.Seats,
			IsBookable:  t.IsAvailable,
			IsAvailable: true,
		}
		if id, ok := byTable[t.ID]; ok {
			bookingID := id
			entry.IsAvailable = false
			entry.BookingID = &bookingID
		}
		layout.Tables = append(layout.Tables, entry)

		s := layout.SummaryBySeats[t.Seats]
		s.Total++
		if entry.IsAvailable {
			s.Available++
		}
		layout.SummaryBySeats[t.Seats] = s
	}
	return layout, nil
}
