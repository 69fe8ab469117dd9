package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/byronjee/restaurant-reservation/internal/model"
)

// fakeFloor and fakeBookings stand in for the repositories.
type fakeFloor struct {
	tables []model.Table
	err    error
}

func (f *fakeFloor) TablesByNumber(ctx context.Context) ([]model.Table, error) {
	return f.tables, f.err
}

type fakeBookings struct {
	bookings []model.Booking
	err      error
}

func (f *fakeBookings) BookingsOn(ctx context.Context, date time.Time) ([]model.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	day := DateOnly(date)
	out := make([]model.Booking, 0)
	for _, b := range f.bookings {
		if DateOnly(b.BookingDate).Equal(day) {
			out = append(out, b)
		}
	}
	return out, nil
}

func seededFloor() []model.Table {
	// The default floor plan: pairs of 2, 4, 6 and 8 seat tables.
	seats := []uint32{2, 2, 4, 4, 6, 6, 8, 8}
	tables := make([]model.Table, 0, len(seats))
	for i, s := range seats {
		tables = append(tables, model.Table{
			ID:          uint64(i + 1),
			TableNumber: uint32(i + 1),
			Seats:       s,
			IsAvailable: true,
		})
	}
	return tables
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateOnly(t *testing.T) {
	// 19:30+01:00 is 18:30 UTC, so the UTC calendar date is still the 15th.
	in := time.Date(2025, 6, 15, 19, 30, 45, 123, time.FixedZone("X", 3600))
	got := DateOnly(in)
	if want := date(2025, 6, 15); !got.Equal(want) {
		t.Fatalf("DateOnly(%v) = %v, want %v", in, got, want)
	}
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Fatalf("DateOnly did not truncate: %v", got)
	}
	if got.Location() != time.UTC {
		t.Fatalf("DateOnly location = %v, want UTC", got.Location())
	}
}

func TestCanBook(t *testing.T) {
	day := date(2025, 7, 4)
	bookings := &fakeBookings{bookings: []model.Booking{
		{ID: 11, TableID: 1, BookingDate: day, BookingTime: "18:00"},
	}}
	av := NewAvailability(&fakeFloor{tables: seededFloor()}, bookings)

	tests := []struct {
		name    string
		tableID uint64
		date    time.Time
		want    bool
	}{
		{"booked table same date", 1, day, false},
		{"booked table, time of day ignored", 1, day.Add(5 * time.Hour), false},
		{"same table next day", 1, date(2025, 7, 5), true},
		{"free table same date", 2, day, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := av.CanBook(context.Background(), tt.tableID, tt.date)
			if err != nil {
				t.Fatalf("CanBook: %v", err)
			}
			if got != tt.want {
				t.Fatalf("CanBook(table=%d, %s) = %v, want %v",
					tt.tableID, tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestCanBookPropagatesError(t *testing.T) {
	boom := errors.New("db down")
	av := NewAvailability(&fakeFloor{}, &fakeBookings{err: boom})
	if _, err := av.CanBook(context.Background(), 1, date(2025, 7, 4)); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestDayLayoutEmptyDay(t *testing.T) {
	av := NewAvailability(&fakeFloor{tables: seededFloor()}, &fakeBookings{})
	layout, err := av.DayLayout(context.Background(), date(2025, 7, 4))
	if err != nil {
		t.Fatalf("DayLayout: %v", err)
	}
	if layout.Date != "2025-07-04" {
		t.Fatalf("Date = %q", layout.Date)
	}
	if len(layout.Tables) != 8 {
		t.Fatalf("tables = %d, want 8", len(layout.Tables))
	}
	for _, e := range layout.Tables {
		if !e.IsAvailable || e.BookingID != nil {
			t.Fatalf("table %d should be free: %+v", e.TableNumber, e)
		}
	}
	for _, seats := range []uint32{2, 4, 6, 8} {
		s := layout.SummaryBySeats[seats]
		if s.Available != 2 || s.Total != 2 {
			t.Fatalf("summary[%d] = %+v, want 2/2", seats, s)
		}
	}
}

func TestDayLayoutWithBookings(t *testing.T) {
	day := date(2025, 7, 4)
	bookings := &fakeBookings{bookings: []model.Booking{
		{ID: 42, TableID: 1, BookingDate: day, BookingTime: "18:00"},
		{ID: 43, TableID: 5, BookingDate: day, BookingTime: "20:00"},
		{ID: 99, TableID: 2, BookingDate: date(2025, 7, 5), BookingTime: "18:00"}, // other day
	}}
	av := NewAvailability(&fakeFloor{tables: seededFloor()}, bookings)

	layout, err := av.DayLayout(context.Background(), day)
	if err != nil {
		t.Fatalf("DayLayout: %v", err)
	}

	byNumber := make(map[uint32]TableAvailability, len(layout.Tables))
	for _, e := range layout.Tables {
		byNumber[e.TableNumber] = e
	}

	if e := byNumber[1]; e.IsAvailable || e.BookingID == nil || *e.BookingID != 42 {
		t.Fatalf("table 1 = %+v, want occupied by 42", e)
	}
	if e := byNumber[5]; e.IsAvailable || e.BookingID == nil || *e.BookingID != 43 {
		t.Fatalf("table 5 = %+v, want occupied by 43", e)
	}
	if e := byNumber[2]; !e.IsAvailable || e.BookingID != nil {
		t.Fatalf("table 2 = %+v, want free (booking is on another day)", e)
	}

	if s := layout.SummaryBySeats[2]; s.Available != 1 || s.Total != 2 {
		t.Fatalf("summary[2] = %+v, want 1/2", s)
	}
	if s := layout.SummaryBySeats[6]; s.Available != 1 || s.Total != 2 {
		t.Fatalf("summary[6] = %+v, want 1/2", s)
	}
	if s := layout.SummaryBySeats[4]; s.Available != 2 || s.Total != 2 {
		t.Fatalf("summary[4] = %+v, want 2/2", s)
	}
}

func TestDayLayoutRetiredTableStillListed(t *testing.T) {
	tables := seededFloor()
	tables[7].IsAvailable = false // table 8 retired from new bookings
	av := NewAvailability(&fakeFloor{tables: tables}, &fakeBookings{})

	layout, err := av.DayLayout(context.Background(), date(2025, 7, 4))
	if err != nil {
		t.Fatalf("DayLayout: %v", err)
	}
	if len(layout.Tables) != 8 {
		t.Fatalf("tables = %d, want 8 (retired tables stay visible)", len(layout.Tables))
	}
	last := layout.Tables[7]
	if last.IsBookable {
		t.Fatalf("table 8 should not be bookable: %+v", last)
	}
	if !last.IsAvailable {
		t.Fatalf("table 8 has no booking, should count as free: %+v", last)
	}
}

func TestDayLayoutSummaryMatchesTables(t *testing.T) {
	day := date(2025, 7, 4)
	bookings := &fakeBookings{bookings: []model.Booking{
		{ID: 1, TableID: 3, BookingDate: day},
		{ID: 2, TableID: 4, BookingDate: day},
	}}
	av := NewAvailability(&fakeFloor{tables: seededFloor()}, bookings)

	layout, err := av.DayLayout(context.Background(), day)
	if err != nil {
		t.Fatalf("DayLayout: %v", err)
	}

	// The summary must be derivable from the table entries themselves.
	recount := make(map[uint32]SeatSummary)
	for _, e := range layout.Tables {
		s := recount[e.Seats]
		s.Total++
		if e.IsAvailable {
			s.Available++
		}
		recount[e.Seats] = s
	}
	if len(recount) != len(layout.SummaryBySeats) {
		t.Fatalf("bucket count mismatch: %d vs %d", len(recount), len(layout.SummaryBySeats))
	}
	for seats, want := range recount {
		if got := layout.SummaryBySeats[seats]; got != want {
			t.Fatalf("summary[%d] = %+v, want %+v", seats, got, want)
		}
	}
}
