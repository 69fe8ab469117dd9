package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/byronjee/restaurant-reservation/internal/model"
)

// BookingRepo provides CRUD operations for bookings.  Booking dates are
// stored in a DATE column and compared at day granularity; the schema's
// UNIQUE (table_id, booking_date) key is the authoritative double-booking
// guard, surfaced as ErrTableTaken.  Timestamps are stored in UTC.
type BookingRepo struct{ DB *sql.DB }

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// BookingRecord mirrors the writable columns of the bookings table.  It
// is used by the repository when constructing rows; reads go through
// model.Booking or BookingDetail.
type BookingRecord struct {
	ID            uint64
	BookingDate   time.Time
	BookingTime   string
	GuestCount    uint32
	CustomerName  string
	CustomerPhone *string
	TableID       uint64
	StaffID       *uint64
}

// BookingDetail joins a booking with its table number and staff name for
// display.  It is the row shape returned by listing and detail queries.
type BookingDetail struct {
	ID            uint64  `json:"id"`
	BookingDate   string  `json:"booking_date"`
	BookingTime   string  `json:"booking_time"`
	GuestCount    uint32  `json:"guest_count"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
	TableID       uint64  `json:"table_id"`
	TableNumber   uint32  `json:"table_number"`
	Seats         uint32  `json:"seats"`
	StaffID       *uint64 `json:"staff_id,omitempty"`
	StaffName     *string `json:"staff_name,omitempty"`
}

// CalendarEvent is the shape consumed by the calendar view: one entry
// per booking with a two-hour display window.  The window is cosmetic
// and implies nothing about when the table frees up (the whole day is
// blocked either way).
type CalendarEvent struct {
	ID            uint64  `json:"id"`
	Title         string  `json:"title"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	GuestCount    uint32  `json:"customerCount"`
	TableNumber   uint32  `json:"tableNumber"`
}

// displayWindow is how long a booking is drawn on the calendar.
const displayWindow = 2 * time.Hour

// CreateTx inserts a booking within an existing transaction and
// populates the generated ID.  A collision on the (table_id,
// booking_date) unique key is returned as ErrTableTaken.  The caller
// commits or rolls back.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *BookingRecord) error {
	const q = `INSERT INTO bookings
	           (booking_date, booking_time, guest_count, customer_name, customer_phone, table_id, staff_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		b.BookingDate.Format("2006-01-02"), b.BookingTime, b.GuestCount,
		b.CustomerName, b.CustomerPhone, b.TableID, b.StaffID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrTableTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// ExistsForTableOn reports whether any booking occupies the table on the
// given calendar date.  This is the early, non-authoritative conflict
// probe; the unique key remains the final word at insert time.
func (r *BookingRepo) ExistsForTableOn(ctx context.Context, tableID uint64, date time.Time) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM bookings WHERE table_id=? AND booking_date=? LIMIT 1",
		tableID, date.Format("2006-01-02")).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// BookingsOn returns every booking whose booking_date equals the given
// calendar date.  Used by the day layout aggregation and the reminder
// scan.
func (r *BookingRepo) BookingsOn(ctx context.Context, date time.Time) ([]model.Booking, error) {
	const q = `SELECT id, booking_date, booking_time, guest_count, customer_name,
	                  customer_phone, table_id, staff_id, created_at, updated_at
	           FROM bookings
	           WHERE booking_date = ?
	           ORDER BY booking_time ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, q, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// List returns bookings joined with table and staff details.  search
// filters on customer name (substring, case-insensitive through the
// collation), sort is one of "" (date then time), "name_asc" or
// "name_desc".
func (r *BookingRepo) List(ctx context.Context, search, sort string) ([]BookingDetail, error) {
	q := `SELECT b.id, b.booking_date, b.booking_time, b.guest_count, b.customer_name,
	             b.customer_phone, b.table_id, t.table_number, t.seats, b.staff_id, s.name
	      FROM bookings b
	      JOIN restaurant_tables t ON t.id = b.table_id
	      LEFT JOIN staff s ON s.id = b.staff_id`
	args := make([]interface{}, 0, 1)
	if s := strings.TrimSpace(search); s != "" {
		q += " WHERE b.customer_name LIKE ?"
		args = append(args, "%"+s+"%")
	}
	switch sort {
	case "name_asc":
		q += " ORDER BY b.customer_name ASC"
	case "name_desc":
		q += " ORDER BY b.customer_name DESC"
	default:
		q += " ORDER BY b.booking_date ASC, b.booking_time ASC"
	}
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// GetDetail fetches a single booking with its table and staff details.
// sql.ErrNoRows when absent.
func (r *BookingRepo) GetDetail(ctx context.Context, id uint64) (*BookingDetail, error) {
	const q = `SELECT b.id, b.booking_date, b.booking_time, b.guest_count, b.customer_name,
	                  b.customer_phone, b.table_id, t.table_number, t.seats, b.staff_id, s.name
	           FROM bookings b
	           JOIN restaurant_tables t ON t.id = b.table_id
	           LEFT JOIN staff s ON s.id = b.staff_id
	           WHERE b.id = ?`
	row := r.DB.QueryRowContext(ctx, q, id)
	d, err := scanBookingDetail(row)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Update rewrites a booking's fields.  sql.ErrNoRows is returned when
// the row vanished between read and write (another actor deleted it);
// ordinary field conflicts are last-write-wins.  Moving the booking onto
// an occupied table/date trips the unique key and yields ErrTableTaken.
func (r *BookingRepo) Update(ctx context.Context, b *BookingRecord) error {
	var one int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM bookings WHERE id=? LIMIT 1", b.ID).Scan(&one); err != nil {
		return err
	}
	const q = `UPDATE bookings
	           SET booking_date=?, booking_time=?, guest_count=?, customer_name=?,
	               customer_phone=?, table_id=?, staff_id=?
	           WHERE id=?`
	_, err := r.DB.ExecContext(ctx, q,
		b.BookingDate.Format("2006-01-02"), b.BookingTime, b.GuestCount,
		b.CustomerName, b.CustomerPhone, b.TableID, b.StaffID, b.ID)
	if isDuplicateKey(err) {
		return ErrTableTaken
	}
	return err
}

// DeleteTx removes a booking within a transaction.  The caller deletes
// the booking's transaction rows first so nothing is orphaned.  Returns
// sql.ErrNoRows when the booking was already gone.
func (r *BookingRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Events returns every booking as a calendar event.  Start is the
// booking date plus its wall-clock time, end is start plus the fixed
// display window, both RFC3339 in UTC.
func (r *BookingRepo) Events(ctx context.Context) ([]CalendarEvent, error) {
	details, err := r.List(ctx, "", "")
	if err != nil {
		return nil, err
	}
	events := make([]CalendarEvent, 0, len(details))
	for _, d := range details {
		start, err := combineDateTime(d.BookingDate, d.BookingTime)
		if err != nil {
			continue // malformed legacy row; skip rather than break the feed
		}
		events = append(events, CalendarEvent{
			ID:            d.ID,
			Title:         fmt.Sprintf("%s - Table %d", d.CustomerName, d.TableNumber),
			Start:         start.Format(time.RFC3339),
			End:           start.Add(displayWindow).Format(time.RFC3339),
			CustomerName:  d.CustomerName,
			CustomerPhone: d.CustomerPhone,
			GuestCount:    d.GuestCount,
			TableNumber:   d.TableNumber,
		})
	}
	return events, nil
}

// combineDateTime merges a "2006-01-02" date and a "15:04[:05]" clock
// time into a single UTC instant.
func combineDateTime(date, clock string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	layout := "15:04"
	if strings.Count(clock, ":") == 2 {
		layout = "15:04:05"
	}
	t, err := time.ParseInLocation(layout, clock, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second), nil
}

// rowScanner lets scanBooking* accept both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(rs rowScanner) (model.Booking, error) {
	var (
		b     model.Booking
		phone sql.NullString
		staff sql.NullInt64
		bt    []byte
	)
	if err := rs.Scan(&b.ID, &b.BookingDate, &bt, &b.GuestCount, &b.CustomerName,
		&phone, &b.TableID, &staff, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return model.Booking{}, err
	}
	b.BookingTime = string(bt)
	if phone.Valid {
		p := phone.String
		b.CustomerPhone = &p
	}
	if staff.Valid {
		s := uint64(staff.Int64)
		b.StaffID = &s
	}
	return b, nil
}

func scanBookingDetail(rs rowScanner) (BookingDetail, error) {
	var (
		d         BookingDetail
		date      time.Time
		bt        []byte
		phone     sql.NullString
		staffID   sql.NullInt64
		staffName sql.NullString
	)
	if err := rs.Scan(&d.ID, &date, &bt, &d.GuestCount, &d.CustomerName,
		&phone, &d.TableID, &d.TableNumber, &d.Seats, &staffID, &staffName); err != nil {
		return BookingDetail{}, err
	}
	d.BookingDate = date.UTC().Format("2006-01-02")
	d.BookingTime = string(bt)
	if phone.Valid {
		p := phone.String
		d.CustomerPhone = &p
	}
	if staffID.Valid {
		s := uint64(staffID.Int64)
		d.StaffID = &s
	}
	if staffName.Valid {
		n := staffName.String
		d.StaffName = &n
	}
	return d, nil
}
