package repository

import (
	"context"
	"database/sql"
)

// BookingStore bundles the booking and transaction repositories for the
// writes that must span both tables atomically.  Either both rows land
// or neither does; a unique-key rejection of the booking therefore
// leaves no payment row behind.
type BookingStore struct {
	DB           *sql.DB
	Bookings     *BookingRepo
	Transactions *TransactionRepo
}

func NewBookingStore(db *sql.DB, b *BookingRepo, t *TransactionRepo) *BookingStore {
	return &BookingStore{DB: db, Bookings: b, Transactions: t}
}

// CreateBookingWithPayment inserts the booking and its payment row in a
// single database transaction, populating both generated IDs.  A
// (table_id, booking_date) collision is returned as ErrTableTaken with
// nothing written.
func (s *BookingStore) CreateBookingWithPayment(ctx context.Context, b *BookingRecord, t *TransactionRecord) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.Bookings.CreateTx(ctx, tx, b); err != nil {
		return err
	}
	t.BookingID = b.ID
	if err := s.Transactions.CreateTx(ctx, tx, t); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteBookingWithPayments removes a booking and its payment rows in a
// single database transaction, payments first so nothing is orphaned.
// sql.ErrNoRows when the booking was already gone.
func (s *BookingStore) DeleteBookingWithPayments(ctx context.Context, bookingID uint64) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.Transactions.DeleteByBookingTx(ctx, tx, bookingID); err != nil {
		return err
	}
	if err := s.Bookings.DeleteTx(ctx, tx, bookingID); err != nil {
		return err
	}
	return tx.Commit()
}
