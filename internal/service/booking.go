package service

import (
	"context"

	"github.com/byronjee/restaurant-reservation/internal/repository"
)

// BookingStore persists a booking together with its payment row, or
// removes both, atomically.  repository.BookingStore is the production
// implementation; tests drive the sequence with an in-memory fake.
type BookingStore interface {
	CreateBookingWithPayment(ctx context.Context, b *repository.BookingRecord, t *repository.TransactionRecord) error
	DeleteBookingWithPayments(ctx context.Context, bookingID uint64) error
}

// TransactionStatusCreated is the status every payment row starts in.
const TransactionStatusCreated = "Created"

// Booker runs the booking lifecycle sequences: the availability check,
// the priced pair-insert and the paired delete.  The database's unique
// key stays authoritative; the CanBook pass only rejects early, so a
// lost race still surfaces as ErrTableTaken from the store.
type Booker struct {
	availability *Availability
	store        BookingStore
}

func NewBooker(av *Availability, store BookingStore) *Booker {
	return &Booker{availability: av, store: store}
}

// Create books the table for the record's date and attaches a payment
// row priced at Price(guests) with status Created.  On any failure,
// conflict included, nothing is persisted.
func (b *Booker) Create(ctx context.Context, rec *repository.BookingRecord) (*repository.TransactionRecord, error) {
	free, err := b.availability.CanBook(ctx, rec.TableID, rec.BookingDate)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, repository.ErrTableTaken
	}

	trn := &repository.TransactionRecord{
		AmountCents: Price(rec.GuestCount),
		Status:      TransactionStatusCreated,
	}
	if err := b.store.CreateBookingWithPayment(ctx, rec, trn); err != nil {
		return nil, err
	}
	return trn, nil
}

// Cancel removes the booking and its payment rows together.
// sql.ErrNoRows propagates when the booking does not exist.
func (b *Booker) Cancel(ctx context.Context, bookingID uint64) error {
	return b.store.DeleteBookingWithPayments(ctx, bookingID)
}
