package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/byronjee/restaurant-reservation/internal/model"
)

// TransactionRepo persists the monetary record created alongside each
// booking.  A transaction is created exactly once per booking, inside
// the same database transaction as the booking insert; afterwards only
// its status field changes.
type TransactionRepo struct{ DB *sql.DB }

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{DB: db} }

// TransactionRecord mirrors the writable columns of the transactions
// table.  Reference is generated on insert.
type TransactionRecord struct {
	ID          uint64
	Reference   string
	AmountCents uint32
	Status      string
	BookingID   uint64
}

// CreateTx inserts a transaction row within the scope of an existing
// database transaction and populates the generated ID and reference.
func (r *TransactionRepo) CreateTx(ctx context.Context, tx *sql.Tx, t *TransactionRecord) error {
	t.Reference = uuid.NewString()
	res, err := tx.ExecContext(ctx,
		"INSERT INTO transactions (reference, amount_cents, status, booking_id) VALUES (?,?,?,?)",
		t.Reference, t.AmountCents, t.Status, t.BookingID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// DeleteByBookingTx removes the transaction rows belonging to a booking.
// Called before deleting the booking itself so no orphans remain.
func (r *TransactionRepo) DeleteByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM transactions WHERE booking_id = ?", bookingID)
	return err
}

// List returns all transactions, newest first.
func (r *TransactionRepo) List(ctx context.Context) ([]model.Transaction, error) {
	const q = `SELECT id, reference, amount_cents, status, booking_id, created_at
	           FROM transactions ORDER BY created_at DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	txs := make([]model.Transaction, 0)
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.Reference, &t.AmountCents, &t.Status, &t.BookingID, &t.CreatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// GetByBooking fetches the transaction attached to a booking.
// sql.ErrNoRows when the booking has none.
func (r *TransactionRepo) GetByBooking(ctx context.Context, bookingID uint64) (model.Transaction, error) {
	var t model.Transaction
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, reference, amount_cents, status, booking_id, created_at
		 FROM transactions WHERE booking_id = ? LIMIT 1`, bookingID).
		Scan(&t.ID, &t.Reference, &t.AmountCents, &t.Status, &t.BookingID, &t.CreatedAt)
	return t, err
}

// UpdateStatus mutates the status of a transaction, the only field that
// changes after creation.  sql.ErrNoRows when the transaction is gone.
func (r *TransactionRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	var one int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM transactions WHERE id=? LIMIT 1", id).Scan(&one); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE transactions SET status=? WHERE id=?", status, id)
	return err
}
