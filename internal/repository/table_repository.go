package repository

import (
	"context"
	"database/sql"

	"github.com/byronjee/restaurant-reservation/internal/model"
)

// TableRepo provides CRUD operations over the restaurant's floor plan.
// Tables are seeded at startup and rarely change; the listing order by
// table number is relied on by the day layout for stable display.
type TableRepo struct{ DB *sql.DB }

// NewTableRepo returns a new TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{DB: db} }

// TablesByNumber returns every table ordered by table_number ascending.
func (r *TableRepo) TablesByNumber(ctx context.Context) ([]model.Table, error) {
	const q = `SELECT id, table_number, seats, is_available, created_at, updated_at
	           FROM restaurant_tables
	           ORDER BY table_number ASC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tables := make([]model.Table, 0)
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(&t.ID, &t.TableNumber, &t.Seats, &t.IsAvailable, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// Bookable returns the tables offered on the booking form: ordered by
// number and restricted to is_available.  The flag does not take part in
// date-conflict checks, it only hides soft-retired tables from staff.
func (r *TableRepo) Bookable(ctx context.Context) ([]model.Table, error) {
	const q = `SELECT id, table_number, seats, is_available, created_at, updated_at
	           FROM restaurant_tables
	           WHERE is_available = 1
	           ORDER BY table_number ASC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tables := make([]model.Table, 0)
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(&t.ID, &t.TableNumber, &t.Seats, &t.IsAvailable, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// GetByID fetches a single table.  sql.ErrNoRows when absent.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (model.Table, error) {
	var t model.Table
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, table_number, seats, is_available, created_at, updated_at
		 FROM restaurant_tables WHERE id = ? LIMIT 1`, id).
		Scan(&t.ID, &t.TableNumber, &t.Seats, &t.IsAvailable, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// Create inserts a table and returns its ID.  A duplicate table number
// is reported as ErrConflict.
func (r *TableRepo) Create(ctx context.Context, tableNumber, seats uint32, isAvailable bool) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO restaurant_tables (table_number, seats, is_available) VALUES (?,?,?)",
		tableNumber, seats, isAvailable)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update rewrites a table's number, seats and availability flag.  It
// returns sql.ErrNoRows when the table no longer exists.
func (r *TableRepo) Update(ctx context.Context, id uint64, tableNumber, seats uint32, isAvailable bool) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE restaurant_tables SET table_number=?, seats=?, is_available=? WHERE id=?",
		tableNumber, seats, isAvailable, id)
	if isDuplicateKey(err) {
		return ErrConflict
	}
	return err
}

// Delete removes a table without bookings.  A table that still has
// bookings yields ErrConflict so history is never silently dropped;
// sql.ErrNoRows when the table does not exist.
func (r *TableRepo) Delete(ctx context.Context, id uint64) error {
	var bookings int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE table_id = ?", id).Scan(&bookings); err != nil {
		return err
	}
	if bookings > 0 {
		return ErrConflict
	}
	res, err := r.DB.ExecContext(ctx, "DELETE FROM restaurant_tables WHERE id = ?", id)
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
