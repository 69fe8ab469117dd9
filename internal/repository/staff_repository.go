package repository

import (
	"context"
	"database/sql"

	"github.com/byronjee/restaurant-reservation/internal/model"
)

// StaffRepo reads the employee roster used to assign bookings.
type StaffRepo struct{ DB *sql.DB }

func NewStaffRepo(db *sql.DB) *StaffRepo { return &StaffRepo{DB: db} }

// List returns all staff ordered by name.
func (r *StaffRepo) List(ctx context.Context) ([]model.Staff, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, created_at FROM staff ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	staff := make([]model.Staff, 0)
	for rows.Next() {
		var s model.Staff
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		staff = append(staff, s)
	}
	return staff, rows.Err()
}

// Exists reports whether a staff row with the given id is present.
func (r *StaffRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM staff WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
