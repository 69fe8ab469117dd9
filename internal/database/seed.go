package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/byronjee/restaurant-reservation/internal/utils"
)

// Seed populates the floor plan, the staff roster and the bootstrap
// admin account on first start.  It is idempotent: when restaurant
// tables already exist the whole seed is skipped, and the admin account
// is only inserted when missing.
func Seed(ctx context.Context, db *sql.DB, adminPassword string, bcryptCost int) error {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM restaurant_tables").Scan(&n); err != nil {
		return fmt.Errorf("seed: count tables: %w", err)
	}
	if n == 0 {
		// Eight tables: pairs of 2, 4, 6 and 8 seats.
		tables := []struct {
			number uint32
			seats  uint32
		}{
			{1, 2}, {2, 2}, {3, 4}, {4, 4}, {5, 6}, {6, 6}, {7, 8}, {8, 8},
		}
		for _, t := range tables {
			if _, err := db.ExecContext(ctx,
				"INSERT INTO restaurant_tables (table_number, seats, is_available) VALUES (?,?,1)",
				t.number, t.seats); err != nil {
				return fmt.Errorf("seed: insert table %d: %w", t.number, err)
			}
		}
		for _, name := range []string{"Jiteesh", "Byron", "Jene"} {
			if _, err := db.ExecContext(ctx,
				"INSERT INTO staff (name) VALUES (?)", name); err != nil {
				return fmt.Errorf("seed: insert staff %s: %w", name, err)
			}
		}
	}

	// Bootstrap admin login, separate from the floor-plan check so an
	// existing database still gains the account after an upgrade.
	var accounts int
	if err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM accounts WHERE username = 'admin'").Scan(&accounts); err != nil {
		return fmt.Errorf("seed: count accounts: %w", err)
	}
	if accounts == 0 {
		hash, err := utils.HashPassword(adminPassword, bcryptCost)
		if err != nil {
			return fmt.Errorf("seed: hash admin password: %w", err)
		}
		if _, err := db.ExecContext(ctx,
			"INSERT INTO accounts (username, password_hash, role) VALUES ('admin', ?, 'ADMIN')",
			hash); err != nil {
			return fmt.Errorf("seed: insert admin account: %w", err)
		}
	}
	return nil
}
