package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the schema when it does not exist yet.  Statements
// are IF NOT EXISTS so the call is safe on every start.  The unique key
// on bookings (table_id, booking_date) is the authoritative guard
// against double booking a table on a date.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS restaurant_tables (
			id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			table_number  INT UNSIGNED NOT NULL,
			seats         INT UNSIGNED NOT NULL,
			is_available  TINYINT(1) NOT NULL DEFAULT 1,
			created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_table_number (table_number)
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS staff (
			id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name        VARCHAR(100) NOT NULL,
			created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			booking_date   DATE NOT NULL,
			booking_time   TIME NOT NULL,
			guest_count    INT UNSIGNED NOT NULL,
			customer_name  VARCHAR(100) NOT NULL,
			customer_phone VARCHAR(20) NULL,
			table_id       BIGINT UNSIGNED NOT NULL,
			staff_id       BIGINT UNSIGNED NULL,
			created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_table_date (table_id, booking_date),
			KEY idx_booking_date (booking_date),
			CONSTRAINT fk_bookings_table FOREIGN KEY (table_id) REFERENCES restaurant_tables (id),
			CONSTRAINT fk_bookings_staff FOREIGN KEY (staff_id) REFERENCES staff (id)
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS transactions (
			id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			reference     CHAR(36) NOT NULL,
			amount_cents  INT UNSIGNED NOT NULL,
			status        VARCHAR(20) NOT NULL,
			booking_id    BIGINT UNSIGNED NOT NULL,
			created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_reference (reference),
			KEY idx_tx_booking (booking_id),
			CONSTRAINT fk_tx_booking FOREIGN KEY (booking_id) REFERENCES bookings (id)
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS accounts (
			id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			username      VARCHAR(64) NOT NULL,
			password_hash VARCHAR(100) NOT NULL,
			role          VARCHAR(10) NOT NULL DEFAULT 'STAFF',
			is_active     TINYINT(1) NOT NULL DEFAULT 1,
			created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_username (username)
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS refresh_tokens (
			id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			account_id  BIGINT UNSIGNED NOT NULL,
			token_hash  CHAR(64) NOT NULL,
			expires_at  TIMESTAMP NOT NULL,
			revoked_at  TIMESTAMP NULL,
			created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_token_hash (token_hash),
			KEY idx_rt_account (account_id),
			CONSTRAINT fk_rt_account FOREIGN KEY (account_id) REFERENCES accounts (id)
		) ENGINE=InnoDB`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
