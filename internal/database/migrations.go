package database

import (
	"context"
	"database/sql"
	"time"
)

// schema holds the DDL applied at startup.  Statements are idempotent
// so repeated boots are harmless.  Bookings carry the write-time user
// and seat display snapshot alongside the interval so list views need
// no joins against users.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		phone VARCHAR(32) NOT NULL DEFAULT '',
		role VARCHAR(16) NOT NULL DEFAULT 'USER',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_refresh_tokens_hash (token_hash),
		KEY idx_refresh_tokens_user (user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id CHAR(36) PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		seat_id VARCHAR(64) NOT NULL,
		floor INT NOT NULL,
		start_time DATETIME NOT NULL,
		end_time DATETIME NOT NULL,
		status VARCHAR(16) NOT NULL,
		requires_approval BOOLEAN NOT NULL DEFAULT FALSE,
		user_name VARCHAR(255) NOT NULL DEFAULT '',
		user_email VARCHAR(255) NOT NULL DEFAULT '',
		user_phone VARCHAR(32) NOT NULL DEFAULT '',
		seat_label VARCHAR(64) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		KEY idx_bookings_user (user_id),
		KEY idx_bookings_seat (seat_id),
		KEY idx_bookings_window (start_time, end_time),
		KEY idx_bookings_status (status)
	)`,
}

// Migrate applies the schema.  Called once at startup before the
// server starts accepting requests.
func Migrate(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
