package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'member',
		notification_preference TEXT NOT NULL DEFAULT 'instant',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS event (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		location TEXT NOT NULL,
		category TEXT NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		max_participants INTEGER NOT NULL DEFAULT 0,
		created_by TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		interested_count INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		FOREIGN KEY (created_by) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS event_interest (
		id TEXT PRIMARY KEY,
		event_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'interested',
		created_at TEXT NOT NULL,
		FOREIGN KEY (event_id) REFERENCES event(id),
		FOREIGN KEY (user_id) REFERENCES account(id)
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_event_interest_pair
		ON event_interest(event_id, user_id);

	CREATE TABLE IF NOT EXISTS notification_log (
		id TEXT PRIMARY KEY,
		event_id TEXT NOT NULL DEFAULT '',
		subject TEXT NOT NULL,
		total INTEGER NOT NULL,
		sent INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS notification_outcome (
		id TEXT PRIMARY KEY,
		log_id TEXT NOT NULL,
		recipient_email TEXT NOT NULL,
		status TEXT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (log_id) REFERENCES notification_log(id)
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
