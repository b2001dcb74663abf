package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run on
// every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS chats (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL REFERENCES users(id),
		title         TEXT NOT NULL,
		messages_json TEXT NOT NULL,
		timestamp     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_chats_user ON chats(user_id, timestamp)`,

	`CREATE TABLE IF NOT EXISTS timetables (
		user_id       TEXT NOT NULL REFERENCES users(id),
		name          TEXT NOT NULL,
		schedule_json TEXT NOT NULL,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		PRIMARY KEY (user_id, name)
	)`,
}
