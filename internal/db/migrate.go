package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are written to be
// re-runnable; ALTER TABLE additions tolerate "duplicate column name".
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                TEXT PRIMARY KEY,
		phone             TEXT NOT NULL UNIQUE,
		display_name      TEXT NOT NULL DEFAULT '',
		timezone          TEXT NOT NULL DEFAULT 'UTC',
		interaction_count INTEGER NOT NULL DEFAULT 0 CHECK(interaction_count >= 0),
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS habits (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		category   TEXT NOT NULL DEFAULT 'other'
		           CHECK(category IN ('physical','mental','social','sleep','nutrition','other')),
		active     INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_habits_user ON habits(user_id, active)`,

	`CREATE TABLE IF NOT EXISTS habit_completions (
		id        TEXT PRIMARY KEY,
		user_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		habit_id  TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
		timestamp TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE INDEX IF NOT EXISTS idx_completions_user_ts ON habit_completions(user_id, timestamp)`,

	`CREATE TABLE IF NOT EXISTS mood_samples (
		id        TEXT PRIMARY KEY,
		user_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		timestamp TEXT NOT NULL,
		level     INTEGER NOT NULL CHECK(level BETWEEN 1 AND 10),
		free_text TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_mood_user_ts ON mood_samples(user_id, timestamp)`,

	`CREATE TABLE IF NOT EXISTS correlations (
		user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		factor_name  TEXT NOT NULL,
		impact       REAL NOT NULL CHECK(impact BETWEEN -1 AND 1),
		confidence   REAL NOT NULL CHECK(confidence BETWEEN 0 AND 1),
		sample_count INTEGER NOT NULL DEFAULT 0,
		computed_at  TEXT NOT NULL,
		PRIMARY KEY (user_id, factor_name)
	)`,
}
