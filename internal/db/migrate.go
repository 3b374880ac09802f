package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are executed in order on every open. Statements must be
// idempotent (CREATE IF NOT EXISTS) or raise errors Migrate tolerates.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS prompt_archive (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		target TEXT NOT NULL CHECK (target IN ('v0', 'figma')),
		summary TEXT NOT NULL DEFAULT '',
		prompt TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE INDEX IF NOT EXISTS idx_prompt_archive_user
		ON prompt_archive(user_id, created_at DESC)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
