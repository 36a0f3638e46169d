package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is replayed on each open.
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

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS engagements (
		id             TEXT PRIMARY KEY,
		seq            INTEGER NOT NULL,
		client_name    TEXT NOT NULL,
		business_name  TEXT,
		service        TEXT NOT NULL,
		partner        TEXT NOT NULL DEFAULT '',
		referral       TEXT,
		status         TEXT NOT NULL,
		due_date       TEXT,
		document_count INTEGER NOT NULL DEFAULT 0 CHECK(document_count >= 0),
		created_at     TEXT NOT NULL
	)`,
	// Logged hours arrived after the first release.
	`ALTER TABLE engagements ADD COLUMN logged_hours REAL NOT NULL DEFAULT 0`,
	`CREATE INDEX IF NOT EXISTS idx_engagements_seq ON engagements(seq)`,
	`CREATE INDEX IF NOT EXISTS idx_engagements_status ON engagements(status)`,

	`CREATE TABLE IF NOT EXISTS prospects (
		id                TEXT PRIMARY KEY,
		seq               INTEGER NOT NULL,
		client_name       TEXT NOT NULL,
		business_name     TEXT,
		is_individual     INTEGER NOT NULL DEFAULT 0,
		service           TEXT NOT NULL,
		partner           TEXT NOT NULL DEFAULT '',
		referred_by       TEXT,
		projected_revenue REAL NOT NULL DEFAULT 0 CHECK(projected_revenue >= 0),
		created_at        TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_prospects_seq ON prospects(seq)`,
}
