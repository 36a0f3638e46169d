package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradeAddsLoggedHours simulates a database created before
// logged hours existed. Existing rows must survive and pick up the default.
func TestMigrate_UpgradeAddsLoggedHours(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE engagements (
		id             TEXT PRIMARY KEY,
		seq            INTEGER NOT NULL,
		client_name    TEXT NOT NULL,
		business_name  TEXT,
		service        TEXT NOT NULL,
		partner        TEXT NOT NULL DEFAULT '',
		referral       TEXT,
		status         TEXT NOT NULL,
		due_date       TEXT,
		document_count INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO engagements (id, seq, client_name, service, status, created_at)
		VALUES ('legacy', 1, 'Old Client', 'Audit', 'Filed', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var name string
	var hours float64
	err = db.QueryRow(`SELECT client_name, logged_hours FROM engagements WHERE id = 'legacy'`).Scan(&name, &hours)
	require.NoError(t, err)
	assert.Equal(t, "Old Client", name)
	assert.Equal(t, 0.0, hours)
}
