package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/firmdesk/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	conn, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn, db.NewSQLiteUnitOfWork(conn)
}

func insertProspect(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO prospects (id, seq, client_name, service, created_at)
		VALUES (?, 1, 'Lead', 'Audit', '2025-01-01T00:00:00Z')`, id)
	return err
}

func countProspects(t *testing.T, conn *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM prospects`).Scan(&n))
	return n
}

func TestWithinTx(t *testing.T) {
	errBoom := errors.New("deliberate failure")

	tests := []struct {
		name      string
		fn        func(ctx context.Context, tx db.DBTX) error
		wantErr   error
		wantCount int
	}{
		{
			name: "commit on success",
			fn: func(ctx context.Context, tx db.DBTX) error {
				if err := insertProspect(ctx, tx, "p1"); err != nil {
					return err
				}
				return insertProspect(ctx, tx, "p2")
			},
			wantCount: 2,
		},
		{
			name: "rollback on error",
			fn: func(ctx context.Context, tx db.DBTX) error {
				if err := insertProspect(ctx, tx, "p1"); err != nil {
					return err
				}
				return errBoom
			},
			wantErr:   errBoom,
			wantCount: 0,
		},
		{
			name: "rollback on constraint violation",
			fn: func(ctx context.Context, tx db.DBTX) error {
				if err := insertProspect(ctx, tx, "dup"); err != nil {
					return err
				}
				return insertProspect(ctx, tx, "dup")
			},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, uow := openUoW(t)
			err := uow.WithinTx(context.Background(), tt.fn)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCount == 0:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCount, countProspects(t, conn))
		})
	}
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	conn, uow := openUoW(t)

	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertProspect(ctx, tx, "p1")
			panic("boom")
		})
	})
	assert.Equal(t, 0, countProspects(t, conn))
}
