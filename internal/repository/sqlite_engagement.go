package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/firmdesk/internal/db"
	"github.com/alexanderramin/firmdesk/internal/domain"
)

// SQLiteEngagementRepo implements EngagementRepo. It accepts a db.DBTX so
// the importer can run it inside a unit of work.
type SQLiteEngagementRepo struct {
	db db.DBTX
}

func NewSQLiteEngagementRepo(conn db.DBTX) *SQLiteEngagementRepo {
	return &SQLiteEngagementRepo{db: conn}
}

const engagementColumns = `id, client_name, business_name, service, partner, referral, status,
	due_date, document_count, logged_hours, created_at`

func (r *SQLiteEngagementRepo) Create(ctx context.Context, e *domain.Engagement) error {
	query := `INSERT INTO engagements (seq, ` + engagementColumns + `)
		VALUES ((SELECT COALESCE(MAX(seq), 0) + 1 FROM engagements), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ClientName,
		nullableString(e.BusinessName),
		e.Service,
		e.Partner,
		nullableString(e.Referral),
		e.Status,
		nullableTimeToString(e.DueDate, dateLayout),
		e.DocumentCount,
		e.LoggedHours,
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting engagement: %w", err)
	}
	return nil
}

func (r *SQLiteEngagementRepo) GetByID(ctx context.Context, id string) (*domain.Engagement, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+engagementColumns+` FROM engagements WHERE id = ?`, id)
	e, err := scanEngagement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("engagement %s: %w", id, ErrNotFound)
	}
	return e, err
}

func (r *SQLiteEngagementRepo) List(ctx context.Context) ([]*domain.Engagement, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+engagementColumns+` FROM engagements ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("listing engagements: %w", err)
	}
	defer rows.Close()

	var out []*domain.Engagement
	for rows.Next() {
		e, err := scanEngagement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating engagements: %w", err)
	}
	return out, nil
}

func (r *SQLiteEngagementRepo) UpdateLoggedHours(ctx context.Context, id string, hours float64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE engagements SET logged_hours = ? WHERE id = ?`, hours, id)
	if err != nil {
		return fmt.Errorf("updating logged hours: %w", err)
	}
	return requireAffected(res, "engagement", id)
}

func (r *SQLiteEngagementRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM engagements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting engagement: %w", err)
	}
	return requireAffected(res, "engagement", id)
}

func scanEngagement(s rowScanner) (*domain.Engagement, error) {
	var e domain.Engagement
	var business, referral, due sql.NullString
	var createdAt string

	err := s.Scan(
		&e.ID, &e.ClientName, &business, &e.Service, &e.Partner, &referral, &e.Status,
		&due, &e.DocumentCount, &e.LoggedHours, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning engagement: %w", err)
	}

	e.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	e.BusinessName = stringPtr(business)
	e.Referral = stringPtr(referral)
	e.DueDate, err = parseNullableTime(due, dateLayout)
	if err != nil {
		return nil, fmt.Errorf("parsing due_date of %s: %w", e.ID, err)
	}
	return &e, nil
}
