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

// SQLiteProspectRepo implements ProspectRepo.
type SQLiteProspectRepo struct {
	db db.DBTX
}

func NewSQLiteProspectRepo(conn db.DBTX) *SQLiteProspectRepo {
	return &SQLiteProspectRepo{db: conn}
}

const prospectColumns = `id, client_name, business_name, is_individual, service, partner, referred_by,
	projected_revenue, created_at`

func (r *SQLiteProspectRepo) Create(ctx context.Context, p *domain.Prospect) error {
	query := `INSERT INTO prospects (seq, ` + prospectColumns + `)
		VALUES ((SELECT COALESCE(MAX(seq), 0) + 1 FROM prospects), ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.ClientName,
		nullableString(p.BusinessName),
		boolToInt(p.IsIndividual),
		p.Service,
		p.Partner,
		nullableString(p.ReferredBy),
		p.ProjectedRevenue,
		p.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting prospect: %w", err)
	}
	return nil
}

func (r *SQLiteProspectRepo) GetByID(ctx context.Context, id string) (*domain.Prospect, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+prospectColumns+` FROM prospects WHERE id = ?`, id)
	p, err := scanProspect(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("prospect %s: %w", id, ErrNotFound)
	}
	return p, err
}

func (r *SQLiteProspectRepo) List(ctx context.Context) ([]*domain.Prospect, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+prospectColumns+` FROM prospects ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("listing prospects: %w", err)
	}
	defer rows.Close()

	var out []*domain.Prospect
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating prospects: %w", err)
	}
	return out, nil
}

func (r *SQLiteProspectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM prospects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting prospect: %w", err)
	}
	return requireAffected(res, "prospect", id)
}

func scanProspect(s rowScanner) (*domain.Prospect, error) {
	var p domain.Prospect
	var business, referredBy sql.NullString
	var individual int
	var createdAt string

	err := s.Scan(
		&p.ID, &p.ClientName, &business, &individual, &p.Service, &p.Partner, &referredBy,
		&p.ProjectedRevenue, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning prospect: %w", err)
	}

	p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	p.IsIndividual = intToBool(individual)
	p.BusinessName = stringPtr(business)
	p.ReferredBy = stringPtr(referredBy)
	return &p, nil
}
