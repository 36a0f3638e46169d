package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/firmdesk/internal/domain"
)

// ErrNotFound is returned by lookups and updates that match no row.
var ErrNotFound = errors.New("not found")

// EngagementRepo stores engagements. List returns rows in insertion order,
// which is the order the client tables present them in.
type EngagementRepo interface {
	Create(ctx context.Context, e *domain.Engagement) error
	GetByID(ctx context.Context, id string) (*domain.Engagement, error)
	List(ctx context.Context) ([]*domain.Engagement, error)
	UpdateLoggedHours(ctx context.Context, id string, hours float64) error
	Delete(ctx context.Context, id string) error
}

type ProspectRepo interface {
	Create(ctx context.Context, p *domain.Prospect) error
	GetByID(ctx context.Context, id string) (*domain.Prospect, error)
	List(ctx context.Context) ([]*domain.Prospect, error)
	Delete(ctx context.Context, id string) error
}
