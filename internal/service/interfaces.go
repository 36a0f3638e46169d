package service

import (
	"context"

	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/alexanderramin/firmdesk/internal/importer"
)

type EngagementService interface {
	Create(ctx context.Context, e *domain.Engagement) error
	GetByID(ctx context.Context, id string) (*domain.Engagement, error)
	List(ctx context.Context) ([]*domain.Engagement, error)
	// LogHours adds hours to an engagement's logged total and returns the
	// updated row.
	LogHours(ctx context.Context, id string, hours float64) (*domain.Engagement, error)
	Delete(ctx context.Context, id string) error
}

type ProspectService interface {
	Create(ctx context.Context, p *domain.Prospect) error
	GetByID(ctx context.Context, id string) (*domain.Prospect, error)
	List(ctx context.Context) ([]*domain.Prospect, error)
	Delete(ctx context.Context, id string) error
}

// ImportResult holds the outcome of a seed file import.
type ImportResult struct {
	EngagementCount int
	ProspectCount   int
}

type ImportService interface {
	Import(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.Schema) (*ImportResult, error)
}
