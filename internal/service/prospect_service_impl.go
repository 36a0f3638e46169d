package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/alexanderramin/firmdesk/internal/repository"
	"github.com/google/uuid"
)

type prospectService struct {
	prospects repository.ProspectRepo
	observer  UseCaseObserver
}

func NewProspectService(prospects repository.ProspectRepo, observers ...UseCaseObserver) ProspectService {
	return &prospectService{prospects: prospects, observer: useCaseObserverOrNoop(observers)}
}

func (s *prospectService) Create(ctx context.Context, p *domain.Prospect) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid prospect: %w", err)
	}
	return s.prospects.Create(ctx, p)
}

func (s *prospectService) GetByID(ctx context.Context, id string) (*domain.Prospect, error) {
	return s.prospects.GetByID(ctx, id)
}

func (s *prospectService) List(ctx context.Context) (rows []*domain.Prospect, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "list-prospects", time.Now(), fields, &err)

	rows, err = s.prospects.List(ctx)
	fields["rows"] = len(rows)
	return rows, err
}

func (s *prospectService) Delete(ctx context.Context, id string) error {
	return s.prospects.Delete(ctx, id)
}
