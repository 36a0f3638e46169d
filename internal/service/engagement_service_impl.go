package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/firmdesk/internal/db"
	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/alexanderramin/firmdesk/internal/repository"
	"github.com/google/uuid"
)

type engagementService struct {
	engagements repository.EngagementRepo
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

func NewEngagementService(engagements repository.EngagementRepo, uow db.UnitOfWork, observers ...UseCaseObserver) EngagementService {
	return &engagementService{
		engagements: engagements,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *engagementService) Create(ctx context.Context, e *domain.Engagement) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	if err := e.Validate(); err != nil {
		return fmt.Errorf("invalid engagement: %w", err)
	}
	return s.engagements.Create(ctx, e)
}

func (s *engagementService) GetByID(ctx context.Context, id string) (*domain.Engagement, error) {
	return s.engagements.GetByID(ctx, id)
}

func (s *engagementService) List(ctx context.Context) (rows []*domain.Engagement, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "list-engagements", time.Now(), fields, &err)

	rows, err = s.engagements.List(ctx)
	fields["rows"] = len(rows)
	return rows, err
}

func (s *engagementService) LogHours(ctx context.Context, id string, hours float64) (updated *domain.Engagement, err error) {
	fields := map[string]any{"engagement_id": id, "hours": hours}
	defer observe(ctx, s.observer, "log-hours", time.Now(), fields, &err)

	if hours <= 0 {
		return nil, fmt.Errorf("hours must be positive, got %g", hours)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteEngagementRepo(tx)
		e, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		e.LoggedHours += hours
		if err := repo.UpdateLoggedHours(ctx, id, e.LoggedHours); err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["total_hours"] = updated.LoggedHours
	return updated, nil
}

func (s *engagementService) Delete(ctx context.Context, id string) error {
	return s.engagements.Delete(ctx, id)
}
