package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/firmdesk/internal/db"
	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/alexanderramin/firmdesk/internal/importer"
	"github.com/alexanderramin/firmdesk/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	catalog  domain.Catalog
	now      func() time.Time
	observer UseCaseObserver
}

// NewImportService validates seed files against catalog and writes each
// file in a single transaction.
func NewImportService(uow db.UnitOfWork, catalog domain.Catalog, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		catalog:  catalog,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) Import(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

func (s *importService) ImportSchema(ctx context.Context, schema *importer.Schema) (result *ImportResult, err error) {
	fields := map[string]any{"rows": schema.Len()}
	defer observe(ctx, s.observer, "import", time.Now(), fields, &err)

	if errs := importer.ValidateSchema(schema, s.catalog); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	batch, err := importer.Convert(schema, s.now())
	if err != nil {
		return nil, fmt.Errorf("converting import file: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		engagements := repository.NewSQLiteEngagementRepo(tx)
		for _, e := range batch.Engagements {
			if err := engagements.Create(ctx, e); err != nil {
				return fmt.Errorf("creating engagement %q: %w", e.ClientName, err)
			}
		}
		prospects := repository.NewSQLiteProspectRepo(tx)
		for _, p := range batch.Prospects {
			if err := prospects.Create(ctx, p); err != nil {
				return fmt.Errorf("creating prospect %q: %w", p.ClientName, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		EngagementCount: len(batch.Engagements),
		ProspectCount:   len(batch.Prospects),
	}, nil
}

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return fmt.Errorf("%s", b.String())
}
