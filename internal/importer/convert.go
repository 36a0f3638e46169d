package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/google/uuid"
)

// Batch is a converted seed file ready for persistence.
type Batch struct {
	Engagements []*domain.Engagement
	Prospects   []*domain.Prospect
}

// Convert turns a validated schema into domain rows. Rows without a
// created_at are stamped with now, a second apart in file order.
// Call ValidateSchema first; Convert only reports parse failures.
func Convert(schema *Schema, now time.Time) (*Batch, error) {
	now = now.UTC().Truncate(time.Second)
	batch := &Batch{
		Engagements: make([]*domain.Engagement, 0, len(schema.Engagements)),
		Prospects:   make([]*domain.Prospect, 0, len(schema.Prospects)),
	}

	for i, in := range schema.Engagements {
		created, err := createdAt(in.CreatedAt, now, i)
		if err != nil {
			return nil, fmt.Errorf("engagements[%d]: %w", i, err)
		}
		e := &domain.Engagement{
			ID:            idOrNew(in.ID),
			ClientName:    in.ClientName,
			BusinessName:  in.BusinessName,
			Service:       in.Service,
			Partner:       in.Partner,
			Referral:      in.Referral,
			Status:        in.Status,
			CreatedAt:     created,
			DocumentCount: in.DocumentCount,
		}
		if in.LoggedHours != nil {
			e.LoggedHours = *in.LoggedHours
		}
		if in.DueDate != nil {
			due, err := time.Parse(dateLayout, *in.DueDate)
			if err != nil {
				return nil, fmt.Errorf("engagements[%d]: parsing due_date: %w", i, err)
			}
			e.DueDate = &due
		}
		batch.Engagements = append(batch.Engagements, e)
	}

	for i, in := range schema.Prospects {
		created, err := createdAt(in.CreatedAt, now, i)
		if err != nil {
			return nil, fmt.Errorf("prospects[%d]: %w", i, err)
		}
		batch.Prospects = append(batch.Prospects, &domain.Prospect{
			ID:               idOrNew(in.ID),
			ClientName:       in.ClientName,
			BusinessName:     in.BusinessName,
			IsIndividual:     in.IsIndividual,
			Service:          in.Service,
			Partner:          in.Partner,
			ReferredBy:       in.ReferredBy,
			CreatedAt:        created,
			ProjectedRevenue: in.ProjectedRevenue,
		})
	}
	return batch, nil
}

func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

func createdAt(raw *string, now time.Time, i int) (time.Time, error) {
	if raw == nil {
		return now.Add(time.Duration(i) * time.Second), nil
	}
	return parseTimestamp(*raw)
}
