package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/firmdesk/internal/domain"
)

// ValidateSchema checks every row against the catalog and returns all
// problems found, not just the first.
func ValidateSchema(schema *Schema, catalog domain.Catalog) []error {
	var errs []error
	ids := make(map[string]string)

	for i, e := range schema.Engagements {
		field := fmt.Sprintf("engagements[%d]", i)
		errs = append(errs, checkID(ids, field, e.ID)...)
		errs = append(errs, validateEngagement(field, &e, catalog)...)
	}
	for i, p := range schema.Prospects {
		field := fmt.Sprintf("prospects[%d]", i)
		errs = append(errs, checkID(ids, field, p.ID)...)
		errs = append(errs, validateProspect(field, &p, catalog)...)
	}
	return errs
}

func checkID(seen map[string]string, field, id string) []error {
	if id == "" {
		return nil
	}
	if prev, dup := seen[id]; dup {
		return []error{fmt.Errorf("%s.id: duplicate id %q (first used by %s)", field, id, prev)}
	}
	seen[id] = field
	return nil
}

func validateEngagement(field string, e *EngagementImport, catalog domain.Catalog) []error {
	var errs []error

	if e.ClientName == "" {
		errs = append(errs, fmt.Errorf("%s.client_name is required", field))
	}
	if e.Service == "" {
		errs = append(errs, fmt.Errorf("%s.service is required", field))
	} else if !catalog.KnownService(e.Service) {
		errs = append(errs, fmt.Errorf("%s.service: unknown service %q", field, e.Service))
	}
	if e.Partner != "" && !catalog.KnownPartner(e.Partner) {
		errs = append(errs, fmt.Errorf("%s.partner: unknown partner %q", field, e.Partner))
	}
	if e.Status == "" {
		errs = append(errs, fmt.Errorf("%s.status is required", field))
	} else if !catalog.KnownStatus(e.Status) {
		errs = append(errs, fmt.Errorf("%s.status: unknown status %q", field, e.Status))
	}
	if e.DueDate != nil {
		if _, err := time.Parse(dateLayout, *e.DueDate); err != nil {
			errs = append(errs, fmt.Errorf("%s.due_date: invalid date format %q (expected YYYY-MM-DD)", field, *e.DueDate))
		}
	}
	if e.CreatedAt != nil {
		if _, err := parseTimestamp(*e.CreatedAt); err != nil {
			errs = append(errs, fmt.Errorf("%s.created_at: %w", field, err))
		}
	}
	if e.DocumentCount < 0 {
		errs = append(errs, fmt.Errorf("%s.document_count must be >= 0, got %d", field, e.DocumentCount))
	}
	if e.LoggedHours != nil && *e.LoggedHours < 0 {
		errs = append(errs, fmt.Errorf("%s.logged_hours must be >= 0, got %g", field, *e.LoggedHours))
	}
	return errs
}

func validateProspect(field string, p *ProspectImport, catalog domain.Catalog) []error {
	var errs []error

	if p.ClientName == "" {
		errs = append(errs, fmt.Errorf("%s.client_name is required", field))
	}
	if p.Service == "" {
		errs = append(errs, fmt.Errorf("%s.service is required", field))
	} else if !catalog.KnownService(p.Service) {
		errs = append(errs, fmt.Errorf("%s.service: unknown service %q", field, p.Service))
	}
	if p.Partner != "" && !catalog.KnownPartner(p.Partner) {
		errs = append(errs, fmt.Errorf("%s.partner: unknown partner %q", field, p.Partner))
	}
	if p.CreatedAt != nil {
		if _, err := parseTimestamp(*p.CreatedAt); err != nil {
			errs = append(errs, fmt.Errorf("%s.created_at: %w", field, err))
		}
	}
	if p.ProjectedRevenue < 0 {
		errs = append(errs, fmt.Errorf("%s.projected_revenue must be >= 0, got %g", field, p.ProjectedRevenue))
	}
	return errs
}

// parseTimestamp accepts RFC3339 or a bare date.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q (expected RFC3339 or YYYY-MM-DD)", s)
	}
	return t, nil
}
