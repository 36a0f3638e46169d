package importer

import (
	"strings"
	"testing"

	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string     { return &s }
func ptrFloat(f float64) *float64 { return &f }

func validSchema() *Schema {
	return &Schema{
		Engagements: []EngagementImport{
			{ClientName: "Ada Lovelace", Service: "Tax Return", Partner: "R. Chen", Status: "Kickoff", DueDate: ptrStr("2025-04-15")},
			{ClientName: "Alan Turing", BusinessName: ptrStr("Bletchley Ltd"), Service: "Audit", Status: "Review", Referral: ptrStr("Website")},
		},
		Prospects: []ProspectImport{
			{ClientName: "Grace Hopper", Service: "Bookkeeping", IsIndividual: true, ProjectedRevenue: 1200},
		},
	}
}

func TestValidateSchema_Valid(t *testing.T) {
	assert.Empty(t, ValidateSchema(validSchema(), domain.DefaultCatalog()))
}

func TestValidateSchema_EmptyFile(t *testing.T) {
	assert.Empty(t, ValidateSchema(&Schema{}, domain.DefaultCatalog()))
}

func TestValidateSchema_RowErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Schema)
		wantMsg string
	}{
		{"missing client name", func(s *Schema) { s.Engagements[0].ClientName = "" }, "engagements[0].client_name is required"},
		{"missing service", func(s *Schema) { s.Engagements[1].Service = "" }, "engagements[1].service is required"},
		{"unknown service", func(s *Schema) { s.Engagements[0].Service = "Astrology" }, `unknown service "Astrology"`},
		{"unknown partner", func(s *Schema) { s.Engagements[0].Partner = "Nobody" }, `unknown partner "Nobody"`},
		{"missing status", func(s *Schema) { s.Engagements[0].Status = "" }, "engagements[0].status is required"},
		{"unknown status", func(s *Schema) { s.Engagements[0].Status = "Paused" }, `unknown status "Paused"`},
		{"bad due date", func(s *Schema) { s.Engagements[0].DueDate = ptrStr("15/04/2025") }, "engagements[0].due_date: invalid date format"},
		{"bad created at", func(s *Schema) { s.Engagements[0].CreatedAt = ptrStr("yesterday") }, "engagements[0].created_at"},
		{"negative documents", func(s *Schema) { s.Engagements[0].DocumentCount = -1 }, "document_count must be >= 0"},
		{"negative hours", func(s *Schema) { s.Engagements[0].LoggedHours = ptrFloat(-2) }, "logged_hours must be >= 0"},
		{"prospect missing name", func(s *Schema) { s.Prospects[0].ClientName = "" }, "prospects[0].client_name is required"},
		{"prospect unknown service", func(s *Schema) { s.Prospects[0].Service = "Mining" }, `prospects[0].service: unknown service "Mining"`},
		{"negative revenue", func(s *Schema) { s.Prospects[0].ProjectedRevenue = -5 }, "projected_revenue must be >= 0"},
		{"duplicate id across kinds", func(s *Schema) {
			s.Engagements[0].ID = "same"
			s.Prospects[0].ID = "same"
		}, `prospects[0].id: duplicate id "same"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSchema()
			tt.mutate(s)
			errs := ValidateSchema(s, domain.DefaultCatalog())
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0].Error(), tt.wantMsg)
		})
	}
}

func TestValidateSchema_CollectsAllErrors(t *testing.T) {
	s := validSchema()
	s.Engagements[0].ClientName = ""
	s.Engagements[1].Status = "Paused"
	s.Prospects[0].ProjectedRevenue = -1

	errs := ValidateSchema(s, domain.DefaultCatalog())
	assert.Len(t, errs, 3)
}

func TestValidateSchema_EmptyCatalogAcceptsAnyValue(t *testing.T) {
	s := validSchema()
	s.Engagements[0].Service = "Astrology"
	s.Engagements[0].Status = "Paused"
	s.Engagements[0].Partner = "Nobody"

	assert.Empty(t, ValidateSchema(s, domain.Catalog{}))
}

func TestParseSchema_RejectsUnknownFields(t *testing.T) {
	_, err := ParseSchema(strings.NewReader(`{"engagements":[{"client":"typo"}]}`))
	assert.Error(t, err)
}

func TestParseSchema(t *testing.T) {
	s, err := ParseSchema(strings.NewReader(`{
		"engagements": [{"client_name": "Ada", "service": "Audit", "status": "Kickoff", "due_date": "2025-04-15"}],
		"prospects": [{"client_name": "Grace", "service": "Payroll", "is_individual": true, "projected_revenue": 900}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	require.NotNil(t, s.Engagements[0].DueDate)
	assert.Equal(t, "2025-04-15", *s.Engagements[0].DueDate)
	assert.True(t, s.Prospects[0].IsIndividual)
}
