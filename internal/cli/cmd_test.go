package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/alexanderramin/firmdesk/internal/export"
	"github.com/alexanderramin/firmdesk/internal/repository"
	"github.com/alexanderramin/firmdesk/internal/service"
	"github.com/alexanderramin/firmdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// testApp wires a full App backed by an in-memory DB, a frozen clock and
// inline filtering.
func testApp(t *testing.T) *App {
	t.Helper()
	conn := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(conn)

	engagements := service.NewEngagementService(repository.NewSQLiteEngagementRepo(conn), uow)
	prospects := service.NewProspectService(repository.NewSQLiteProspectRepo(conn))

	return &App{
		Engagements: engagements,
		Prospects:   prospects,
		Import:      service.NewImportService(uow, domain.DefaultCatalog()),
		Loader:      service.NewLoader(engagements, prospects, testutil.Clock()),
		Settings:    DefaultSettings(),
		Clock:       testutil.Clock(),
	}
}

func seedEngagements(t *testing.T, app *App, rows ...*domain.Engagement) {
	t.Helper()
	for _, e := range rows {
		require.NoError(t, app.Engagements.Create(context.Background(), e))
	}
}

func seedProspects(t *testing.T, app *App, rows ...*domain.Prospect) {
	t.Helper()
	for _, p := range rows {
		require.NoError(t, app.Prospects.Create(context.Background(), p))
	}
}

// seedDeadlines creates one late, one upcoming and one undated engagement
// relative to testutil.FixedNow (2025-06-15).
func seedDeadlines(t *testing.T, app *App) {
	t.Helper()
	seedEngagements(t, app,
		testutil.NewTestEngagement("Overdue Olsen", testutil.WithDueDate(testutil.Date(2025, 4, 15))),
		testutil.NewTestEngagement("Future Fischer", testutil.WithDueDate(testutil.Date(2025, 9, 30))),
		testutil.NewTestEngagement("Undated Ueda"),
	)
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- Root ---

func TestRootCmd_NonInteractiveShowsHelp(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return false }

	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "engagements")
	assert.Contains(t, out, "prospects")
}

// --- engagements list ---

func TestEngagementsList_All(t *testing.T) {
	app := testApp(t)
	seedDeadlines(t, app)

	out, err := executeCmd(t, app, "engagements", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Overdue Olsen")
	assert.Contains(t, out, "Future Fischer")
	assert.Contains(t, out, "Undated Ueda")
	assert.Contains(t, out, "Showing 3 of 3")
}

func TestEngagementsList_KeepsInsertionOrder(t *testing.T) {
	app := testApp(t)
	seedDeadlines(t, app)

	out, err := executeCmd(t, app, "engagements", "list")
	require.NoError(t, err)
	first := strings.Index(out, "Overdue Olsen")
	second := strings.Index(out, "Future Fischer")
	third := strings.Index(out, "Undated Ueda")
	assert.True(t, first < second && second < third, "rows out of order:\n%s", out)
}

func TestEngagementsList_LateOnlyExcludesUndated(t *testing.T) {
	app := testApp(t)
	seedDeadlines(t, app)

	out, err := executeCmd(t, app, "engagements", "list", "--late")
	require.NoError(t, err)
	assert.Contains(t, out, "Overdue Olsen")
	assert.NotContains(t, out, "Future Fischer")
	assert.NotContains(t, out, "Undated Ueda")
	assert.Contains(t, out, "Showing 1 of 1 (3 total)")
}

func TestEngagementsList_FromOnlyKeepsUndated(t *testing.T) {
	app := testApp(t)
	seedDeadlines(t, app)

	out, err := executeCmd(t, app, "engagements", "list", "--from", "2025-07-01")
	require.NoError(t, err)
	assert.NotContains(t, out, "Overdue Olsen")
	assert.Contains(t, out, "Future Fischer")
	assert.Contains(t, out, "Undated Ueda")
}

func TestEngagementsList_ExactFields(t *testing.T) {
	app := testApp(t)
	seedEngagements(t, app,
		testutil.NewTestEngagement("Audit Anders", testutil.WithService("Audit"), testutil.WithPartner("A. Lowe")),
		testutil.NewTestEngagement("Tax Tanaka"),
	)

	out, err := executeCmd(t, app, "engagements", "list", "--service", "Audit", "--partner", "A. Lowe")
	require.NoError(t, err)
	assert.Contains(t, out, "Audit Anders")
	assert.NotContains(t, out, "Tax Tanaka")
}

func TestEngagementsList_UnknownValueMatchesNothing(t *testing.T) {
	app := testApp(t)
	seedDeadlines(t, app)

	out, err := executeCmd(t, app, "engagements", "list", "--status", "Nonexistent")
	require.NoError(t, err)
	assert.Contains(t, out, "No engagements match.")
}

func TestEngagementsList_ReferralNone(t *testing.T) {
	app := testApp(t)
	seedEngagements(t, app,
		testutil.NewTestEngagement("Referred Reyes", testutil.WithReferral("Smith CPA")),
		testutil.NewTestEngagement("Walk-in Wong"),
	)

	out, err := executeCmd(t, app, "engagements", "list", "--referral", "none")
	require.NoError(t, err)
	assert.Contains(t, out, "Walk-in Wong")
	assert.NotContains(t, out, "Referred Reyes")
}

func TestEngagementsList_SearchIsCaseInsensitive(t *testing.T) {
	app := testApp(t)
	seedEngagements(t, app,
		testutil.NewTestEngagement("Dana Smith", testutil.WithBusiness("Acme Bakery")),
		testutil.NewTestEngagement("Eli Jones"),
	)

	out, err := executeCmd(t, app, "engagements", "list", "--search", "ACME")
	require.NoError(t, err)
	assert.Contains(t, out, "Dana Smith")
	assert.NotContains(t, out, "Eli Jones")
}

func TestEngagementsList_Limit(t *testing.T) {
	app := testApp(t)
	seedEngagements(t, app, testutil.ManyEngagements(5)...)

	out, err := executeCmd(t, app, "engagements", "list", "--limit", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Client 0002")
	assert.NotContains(t, out, "Client 0003")
	assert.Contains(t, out, "Showing 2 of 5")
}

func TestEngagementsList_DefaultsToOneBatch(t *testing.T) {
	app := testApp(t)
	app.Settings.Batch = 3
	seedEngagements(t, app, testutil.ManyEngagements(5)...)

	out, err := executeCmd(t, app, "engagements", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Showing 3 of 5")

	out, err = executeCmd(t, app, "engagements", "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Showing 5 of 5")
}

func TestEngagementsList_InvalidDate(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "engagements", "list", "--from", "06/01/2025")
	assert.ErrorContains(t, err, "invalid --from date")
}

func TestEngagementsList_ToBeforeFrom(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "engagements", "list", "--from", "2025-07-01", "--to", "2025-06-01")
	assert.Error(t, err)
}

// --- engagements options ---

func TestEngagementsOptions(t *testing.T) {
	app := testApp(t)
	seedEngagements(t, app,
		testutil.NewTestEngagement("A", testutil.WithService("Payroll")),
		testutil.NewTestEngagement("B", testutil.WithService("Audit"), testutil.WithReferral("Smith CPA")),
	)

	out, err := executeCmd(t, app, "engagements", "options")
	require.NoError(t, err)
	assert.Contains(t, out, "SERVICE")
	assert.Contains(t, out, "Audit")
	assert.Contains(t, out, "Payroll")
	assert.Contains(t, out, "Smith CPA")
	assert.Contains(t, out, domain.NoReferral)
	assert.Less(t, strings.Index(out, "Audit"), strings.Index(out, "Payroll"))
}

func TestEngagementsOptions_Sample(t *testing.T) {
	app := testApp(t)
	seedEngagements(t, app,
		testutil.NewTestEngagement("A", testutil.WithService("Payroll")),
		testutil.NewTestEngagement("B", testutil.WithService("Audit")),
	)

	out, err := executeCmd(t, app, "engagements", "options", "--sample", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Payroll")
	assert.NotContains(t, out, "Audit")
}

// --- engagements log-hours ---

func TestEngagementsLogHours(t *testing.T) {
	app := testApp(t)
	e := testutil.NewTestEngagement("Hours Hale", testutil.WithLoggedHours(2))
	seedEngagements(t, app, e)

	out, err := executeCmd(t, app, "engagements", "log-hours", e.ID[:8], "1.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged 1.5h on Hours Hale (total 3.5h)")

	got, err := app.Engagements.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, got.LoggedHours, 1e-9)
}

func TestEngagementsLogHours_Rejects(t *testing.T) {
	app := testApp(t)
	e := testutil.NewTestEngagement("Hours Hale")
	seedEngagements(t, app, e)

	_, err := executeCmd(t, app, "engagements", "log-hours", e.ID, "abc")
	assert.ErrorContains(t, err, "invalid hours")

	_, err = executeCmd(t, app, "engagements", "log-hours", e.ID, "-1")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "engagements", "log-hours", "zzzzzzzz", "1")
	assert.ErrorContains(t, err, "engagement not found")
}

// --- prospects ---

func TestProspectsList_Filters(t *testing.T) {
	app := testApp(t)
	seedProspects(t, app,
		testutil.NewTestProspect("Solo Sato", testutil.WithRevenue(500)),
		testutil.NewTestProspect("Corp Cruz", testutil.WithIndividual(false), testutil.WithRevenue(25000),
			testutil.WithProspectBusiness("Cruz Holdings")),
		testutil.NewTestProspect("Big Baker", testutil.WithRevenue(40000)),
	)

	out, err := executeCmd(t, app, "prospects", "list", "--individual=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Corp Cruz")
	assert.NotContains(t, out, "Solo Sato")

	out, err = executeCmd(t, app, "prospects", "list", "--min-revenue", "20000")
	require.NoError(t, err)
	assert.Contains(t, out, "Corp Cruz")
	assert.Contains(t, out, "Big Baker")
	assert.Contains(t, out, "$40,000.00")
	assert.NotContains(t, out, "Solo Sato")

	out, err = executeCmd(t, app, "prospects", "list", "--individual", "--min-revenue", "20000")
	require.NoError(t, err)
	assert.Contains(t, out, "Big Baker")
	assert.NotContains(t, out, "Corp Cruz")
}

func TestProspectsList_NegativeRevenueRejected(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "prospects", "list", "--min-revenue", "-5")
	assert.Error(t, err)
}

func TestProspectsOptions(t *testing.T) {
	app := testApp(t)
	seedProspects(t, app,
		testutil.NewTestProspect("A", testutil.WithReferredBy("Lee")),
		testutil.NewTestProspect("B"),
	)

	out, err := executeCmd(t, app, "leads", "options")
	require.NoError(t, err)
	assert.Contains(t, out, "REFERRED BY")
	assert.Contains(t, out, "Lee")
	assert.Contains(t, out, domain.NoReferral)
}

// --- import / export ---

func TestImportCmd(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "engagements": [
    {"client_name": "Imported Ito", "service": "Tax Return", "partner": "R. Chen", "status": "Kickoff", "due_date": "2025-05-01"}
  ],
  "prospects": [
    {"client_name": "Lead Lopez", "is_individual": true, "service": "Bookkeeping", "projected_revenue": 1200}
  ]
}`), 0o644))

	out, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 engagements and 1 prospects")

	out, err = executeCmd(t, app, "engagements", "list", "--late")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported Ito")
}

func TestImportCmd_InvalidFileWritesNothing(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "engagements": [
    {"client_name": "Good Gomez", "service": "Tax Return", "status": "Kickoff"},
    {"client_name": "", "service": "Tax Return", "status": "Kickoff"}
  ]
}`), 0o644))

	_, err := executeCmd(t, app, "import", path)
	require.Error(t, err)

	rows, err := app.Engagements.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestExportEngagements(t *testing.T) {
	app := testApp(t)
	seedDeadlines(t, app)
	path := filepath.Join(t.TempDir(), "late.xlsx")

	out, err := executeCmd(t, app, "export", "engagements", "--late", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 engagements")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.EngagementSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Overdue Olsen", rows[1][0])
}

func TestExportProspects(t *testing.T) {
	app := testApp(t)
	seedProspects(t, app, testutil.ManyProspects(3)...)
	path := filepath.Join(t.TempDir(), "leads.xlsx")

	_, err := executeCmd(t, app, "export", "prospects", "-o", path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.ProspectSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}
