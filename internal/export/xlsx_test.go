package export

import (
	"bytes"
	"testing"

	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/alexanderramin/firmdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readSheet(t *testing.T, buf *bytes.Buffer, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheet}, f.GetSheetList())
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestEngagements(t *testing.T) {
	rows := []*domain.Engagement{
		testutil.NewTestEngagement("Ada Lovelace",
			testutil.WithBusiness("Engines Ltd"),
			testutil.WithDueDate(testutil.Date(2025, 1, 10)),
			testutil.WithDocuments(2),
			testutil.WithLoggedHours(1.5),
		),
		testutil.NewTestEngagement("Alan Turing", testutil.WithReferral("Website")),
	}

	var buf bytes.Buffer
	require.NoError(t, Engagements(&buf, rows, testutil.FixedNow))

	got := readSheet(t, &buf, EngagementSheet)
	require.Len(t, got, 3)
	assert.Equal(t, "Client", got[0][0])
	assert.Equal(t, "Hours", got[0][10])

	assert.Equal(t, "Ada Lovelace", got[1][0])
	assert.Equal(t, "Engines Ltd", got[1][1])
	assert.Equal(t, domain.NoReferral, got[1][4])
	assert.Equal(t, "2025-01-10", got[1][7])
	assert.Equal(t, "yes", got[1][8])
	assert.Equal(t, "2", got[1][9])
	assert.Equal(t, "1.5", got[1][10])

	assert.Equal(t, "Alan Turing", got[2][0])
	assert.Equal(t, "Website", got[2][4])
	assert.Equal(t, "", got[2][7])
	assert.Equal(t, "no", got[2][8])
}

func TestProspects(t *testing.T) {
	rows := testutil.ManyProspects(3, testutil.WithRevenue(250))
	rows[1].ReferredBy = domain.StrPtr("Ada")

	var buf bytes.Buffer
	require.NoError(t, Prospects(&buf, rows))

	got := readSheet(t, &buf, ProspectSheet)
	require.Len(t, got, 4)
	assert.Equal(t, "Projected Revenue", got[0][7])
	for i, r := range got[1:] {
		assert.Equal(t, rows[i].ClientName, r[0])
		assert.Equal(t, "yes", r[2])
		assert.Equal(t, "250", r[7])
	}
	assert.Equal(t, "Ada", got[2][5])
	assert.Equal(t, domain.NoReferral, got[1][5])
}

func TestEngagements_EmptyWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Engagements(&buf, nil, testutil.FixedNow))

	got := readSheet(t, &buf, EngagementSheet)
	require.Len(t, got, 1)
	assert.Len(t, got[0], len(engagementHeader))
}
