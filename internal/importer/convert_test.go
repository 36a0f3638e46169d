package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var convertNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func TestConvert_Engagements(t *testing.T) {
	s := validSchema()
	s.Engagements[0].ID = "eng-1"
	s.Engagements[0].LoggedHours = ptrFloat(3.5)
	s.Engagements[0].DocumentCount = 4

	batch, err := Convert(s, convertNow)
	require.NoError(t, err)
	require.Len(t, batch.Engagements, 2)

	first := batch.Engagements[0]
	assert.Equal(t, "eng-1", first.ID)
	assert.Equal(t, 3.5, first.LoggedHours)
	assert.Equal(t, 4, first.DocumentCount)
	require.NotNil(t, first.DueDate)
	assert.Equal(t, time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC), *first.DueDate)
	assert.Nil(t, first.Referral)

	second := batch.Engagements[1]
	assert.NotEmpty(t, second.ID)
	assert.Nil(t, second.DueDate)
	require.NotNil(t, second.Referral)
	assert.Equal(t, "Website", *second.Referral)
}

func TestConvert_CreatedAtDefaultsKeepFileOrder(t *testing.T) {
	batch, err := Convert(validSchema(), convertNow)
	require.NoError(t, err)

	assert.Equal(t, convertNow, batch.Engagements[0].CreatedAt)
	assert.True(t, batch.Engagements[1].CreatedAt.After(batch.Engagements[0].CreatedAt))
}

func TestConvert_ExplicitCreatedAt(t *testing.T) {
	s := validSchema()
	s.Engagements[0].CreatedAt = ptrStr("2024-11-02")
	s.Prospects[0].CreatedAt = ptrStr("2024-11-03T08:00:00+02:00")

	batch, err := Convert(s, convertNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC), batch.Engagements[0].CreatedAt)
	assert.Equal(t, time.Date(2024, 11, 3, 6, 0, 0, 0, time.UTC), batch.Prospects[0].CreatedAt)
}

func TestConvert_Prospects(t *testing.T) {
	s := validSchema()
	s.Prospects[0].ReferredBy = ptrStr("Ada Lovelace")

	batch, err := Convert(s, convertNow)
	require.NoError(t, err)
	require.Len(t, batch.Prospects, 1)

	p := batch.Prospects[0]
	assert.Equal(t, "Grace Hopper", p.ClientName)
	assert.True(t, p.IsIndividual)
	assert.Equal(t, 1200.0, p.ProjectedRevenue)
	require.NotNil(t, p.ReferredBy)
	assert.Equal(t, "Ada Lovelace", *p.ReferredBy)
}

func TestConvert_GeneratesUniqueIDs(t *testing.T) {
	batch, err := Convert(validSchema(), convertNow)
	require.NoError(t, err)
	assert.NotEqual(t, batch.Engagements[0].ID, batch.Engagements[1].ID)
}
