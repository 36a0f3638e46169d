package cli

import (
	"testing"

	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/alexanderramin/firmdesk/internal/filter"
	"github.com/alexanderramin/firmdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementFormValues_EmptyIsAny(t *testing.T) {
	vals := &engagementFormValues{Search: "   "}
	assert.True(t, vals.criteria().IsZero())
}

func TestEngagementFormValues_Criteria(t *testing.T) {
	vals := &engagementFormValues{
		Search:   " acme ",
		Service:  "Audit",
		Referral: domain.NoReferral,
		From:     "2025-01-01",
		To:       "not a date",
		LateOnly: true,
	}

	c := vals.criteria()
	require.NotNil(t, c.Search)
	assert.Equal(t, "acme", *c.Search)
	assert.Equal(t, "Audit", *c.Service)
	assert.Equal(t, domain.NoReferral, *c.Referral)
	assert.Nil(t, c.Partner)
	assert.Equal(t, testutil.Date(2025, 1, 1), *c.From)
	assert.Nil(t, c.To)
	assert.True(t, c.LateOnly)
}

func TestEngagementFormValues_PrefillFromCriteria(t *testing.T) {
	from := testutil.Date(2025, 2, 1)
	c := filter.EngagementCriteria{Partner: domain.StrPtr("R. Chen"), From: &from}

	assert.True(t, engagementValuesFrom(c).criteria().Equal(c))
}

func TestProspectFormValues_Criteria(t *testing.T) {
	vals := &prospectFormValues{Individual: "no", MinRevenue: "2500"}
	c := vals.criteria()
	require.NotNil(t, c.IndividualOnly)
	assert.False(t, *c.IndividualOnly)
	assert.Equal(t, 2500.0, *c.MinRevenue)

	vals = &prospectFormValues{Individual: "", MinRevenue: "-3"}
	c = vals.criteria()
	assert.Nil(t, c.IndividualOnly)
	assert.Nil(t, c.MinRevenue)
}

func TestFormValidators(t *testing.T) {
	assert.NoError(t, validateDate(""))
	assert.NoError(t, validateDate("2025-06-01"))
	assert.Error(t, validateDate("06/01/2025"))

	assert.NoError(t, validateNonNegativeFloat(""))
	assert.NoError(t, validateNonNegativeFloat("0"))
	assert.Error(t, validateNonNegativeFloat("-1"))

	assert.NoError(t, validatePositiveFloat("0.25"))
	assert.Error(t, validatePositiveFloat("0"))
	assert.Error(t, validatePositiveFloat(""))
}

func TestSelectOptionsLeadWithAny(t *testing.T) {
	opts := selectOptions([]string{"Audit", "Payroll"})
	require.Len(t, opts, 3)
	assert.Equal(t, anyOption, opts[0].Key)
	assert.Equal(t, "", opts[0].Value)
	assert.Equal(t, "Payroll", opts[2].Value)
}
