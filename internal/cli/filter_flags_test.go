package cli

import (
	"testing"

	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/alexanderramin/firmdesk/internal/testutil"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseEngagementFlags(t *testing.T, args ...string) (*engagementFlags, *pflag.FlagSet) {
	t.Helper()
	var f engagementFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse(args))
	return &f, fs
}

func TestEngagementFlags_UnsetMeansNoConstraint(t *testing.T) {
	f, fs := parseEngagementFlags(t)

	c, err := f.criteria(fs)
	require.NoError(t, err)
	assert.True(t, c.IsZero())
}

func TestEngagementFlags_Values(t *testing.T) {
	f, fs := parseEngagementFlags(t,
		"--service", "Audit", "--status", "Filed", "--referral", "none",
		"--from", "2025-01-01", "--to", "2025-03-31", "--late")

	c, err := f.criteria(fs)
	require.NoError(t, err)
	require.NotNil(t, c.Service)
	assert.Equal(t, "Audit", *c.Service)
	assert.Equal(t, "Filed", *c.Status)
	assert.Equal(t, domain.NoReferral, *c.Referral)
	assert.Nil(t, c.Partner)
	assert.Equal(t, testutil.Date(2025, 1, 1), *c.From)
	assert.Equal(t, testutil.Date(2025, 3, 31), *c.To)
	assert.True(t, c.LateOnly)
}

func TestProspectFlags_Values(t *testing.T) {
	var f prospectFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse([]string{"--individual=false", "--min-revenue", "0"}))

	c, err := f.criteria(fs)
	require.NoError(t, err)
	require.NotNil(t, c.IndividualOnly)
	assert.False(t, *c.IndividualOnly)
	require.NotNil(t, c.MinRevenue)
	assert.Zero(t, *c.MinRevenue)
	assert.Nil(t, c.ReferredBy)
}
