package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/alexanderramin/firmdesk/internal/filter"
	"github.com/spf13/pflag"
)

const dateLayout = "2006-01-02"

// noneValue selects rows without a referral on the command line.
const noneValue = "none"

// engagementFlags binds the "All Clients" filters to a flag set. Only flags
// the user set become constraints.
type engagementFlags struct {
	search, service, partner, status, referral string
	from, to                                   string
	late                                       bool
}

func (f *engagementFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.search, "search", "", "Case-insensitive match on client or business name")
	fs.StringVar(&f.service, "service", "", "Service category")
	fs.StringVar(&f.partner, "partner", "", "Assigned partner")
	fs.StringVar(&f.status, "status", "", "Workflow status")
	fs.StringVar(&f.referral, "referral", "", `Referral source ("none" for no referral)`)
	fs.StringVar(&f.from, "from", "", "Earliest due date (YYYY-MM-DD)")
	fs.StringVar(&f.to, "to", "", "Latest due date (YYYY-MM-DD)")
	fs.BoolVar(&f.late, "late", false, "Only engagements past their due date")
}

func (f *engagementFlags) criteria(fs *pflag.FlagSet) (filter.EngagementCriteria, error) {
	c := filter.EngagementCriteria{
		Search:   changedString(fs, "search", f.search),
		Service:  changedString(fs, "service", f.service),
		Partner:  changedString(fs, "partner", f.partner),
		Status:   changedString(fs, "status", f.status),
		Referral: referralFlag(fs, "referral", f.referral),
		LateOnly: f.late,
	}
	var err error
	if c.From, err = dateFlag(fs, "from", f.from); err != nil {
		return c, err
	}
	if c.To, err = dateFlag(fs, "to", f.to); err != nil {
		return c, err
	}
	if c.From != nil && c.To != nil && c.To.Before(*c.From) {
		return c, fmt.Errorf("--to %s is before --from %s", f.to, f.from)
	}
	return c, nil
}

// prospectFlags binds the "New Clients" filters to a flag set.
type prospectFlags struct {
	search, service, partner, referredBy string
	individual                           bool
	minRevenue                           float64
}

func (f *prospectFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.search, "search", "", "Case-insensitive match on client or business name")
	fs.StringVar(&f.service, "service", "", "Projected service category")
	fs.StringVar(&f.partner, "partner", "", "Assigned partner")
	fs.StringVar(&f.referredBy, "referred-by", "", `Referrer name ("none" for no referrer)`)
	fs.BoolVar(&f.individual, "individual", false, "Only individuals (--individual=false for businesses)")
	fs.Float64Var(&f.minRevenue, "min-revenue", 0, "Minimum projected revenue")
}

func (f *prospectFlags) criteria(fs *pflag.FlagSet) (filter.ProspectCriteria, error) {
	c := filter.ProspectCriteria{
		Search:     changedString(fs, "search", f.search),
		Service:    changedString(fs, "service", f.service),
		Partner:    changedString(fs, "partner", f.partner),
		ReferredBy: referralFlag(fs, "referred-by", f.referredBy),
	}
	if fs.Changed("individual") {
		v := f.individual
		c.IndividualOnly = &v
	}
	if fs.Changed("min-revenue") {
		if f.minRevenue < 0 {
			return c, fmt.Errorf("--min-revenue must be non-negative, got %g", f.minRevenue)
		}
		v := f.minRevenue
		c.MinRevenue = &v
	}
	return c, nil
}

func changedString(fs *pflag.FlagSet, name, value string) *string {
	if !fs.Changed(name) {
		return nil
	}
	return &value
}

func referralFlag(fs *pflag.FlagSet, name, value string) *string {
	p := changedString(fs, name, value)
	if p != nil && (strings.EqualFold(*p, noneValue) || *p == "") {
		s := domain.NoReferral
		return &s
	}
	return p
}

func dateFlag(fs *pflag.FlagSet, name, value string) (*time.Time, error) {
	if !fs.Changed(name) || value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date %q: %w", name, value, err)
	}
	return &t, nil
}
