package filter

import (
	"slices"

	"github.com/alexanderramin/firmdesk/internal/domain"
)

// DefaultOptionSample is how many leading rows feed the dropdown options.
// Values that only appear past the sample are not offered.
const DefaultOptionSample = 100

// EngagementOptionSet lists the selectable values per engagement filter.
type EngagementOptionSet struct {
	Services  []string
	Partners  []string
	Statuses  []string
	Referrals []string
}

// ProspectOptionSet lists the selectable values per prospect filter.
type ProspectOptionSet struct {
	Services   []string
	Partners   []string
	ReferredBy []string
}

// EngagementOptions derives sorted, distinct option lists from the first
// sample rows. A non-positive sample uses DefaultOptionSample.
func EngagementOptions(rows []*domain.Engagement, sample int) EngagementOptionSet {
	rows = head(rows, sample)
	services := newDistinct()
	partners := newDistinct()
	statuses := newDistinct()
	referrals := newDistinct()
	for _, r := range rows {
		services.add(r.Service)
		partners.add(r.Partner)
		statuses.add(r.Status)
		referrals.add(r.ReferralOrSentinel())
	}
	return EngagementOptionSet{
		Services:  services.sorted(),
		Partners:  partners.sorted(),
		Statuses:  statuses.sorted(),
		Referrals: referrals.sorted(),
	}
}

// ProspectOptions derives sorted, distinct option lists from the first
// sample rows.
func ProspectOptions(rows []*domain.Prospect, sample int) ProspectOptionSet {
	rows = head(rows, sample)
	services := newDistinct()
	partners := newDistinct()
	referred := newDistinct()
	for _, r := range rows {
		services.add(r.Service)
		partners.add(r.Partner)
		referred.add(r.ReferredByOrSentinel())
	}
	return ProspectOptionSet{
		Services:   services.sorted(),
		Partners:   partners.sorted(),
		ReferredBy: referred.sorted(),
	}
}

func head[T any](rows []T, n int) []T {
	if n <= 0 {
		n = DefaultOptionSample
	}
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}

type distinct map[string]struct{}

func newDistinct() distinct { return make(distinct) }

func (d distinct) add(v string) { d[v] = struct{}{} }

func (d distinct) sorted() []string {
	out := make([]string, 0, len(d))
	for v := range d {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
