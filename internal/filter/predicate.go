package filter

import (
	"strings"
	"time"

	"github.com/alexanderramin/firmdesk/internal/domain"
)

// Clock supplies the evaluation time for lateness checks.
type Clock func() time.Time

// MatchEngagement reports whether row satisfies every populated constraint
// in c. now is the reference time for LateOnly.
func MatchEngagement(row *domain.Engagement, c EngagementCriteria, now time.Time) bool {
	if !matchSearch(row.DisplayName(), c.Search) {
		return false
	}
	if c.Service != nil && row.Service != *c.Service {
		return false
	}
	if c.Partner != nil && row.Partner != *c.Partner {
		return false
	}
	if c.Status != nil && row.Status != *c.Status {
		return false
	}
	if c.Referral != nil && row.ReferralOrSentinel() != *c.Referral {
		return false
	}
	return matchDueDate(row.DueDate, c, now)
}

// matchDueDate applies the date window and lateness clause.
//
// A row without a due date is kept whenever LateOnly is unset, even if From
// or To is set. That means a From-only filter still lists undated rows.
func matchDueDate(due *time.Time, c EngagementCriteria, now time.Time) bool {
	if !c.hasDateClause() {
		return true
	}
	if due == nil {
		return !c.LateOnly
	}
	if c.From != nil && due.Before(*c.From) {
		return false
	}
	if c.To != nil && due.After(*c.To) {
		return false
	}
	if c.LateOnly && !due.Before(now) {
		return false
	}
	return true
}

// MatchProspect reports whether row satisfies every populated constraint in c.
func MatchProspect(row *domain.Prospect, c ProspectCriteria) bool {
	if !matchSearch(row.DisplayName(), c.Search) {
		return false
	}
	if c.Service != nil && row.Service != *c.Service {
		return false
	}
	if c.Partner != nil && row.Partner != *c.Partner {
		return false
	}
	if c.ReferredBy != nil && row.ReferredByOrSentinel() != *c.ReferredBy {
		return false
	}
	if c.IndividualOnly != nil && row.IsIndividual != *c.IndividualOnly {
		return false
	}
	if c.MinRevenue != nil && row.ProjectedRevenue < *c.MinRevenue {
		return false
	}
	return true
}

func matchSearch(haystack string, search *string) bool {
	if emptyStr(search) {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(*search))
}

// Engagements returns the rows matching c, in input order. The input slice
// is not modified; the result shares row pointers with it.
func Engagements(rows []*domain.Engagement, c EngagementCriteria, now time.Time) []*domain.Engagement {
	out := make([]*domain.Engagement, 0, len(rows))
	for _, r := range rows {
		if MatchEngagement(r, c, now) {
			out = append(out, r)
		}
	}
	return out
}

// Prospects returns the rows matching c, in input order.
func Prospects(rows []*domain.Prospect, c ProspectCriteria) []*domain.Prospect {
	out := make([]*domain.Prospect, 0, len(rows))
	for _, r := range rows {
		if MatchProspect(r, c) {
			out = append(out, r)
		}
	}
	return out
}
