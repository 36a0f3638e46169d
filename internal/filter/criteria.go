// Package filter decides which engagement and prospect rows satisfy a set
// of table filters, and derives the distinct values offered by each filter
// dropdown.
package filter

import (
	"time"
)

// EngagementCriteria is an immutable snapshot of the "All Clients" filters.
// A nil field (or empty Search) imposes no constraint.
type EngagementCriteria struct {
	Search   *string
	Service  *string
	Partner  *string
	Status   *string
	Referral *string // NoReferral selects rows without a referral
	From     *time.Time
	To       *time.Time
	LateOnly bool
}

// ProspectCriteria is an immutable snapshot of the "New Clients" filters.
type ProspectCriteria struct {
	Search         *string
	Service        *string
	Partner        *string
	ReferredBy     *string
	IndividualOnly *bool
	MinRevenue     *float64
}

// IsZero reports whether c constrains nothing.
func (c EngagementCriteria) IsZero() bool {
	return emptyStr(c.Search) && c.Service == nil && c.Partner == nil &&
		c.Status == nil && c.Referral == nil && !c.hasDateClause()
}

func (c EngagementCriteria) hasDateClause() bool {
	return c.From != nil || c.To != nil || c.LateOnly
}

// Equal compares two snapshots by value.
func (c EngagementCriteria) Equal(o EngagementCriteria) bool {
	return eqStr(searchOf(c.Search), searchOf(o.Search)) &&
		eqStr(c.Service, o.Service) &&
		eqStr(c.Partner, o.Partner) &&
		eqStr(c.Status, o.Status) &&
		eqStr(c.Referral, o.Referral) &&
		eqTime(c.From, o.From) &&
		eqTime(c.To, o.To) &&
		c.LateOnly == o.LateOnly
}

// IsZero reports whether c constrains nothing.
func (c ProspectCriteria) IsZero() bool {
	return emptyStr(c.Search) && c.Service == nil && c.Partner == nil &&
		c.ReferredBy == nil && c.IndividualOnly == nil && c.MinRevenue == nil
}

// Equal compares two snapshots by value.
func (c ProspectCriteria) Equal(o ProspectCriteria) bool {
	return eqStr(searchOf(c.Search), searchOf(o.Search)) &&
		eqStr(c.Service, o.Service) &&
		eqStr(c.Partner, o.Partner) &&
		eqStr(c.ReferredBy, o.ReferredBy) &&
		eqBool(c.IndividualOnly, o.IndividualOnly) &&
		eqFloat(c.MinRevenue, o.MinRevenue)
}

func emptyStr(s *string) bool { return s == nil || *s == "" }

// searchOf treats an empty search the same as no search.
func searchOf(s *string) *string {
	if emptyStr(s) {
		return nil
	}
	return s
}

func eqStr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func eqBool(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
