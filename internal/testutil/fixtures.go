package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/google/uuid"
)

var testRowCounter atomic.Int64

// FixedNow is a stable reference time for lateness checks in tests.
var FixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// Clock returns a clock frozen at FixedNow.
func Clock() func() time.Time {
	return func() time.Time { return FixedNow }
}

// Date returns midnight UTC on the given day.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Engagement options
type EngagementOption func(*domain.Engagement)

func WithBusiness(name string) EngagementOption {
	return func(e *domain.Engagement) {
		e.BusinessName = &name
	}
}

func WithService(s string) EngagementOption {
	return func(e *domain.Engagement) {
		e.Service = s
	}
}

func WithPartner(p string) EngagementOption {
	return func(e *domain.Engagement) {
		e.Partner = p
	}
}

func WithReferral(r string) EngagementOption {
	return func(e *domain.Engagement) {
		e.Referral = &r
	}
}

func WithStatus(s string) EngagementOption {
	return func(e *domain.Engagement) {
		e.Status = s
	}
}

func WithDueDate(d time.Time) EngagementOption {
	return func(e *domain.Engagement) {
		e.DueDate = &d
	}
}

func WithDocuments(n int) EngagementOption {
	return func(e *domain.Engagement) {
		e.DocumentCount = n
	}
}

func WithLoggedHours(h float64) EngagementOption {
	return func(e *domain.Engagement) {
		e.LoggedHours = h
	}
}

func WithEngagementID(id string) EngagementOption {
	return func(e *domain.Engagement) {
		e.ID = id
	}
}

func NewTestEngagement(client string, opts ...EngagementOption) *domain.Engagement {
	n := testRowCounter.Add(1)
	e := &domain.Engagement{
		ID:         uuid.New().String(),
		ClientName: client,
		Service:    "Tax Return",
		Partner:    "R. Chen",
		Status:     "Kickoff",
		CreatedAt:  FixedNow.Add(-time.Duration(n) * time.Hour),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Prospect options
type ProspectOption func(*domain.Prospect)

func WithProspectBusiness(name string) ProspectOption {
	return func(p *domain.Prospect) {
		p.BusinessName = &name
	}
}

func WithIndividual(v bool) ProspectOption {
	return func(p *domain.Prospect) {
		p.IsIndividual = v
	}
}

func WithProspectService(s string) ProspectOption {
	return func(p *domain.Prospect) {
		p.Service = s
	}
}

func WithProspectPartner(s string) ProspectOption {
	return func(p *domain.Prospect) {
		p.Partner = s
	}
}

func WithReferredBy(r string) ProspectOption {
	return func(p *domain.Prospect) {
		p.ReferredBy = &r
	}
}

func WithRevenue(v float64) ProspectOption {
	return func(p *domain.Prospect) {
		p.ProjectedRevenue = v
	}
}

func NewTestProspect(client string, opts ...ProspectOption) *domain.Prospect {
	n := testRowCounter.Add(1)
	p := &domain.Prospect{
		ID:               uuid.New().String(),
		ClientName:       client,
		Service:          "Bookkeeping",
		Partner:          "J. Patel",
		IsIndividual:     true,
		CreatedAt:        FixedNow.Add(-time.Duration(n) * time.Hour),
		ProjectedRevenue: 1000,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ManyEngagements builds n engagements named "Client 0001".. with the given
// options applied to each.
func ManyEngagements(n int, opts ...EngagementOption) []*domain.Engagement {
	rows := make([]*domain.Engagement, n)
	for i := range rows {
		rows[i] = NewTestEngagement(fmt.Sprintf("Client %04d", i+1), opts...)
	}
	return rows
}

// ManyProspects builds n prospects named "Lead 0001"..
func ManyProspects(n int, opts ...ProspectOption) []*domain.Prospect {
	rows := make([]*domain.Prospect, n)
	for i := range rows {
		rows[i] = NewTestProspect(fmt.Sprintf("Lead %04d", i+1), opts...)
	}
	return rows
}
