// Package worker runs table filtering off the UI loop.
//
// Callers build a Request per filter pass, submit it to a Worker and match
// each Response back to its Request by ID. Several requests may be in
// flight; a Dispatcher keeps the most recent ID per row kind so that only
// the latest response is applied.
package worker

import (
	"time"

	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/alexanderramin/firmdesk/internal/filter"
)

// Request asks for one filter pass over a full row set. Only the rows and
// criteria matching Kind are read.
type Request struct {
	ID   string
	Kind domain.RowKind

	Engagements        []*domain.Engagement
	EngagementCriteria filter.EngagementCriteria

	Prospects        []*domain.Prospect
	ProspectCriteria filter.ProspectCriteria

	// Now is the reference time for lateness; zero means the worker clock.
	Now time.Time
}

// Len returns the number of input rows for the request's kind.
func (r Request) Len() int {
	switch r.Kind {
	case domain.KindEngagements:
		return len(r.Engagements)
	case domain.KindProspects:
		return len(r.Prospects)
	}
	return 0
}

// Response carries the filtered rows for Request.ID, in input order.
type Response struct {
	ID   string
	Kind domain.RowKind

	Engagements []*domain.Engagement
	Prospects   []*domain.Prospect

	Err     error
	Elapsed time.Duration
}

// Len returns the number of output rows for the response's kind.
func (r Response) Len() int {
	switch r.Kind {
	case domain.KindEngagements:
		return len(r.Engagements)
	case domain.KindProspects:
		return len(r.Prospects)
	}
	return 0
}
