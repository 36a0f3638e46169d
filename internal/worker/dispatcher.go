package worker

import (
	"sync"
	"time"

	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/alexanderramin/firmdesk/internal/filter"
	"github.com/google/uuid"
)

// Dispatcher stamps requests with correlation IDs and remembers the latest
// one per row kind. Responses to superseded requests are rejected by Accept.
type Dispatcher struct {
	mu     sync.Mutex
	latest map[domain.RowKind]string
	newID  func() string
}

// NewDispatcher returns a Dispatcher that issues random UUIDs.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		latest: make(map[domain.RowKind]string),
		newID:  func() string { return uuid.New().String() },
	}
}

// Engagements builds and tracks an engagement filter request.
func (d *Dispatcher) Engagements(rows []*domain.Engagement, c filter.EngagementCriteria, now time.Time) Request {
	return d.Track(Request{
		Kind:               domain.KindEngagements,
		Engagements:        rows,
		EngagementCriteria: c,
		Now:                now,
	})
}

// Prospects builds and tracks a prospect filter request.
func (d *Dispatcher) Prospects(rows []*domain.Prospect, c filter.ProspectCriteria) Request {
	return d.Track(Request{
		Kind:             domain.KindProspects,
		Prospects:        rows,
		ProspectCriteria: c,
	})
}

// Track assigns req an ID when it has none and marks it as the latest
// request for its kind.
func (d *Dispatcher) Track(req Request) Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	if req.ID == "" {
		req.ID = d.newID()
	}
	d.latest[req.Kind] = req.ID
	return req
}

// Accept reports whether resp answers the most recent request of its kind.
func (d *Dispatcher) Accept(resp Response) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	id, ok := d.latest[resp.Kind]
	return ok && id == resp.ID
}

// Latest returns the ID of the most recent request for kind, or "".
func (d *Dispatcher) Latest(kind domain.RowKind) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.latest[kind]
}
