package worker

import (
	"fmt"
	"time"

	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/alexanderramin/firmdesk/internal/filter"
)

// FilterSync applies the filter for req on the calling goroutine. It is the
// same transformation the Worker runs. Unknown kinds produce an error
// response rather than being treated as prospects.
func FilterSync(req Request, clock filter.Clock) (resp Response) {
	start := time.Now()
	resp = Response{ID: req.ID, Kind: req.Kind}
	defer func() {
		if p := recover(); p != nil {
			resp = Response{ID: req.ID, Kind: req.Kind, Err: fmt.Errorf("filter request %s: %v", req.ID, p)}
		}
		resp.Elapsed = time.Since(start)
	}()

	switch req.Kind {
	case domain.KindEngagements:
		now := req.Now
		if now.IsZero() {
			now = clockOrNow(clock)()
		}
		resp.Engagements = filter.Engagements(req.Engagements, req.EngagementCriteria, now)
	case domain.KindProspects:
		resp.Prospects = filter.Prospects(req.Prospects, req.ProspectCriteria)
	default:
		resp.Err = fmt.Errorf("filter request %s: %w: %q", req.ID, domain.ErrUnknownKind, req.Kind)
	}
	return resp
}

func clockOrNow(c filter.Clock) filter.Clock {
	if c == nil {
		return time.Now
	}
	return c
}
