package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/firmdesk/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Snapshot is both row sets as loaded at one point in time.
type Snapshot struct {
	Engagements []*domain.Engagement
	Prospects   []*domain.Prospect
	LoadedAt    time.Time
}

// Loader fetches both row sets concurrently for the dashboard and the
// client tables.
type Loader struct {
	engagements EngagementService
	prospects   ProspectService
	now         func() time.Time
}

func NewLoader(engagements EngagementService, prospects ProspectService, now func() time.Time) *Loader {
	if now == nil {
		now = time.Now
	}
	return &Loader{engagements: engagements, prospects: prospects, now: now}
}

// Load returns both row sets, or the first error either load hit.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := l.engagements.List(ctx)
		if err != nil {
			return fmt.Errorf("loading engagements: %w", err)
		}
		snap.Engagements = rows
		return nil
	})
	g.Go(func() error {
		rows, err := l.prospects.List(ctx)
		if err != nil {
			return fmt.Errorf("loading prospects: %w", err)
		}
		snap.Prospects = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	snap.LoadedAt = l.now()
	return snap, nil
}

// Summary aggregates a snapshot for the dashboard.
type Summary struct {
	Engagements      int
	Prospects        int
	Late             int
	Undated          int
	LoggedHours      float64
	ProjectedRevenue float64
	ByStatus         map[string]int
}

// Summarize counts late engagements against now. Undated engagements are
// never late.
func Summarize(snap *Snapshot, now time.Time) Summary {
	s := Summary{
		Engagements: len(snap.Engagements),
		Prospects:   len(snap.Prospects),
		ByStatus:    make(map[string]int),
	}
	for _, e := range snap.Engagements {
		if e.DueDate == nil {
			s.Undated++
		} else if e.IsLate(now) {
			s.Late++
		}
		s.LoggedHours += e.LoggedHours
		s.ByStatus[e.Status]++
	}
	for _, p := range snap.Prospects {
		s.ProjectedRevenue += p.ProjectedRevenue
	}
	return s
}
