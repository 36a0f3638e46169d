package worker

import (
	"context"
	"testing"

	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/alexanderramin/firmdesk/internal/filter"
	"github.com/alexanderramin/firmdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_LastRequestWins(t *testing.T) {
	d := NewDispatcher()
	rows := testutil.ManyEngagements(5)

	first := d.Engagements(rows, filter.EngagementCriteria{Search: ptr("c")}, testutil.FixedNow)
	second := d.Engagements(rows, filter.EngagementCriteria{Search: ptr("cl")}, testutil.FixedNow)
	require.NotEqual(t, first.ID, second.ID)

	assert.False(t, d.Accept(Response{ID: first.ID, Kind: domain.KindEngagements}), "stale response")
	assert.True(t, d.Accept(Response{ID: second.ID, Kind: domain.KindEngagements}))
	assert.Equal(t, second.ID, d.Latest(domain.KindEngagements))
}

func TestDispatcher_KindsAreIndependent(t *testing.T) {
	d := NewDispatcher()
	e := d.Engagements(nil, filter.EngagementCriteria{}, testutil.FixedNow)
	p := d.Prospects(nil, filter.ProspectCriteria{})

	assert.True(t, d.Accept(Response{ID: e.ID, Kind: domain.KindEngagements}))
	assert.True(t, d.Accept(Response{ID: p.ID, Kind: domain.KindProspects}))
	assert.False(t, d.Accept(Response{ID: e.ID, Kind: domain.KindProspects}), "ID must match the kind's latest")
	assert.False(t, d.Accept(Response{ID: "anything", Kind: "clients"}))
}

func TestDispatcher_TrackKeepsExplicitID(t *testing.T) {
	d := NewDispatcher()
	req := d.Track(Request{ID: "given", Kind: domain.KindProspects})
	assert.Equal(t, "given", req.ID)
	assert.Equal(t, "given", d.Latest(domain.KindProspects))
}

// Out-of-order delivery: the worker answers in submission order, but the
// caller must still drop every response except the newest.
func TestDispatcher_WithWorkerDiscardsSuperseded(t *testing.T) {
	w := startWorker(t)
	d := NewDispatcher()
	rows := testutil.ManyEngagements(50)

	var sent []Request
	for _, q := range []string{"c", "cl", "cli", "client 004"} {
		req := d.Engagements(rows, filter.EngagementCriteria{Search: ptr(q)}, testutil.FixedNow)
		require.NoError(t, w.Submit(context.Background(), req))
		sent = append(sent, req)
	}

	var applied []Response
	for range sent {
		resp := receive(t, w)
		if d.Accept(resp) {
			applied = append(applied, resp)
		}
	}
	require.Len(t, applied, 1)
	assert.Equal(t, sent[len(sent)-1].ID, applied[0].ID)
	assert.Len(t, applied[0].Engagements, 10)
}
