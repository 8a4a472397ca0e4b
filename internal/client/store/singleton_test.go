package store

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/courtside/internal/client/gateway"
	"github.com/dmitrijs2005/courtside/internal/client/models"
	"github.com/dmitrijs2005/courtside/internal/client/normalize"
	"github.com/dmitrijs2005/courtside/internal/common"
)

func TestSingleton_FetchStats(t *testing.T) {
	n := normalize.New("")
	var req *gateway.Request
	stats := NewSingleton(doerFunc(func(ctx context.Context, r *gateway.Request) (*gateway.Response, error) {
		req = r
		return ok(t, map[string]any{"data": map[string]any{"totalArticles": 12}}), nil
	}), "/admin/stats", func(raw any) models.DashboardStats {
		return n.Stats(normalize.Entity(raw, "stats"))
	}, nil)

	got, err := stats.Fetch(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "/admin/stats", req.Path)
	assert.Equal(t, 12, got.TotalArticles)

	doc := stats.Snapshot()
	assert.Equal(t, StatusSucceeded, doc.Status)
	require.NotNil(t, doc.Data)
	assert.Equal(t, 12, doc.Data.TotalArticles)
}

func TestSingleton_FailureKeepsData(t *testing.T) {
	n := normalize.New("")
	fail := false
	analytics := NewSingleton(doerFunc(func(ctx context.Context, r *gateway.Request) (*gateway.Response, error) {
		if fail {
			return nil, &common.NetworkError{Op: "GET /admin/analytics", Err: errors.New("timeout")}
		}
		return ok(t, map[string]any{"period": r.Query.Get("period")}), nil
	}), "/admin/analytics", n.Analytics, nil)

	_, err := analytics.Fetch(context.Background(), url.Values{"period": {"week"}})
	require.NoError(t, err)

	fail = true
	_, err = analytics.Fetch(context.Background(), nil)
	require.Error(t, err)

	doc := analytics.Snapshot()
	assert.Equal(t, StatusFailed, doc.Status)
	assert.Equal(t, "server unavailable", doc.Error())
	require.NotNil(t, doc.Data)
	assert.Equal(t, "week", doc.Data.Period)

	analytics.ResetStatus()
	assert.Equal(t, StatusIdle, analytics.Snapshot().Status)
}

func TestSingleton_LatestIssuedWins(t *testing.T) {
	doer := newScripted()
	stats := NewSingleton(doer, "/admin/stats", func(raw any) string {
		m, _ := raw.(map[string]any)
		s, _ := m["v"].(string)
		return s
	}, nil)
	ctx := context.Background()

	done := make(chan struct{}, 2)
	go func() { _, _ = stats.Fetch(ctx, nil); done <- struct{}{} }()
	<-doer.arrived
	go func() { _, _ = stats.Fetch(ctx, nil); done <- struct{}{} }()
	<-doer.arrived

	doer.answer(1, reply{resp: ok(t, map[string]any{"v": "new"})})
	<-done
	doer.answer(0, reply{resp: ok(t, map[string]any{"v": "old"})})
	<-done

	assert.Equal(t, "new", *stats.Snapshot().Data)
}
