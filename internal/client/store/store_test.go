package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/courtside/internal/client/gateway"
	"github.com/dmitrijs2005/courtside/internal/client/models"
	"github.com/dmitrijs2005/courtside/internal/client/normalize"
	"github.com/dmitrijs2005/courtside/internal/common"
)

type doerFunc func(ctx context.Context, req *gateway.Request) (*gateway.Response, error)

func (f doerFunc) Send(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
	return f(ctx, req)
}

type fakeIdentity struct{ user *models.User }

func (f fakeIdentity) User() *models.User { return f.user }

func ok(t *testing.T, v any) *gateway.Response {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return &gateway.Response{Status: http.StatusOK, Body: data}
}

func articles(doer gateway.Doer, identity Identity) *Store[models.Article] {
	n := normalize.New("")
	return New(doer, identity, Config[models.Article]{
		Name:       "articles",
		Path:       "/articles",
		Decode:     func(raw any) models.Article { return n.Article(raw) },
		EntityKeys: []string{"article"},
	}, WithNormalizer(n), WithBulkConcurrency(2))
}

func ids(items []models.Article) []models.ID {
	out := make([]models.ID, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func listOf(idList ...int) []map[string]any {
	out := make([]map[string]any, 0, len(idList))
	for _, id := range idList {
		out = append(out, map[string]any{"id": id, "title": "a"})
	}
	return out
}

func loaded(t *testing.T, s *Store[models.Article], body any) {
	t.Helper()
	// swap in a one-shot list response
	prev := s.doer
	s.doer = doerFunc(func(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
		return ok(t, body), nil
	})
	require.NoError(t, s.FetchAll(context.Background(), nil))
	s.doer = prev
}

func TestFetchAll_ReplacesItemsWithUniqueIDs(t *testing.T) {
	var gotReq *gateway.Request
	s := articles(doerFunc(func(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
		gotReq = req
		return ok(t, map[string]any{"articles": listOf(1, 2, 3), "meta": map[string]any{"total": 3}}), nil
	}), nil)

	require.NoError(t, s.FetchAll(context.Background(), url.Values{"page": {"1"}}))

	st := s.Snapshot()
	assert.Equal(t, StatusSucceeded, st.Status)
	assert.Nil(t, st.Err)
	assert.Equal(t, []models.ID{"1", "2", "3"}, ids(st.Items))
	assert.Equal(t, st.Total(), len(st.Items))
	assert.Equal(t, http.MethodGet, gotReq.Method)
	assert.Equal(t, "/articles", gotReq.Path)
	assert.Equal(t, "1", gotReq.Query.Get("page"))
}

func TestFetchAll_DuplicateIDsFirstWins(t *testing.T) {
	s := articles(doerFunc(func(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
		return ok(t, []map[string]any{{"id": 1, "title": "first"}, {"id": 2}, {"id": "1", "title": "second"}}), nil
	}), nil)

	require.NoError(t, s.FetchAll(context.Background(), nil))

	items := s.Items()
	assert.Equal(t, []models.ID{"1", "2"}, ids(items))
	assert.Equal(t, "first", items[0].Title)
}

func TestFetchAll_FailureKeepsItems(t *testing.T) {
	s := articles(nil, nil)
	loaded(t, s, listOf(1, 2))

	s.doer = doerFunc(func(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
		return nil, &common.HTTPError{Status: http.StatusInternalServerError, Message: "db down"}
	})
	err := s.FetchAll(context.Background(), nil)
	require.Error(t, err)

	st := s.Snapshot()
	assert.Equal(t, StatusFailed, st.Status)
	assert.Equal(t, "db down", st.Error())
	assert.Equal(t, []models.ID{"1", "2"}, ids(st.Items))
}

func TestFetchAllAt_UsesAlternatePath(t *testing.T) {
	var path string
	s := articles(doerFunc(func(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
		path = req.Path
		return ok(t, listOf(5)), nil
	}), nil)

	require.NoError(t, s.FetchAllAt(context.Background(), "/articles/popular", url.Values{"limit": {"5"}}))
	assert.Equal(t, "/articles/popular", path)
	assert.Len(t, s.Items(), 1)
}

func TestCreate_PrependsAtIndexZero(t *testing.T) {
	s := articles(nil, nil)
	loaded(t, s, listOf(1, 2))

	var body any
	s.doer = doerFunc(func(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
		body = req.Body
		return ok(t, map[string]any{"article": map[string]any{"id": 3, "title": "new"}}), nil
	})
	in := models.ArticleInput{Title: "new", Content: "body"}
	created, err := s.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, in, body)
	assert.Equal(t, models.ID("3"), created.ID)
	assert.Equal(t, []models.ID{"3", "1", "2"}, ids(s.Items()))
}

func TestCreate_ExistingIDMovesToFront(t *testing.T) {
	s := articles(nil, nil)
	loaded(t, s, listOf(1, 2, 3))

	s.doer = doerFunc(func(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
		return ok(t, map[string]any{"id": 2, "title": "again"}), nil
	})
	_, err := s.Create(context.Background(), map[string]any{"title": "again"})
	require.NoError(t, err)
	assert.Equal(t, []models.ID{"2", "1", "3"}, ids(s.Items()))
}

func TestCreate_ValidationErrorSkipsNetwork(t *testing.T) {
	called := false
	s := articles(doerFunc(func(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
		called = true
		return nil, nil
	}), nil)

	_, err := s.Create(context.Background(), models.ArticleInput{})

	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, called)
	assert.Equal(t, StatusFailed, s.Status())
}

func TestCreate_ResponseWithoutID(t *testing.T) {
	s := articles(doerFunc(func(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
		return ok(t, map[string]any{"message": "created"}), nil
	}), nil)

	_, err := s.Create(context.Background(), map[string]any{})
	require.ErrorIs(t, err, common.ErrMalformedResponse)
	assert.Empty(t, s.Items())
}

func TestRemove_Scenario(t *testing.T) {
	s := articles(nil, nil)
	loaded(t, s, listOf(41, 42, 43))

	var req *gateway.Request
	s.doer = doerFunc(func(ctx context.Context, r *gateway.Request) (*gateway.Response, error) {
		req = r
		return &gateway.Response{Status: http.StatusNoContent}, nil
	})
	require.NoError(t, s.Remove(context.Background(), "42"))

	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/articles/42", req.Path)
	assert.Equal(t, []models.ID{"41", "43"}, ids(s.Items()))
}

func TestRemove_ClearsMatchingCurrent(t *testing.T) {
	s := articles(nil, nil)
	loaded(t, s, listOf(1, 2))
	s.doer = doerFunc(func(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
		if req.Method == http.MethodGet {
			return ok(t, map[string]any{"id": 2}), nil
		}
		return &gateway.Response{Status: http.StatusOK}, nil
	})

	_, err := s.FetchOne(context.Background(), "2")
	require.NoError(t, err)
	require.NotNil(t, s.Current())

	require.NoError(t, s.Remove(context.Background(), "2"))
	st := s.Snapshot()
	assert.Nil(t, st.Current)
	assert.Equal(t, []models.ID{"1"}, ids(st.Items))
}

func TestRemove_FailureKeepsItem(t *testing.T) {
	s := articles(nil, nil)
	loaded(t, s, listOf(1))
	s.doer = doerFunc(func(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
		return nil, &common.HTTPError{Status: http.StatusForbidden}
	})

	require.Error(t, s.Remove(context.Background(), "1"))
	st := s.Snapshot()
	assert.Equal(t, StatusFailed, st.Status)
	assert.Equal(t, "Forbidden", st.Error())
	assert.Len(t, st.Items, 1)
}

func TestUpdate_ReplacesItemAndCurrent(t *testing.T) {
	s := articles(nil, nil)
	loaded(t, s, listOf(1, 2))
	s.doer = doerFunc(func(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
		switch req.Method {
		case http.MethodGet:
			return ok(t, map[string]any{"id": 2, "title": "old"}), nil
		case http.MethodPut:
			assert.Equal(t, "/articles/2", req.Path)
			return ok(t, map[string]any{"id": 2, "title": "edited"}), nil
		}
		return nil, errors.New("unexpected")
	})
	ctx := context.Background()

	_, err := s.FetchOne(ctx, "2")
	require.NoError(t, err)
	_, err = s.Update(ctx, "2", map[string]any{"title": "edited"})
	require.NoError(t, err)

	st := s.Snapshot()
	assert.Equal(t, "edited", st.Items[1].Title)
	require.NotNil(t, st.Current)
	assert.Equal(t, "edited", st.Current.Title)
}

func TestPatch_SubPath(t *testing.T) {
	n := normalize.New("")
	var req *gateway.Request
	users := New(doerFunc(func(ctx context.Context, r *gateway.Request) (*gateway.Response, error) {
		req = r
		return ok(t, map[string]any{"user": map[string]any{"id": 5, "username": "x", "role": "admin"}}), nil
	}), nil, Config[models.UserSummary]{
		Name:       "admin-users",
		Path:       "/admin/users",
		Decode:     func(raw any) models.UserSummary { return n.UserSummary(raw) },
		EntityKeys: []string{"user"},
	})

	u, err := users.Patch(context.Background(), "5", "role", models.RoleInput{Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/admin/users/5/role", req.Path)
	assert.Equal(t, "admin", u.Role)
}

// scripted lets a test decide when and in which order responses arrive.
type scripted struct {
	mu      sync.Mutex
	pending []chan reply
	arrived chan struct{}
}

type reply struct {
	resp *gateway.Response
	err  error
}

func newScripted() *scripted {
	return &scripted{arrived: make(chan struct{}, 16)}
}

func (s *scripted) Send(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
	ch := make(chan reply, 1)
	s.mu.Lock()
	s.pending = append(s.pending, ch)
	s.mu.Unlock()
	s.arrived <- struct{}{}
	r := <-ch
	return r.resp, r.err
}

func (s *scripted) answer(i int, r reply) {
	s.mu.Lock()
	ch := s.pending[i]
	s.mu.Unlock()
	ch <- r
}

func TestFetchOne_LatestIssuedRequestWins(t *testing.T) {
	doer := newScripted()
	s := articles(doer, nil)
	ctx := context.Background()

	first := make(chan error, 1)
	second := make(chan error, 1)

	go func() { _, err := s.FetchOne(ctx, "7"); first <- err }()
	<-doer.arrived
	go func() { _, err := s.FetchOne(ctx, "7"); second <- err }()
	<-doer.arrived

	// the later request resolves first
	doer.answer(1, reply{resp: ok(t, map[string]any{"id": 7, "title": "second"})})
	require.NoError(t, <-second)
	doer.answer(0, reply{resp: ok(t, map[string]any{"id": 7, "title": "first"})})
	require.NoError(t, <-first)

	cur := s.Current()
	require.NotNil(t, cur)
	assert.Equal(t, "second", cur.Title)
	assert.Equal(t, StatusSucceeded, s.Status())
}

func TestFetchOne_InOrderResolutionAlsoEndsWithLatest(t *testing.T) {
	doer := newScripted()
	s := articles(doer, nil)
	ctx := context.Background()

	done := make(chan error, 2)
	go func() { _, err := s.FetchOne(ctx, "7"); done <- err }()
	<-doer.arrived
	go func() { _, err := s.FetchOne(ctx, "7"); done <- err }()
	<-doer.arrived

	doer.answer(0, reply{resp: ok(t, map[string]any{"id": 7, "title": "first"})})
	<-done
	doer.answer(1, reply{resp: ok(t, map[string]any{"id": 7, "title": "second"})})
	<-done

	assert.Equal(t, "second", s.Current().Title)
}

func TestFetchAll_StaleFailureIsDropped(t *testing.T) {
	doer := newScripted()
	s := articles(doer, nil)
	ctx := context.Background()

	first := make(chan error, 1)
	second := make(chan error, 1)
	go func() { first <- s.FetchAll(ctx, nil) }()
	<-doer.arrived
	go func() { second <- s.FetchAll(ctx, nil) }()
	<-doer.arrived

	doer.answer(1, reply{resp: ok(t, listOf(1, 2))})
	require.NoError(t, <-second)
	doer.answer(0, reply{err: &common.NetworkError{Op: "GET /articles", Err: errors.New("reset")}})
	require.Error(t, <-first)

	st := s.Snapshot()
	assert.Equal(t, StatusSucceeded, st.Status)
	assert.Equal(t, []models.ID{"1", "2"}, ids(st.Items))
}

func TestClearCurrent_DiscardsInFlightFetch(t *testing.T) {
	doer := newScripted()
	s := articles(doer, nil)

	done := make(chan error, 1)
	go func() { _, err := s.FetchOne(context.Background(), "7"); done <- err }()
	<-doer.arrived

	s.ClearCurrent()
	doer.answer(0, reply{resp: ok(t, map[string]any{"id": 7})})
	<-done

	assert.Nil(t, s.Current())
}

func TestRemove_StaleListCannotBringItBack(t *testing.T) {
	doer := newScripted()
	s := articles(doer, nil)
	loaded(t, s, listOf(41, 42, 43))
	ctx := context.Background()

	fetched := make(chan error, 1)
	go func() { fetched <- s.FetchAll(ctx, nil) }()
	<-doer.arrived

	removed := make(chan error, 1)
	go func() { removed <- s.Remove(ctx, "42") }()
	<-doer.arrived
	doer.answer(1, reply{resp: &gateway.Response{Status: http.StatusNoContent}})
	require.NoError(t, <-removed)
	assert.Equal(t, []models.ID{"41", "43"}, ids(s.Items()))

	// the list was read before the delete reached the server
	doer.answer(0, reply{resp: ok(t, listOf(41, 42, 43))})
	require.NoError(t, <-fetched)

	assert.Equal(t, []models.ID{"41", "43"}, ids(s.Items()))
	assert.Equal(t, StatusSucceeded, s.Status())
}

func TestCreate_StaleListKeepsCreatedItem(t *testing.T) {
	doer := newScripted()
	s := articles(doer, nil)
	loaded(t, s, listOf(41))
	ctx := context.Background()

	fetched := make(chan error, 1)
	go func() { fetched <- s.FetchAll(ctx, nil) }()
	<-doer.arrived

	created := make(chan error, 1)
	go func() {
		_, err := s.Create(ctx, models.ArticleInput{Title: "new", Content: "body"})
		created <- err
	}()
	<-doer.arrived
	doer.answer(1, reply{resp: ok(t, map[string]any{"id": 44, "title": "new"})})
	require.NoError(t, <-created)

	doer.answer(0, reply{resp: ok(t, listOf(41))})
	require.NoError(t, <-fetched)

	assert.Equal(t, []models.ID{"44", "41"}, ids(s.Items()))
}

func TestSubscribe_LastSnapshotMatchesState(t *testing.T) {
	s := articles(doerFunc(func(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
		if req.Method == http.MethodDelete {
			return &gateway.Response{Status: http.StatusNoContent}, nil
		}
		return ok(t, listOf(41, 42, 43)), nil
	}), nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	var (
		mu    sync.Mutex
		last  []models.ID
		pause sync.Once
	)
	unsub := s.Subscribe(func(st State[models.Article]) {
		if len(st.Items) == 3 && st.Status == StatusSucceeded {
			pause.Do(func() {
				close(entered)
				<-release
			})
		}
		mu.Lock()
		last = ids(st.Items)
		mu.Unlock()
	})
	defer unsub()

	fetched := make(chan error, 1)
	go func() { fetched <- s.FetchAll(context.Background(), nil) }()
	<-entered

	// finishes while the list result is still being delivered
	require.NoError(t, s.Remove(context.Background(), "41"))
	close(release)
	require.NoError(t, <-fetched)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []models.ID{"42", "43"}, ids(s.Items()))
	assert.Equal(t, []models.ID{"42", "43"}, last)
}

func TestRemoveMany_BestEffortReport(t *testing.T) {
	s := articles(nil, nil)
	loaded(t, s, listOf(1, 2, 3, 4))
	s.doer = doerFunc(func(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
		if strings.HasSuffix(req.Path, "/2") {
			return nil, &common.HTTPError{Status: http.StatusConflict, Message: "has comments"}
		}
		return &gateway.Response{Status: http.StatusNoContent}, nil
	})

	res, err := s.RemoveMany(context.Background(), []models.ID{"1", "2", "3", "1"})
	require.Error(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, []models.ID{"1", "3"}, res.Removed)
	require.Contains(t, res.Failed, models.ID("2"))
	assert.Contains(t, err.Error(), "remove 2")

	var he *common.HTTPError
	assert.ErrorAs(t, err, &he)

	st := s.Snapshot()
	assert.Equal(t, StatusFailed, st.Status)
	assert.Equal(t, []models.ID{"2", "4"}, ids(st.Items))
}

func TestRemoveMany_AllSucceed(t *testing.T) {
	s := articles(nil, nil)
	loaded(t, s, listOf(1, 2))
	s.doer = doerFunc(func(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
		return &gateway.Response{Status: http.StatusNoContent}, nil
	})

	res, err := s.RemoveMany(context.Background(), []models.ID{"1", "2"})
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, StatusSucceeded, s.Status())
	assert.Empty(t, s.Items())
}

func TestSubscribe_ReceivesLoadingThenResult(t *testing.T) {
	s := articles(doerFunc(func(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
		return ok(t, listOf(1)), nil
	}), nil)

	var seen []Status
	unsub := s.Subscribe(func(st State[models.Article]) { seen = append(seen, st.Status) })
	require.NoError(t, s.FetchAll(context.Background(), nil))
	s.ResetStatus()
	unsub()
	require.NoError(t, s.FetchAll(context.Background(), nil))

	assert.Equal(t, []Status{StatusLoading, StatusSucceeded, StatusIdle}, seen)
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := articles(nil, nil)
	loaded(t, s, listOf(1))

	snap := s.Snapshot()
	snap.Items[0].Title = "mutated"
	snap.Meta["x"] = 1

	again := s.Snapshot()
	assert.Equal(t, "a", again.Items[0].Title)
	assert.NotContains(t, again.Meta, "x")
}
