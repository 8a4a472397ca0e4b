package fakeapi

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

// Server is an in-memory courtside backend. All state lives behind mu.
type Server struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu         sync.Mutex
	nextID     int
	users      []*user
	categories []*category
	articles   []*article
	threads    []*thread
	comments   []*comment

	// live holds the ids of tokens accepted for regular requests;
	// revoked tokens cannot be refreshed either.
	live      map[string]bool
	revoked   map[string]bool
	refreshes int
	faults    map[string][]int
}

type Option func(*Server)

// WithClock replaces time.Now for token issuing and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New returns a seeded server.
func New(cfg Config, opts ...Option) *Server {
	s := &Server{
		secret:  []byte(cfg.SecretKey),
		ttl:     cfg.AccessTokenTTL,
		now:     time.Now,
		live:    map[string]bool{},
		revoked: map[string]bool{},
		faults:  map[string][]int{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ttl <= 0 {
		s.ttl = 15 * time.Minute
	}
	s.seed()
	return s
}

// Handler returns the API router; every route is served under /api.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.injectFaults)

	api.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", s.register).Methods(http.MethodPost)
	api.Handle("/auth/logout", s.authed(s.logout)).Methods(http.MethodPost)
	api.Handle("/auth/me", s.authed(s.me)).Methods(http.MethodGet)
	api.HandleFunc("/auth/refresh-token", s.refresh).Methods(http.MethodPost)

	api.HandleFunc("/articles", s.listArticles).Methods(http.MethodGet)
	api.Handle("/articles", s.authed(s.createArticle)).Methods(http.MethodPost)
	api.HandleFunc("/articles/popular", s.popularArticles).Methods(http.MethodGet)
	api.HandleFunc("/articles/related", s.relatedArticles).Methods(http.MethodGet)
	api.HandleFunc("/articles/search", s.searchArticles).Methods(http.MethodGet)
	api.HandleFunc("/articles/{id:[0-9]+}", s.getArticle).Methods(http.MethodGet)
	api.Handle("/articles/{id:[0-9]+}", s.authed(s.updateArticle)).Methods(http.MethodPut)
	api.Handle("/articles/{id:[0-9]+}", s.authed(s.deleteArticle)).Methods(http.MethodDelete)
	api.Handle("/articles/{id:[0-9]+}/comments", s.authed(s.addComment(onArticle))).Methods(http.MethodPost)
	api.Handle("/articles/{id:[0-9]+}/comments/{cid:[0-9]+}", s.authed(s.deleteComment(onArticle))).Methods(http.MethodDelete)

	api.HandleFunc("/community/threads", s.listThreads).Methods(http.MethodGet)
	api.Handle("/community/threads", s.authed(s.createThread)).Methods(http.MethodPost)
	api.HandleFunc("/community/threads/{id:[0-9]+}", s.getThread).Methods(http.MethodGet)
	api.Handle("/community/threads/{id:[0-9]+}", s.authed(s.updateThread)).Methods(http.MethodPut)
	api.Handle("/community/threads/{id:[0-9]+}", s.authed(s.deleteThread)).Methods(http.MethodDelete)
	api.Handle("/community/threads/{id:[0-9]+}/comments", s.authed(s.addComment(onThread))).Methods(http.MethodPost)
	api.Handle("/community/threads/{id:[0-9]+}/comments/{cid:[0-9]+}", s.authed(s.deleteComment(onThread))).Methods(http.MethodDelete)

	api.HandleFunc("/categories", s.listCategories).Methods(http.MethodGet)
	api.HandleFunc("/users/profile/{username}", s.profile).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}/articles", s.userArticles).Methods(http.MethodGet)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Handle("/articles", s.adminOnly(s.adminListArticles)).Methods(http.MethodGet)
	admin.Handle("/articles", s.adminOnly(s.createArticle)).Methods(http.MethodPost)
	admin.Handle("/articles/{id:[0-9]+}", s.adminOnly(s.adminGetArticle)).Methods(http.MethodGet)
	admin.Handle("/articles/{id:[0-9]+}", s.adminOnly(s.updateArticle)).Methods(http.MethodPut)
	admin.Handle("/articles/{id:[0-9]+}", s.adminOnly(s.deleteArticle)).Methods(http.MethodDelete)
	admin.Handle("/users", s.adminOnly(s.adminListUsers)).Methods(http.MethodGet)
	admin.Handle("/users/{id:[0-9]+}", s.adminOnly(s.adminGetUser)).Methods(http.MethodGet)
	admin.Handle("/users/{id:[0-9]+}", s.adminOnly(s.adminUpdateUser)).Methods(http.MethodPut)
	admin.Handle("/users/{id:[0-9]+}/role", s.adminOnly(s.adminUpdateRole)).Methods(http.MethodPatch)
	admin.Handle("/users/{id:[0-9]+}", s.adminOnly(s.adminDeleteUser)).Methods(http.MethodDelete)
	admin.Handle("/categories", s.adminOnly(s.adminListCategories)).Methods(http.MethodGet)
	admin.Handle("/categories", s.adminOnly(s.adminCreateCategory)).Methods(http.MethodPost)
	admin.Handle("/categories/{id:[0-9]+}", s.adminOnly(s.adminUpdateCategory)).Methods(http.MethodPut)
	admin.Handle("/categories/{id:[0-9]+}", s.adminOnly(s.adminDeleteCategory)).Methods(http.MethodDelete)
	admin.Handle("/comments", s.adminOnly(s.adminListComments)).Methods(http.MethodGet)
	admin.Handle("/comments/{id:[0-9]+}", s.adminOnly(s.adminDeleteComment)).Methods(http.MethodDelete)
	admin.Handle("/threads", s.adminOnly(s.adminListThreads)).Methods(http.MethodGet)
	admin.Handle("/threads/{id:[0-9]+}", s.adminOnly(s.adminGetThread)).Methods(http.MethodGet)
	admin.Handle("/threads/{id:[0-9]+}", s.adminOnly(s.deleteThread)).Methods(http.MethodDelete)
	admin.Handle("/stats", s.adminOnly(s.adminStats)).Methods(http.MethodGet)
	admin.Handle("/analytics", s.adminOnly(s.adminAnalytics)).Methods(http.MethodGet)

	return r
}

// Fail makes the next len(statuses) requests matching method and path
// (relative to /api) answer with the given statuses.
func (s *Server) Fail(method, path string, statuses ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + path
	s.faults[key] = append(s.faults[key], statuses...)
}

func (s *Server) injectFaults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")

		s.mu.Lock()
		var status int
		if q := s.faults[key]; len(q) > 0 {
			status, s.faults[key] = q[0], q[1:]
		}
		s.mu.Unlock()

		if status != 0 {
			writeError(w, status, http.StatusText(status))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ExpireSessions invalidates every issued access token for regular
// requests. Tokens can still be exchanged at /auth/refresh-token.
func (s *Server) ExpireSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.live)
}

// Refreshes reports how many tokens were renewed.
func (s *Server) Refreshes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshes
}

// ArticleCount reports the number of stored articles.
func (s *Server) ArticleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.articles)
}
