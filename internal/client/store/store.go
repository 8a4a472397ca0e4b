package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/courtside/internal/client/gateway"
	"github.com/dmitrijs2005/courtside/internal/client/models"
	"github.com/dmitrijs2005/courtside/internal/client/normalize"
	"github.com/dmitrijs2005/courtside/internal/common"
	"github.com/dmitrijs2005/courtside/internal/logging"
	"github.com/dmitrijs2005/courtside/internal/notify"
)

// Identity is the read-only view of the session the stores need.
type Identity interface {
	User() *models.User
}

// Config describes one remote collection.
type Config[T any] struct {
	// Name labels log lines.
	Name string
	// Path is the collection endpoint, e.g. "/articles".
	Path string
	// ItemPath is the prefix for single items; defaults to Path.
	ItemPath string
	// Decode normalizes one raw entity.
	Decode func(raw any) T
	// EntityKeys name the envelope keys of single-entity responses,
	// e.g. "article" for {"article": {...}}.
	EntityKeys []string
}

type options struct {
	logger          logging.Logger
	norm            *normalize.Normalizer
	bulkConcurrency int
}

type Option func(*options)

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithNormalizer sets the normalizer used for embedded sub-resources
// such as comments.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(o *options) { o.norm = n }
}

// WithBulkConcurrency bounds the number of parallel requests of RemoveMany.
func WithBulkConcurrency(n int) Option {
	return func(o *options) { o.bulkConcurrency = n }
}

type Store[T models.Identifiable] struct {
	cfg      Config[T]
	doer     gateway.Doer
	identity Identity
	opts     options

	mu    sync.Mutex
	state State[T]
	seq   *sequencer
	ver   uint64
	hub   notify.Hub[State[T]]
}

func New[T models.Identifiable](doer gateway.Doer, identity Identity, cfg Config[T], opts ...Option) *Store[T] {
	o := options{
		logger:          logging.Discard(),
		norm:            normalize.New(""),
		bulkConcurrency: 4,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if cfg.ItemPath == "" {
		cfg.ItemPath = cfg.Path
	}
	return &Store[T]{
		cfg:      cfg,
		doer:     doer,
		identity: identity,
		opts:     o,
		state:    State[T]{Items: []T{}, Status: StatusIdle, Meta: map[string]any{}},
		seq:      newSequencer(),
	}
}

func (s *Store[T]) Name() string { return s.cfg.Name }

func (s *Store[T]) Snapshot() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *Store[T]) Items() []T { return s.Snapshot().Items }

func (s *Store[T]) Current() *T { return s.Snapshot().Current }

func (s *Store[T]) Status() Status { return s.Snapshot().Status }

// Subscribe registers fn to receive a snapshot after every change.
func (s *Store[T]) Subscribe(fn func(State[T])) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}

func (s *Store[T]) itemPath(id models.ID) string {
	return s.cfg.ItemPath + "/" + url.PathEscape(string(id))
}

// mutate applies fn under the lock and publishes the new state.
func (s *Store[T]) mutate(fn func(st *State[T])) {
	s.mu.Lock()
	fn(&s.state)
	v, snap := s.stampLocked()
	s.mu.Unlock()

	s.hub.Publish(v, snap)
}

// stampLocked versions the current state for publication.
func (s *Store[T]) stampLocked() (uint64, State[T]) {
	s.ver++
	return s.ver, s.state.clone()
}

// begin marks an operation as started. With a key it returns the request
// sequence number for that key.
func (s *Store[T]) begin(key string) uint64 {
	var n uint64
	s.mutate(func(st *State[T]) {
		if key != "" {
			n = s.seq.next(key)
		}
		st.Status = StatusLoading
		st.Err = nil
	})
	return n
}

// finish records the outcome of an operation. Keyed responses overtaken by
// a later request are dropped.
func (s *Store[T]) finish(ctx context.Context, key string, n uint64, err error, apply func(st *State[T])) {
	s.mu.Lock()
	if key != "" && !s.seq.accept(key, n) {
		s.mu.Unlock()
		s.opts.logger.Debug(ctx, "dropping stale response", "store", s.cfg.Name, "key", key, "seq", n)
		return
	}
	if err != nil {
		s.state.Status = StatusFailed
		s.state.Err = err
	} else {
		if apply != nil {
			apply(&s.state)
		}
		s.state.Status = StatusSucceeded
		s.state.Err = nil
	}
	v, snap := s.stampLocked()
	s.mu.Unlock()

	if err != nil {
		s.opts.logger.Debug(ctx, "operation failed", "store", s.cfg.Name, "error", err)
	}
	s.hub.Publish(v, snap)
}

func (s *Store[T]) fail(ctx context.Context, err error) error {
	s.finish(ctx, "", 0, err, nil)
	return err
}

func validate(data any) error {
	if v, ok := data.(models.Validatable); ok {
		if err := v.Validate(); err != nil {
			return &common.ValidationError{Err: err}
		}
	}
	return nil
}

// decodeOne normalizes a single-entity response.
func (s *Store[T]) decodeOne(resp *gateway.Response) (T, error) {
	var zero T
	raw, err := resp.JSON()
	if err != nil {
		return zero, err
	}
	item := s.cfg.Decode(normalize.Entity(raw, s.cfg.EntityKeys...))
	if item.EntityID() == "" {
		return zero, fmt.Errorf("%w: %s entity without id", common.ErrMalformedResponse, s.cfg.Name)
	}
	return item, nil
}

// FetchAll loads the collection, replacing the items on success.
func (s *Store[T]) FetchAll(ctx context.Context, params url.Values) error {
	return s.FetchAllAt(ctx, s.cfg.Path, params)
}

// FetchAllAt is FetchAll against an alternative list endpoint.
func (s *Store[T]) FetchAllAt(ctx context.Context, path string, params url.Values) error {
	n := s.begin(keyList)

	var (
		items []T
		meta  map[string]any
	)
	resp, err := s.doer.Send(ctx, gateway.Get(path, params))
	if err == nil {
		var raw any
		if raw, err = resp.JSON(); err == nil {
			items, meta = normalize.Slice(raw, s.cfg.Decode)
			items = dedupe(items)
		}
	}

	s.finish(ctx, keyList, n, err, func(st *State[T]) {
		st.Items = items
		st.Meta = meta
	})
	return err
}

// FetchOne loads a single entity into Current. Items are left alone.
func (s *Store[T]) FetchOne(ctx context.Context, id models.ID) (T, error) {
	n := s.begin(keyCurrent)

	var item T
	resp, err := s.doer.Send(ctx, gateway.Get(s.itemPath(id), nil))
	if err == nil {
		item, err = s.decodeOne(resp)
	}

	s.finish(ctx, keyCurrent, n, err, func(st *State[T]) {
		st.Current = &item
	})
	return item, err
}

// Create posts data and prepends the created entity.
func (s *Store[T]) Create(ctx context.Context, data any) (T, error) {
	var item T
	if err := validate(data); err != nil {
		return item, s.fail(ctx, err)
	}
	s.begin("")

	resp, err := s.doer.Send(ctx, gateway.Post(s.cfg.Path, data))
	if err == nil {
		item, err = s.decodeOne(resp)
	}

	s.finish(ctx, "", 0, err, func(st *State[T]) {
		rest := st.Items
		if i := indexOf(rest, item.EntityID()); i >= 0 {
			rest = append(rest[:i:i], rest[i+1:]...)
		}
		st.Items = append([]T{item}, rest...)
		s.seq.invalidate(keyList)
	})
	return item, err
}

// Update replaces the entity with the given id.
func (s *Store[T]) Update(ctx context.Context, id models.ID, data any) (T, error) {
	return s.replace(ctx, id, gateway.Put(s.itemPath(id), data), data)
}

// Patch sends a partial update to a sub-path of the entity
// (e.g. PATCH /admin/users/{id}/role) and applies the result like Update.
func (s *Store[T]) Patch(ctx context.Context, id models.ID, suffix string, data any) (T, error) {
	path := s.itemPath(id) + "/" + strings.TrimLeft(suffix, "/")
	return s.replace(ctx, id, gateway.Patch(path, data), data)
}

func (s *Store[T]) replace(ctx context.Context, id models.ID, req *gateway.Request, data any) (T, error) {
	var item T
	if err := validate(data); err != nil {
		return item, s.fail(ctx, err)
	}
	s.begin("")

	resp, err := s.doer.Send(ctx, req)
	if err == nil {
		item, err = s.decodeOne(resp)
	}

	s.finish(ctx, "", 0, err, func(st *State[T]) {
		if i := indexOf(st.Items, id); i >= 0 {
			st.Items[i] = item
			s.seq.invalidate(keyList)
		}
		if st.Current != nil && (*st.Current).EntityID() == id {
			st.Current = &item
			s.seq.invalidate(keyCurrent)
		}
	})
	return item, err
}

// Remove deletes the entity and drops it from Items and Current.
func (s *Store[T]) Remove(ctx context.Context, id models.ID) error {
	s.begin("")

	_, err := s.doer.Send(ctx, gateway.Delete(s.itemPath(id)))

	s.finish(ctx, "", 0, err, func(st *State[T]) {
		s.drop(st, id)
	})
	return err
}

// drop forgets id locally. List fetches issued before the removal can no
// longer bring it back.
func (s *Store[T]) drop(st *State[T], id models.ID) {
	st.Items = withoutID(st.Items, id)
	s.seq.invalidate(keyList)
	if st.Current != nil && (*st.Current).EntityID() == id {
		st.Current = nil
		s.seq.invalidate(keyCurrent)
	}
}

func withoutID[T models.Identifiable](items []T, id models.ID) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.EntityID() != id {
			out = append(out, it)
		}
	}
	return out
}

// ResetStatus returns the store to Idle and forgets the last error.
func (s *Store[T]) ResetStatus() {
	s.mutate(func(st *State[T]) {
		st.Status = StatusIdle
		st.Err = nil
	})
}

// ClearCurrent forgets the current item; in-flight FetchOne calls are
// discarded when they complete.
func (s *Store[T]) ClearCurrent() {
	s.mutate(func(st *State[T]) {
		st.Current = nil
		s.seq.invalidate(keyCurrent)
	})
}
