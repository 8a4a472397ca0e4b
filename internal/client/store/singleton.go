package store

import (
	"context"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/courtside/internal/client/gateway"
	"github.com/dmitrijs2005/courtside/internal/common"
	"github.com/dmitrijs2005/courtside/internal/logging"
	"github.com/dmitrijs2005/courtside/internal/notify"
)

// Document is the state of a Singleton.
type Document[T any] struct {
	Data   *T
	Status Status
	Err    error
}

func (d Document[T]) Error() string { return common.Message(d.Err) }

// Singleton holds one fetch-only remote document such as dashboard stats.
type Singleton[T any] struct {
	doer   gateway.Doer
	path   string
	decode func(raw any) T
	logger logging.Logger

	mu    sync.Mutex
	state Document[T]
	seq   *sequencer
	ver   uint64
	hub   notify.Hub[Document[T]]
}

func NewSingleton[T any](doer gateway.Doer, path string, decode func(raw any) T, logger logging.Logger) *Singleton[T] {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Singleton[T]{
		doer:   doer,
		path:   path,
		decode: decode,
		logger: logger,
		state:  Document[T]{Status: StatusIdle},
		seq:    newSequencer(),
	}
}

func (s *Singleton[T]) Snapshot() Document[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Singleton[T]) snapshotLocked() Document[T] {
	d := Document[T]{Status: s.state.Status, Err: s.state.Err}
	if s.state.Data != nil {
		v := *s.state.Data
		d.Data = &v
	}
	return d
}

func (s *Singleton[T]) Subscribe(fn func(Document[T])) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}

func (s *Singleton[T]) update(fn func()) {
	s.mu.Lock()
	fn()
	s.ver++
	v, snap := s.ver, s.snapshotLocked()
	s.mu.Unlock()
	s.hub.Publish(v, snap)
}

// Fetch loads the document; the most recently issued call wins.
func (s *Singleton[T]) Fetch(ctx context.Context, params url.Values) (T, error) {
	var n uint64
	s.update(func() {
		n = s.seq.next(keyCurrent)
		s.state.Status = StatusLoading
		s.state.Err = nil
	})

	var v T
	resp, err := s.doer.Send(ctx, gateway.Get(s.path, params))
	if err == nil {
		var raw any
		if raw, err = resp.JSON(); err == nil {
			v = s.decode(raw)
		}
	}

	s.mu.Lock()
	if !s.seq.accept(keyCurrent, n) {
		s.mu.Unlock()
		s.logger.Debug(ctx, "dropping stale response", "path", s.path, "seq", n)
		return v, err
	}
	if err != nil {
		s.state.Status = StatusFailed
		s.state.Err = err
	} else {
		s.state.Data = &v
		s.state.Status = StatusSucceeded
		s.state.Err = nil
	}
	s.ver++
	ver, snap := s.ver, s.snapshotLocked()
	s.mu.Unlock()

	s.hub.Publish(ver, snap)
	return v, err
}

func (s *Singleton[T]) ResetStatus() {
	s.update(func() {
		s.state.Status = StatusIdle
		s.state.Err = nil
	})
}
