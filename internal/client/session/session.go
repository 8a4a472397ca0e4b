package session

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/courtside/internal/client/gateway"
	"github.com/dmitrijs2005/courtside/internal/client/models"
	"github.com/dmitrijs2005/courtside/internal/common"
	"github.com/dmitrijs2005/courtside/internal/notify"
)

type Status string

const (
	StatusIdle           Status = "idle"
	StatusAuthenticating Status = "authenticating"
	StatusAuthenticated  Status = "authenticated"
	StatusRenewing       Status = "renewing"
	StatusFailed         Status = "failed"
)

// Snapshot is an immutable copy of the session state.
type Snapshot struct {
	Token           string
	User            *models.User
	IsAuthenticated bool
	Status          Status
	Err             error
	Provisional     bool
	ExpiresAt       time.Time
}

// Error returns the display message of the last failure, or "".
func (s Snapshot) Error() string {
	return common.Message(s.Err)
}

// Session is safe for concurrent use. IsAuthenticated is derived from the
// token and the user, so the two can never disagree.
type Session struct {
	mu          sync.RWMutex
	token       string
	user        *models.User
	status      Status
	err         error
	provisional bool
	expiresAt   time.Time
	version     uint64

	hub notify.Hub[Snapshot]
}

func New() *Session {
	return &Session{status: StatusIdle}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUser(s.user)
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// IsAdmin reports whether the current user has admin rights.
func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsAdmin
}

func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every change.
func (s *Session) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Token:           s.token,
		User:            copyUser(s.user),
		IsAuthenticated: s.token != "" && s.user != nil,
		Status:          s.status,
		Err:             s.err,
		Provisional:     s.provisional,
		ExpiresAt:       s.expiresAt,
	}
}

// update applies fn under the write lock and publishes the result.
func (s *Session) update(fn func()) {
	s.mu.Lock()
	fn()
	s.version++
	v, snap := s.version, s.snapshotLocked()
	s.mu.Unlock()

	s.hub.Publish(v, snap)
}

func (s *Session) setStatus(st Status, err error) {
	s.update(func() {
		s.status = st
		s.err = err
	})
}

func (s *Session) setAuthenticated(token string, user *models.User, provisional bool) {
	s.update(func() {
		s.token = token
		s.user = copyUser(user)
		s.status = StatusAuthenticated
		s.err = nil
		s.provisional = provisional
		s.expiresAt, _ = gateway.TokenExpiry(token)
	})
}

func (s *Session) setToken(token string) {
	s.update(func() {
		s.token = token
		s.status = StatusAuthenticated
		s.err = nil
		s.expiresAt, _ = gateway.TokenExpiry(token)
	})
}

// reset drops the identity and the credential together.
func (s *Session) reset(st Status, err error) {
	s.update(func() {
		s.token = ""
		s.user = nil
		s.status = st
		s.err = err
		s.provisional = false
		s.expiresAt = time.Time{}
	})
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
