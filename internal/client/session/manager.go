package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/courtside/internal/client/gateway"
	"github.com/dmitrijs2005/courtside/internal/client/models"
	"github.com/dmitrijs2005/courtside/internal/client/normalize"
	"github.com/dmitrijs2005/courtside/internal/client/storage"
	"github.com/dmitrijs2005/courtside/internal/common"
	"github.com/dmitrijs2005/courtside/internal/logging"
)

const (
	pathLogin    = "/auth/login"
	pathRegister = "/auth/register"
	pathLogout   = "/auth/logout"
	pathMe       = "/auth/me"
	pathRefresh  = "/auth/refresh-token"
)

// renewTimeout bounds a shared renewal, which does not follow the
// cancellation of any single caller.
const renewTimeout = 30 * time.Second

// Manager is the only writer of a Session.
type Manager struct {
	session *Session
	doer    gateway.Doer
	store   storage.SessionStore
	norm    *normalize.Normalizer
	logger  logging.Logger

	renewals singleflight.Group
}

func NewManager(s *Session, doer gateway.Doer, store storage.SessionStore, norm *normalize.Normalizer, logger logging.Logger) *Manager {
	return &Manager{
		session: s,
		doer:    doer,
		store:   store,
		norm:    norm,
		logger:  logger,
	}
}

func (m *Manager) Session() *Session { return m.session }

// Login authenticates with email and password. On failure without a prior
// session nothing is persisted; a prior session is kept as it was.
func (m *Manager) Login(ctx context.Context, c models.Credentials) error {
	return m.authenticate(ctx, pathLogin, c)
}

// Register creates an account and signs it in, with the same contract as
// Login.
func (m *Manager) Register(ctx context.Context, r models.Registration) error {
	return m.authenticate(ctx, pathRegister, r)
}

func (m *Manager) authenticate(ctx context.Context, path string, in models.Validatable) error {
	if err := in.Validate(); err != nil {
		return m.fail(ctx, &common.ValidationError{Err: err})
	}

	m.session.setStatus(StatusAuthenticating, nil)

	req := gateway.Post(path, in)
	req.Auth = true
	resp, err := m.doer.Send(ctx, req)
	if err != nil {
		return m.fail(ctx, err)
	}

	raw, err := resp.JSON()
	if err != nil {
		return m.fail(ctx, err)
	}
	token := normalize.Token(raw)
	user, ok := m.norm.Identity(raw)
	if token == "" || !ok {
		return m.fail(ctx, fmt.Errorf("%w: auth response without token or user", common.ErrMalformedResponse))
	}

	if err := m.store.Save(ctx, token, &user); err != nil {
		return m.fail(ctx, fmt.Errorf("persist session: %w", err))
	}
	m.session.setAuthenticated(token, &user, false)
	m.logger.Info(ctx, "signed in", "user", user.Username, "admin", user.IsAdmin)
	return nil
}

// fail records err for a rejected sign-in. An existing session survives;
// otherwise memory and storage are cleared.
func (m *Manager) fail(ctx context.Context, err error) error {
	if m.session.IsAuthenticated() {
		m.session.setStatus(StatusFailed, err)
		return err
	}
	m.clearStorage(ctx)
	m.session.reset(StatusFailed, err)
	return err
}

func (m *Manager) clearStorage(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Error(ctx, "failed to clear persisted session", "error", err)
	}
}

// Logout notifies the server (failures are ignored) and always clears the
// local session.
func (m *Manager) Logout(ctx context.Context) error {
	if m.session.Token() != "" {
		req := gateway.Post(pathLogout, nil)
		req.Auth = true
		if _, err := m.doer.Send(ctx, req); err != nil {
			m.logger.Warn(ctx, "remote logout failed", "error", err)
		}
	}

	m.session.reset(StatusIdle, nil)
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear persisted session: %w", err)
	}
	return nil
}

// Restore rebuilds the session from storage at startup. A persisted token
// is checked against the server; if that fails the persisted user snapshot
// is adopted provisionally. Unreadable storage counts as no session.
func (m *Manager) Restore(ctx context.Context) error {
	token, snapshot, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn(ctx, "discarding unreadable persisted session", "error", err)
		m.clearStorage(ctx)
		m.session.reset(StatusIdle, nil)
		return nil
	}
	if token == "" {
		if snapshot != nil {
			m.clearStorage(ctx)
		}
		m.session.reset(StatusIdle, nil)
		return nil
	}

	m.session.setStatus(StatusAuthenticating, nil)

	user, newToken, err := m.me(ctx, token)
	if err == nil {
		if newToken != "" {
			token = newToken
		}
		if perr := m.store.Save(ctx, token, &user); perr != nil {
			m.logger.Warn(ctx, "failed to persist restored session", "error", perr)
		}
		m.session.setAuthenticated(token, &user, false)
		m.logger.Info(ctx, "session restored", "user", user.Username)
		return nil
	}

	if snapshot != nil {
		m.logger.Warn(ctx, "session check failed, using persisted user", "error", err)
		m.session.setAuthenticated(token, snapshot, true)
		return nil
	}

	m.clearStorage(ctx)
	m.session.reset(StatusIdle, nil)
	return err
}

func (m *Manager) me(ctx context.Context, token string) (models.User, string, error) {
	req := gateway.Get(pathMe, nil)
	req.Auth = true
	req.Token = token

	resp, err := m.doer.Send(ctx, req)
	if err != nil {
		return models.User{}, "", err
	}
	raw, err := resp.JSON()
	if err != nil {
		return models.User{}, "", err
	}
	user, ok := m.norm.Identity(raw)
	if !ok {
		return models.User{}, "", fmt.Errorf("%w: identity response without user", common.ErrMalformedResponse)
	}
	return user, normalize.Token(raw), nil
}

// Renew exchanges the current credential for a new one. Concurrent callers
// share a single request, which runs detached from the callers' contexts;
// each caller stops waiting when its own context ends.
//
// When the server rejects the credential, or answers without a new one, the
// session is cleared and the error matches common.ErrSessionExpired.
// Transient failures (see common.IsTransient) leave the session in place
// and are returned as they are.
func (m *Manager) Renew(ctx context.Context) error {
	ch := m.renewals.DoChan("renew", func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), renewTimeout)
		defer cancel()
		return nil, m.renew(rctx)
	})

	select {
	case res := <-ch:
		if res.Shared {
			m.logger.Debug(ctx, "joined in-flight renewal")
		}
		return res.Err
	case <-ctx.Done():
		return &common.NetworkError{Op: "renew", Err: ctx.Err()}
	}
}

func (m *Manager) renew(ctx context.Context) error {
	if m.session.Token() == "" {
		return &common.SessionExpiredError{Cause: common.ErrNotAuthenticated}
	}

	m.session.setStatus(StatusRenewing, nil)

	req := gateway.Post(pathRefresh, nil)
	req.Auth = true
	resp, err := m.doer.Send(ctx, req)

	var token string
	if err == nil {
		var raw any
		raw, err = resp.JSON()
		token = normalize.Token(raw)
		if err == nil && token == "" {
			err = fmt.Errorf("%w: refresh response without token", common.ErrMalformedResponse)
		}
	}
	if err != nil && common.IsTransient(err) {
		m.logger.Warn(ctx, "credential renewal interrupted, keeping session", "error", err)
		m.session.setStatus(StatusAuthenticated, nil)
		return err
	}
	if err != nil {
		expired := &common.SessionExpiredError{Cause: err}
		m.logger.Warn(ctx, "credential renewal failed", "error", err)
		m.clearStorage(ctx)
		m.session.reset(StatusFailed, expired)
		return expired
	}

	if perr := m.store.UpdateToken(ctx, token); perr != nil {
		m.logger.Warn(ctx, "failed to persist renewed token", "error", perr)
	}
	m.session.setToken(token)
	m.logger.Info(ctx, "credential renewed")
	return nil
}

// ResetStatus clears a recorded failure without touching the identity.
func (m *Manager) ResetStatus() {
	st := StatusIdle
	if m.session.IsAuthenticated() {
		st = StatusAuthenticated
	}
	m.session.setStatus(st, nil)
}

// IsSessionExpired reports whether err means the user must sign in again.
func IsSessionExpired(err error) bool {
	return errors.Is(err, common.ErrSessionExpired)
}
