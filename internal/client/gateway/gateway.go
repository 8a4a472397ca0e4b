package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/courtside/internal/common"
	"github.com/dmitrijs2005/courtside/internal/logging"
)

// TokenSource yields the current session credential ("" when signed out).
type TokenSource interface {
	Token() string
}

// Renewer obtains a fresh credential. A failure matching
// common.ErrSessionExpired means the session has been cleared; transient
// failures leave it in place.
type Renewer interface {
	Renew(ctx context.Context) error
}

type Gateway struct {
	baseURL   string
	client    *http.Client
	tokens    TokenSource
	limiter   *rate.Limiter
	renewSkew time.Duration
	logger    logging.Logger
	now       func() time.Time

	mu      sync.RWMutex
	renewer Renewer
}

type Option func(*Gateway)

func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.client = c }
}

func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.client = &http.Client{Timeout: d} }
}

// WithRateLimit limits outbound requests to r per second with the given
// burst. r <= 0 disables limiting.
func WithRateLimit(r float64, burst int) Option {
	return func(g *Gateway) {
		if r <= 0 {
			g.limiter = nil
			return
		}
		g.limiter = rate.NewLimiter(rate.Limit(r), max(burst, 1))
	}
}

// WithRenewSkew enables proactive renewal of JWT credentials whose expiry
// is closer than d.
func WithRenewSkew(d time.Duration) Option {
	return func(g *Gateway) { g.renewSkew = d }
}

func WithLogger(l logging.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

// New creates a gateway for the API rooted at baseURL
// (e.g. http://localhost:6543/api).
func New(baseURL string, tokens TokenSource, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
		logger:  logging.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetRenewer installs the credential renewer. The session manager depends
// on the gateway, so it is attached after both are built.
func (g *Gateway) SetRenewer(r Renewer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.renewer = r
}

func (g *Gateway) getRenewer() Renewer {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.renewer
}

// Send performs req. Non-2xx answers come back as *common.HTTPError and
// transport failures as *common.NetworkError. A 401 on a non-auth request
// triggers one renewal and one retry; if renewal fails the error matches
// common.ErrSessionExpired.
func (g *Gateway) Send(ctx context.Context, req *Request) (*Response, error) {
	if !req.Auth && req.Token == "" {
		if err := g.renewIfExpiring(ctx); err != nil {
			return nil, err
		}
	}

	token := req.Token
	if token == "" {
		token = g.tokens.Token()
	}

	resp, err := g.do(ctx, req, token)
	if err == nil || req.Auth || req.retried || token == "" || !common.IsUnauthorized(err) {
		return resp, err
	}

	r := g.getRenewer()
	if r == nil {
		return nil, err
	}

	// another caller may have renewed while this request was in flight
	if current := g.tokens.Token(); current == "" || current == token {
		g.logger.Warn(ctx, "credential rejected, renewing", "method", req.Method, "path", req.Path)
		if rerr := r.Renew(ctx); rerr != nil {
			return nil, renewalError(rerr)
		}
	}

	retry := *req
	retry.retried = true
	retry.Token = ""
	return g.do(ctx, &retry, g.tokens.Token())
}

func (g *Gateway) renewIfExpiring(ctx context.Context) error {
	if g.renewSkew <= 0 {
		return nil
	}
	r := g.getRenewer()
	if r == nil {
		return nil
	}
	exp, ok := TokenExpiry(g.tokens.Token())
	if !ok || exp.Sub(g.now()) > g.renewSkew {
		return nil
	}
	g.logger.Info(ctx, "credential about to expire, renewing", "expires_at", exp)
	err := r.Renew(ctx)
	if err != nil && common.IsTransient(err) && ctx.Err() == nil {
		// the current credential is still good until it expires
		g.logger.Warn(ctx, "early renewal failed, using current credential", "error", err)
		return nil
	}
	return renewalError(err)
}

func renewalError(err error) error {
	if err == nil || errors.Is(err, common.ErrSessionExpired) || common.IsTransient(err) {
		return err
	}
	return &common.SessionExpiredError{Cause: err}
}

func (g *Gateway) do(ctx context.Context, req *Request, token string) (*Response, error) {
	op := req.Method + " " + req.Path

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, &common.NetworkError{Op: op, Err: err}
		}
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	u := g.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}
	requestID := uuid.NewString()
	hreq.Header.Set("Accept", "application/json")
	hreq.Header.Set(common.RequestIDHeaderName, requestID)
	if body != nil {
		hreq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		hreq.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	start := g.now()
	hresp, err := g.client.Do(hreq)
	if err != nil {
		g.logger.Debug(ctx, "request failed", "request_id", requestID, "op", op, "error", err)
		return nil, &common.NetworkError{Op: op, Err: err}
	}
	defer hresp.Body.Close()

	data, err := io.ReadAll(hresp.Body)
	if err != nil {
		return nil, &common.NetworkError{Op: op, Err: err}
	}

	g.logger.Debug(ctx, "request done",
		"request_id", requestID,
		"op", op,
		"status", hresp.StatusCode,
		"retry", req.retried,
		"duration", g.now().Sub(start),
	)

	if hresp.StatusCode < 200 || hresp.StatusCode > 299 {
		return nil, &common.HTTPError{
			Status:  hresp.StatusCode,
			Message: serverMessage(data, hresp.StatusCode),
			Body:    data,
		}
	}

	return &Response{Status: hresp.StatusCode, Header: hresp.Header, Body: data}, nil
}

// serverMessage extracts message, then error, then falls back to the
// status text.
func serverMessage(body []byte, status int) string {
	var doc map[string]any
	if json.Unmarshal(body, &doc) == nil {
		for _, k := range []string{"message", "error"} {
			switch v := doc[k].(type) {
			case string:
				if v != "" {
					return v
				}
			case map[string]any:
				if m, ok := v["message"].(string); ok && m != "" {
					return m
				}
			}
		}
	}
	return http.StatusText(status)
}
