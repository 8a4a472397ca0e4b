package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionExpiredError_MatchesSentinel(t *testing.T) {
	cause := errors.New("refresh rejected")
	err := fmt.Errorf("fetch articles: %w", &SessionExpiredError{Cause: cause})

	require.ErrorIs(t, err, ErrSessionExpired)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "session expired", Message(err))
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(&HTTPError{Status: http.StatusUnauthorized}))
	assert.True(t, IsUnauthorized(fmt.Errorf("wrapped: %w", &HTTPError{Status: 401})))
	assert.False(t, IsUnauthorized(&HTTPError{Status: http.StatusForbidden}))
	assert.False(t, IsUnauthorized(errors.New("401")))
	assert.False(t, IsUnauthorized(nil))
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(&NetworkError{Op: "POST /auth/refresh-token", Err: errors.New("reset")}))
	assert.True(t, IsTransient(fmt.Errorf("renew: %w", context.DeadlineExceeded)))
	assert.True(t, IsTransient(&HTTPError{Status: http.StatusBadGateway}))
	assert.False(t, IsTransient(&HTTPError{Status: http.StatusUnauthorized}))
	assert.False(t, IsTransient(ErrMalformedResponse))
	assert.False(t, IsTransient(nil))
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"http with message", &HTTPError{Status: 400, Message: "Email already used"}, "Email already used"},
		{"http without message", &HTTPError{Status: 404}, "Not Found"},
		{"network", &NetworkError{Op: "GET /articles", Err: errors.New("dial tcp: refused")}, "server unavailable"},
		{"validation", &ValidationError{Err: errors.New("email: must be a valid email address.")}, "email: must be a valid email address."},
		{"plain", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}

func TestHTTPError_Error(t *testing.T) {
	assert.Equal(t, "http 500", (&HTTPError{Status: 500}).Error())
	assert.Equal(t, "http 401: Invalid token", (&HTTPError{Status: 401, Message: "Invalid token"}).Error())
}
