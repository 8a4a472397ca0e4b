// Package common defines shared constants and error types used by the
// gateway, session and store layers. Callers should use errors.Is / errors.As
// to match these values.
package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrSessionExpired is returned when token renewal failed and the session
	// has been cleared.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotAuthenticated is returned by operations that need a session user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrMalformedResponse is returned when a 2xx response lacks required fields.
	ErrMalformedResponse = errors.New("malformed response")
)

// NetworkError means no response reached the client: connectivity failure,
// timeout or cancelled context.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError means the server answered with a non-2xx status.
type HTTPError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http %d", e.Status)
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is an HTTP 401.
func IsUnauthorized(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.Status == http.StatusUnauthorized
}

// IsTransient reports whether err says nothing about the request itself:
// no response arrived, the context ended, or the server failed with a 5xx.
func IsTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return true
	}
	var he *HTTPError
	return errors.As(err, &he) && he.Status >= http.StatusInternalServerError
}

// SessionExpiredError wraps the renewal failure cause. It matches
// ErrSessionExpired with errors.Is.
type SessionExpiredError struct {
	Cause error
}

func (e *SessionExpiredError) Error() string {
	if e.Cause == nil {
		return ErrSessionExpired.Error()
	}
	return fmt.Sprintf("%s: %v", ErrSessionExpired, e.Cause)
}

func (e *SessionExpiredError) Is(target error) bool { return target == ErrSessionExpired }

func (e *SessionExpiredError) Unwrap() error { return e.Cause }

// ValidationError means client-side input was rejected before any network
// call. Err usually holds ozzo-validation field errors.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Message returns a human readable description of err suitable for the
// {status, error} pair rendered by the presentation layer.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var he *HTTPError
	if errors.As(err, &he) {
		if he.Message != "" {
			return he.Message
		}
		return http.StatusText(he.Status)
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Err.Error()
	}
	if errors.Is(err, ErrSessionExpired) {
		return ErrSessionExpired.Error()
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return "server unavailable"
	}
	return err.Error()
}
