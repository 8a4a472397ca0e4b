// Package common contains shared constants and error types used across
// the courtside client components.
package common

// AuthorizationHeaderName is the HTTP header used to carry the session
// credential on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "

// RequestIDHeaderName carries a per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"

// Persisted session keys in the local metadata store.
const (
	MetadataKeyToken = "token"
	MetadataKeyUser  = "user"
)
