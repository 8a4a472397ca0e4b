// Package gateway is the single egress point of the client core. Every
// remote call goes through Gateway.Send, which attaches the session
// credential, rate limits and tags the request, maps failures onto the
// common error types and transparently renews an expired credential once.
package gateway
