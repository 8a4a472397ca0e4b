package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/courtside/internal/common"
)

// Doer sends a request through the gateway. Stores and the session manager
// depend on this interface rather than on *Gateway.
type Doer interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// Request describes one REST call relative to the API base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any

	// Auth marks calls to the auth endpoints themselves. They are never
	// renewed or retried on 401.
	Auth bool

	// Token, when set, is sent instead of the session credential.
	Token string

	retried bool
}

func Get(path string, query url.Values) *Request {
	return &Request{Method: http.MethodGet, Path: path, Query: query}
}

func Post(path string, body any) *Request {
	return &Request{Method: http.MethodPost, Path: path, Body: body}
}

func Put(path string, body any) *Request {
	return &Request{Method: http.MethodPut, Path: path, Body: body}
}

func Patch(path string, body any) *Request {
	return &Request{Method: http.MethodPatch, Path: path, Body: body}
}

func Delete(path string) *Request {
	return &Request{Method: http.MethodDelete, Path: path}
}

// Response is a successful (2xx) answer with its body fully read.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode unmarshals the body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}
	return nil
}

// JSON decodes the body into a generic value for the normalizer.
func (r *Response) JSON() (any, error) {
	var v any
	if err := r.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
