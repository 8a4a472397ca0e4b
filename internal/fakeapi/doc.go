// Package fakeapi is an in-memory implementation of the courtside REST API.
//
// It backs the end-to-end tests of the client core and the local
// development server (cmd/devserver). Responses deliberately mix the field
// spellings and envelopes seen on the real backend (snake_case and
// camelCase, bare arrays and wrapped lists, string and object categories)
// so the client normalization is exercised.
package fakeapi
