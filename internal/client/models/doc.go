// Package models defines the canonical client-side entity shapes
// (articles, threads, comments, users, categories) and the validated
// input payloads sent to the server.
package models
