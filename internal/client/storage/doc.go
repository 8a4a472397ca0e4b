// Package storage opens the local SQLite database and persists the
// authenticated session (credential token and user snapshot) in it.
package storage
