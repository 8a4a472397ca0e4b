// Package store implements the generic resource collection used for every
// remote entity list of the client (articles, threads, categories, admin
// listings, profiles).
//
// A Store[T] holds an ordered, id-unique list of items, an optional current
// item, a status and the last error. Operations move it through
// Idle -> Loading -> Succeeded|Failed and notify subscribers after every
// change. Fetch responses are tagged with a per-key sequence number and a
// response is dropped when a request issued later for the same key has
// already been applied, so the most recently issued request always wins.
package store
