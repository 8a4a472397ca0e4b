// Package normalize maps the loosely shaped JSON documents returned by the
// server onto the canonical entities in package models.
//
// Every function is total: it accepts any decoded JSON value (including nil
// or a value of the wrong type) and falls back to documented defaults
// instead of failing. Stores and presentation code must not inline their
// own fallback chains; they call into this package.
package normalize
