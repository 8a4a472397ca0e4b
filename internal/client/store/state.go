package store

import (
	"maps"
	"slices"

	"github.com/dmitrijs2005/courtside/internal/client/models"
	"github.com/dmitrijs2005/courtside/internal/common"
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// State is a snapshot of a collection. It shares nothing with the store.
type State[T any] struct {
	Items   []T
	Current *T
	Status  Status
	Err     error
	Meta    map[string]any
}

// Error returns the display message of the last failure, or "".
func (s State[T]) Error() string {
	return common.Message(s.Err)
}

// Total returns the server-reported item count when present, else the
// number of loaded items.
func (s State[T]) Total() int {
	if v, ok := s.Meta["total"].(float64); ok {
		return int(v)
	}
	return len(s.Items)
}

func (s State[T]) clone() State[T] {
	c := State[T]{
		Items:  slices.Clone(s.Items),
		Status: s.Status,
		Err:    s.Err,
		Meta:   maps.Clone(s.Meta),
	}
	if c.Items == nil {
		c.Items = []T{}
	}
	if s.Current != nil {
		cur := *s.Current
		c.Current = &cur
	}
	return c
}

// dedupe keeps the first occurrence of every id.
func dedupe[T models.Identifiable](items []T) []T {
	seen := make(map[models.ID]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		id := it.EntityID()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, it)
	}
	return out
}

func indexOf[T models.Identifiable](items []T, id models.ID) int {
	return slices.IndexFunc(items, func(it T) bool { return it.EntityID() == id })
}
