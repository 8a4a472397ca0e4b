package store

const (
	keyList    = "list"
	keyCurrent = "current"
)

// sequencer tracks, per key, the last issued and the last applied request
// number. Not safe for concurrent use; the store lock guards it.
type sequencer struct {
	issued  map[string]uint64
	applied map[string]uint64
}

func newSequencer() *sequencer {
	return &sequencer{issued: map[string]uint64{}, applied: map[string]uint64{}}
}

func (q *sequencer) next(key string) uint64 {
	q.issued[key]++
	return q.issued[key]
}

// accept reports whether response n for key is still current and marks it
// applied.
func (q *sequencer) accept(key string, n uint64) bool {
	if n <= q.applied[key] {
		return false
	}
	q.applied[key] = n
	return true
}

// invalidate makes every in-flight request for key stale.
func (q *sequencer) invalidate(key string) {
	q.applied[key] = q.issued[key]
}
