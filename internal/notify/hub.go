// Package notify implements a small synchronous observer list used by the
// session and the resource stores to publish state snapshots.
package notify

import (
	"sort"
	"sync"
)

// Hub fans versioned values out to subscribed callbacks. The zero value is
// ready to use.
//
// Publishers stamp each value with a version taken under their own lock, so
// versions follow the order of the state changes. Subscribers see versions
// in increasing order only: a value older than one already queued is
// dropped, and values published while a delivery is running are coalesced
// into the newest one, which the delivering goroutine hands out next.
// Callbacks run outside of the hub lock, in subscription order, and may
// publish or unsubscribe themselves.
type Hub[S any] struct {
	mu         sync.Mutex
	next       int
	subs       map[int]func(S)
	latest     uint64
	pending    *S
	delivering bool
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (h *Hub[S]) Subscribe(fn func(S)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs == nil {
		h.subs = make(map[int]func(S))
	}
	id := h.next
	h.next++
	h.subs[id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

// Publish delivers v, stamped with version, to every current subscriber
// unless a newer version has already been published.
func (h *Hub[S]) Publish(version uint64, v S) {
	h.mu.Lock()
	if version <= h.latest {
		h.mu.Unlock()
		return
	}
	h.latest = version
	h.pending = &v
	if h.delivering {
		h.mu.Unlock()
		return
	}
	h.delivering = true

	for h.pending != nil {
		next := *h.pending
		h.pending = nil
		fns := h.subscribersLocked()
		h.mu.Unlock()

		for _, fn := range fns {
			fn(next)
		}

		h.mu.Lock()
	}
	h.delivering = false
	h.mu.Unlock()
}

func (h *Hub[S]) subscribersLocked() []func(S) {
	ids := make([]int, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(S), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, h.subs[id])
	}
	return fns
}
