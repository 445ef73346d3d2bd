// Package store implements the console's client-state layer: per-session
// stores that each own one server-backed collection and its loading/error
// flags, reconciling every mutation against the upstream's returned payload.
package store

import "sync"

// Collection holds one server-backed list plus its loading and error state.
// Items keep the upstream's order; no client-side re-sorting happens here.
//
// Fetches are sequenced: BeginFetch hands out a monotonic ticket and
// CompleteFetch discards any result whose ticket has been superseded, so a
// slow old fetch can never overwrite a newer one. Mutations (Append,
// ReplaceByID, RemoveByID) are not sequenced; they apply to whatever state is
// present when their upstream confirmation lands.
type Collection[T any] struct {
	mu      sync.Mutex
	items   []T
	loading bool
	lastErr string
	nextSeq uint64
	id      func(T) string
}

// NewCollection builds an empty collection. id extracts the server-assigned
// identifier from an element.
func NewCollection[T any](id func(T) string) *Collection[T] {
	return &Collection[T]{id: id}
}

// Snapshot returns a copy of the current items plus the loading and error
// flags.
func (c *Collection[T]) Snapshot() (items []T, loading bool, lastErr string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items = make([]T, len(c.items))
	copy(items, c.items)
	return items, c.loading, c.lastErr
}

// BeginFetch marks the collection loading and returns the ticket the caller
// must present to CompleteFetch.
func (c *Collection[T]) BeginFetch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSeq++
	c.loading = true
	c.lastErr = ""
	return c.nextSeq
}

// CompleteFetch applies a fetch result. A stale ticket (a newer fetch has
// begun since) is discarded entirely: the newer fetch owns the loading flag
// and the final contents. On failure the items are reset to empty and the
// error message recorded rather than leaving stale data behind.
func (c *Collection[T]) CompleteFetch(seq uint64, items []T, errMsg string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.nextSeq {
		return false
	}
	c.loading = false
	if errMsg != "" {
		c.items = nil
		c.lastErr = errMsg
		return true
	}
	c.items = items
	c.lastErr = ""
	return true
}

// Append adds a server-returned entity to the end of the collection.
func (c *Collection[T]) Append(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// ReplaceByID swaps the element with the given identifier for the
// server-returned one. Returns false when no element matches.
func (c *Collection[T]) ReplaceByID(id string, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.id(c.items[i]) == id {
			c.items[i] = item
			return true
		}
	}
	return false
}

// RemoveByID drops the element with the given identifier. Returns false when
// no element matches.
func (c *Collection[T]) RemoveByID(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.id(c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the current number of items.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
