// Package element models the client-side identity cache that lets repeated
// locator lookups resolve to a stable handle instead of round-tripping the
// full tree walk.
package element

import (
	"sync"

	"github.com/cwbudde/swinglibrary-go/internal/jsonvalue"
)

// ComponentHandle is the opaque, agent-issued identity of a live widget. It
// is stable for the component's lifetime; the agent reuses it across calls
// so the cache can recognise "the same button" without re-resolving the
// locator.
type ComponentHandle int64

// ElementCache is a concurrency-safe handle -> record table, indexed a
// second way by locator so a repeated lookup of "the same locator" can
// reuse a live handle instead of re-walking the whole tree. Construct with
// NewElementCache.
type ElementCache struct {
	mu        sync.RWMutex
	records   map[ComponentHandle]ElementRecord
	byLocator map[string]ComponentHandle
}

// NewElementCache returns an empty cache.
func NewElementCache() *ElementCache {
	return &ElementCache{
		records:   make(map[ComponentHandle]ElementRecord),
		byLocator: make(map[string]ComponentHandle),
	}
}

// InsertOrRefresh stores rec, overwriting any existing entry for the same
// handle (the agent may report refreshed Extra attributes for a handle
// already known to the cache), and returns the canonical handle for rec —
// always rec.Handle itself, since the agent (not the cache) assigns handle
// identity; the return value lets callers chain without holding onto rec.
func (c *ElementCache) InsertOrRefresh(rec ElementRecord) ComponentHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[rec.Handle] = rec
	if rec.Locator != "" {
		c.byLocator[rec.Locator] = rec.Handle
	}
	return rec.Handle
}

// Get returns the cached record for handle, if any.
func (c *ElementCache) Get(handle ComponentHandle) (ElementRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[handle]
	return rec, ok
}

// Lookup returns the most recently cached record resolved from locator, if
// any, letting an action re-use a known-good handle instead of resolving
// the locator again through the agent.
func (c *ElementCache) Lookup(locator string) (ElementRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	handle, ok := c.byLocator[locator]
	if !ok {
		return ElementRecord{}, false
	}
	rec, ok := c.records[handle]
	return rec, ok
}

// Refresh re-decodes a freshly fetched getElementProperties payload into
// the record cached for handle, preserving the locator it was resolved
// from. It reports false if handle is not cached.
func (c *ElementCache) Refresh(handle ComponentHandle, props jsonvalue.Value) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.records[handle]
	if !ok {
		return false
	}
	c.records[handle] = NewRecord(handle, rec.Locator, props)
	return true
}

// Invalidate drops a single handle from the cache (the agent reported it
// stale), along with whichever locator(s) currently point at it.
func (c *ElementCache) Invalidate(handle ComponentHandle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.records, handle)
	for locator, h := range c.byLocator {
		if h == handle {
			delete(c.byLocator, locator)
		}
	}
}

// InvalidateAll clears the entire cache, used when the connection resets
// (handles issued by a previous agent process are never valid again).
func (c *ElementCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = make(map[ComponentHandle]ElementRecord)
	c.byLocator = make(map[string]ComponentHandle)
}

// Len reports the number of cached handles, mainly for tests and debug
// tooling.
func (c *ElementCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}
