// Package cache implements the client-side query cache for the
// synchronization layer: one entry per query key, each moving through
// idle -> loading -> success|error, with staleness marking for invalidation
// and generation counters so a cancelled fetch can never overwrite a newer
// value with a stale response.
package cache

import (
	"sync"
	"time"
)

// State is the fetch state of a cached entry.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

// Entry is a point-in-time copy of a cached query's observable state. Data
// holds the last known-good value and survives fetch errors.
type Entry struct {
	State     State
	Data      interface{}
	Err       error
	UpdatedAt time.Time
	Stale     bool
}

type entry struct {
	Entry
	gen uint64
}

// Cache is an explicit, injectable query cache scoped to one application
// session. The zero value is not usable; use New.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	now     func() time.Time
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[Key]*entry),
		now:     time.Now,
	}
}

// Lookup returns a copy of the entry's observable state.
func (c *Cache) Lookup(k Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[k]
	if !ok {
		return Entry{}, false
	}
	return e.Entry, true
}

// Fresh returns the cached value when the entry is a settled success, not
// stale, and younger than ttl.
func (c *Cache) Fresh(k Key, ttl time.Duration) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[k]
	if !ok || e.State != StateSuccess || e.Stale {
		return nil, false
	}
	if c.now().Sub(e.UpdatedAt) >= ttl {
		return nil, false
	}
	return e.Data, true
}

// BeginFetch moves the entry into loading (creating it if needed) and returns
// the fetch generation. The matching Commit or Fail must present the same
// generation; if the fetch was cancelled or superseded in the meantime the
// result is discarded.
func (c *Cache) BeginFetch(k Key) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.ensure(k)
	e.State = StateLoading
	return e.gen
}

// Commit stores a confirmed server value for the fetch started at gen.
// Returns false when the fetch was superseded and the value was dropped.
func (c *Cache) Commit(k Key, gen uint64, data interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[k]
	if !ok || e.gen != gen {
		return false
	}
	e.State = StateSuccess
	e.Data = data
	e.Err = nil
	e.Stale = false
	e.UpdatedAt = c.now()
	return true
}

// Fail records a fetch error for the fetch started at gen. The last
// known-good value is kept.
func (c *Cache) Fail(k Key, gen uint64, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[k]
	if !ok || e.gen != gen {
		return false
	}
	e.State = StateError
	e.Err = err
	e.UpdatedAt = c.now()
	return true
}

// CancelFetch discards any in-flight fetch for the key: the generation is
// bumped so a late Commit/Fail is ignored, and a loading entry settles back
// to its previous value. Required before applying an optimistic write so a
// stale response cannot clobber the speculative value.
func (c *Cache) CancelFetch(k Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[k]
	if !ok {
		return
	}
	e.gen++
	if e.State == StateLoading {
		if e.Data != nil {
			e.State = StateSuccess
		} else {
			e.State = StateIdle
		}
	}
}

// Put writes a value directly, outside any fetch: used for speculative
// optimistic values, rollback restores, and committed server responses from
// mutations. Any in-flight fetch for the key is superseded.
func (c *Cache) Put(k Key, data interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.ensure(k)
	e.gen++
	e.State = StateSuccess
	e.Data = data
	e.Err = nil
	e.UpdatedAt = c.now()
}

// Snapshot returns the current cached value for rollback bookkeeping.
func (c *Cache) Snapshot(k Key) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[k]
	if !ok || e.Data == nil {
		return nil, false
	}
	return e.Data, true
}

// Invalidate marks every entry of the given domain and kind stale so the
// next read (or the polling worker) refetches it.
func (c *Cache) Invalidate(domain string, kind Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if k.Domain == domain && k.Kind == kind {
			e.Stale = true
		}
	}
}

// Evict removes the entry entirely.
func (c *Cache) Evict(k Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, k)
}

// Keys returns all keys of the given domain and kind.
func (c *Cache) Keys(domain string, kind Kind) []Key {
	c.mu.Lock()
	defer c.mu.Unlock()
	var keys []Key
	for k := range c.entries {
		if k.Domain == domain && k.Kind == kind {
			keys = append(keys, k)
		}
	}
	return keys
}

func (c *Cache) ensure(k Key) *entry {
	e, ok := c.entries[k]
	if !ok {
		e = &entry{Entry: Entry{State: StateIdle}}
		c.entries[k] = e
	}
	return e
}
