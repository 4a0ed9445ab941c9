package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Policy controls how long entries are served.
type Policy struct {
	// TTL is the retention window; Prune drops entries at least this old.
	TTL time.Duration
	// RefetchAfter, when set, is the shorter age after which an entry is
	// refetched on access even though it is still retained.
	RefetchAfter time.Duration
}

func (p Policy) maxAge() time.Duration {
	if p.RefetchAfter > 0 && p.RefetchAfter < p.TTL {
		return p.RefetchAfter
	}
	return p.TTL
}

type entry[V any] struct {
	value     V
	fetchedAt time.Time
	stale     bool
	tags      []Tag
}

type options struct {
	now          func() time.Time
	singleFlight bool
}

type Option func(*options)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithSingleFlight makes concurrent Loads of the same key share one fetch.
func WithSingleFlight(enabled bool) Option {
	return func(o *options) { o.singleFlight = enabled }
}

// Cache is safe for concurrent use.
type Cache[V any] struct {
	resource string
	policy   Policy
	now      func() time.Time
	group    *singleflight.Group

	mu       sync.Mutex
	entries  map[string]*entry[V]
	registry map[Tag]map[string]struct{}
}

func New[V any](resource string, policy Policy, opts ...Option) *Cache[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Cache[V]{
		resource: resource,
		policy:   policy,
		now:      o.now,
		entries:  make(map[string]*entry[V]),
		registry: make(map[Tag]map[string]struct{}),
	}
	if o.singleFlight {
		c.group = &singleflight.Group{}
	}
	return c
}

func (c *Cache[V]) Resource() string { return c.resource }

func (c *Cache[V]) Policy() Policy { return c.policy }

// Get returns the value under key if it is present, not stale and younger
// than the policy allows.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok || !c.fresh(e) {
		return zero, false
	}
	return e.value, true
}

// Put stores value under key, replacing any previous entry and its tags.
func (c *Cache[V]) Put(key string, value V, tags []Tag) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.remove(key)
	c.entries[key] = &entry[V]{value: value, fetchedAt: c.now(), tags: tags}
	for _, t := range tags {
		keys, ok := c.registry[t]
		if !ok {
			keys = make(map[string]struct{})
			c.registry[t] = keys
		}
		keys[key] = struct{}{}
	}
}

// Invalidate marks stale every entry registered under one of tags. A
// collection tag of this cache's resource marks every entry stale. Tags of
// other resources are ignored. It returns the number of entries newly
// marked.
func (c *Cache[V]) Invalidate(tags ...Tag) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	marked := 0
	mark := func(key string) {
		if e, ok := c.entries[key]; ok && !e.stale {
			e.stale = true
			marked++
		}
	}

	for _, t := range tags {
		if t.Resource != c.resource {
			continue
		}
		if t.IsCollection() {
			for key := range c.entries {
				mark(key)
			}
			continue
		}
		for key := range c.registry[t] {
			mark(key)
		}
	}
	return marked
}

// Load returns the fresh value under key or calls fetch and stores its
// result with the tags computed by tagsOf. Fetch errors are returned and
// nothing is stored. A miss also prunes expired entries.
func (c *Cache[V]) Load(ctx context.Context, key string, fetch func(ctx context.Context) (V, error), tagsOf func(V) []Tag) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	c.Prune()

	load := func() (V, error) {
		v, err := fetch(ctx)
		if err != nil {
			return v, err
		}
		var tags []Tag
		if tagsOf != nil {
			tags = tagsOf(v)
		}
		c.Put(key, v, tags)
		return v, nil
	}

	if c.group == nil {
		return load()
	}

	res, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		return load()
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

// Prune drops entries past the TTL and returns how many were removed.
func (c *Cache[V]) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if c.expired(e) {
			c.remove(key)
			removed++
		}
	}
	return removed
}

// Purge drops every entry.
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry[V])
	c.registry = make(map[Tag]map[string]struct{})
}

// Len counts stored entries, stale ones included.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache[V]) fresh(e *entry[V]) bool {
	return !e.stale && c.now().Sub(e.fetchedAt) < c.policy.maxAge()
}

func (c *Cache[V]) expired(e *entry[V]) bool {
	return c.now().Sub(e.fetchedAt) >= c.policy.TTL
}

// remove must be called with mu held.
func (c *Cache[V]) remove(key string) {
	e, ok := c.entries[key]
	if !ok {
		return
	}
	for _, t := range e.tags {
		keys := c.registry[t]
		delete(keys, key)
		if len(keys) == 0 {
			delete(c.registry, t)
		}
	}
	delete(c.entries, key)
}
