package cache

import "sync"

// Store is the type-erased view of a Cache used for cross-resource
// invalidation.
type Store interface {
	Resource() string
	Invalidate(tags ...Tag) int
	Prune() int
	Purge()
}

var _ Store = (*Cache[struct{}])(nil)

// Registry fans invalidation out to every registered cache, so a mutation
// on one resource can mark entries of another (e.g. joining a competition
// stales the current user).
type Registry struct {
	mu     sync.RWMutex
	stores []Store
}

func NewRegistry(stores ...Store) *Registry {
	return &Registry{stores: stores}
}

func (r *Registry) Register(s Store) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stores = append(r.stores, s)
}

func (r *Registry) Invalidate(tags ...Tag) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, s := range r.stores {
		n += s.Invalidate(tags...)
	}
	return n
}

func (r *Registry) Prune() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, s := range r.stores {
		n += s.Prune()
	}
	return n
}

func (r *Registry) Purge() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.stores {
		s.Purge()
	}
}
