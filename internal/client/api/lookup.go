package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/healthcomp/internal/client/cache"
	"github.com/dmitrijs2005/healthcomp/internal/client/transport"
)

// Lookup is a read-only resource addressed by id only, such as the stats
// and feed of a competition.
type Lookup[V any] struct {
	name   string
	client Doer
	viewer Viewer
	cache  *cache.Cache[V]
	shape  func(*V, Viewer) error
}

func newLookup[V any](name string, policy cache.Policy, client Doer, registry *cache.Registry, viewer Viewer, shape func(*V, Viewer) error, opts ...cache.Option) *Lookup[V] {
	l := &Lookup[V]{
		name:   name,
		client: client,
		viewer: viewer,
		cache:  cache.New[V](name, policy, opts...),
		shape:  shape,
	}
	registry.Register(l.cache)
	return l
}

func (l *Lookup[V]) Name() string { return l.name }

func (l *Lookup[V]) FetchByID(ctx context.Context, id string) (V, error) {
	return l.cache.Load(ctx, "item:"+id, func(ctx context.Context) (V, error) {
		var v V
		err := l.client.DoJSON(ctx, transport.Request{
			Method:   http.MethodGet,
			Path:     l.name + "/" + url.PathEscape(id) + "/",
			Endpoint: l.name + ".get",
		}, &v)
		if err != nil {
			return v, err
		}
		if l.shape != nil {
			if err := l.shape(&v, l.viewer); err != nil {
				return v, fmt.Errorf("shape %s response: %w", l.name, err)
			}
		}
		return v, nil
	}, func(V) []cache.Tag {
		return []cache.Tag{cache.ItemTag(l.name, id)}
	})
}
