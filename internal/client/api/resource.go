package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/healthcomp/internal/client/cache"
	"github.com/dmitrijs2005/healthcomp/internal/client/models"
	"github.com/dmitrijs2005/healthcomp/internal/client/transport"
)

// Doer is the transport surface the services need.
type Doer interface {
	DoJSON(ctx context.Context, req transport.Request, out any) error
}

var _ Doer = (*transport.Client)(nil)

// Resource is a cached REST resource under <name>/ with item paths
// <name>/<id>/.
type Resource[T models.Keyed, In any] struct {
	name     string
	client   Doer
	registry *cache.Registry
	viewer   Viewer

	lists *cache.Cache[[]T]
	items *cache.Cache[T]

	shape   func(*T, Viewer) error
	prepare func(*In, Viewer) error
}

type resourceConfig[T any, In any] struct {
	cacheOpts []cache.Option
	shape     func(*T, Viewer) error
	prepare   func(*In, Viewer) error
}

type resourceOption[T any, In any] func(*resourceConfig[T, In])

func withShape[T any, In any](fn func(*T, Viewer) error) resourceOption[T, In] {
	return func(c *resourceConfig[T, In]) { c.shape = fn }
}

func withPrepare[T any, In any](fn func(*In, Viewer) error) resourceOption[T, In] {
	return func(c *resourceConfig[T, In]) { c.prepare = fn }
}

func withCacheOptions[T any, In any](opts ...cache.Option) resourceOption[T, In] {
	return func(c *resourceConfig[T, In]) { c.cacheOpts = append(c.cacheOpts, opts...) }
}

func newResource[T models.Keyed, In any](name string, policy cache.Policy, client Doer, registry *cache.Registry, viewer Viewer, opts ...resourceOption[T, In]) *Resource[T, In] {
	var cfg resourceConfig[T, In]
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Resource[T, In]{
		name:     name,
		client:   client,
		registry: registry,
		viewer:   viewer,
		lists:    cache.New[[]T](name, policy, cfg.cacheOpts...),
		items:    cache.New[T](name, policy, cfg.cacheOpts...),
		shape:    cfg.shape,
		prepare:  cfg.prepare,
	}
	registry.Register(r.lists)
	registry.Register(r.items)
	return r
}

func (r *Resource[T, In]) Name() string { return r.name }

func (r *Resource[T, In]) collectionPath() string { return r.name + "/" }

func (r *Resource[T, In]) itemPath(id string) string {
	return r.name + "/" + url.PathEscape(id) + "/"
}

// FetchCollection lists the resource. Every distinct query is cached
// separately; an empty result is cached like any other.
func (r *Resource[T, In]) FetchCollection(ctx context.Context, query url.Values) ([]T, error) {
	key := "list:" + query.Encode()

	return r.lists.Load(ctx, key, func(ctx context.Context) ([]T, error) {
		items := []T{}
		err := r.client.DoJSON(ctx, transport.Request{
			Method:   http.MethodGet,
			Path:     r.collectionPath(),
			Query:    query,
			Endpoint: r.name + ".list",
		}, &items)
		if err != nil {
			return nil, err
		}
		for i := range items {
			if err := r.shapeOne(&items[i]); err != nil {
				return nil, err
			}
		}
		return items, nil
	}, r.collectionTags)
}

// FetchByID reads one item. When the record's own key differs from id (as
// with the "me" alias) the entry is tagged under both.
func (r *Resource[T, In]) FetchByID(ctx context.Context, id string) (T, error) {
	return r.items.Load(ctx, "item:"+id, func(ctx context.Context) (T, error) {
		var item T
		err := r.client.DoJSON(ctx, transport.Request{
			Method:   http.MethodGet,
			Path:     r.itemPath(id),
			Endpoint: r.name + ".get",
		}, &item)
		if err != nil {
			return item, err
		}
		return item, r.shapeOne(&item)
	}, func(item T) []cache.Tag {
		tags := []cache.Tag{cache.ItemTag(r.name, id)}
		if key := item.Key().String(); key != "" && key != id {
			tags = append(tags, cache.ItemTag(r.name, key))
		}
		return tags
	})
}

// Create posts a new item and invalidates the whole collection.
func (r *Resource[T, In]) Create(ctx context.Context, in In) (T, error) {
	var out T
	if err := r.prepareOne(&in); err != nil {
		return out, err
	}
	err := r.client.DoJSON(ctx, transport.Request{
		Method:   http.MethodPost,
		Path:     r.collectionPath(),
		Body:     in,
		Endpoint: r.name + ".create",
	}, &out)
	if err != nil {
		return out, err
	}

	r.registry.Invalidate(cache.CollectionTag(r.name))
	return out, r.shapeOne(&out)
}

// Update patches item id. The "me" alias is invalidated as well when the
// returned record belongs to the signed-in user.
func (r *Resource[T, In]) Update(ctx context.Context, id string, patch In) (T, error) {
	var out T
	if err := r.prepareOne(&patch); err != nil {
		return out, err
	}
	err := r.client.DoJSON(ctx, transport.Request{
		Method:   http.MethodPatch,
		Path:     r.itemPath(id),
		Body:     patch,
		Endpoint: r.name + ".update",
	}, &out)
	if err != nil {
		return out, err
	}

	tags := []cache.Tag{cache.ItemTag(r.name, id)}
	if owned, ok := any(out).(models.Owned); ok && owned.Mine() {
		tags = append(tags, cache.ItemTag(r.name, models.MeID))
	}
	r.registry.Invalidate(tags...)
	return out, r.shapeOne(&out)
}

// Delete removes item id.
func (r *Resource[T, In]) Delete(ctx context.Context, id string) error {
	err := r.client.DoJSON(ctx, transport.Request{
		Method:   http.MethodDelete,
		Path:     r.itemPath(id),
		Endpoint: r.name + ".delete",
	}, nil)
	if err != nil {
		return err
	}

	// An id of "me" is its own alias tag.
	r.registry.Invalidate(cache.ItemTag(r.name, id))
	return nil
}

func (r *Resource[T, In]) collectionTags(items []T) []cache.Tag {
	tags := make([]cache.Tag, 0, len(items)+1)
	for _, item := range items {
		tags = append(tags, cache.ItemTag(r.name, item.Key().String()))
	}
	return append(tags, cache.CollectionTag(r.name))
}

func (r *Resource[T, In]) shapeOne(item *T) error {
	if r.shape == nil {
		return nil
	}
	if err := r.shape(item, r.viewer); err != nil {
		return fmt.Errorf("shape %s response: %w", r.name, err)
	}
	return nil
}

func (r *Resource[T, In]) prepareOne(in *In) error {
	if r.prepare == nil {
		return nil
	}
	if err := r.prepare(in, r.viewer); err != nil {
		return fmt.Errorf("prepare %s request: %w", r.name, err)
	}
	return nil
}
