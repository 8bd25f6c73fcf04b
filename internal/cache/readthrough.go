// Package cache implements the read-through accessor that fronts the system
// of record. Cached snapshots are served verbatim until their TTL lapses;
// staleness up to the TTL is accepted.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/courtside/platform/internal/metrics"
	"golang.org/x/sync/singleflight"
)

const (
	// writeTimeout bounds a cache write that outlives its request.
	writeTimeout = 2 * time.Second

	// sharedFetchTimeout bounds a coalesced fetch, which runs detached from
	// the caller that started it.
	sharedFetchTimeout = 10 * time.Second
)

// Accessor consults a Store before the system of record.
type Accessor struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	group   *singleflight.Group
}

// Option configures an Accessor.
type Option func(*Accessor)

// WithMetrics records hits, misses and absorbed errors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Accessor) { a.metrics = m }
}

// WithCoalescing collapses concurrent misses on the same key into a single
// fetch. Off by default: without it, concurrent misses each query the system
// of record and each write the cache.
func WithCoalescing() Option {
	return func(a *Accessor) { a.group = &singleflight.Group{} }
}

// New creates an Accessor over store.
func New(store Store, logger *slog.Logger, opts ...Option) *Accessor {
	a := &Accessor{store: store, logger: logger}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Ping checks the underlying store.
func (a *Accessor) Ping(ctx context.Context) error {
	return a.store.Ping(ctx)
}

// ReadThrough returns the cached value for key when present. Otherwise it
// calls fetch, stores the JSON encoding under key for ttl, and returns the
// fetched value. Cache failures never reach the caller; fetch errors do,
// and nothing is cached for them.
func ReadThrough[T any](ctx context.Context, a *Accessor, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := lookup[T](ctx, a, key); ok {
		a.metrics.CacheHit(key)
		return v, nil
	}
	a.metrics.CacheMiss(key)

	load := func(ctx context.Context) (T, error) {
		v, err := fetch(ctx)
		if err != nil {
			return v, err
		}
		a.bestEffort(ctx, key, "set", func(ctx context.Context) error {
			raw, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return a.store.Set(ctx, key, string(raw), ttl)
		})
		return v, nil
	}

	if a.group == nil {
		return load(ctx)
	}

	// A shared fetch serves every waiter, so no single caller's cancellation
	// may end it. Each caller still stops waiting when its own ctx is done.
	ch := a.group.DoChan(key, func() (interface{}, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()
		return load(shared)
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, _ := res.Val.(T)
		return v, nil
	}
}

// lookup treats store errors and undecodable entries as misses.
func lookup[T any](ctx context.Context, a *Accessor, key string) (T, bool) {
	var v T

	raw, found, err := a.store.Get(ctx, key)
	if err != nil {
		a.metrics.CacheError(key, "get")
		a.logger.Warn("cache read failed, falling back to database", "tag", "CACHE_READ", "key", key, "error", err)
		return v, false
	}
	if !found {
		return v, false
	}

	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		a.metrics.CacheError(key, "decode")
		a.logger.Warn("cache entry undecodable, refetching", "tag", "CACHE_READ", "key", key, "error", err)
		var zero T
		return zero, false
	}
	return v, true
}

// bestEffort is the non-fatal side-effect boundary: fn's error is logged and
// counted, never returned. fn runs detached from request cancellation so a
// client that hangs up does not prevent the cache from being populated.
func (a *Accessor) bestEffort(ctx context.Context, key, op string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		a.metrics.CacheError(key, op)
		a.logger.Warn("cache write failed", "tag", "CACHE_WRITE", "key", key, "op", op, "error", err)
	}
}
