/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package cache implements ServiceFactoryCache: a bounded, reference-
// counted cache from a comparable key (a bound name's identity, or a
// DTab's Show() form) to an apis.ServiceFactory. Concurrent first misses
// for the same key are deduplicated with singleflight; entries with a
// zero live refcount become eligible for LRU eviction once the cache is
// over capacity and, under evict.TTL, once idle past the configured TTL.
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"

	"dirpx.dev/wily/apis"
	"dirpx.dev/wily/evict"
	"dirpx.dev/wily/wlog"
)

// Stats is a point-in-time snapshot of cache occupancy, for diagnostics.
type Stats struct {
	Size      int
	Live      int
	Misses    int64
	Hits      int64
	Evictions int64
}

// Release returns a checked-out ServiceFactory to the cache. Calling it
// more than once is a no-op after the first call.
type Release func()

type entry[Req, Rep any] struct {
	key      string
	factory  apis.ServiceFactory[Req, Rep]
	refcount atomic.Int64
	lastUsed time.Time
	elem     *list.Element
}

// ServiceFactoryCache is a bounded, reference-counted cache of
// apis.ServiceFactory values keyed by a comparable identity string.
type ServiceFactoryCache[Req, Rep any] struct {
	mu       sync.Mutex
	items    map[string]*entry[Req, Rep]
	lru      *list.List // front = most recently touched
	capacity int
	strategy evict.Strategy
	idleTTL  time.Duration
	closeDDL time.Duration

	group singleflight.Group
	stats apis.StatsReceiver

	misses    atomic.Int64
	hits      atomic.Int64
	evictions atomic.Int64

	closed bool
}

// New constructs a ServiceFactoryCache governed by cfg. stats may be nil,
// in which case no metrics are recorded.
func New[Req, Rep any](cfg apis.Config, capacity int, stats apis.StatsReceiver) *ServiceFactoryCache[Req, Rep] {
	return &ServiceFactoryCache[Req, Rep]{
		items:    make(map[string]*entry[Req, Rep]),
		lru:      list.New(),
		capacity: capacity,
		strategy: cfg.CacheStrategy,
		idleTTL:  cfg.CacheIdleTTL,
		closeDDL: cfg.CloseDeadline,
		stats:    stats,
	}
}

// Apply checks out the ServiceFactory for key, building it via build on a
// first miss. Concurrent callers racing on the same key's first build
// share one in-flight build (singleflight). The caller MUST call the
// returned Release once done with the factory.
func (c *ServiceFactoryCache[Req, Rep]) Apply(ctx context.Context, key string, build func(ctx context.Context) (apis.ServiceFactory[Req, Rep], error)) (apis.ServiceFactory[Req, Rep], Release, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil, nil, apis.ErrServiceClosed
	}

	if c.strategy == evict.None {
		f, err := build(ctx)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { _ = f.Close(ctx, c.closeDDL) }, nil
	}

	c.mu.Lock()
	if e, ok := c.items[key]; ok {
		e.refcount.Inc()
		e.lastUsed = time.Now()
		c.lru.MoveToFront(e.elem)
		c.mu.Unlock()
		c.hits.Inc()
		return e.factory, c.releaseFunc(key), nil
	}
	c.mu.Unlock()

	c.misses.Inc()
	v, err, _ := c.group.Do(key, func() (any, error) {
		return build(ctx)
	})
	if err != nil {
		return nil, nil, err
	}
	f := v.(apis.ServiceFactory[Req, Rep])

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = f.Close(ctx, c.closeDDL)
		return nil, nil, apis.ErrServiceClosed
	}
	if e, ok := c.items[key]; ok {
		// Another goroutine inserted while we were outside the lock
		// (ctx differs per-caller so singleflight alone can't prevent
		// this race on the map itself); keep the existing entry and
		// close the redundant factory we just built.
		e.refcount.Inc()
		e.lastUsed = time.Now()
		c.lru.MoveToFront(e.elem)
		c.mu.Unlock()
		if f != e.factory {
			_ = f.Close(ctx, c.closeDDL)
		}
		return e.factory, c.releaseFunc(key), nil
	}

	e := &entry[Req, Rep]{key: key, factory: f, lastUsed: time.Now()}
	e.refcount.Store(1)
	e.elem = c.lru.PushFront(e)
	c.items[key] = e
	c.evictLocked(ctx)
	c.mu.Unlock()

	c.recordStats()
	return f, c.releaseFunc(key), nil
}

func (c *ServiceFactoryCache[Req, Rep]) releaseFunc(key string) Release {
	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			e, ok := c.items[key]
			if !ok {
				c.mu.Unlock()
				return
			}
			left := e.refcount.Dec()
			e.lastUsed = time.Now()
			if left <= 0 {
				c.evictLocked(context.Background())
			}
			c.mu.Unlock()
		})
	}
}

// evictLocked removes quiesced (refcount==0) entries while the cache is
// over capacity, oldest-touched first; under evict.TTL it additionally
// removes quiesced entries idle past c.idleTTL regardless of capacity.
// Callers must hold c.mu.
func (c *ServiceFactoryCache[Req, Rep]) evictLocked(ctx context.Context) {
	now := time.Now()
	for elem := c.lru.Back(); elem != nil; {
		e := elem.Value.(*entry[Req, Rep])
		prev := elem.Prev()

		overCapacity := c.capacity > 0 && len(c.items) > c.capacity
		idleExpired := c.strategy == evict.TTL && c.idleTTL > 0 && now.Sub(e.lastUsed) > c.idleTTL

		if e.refcount.Load() == 0 && (overCapacity || idleExpired) {
			c.lru.Remove(elem)
			delete(c.items, e.key)
			c.evictions.Inc()
			go func(f apis.ServiceFactory[Req, Rep]) {
				_ = f.Close(ctx, c.closeDDL)
			}(e.factory)
		} else if !overCapacity && !idleExpired {
			break
		}
		elem = prev
	}
}

// Close closes every cached factory, aggregating close errors.
func (c *ServiceFactoryCache[Req, Rep]) Close(ctx context.Context) error {
	c.mu.Lock()
	c.closed = true
	items := c.items
	c.items = make(map[string]*entry[Req, Rep])
	c.lru = list.New()
	c.mu.Unlock()

	var result error
	for _, e := range items {
		if err := e.factory.Close(ctx, c.closeDDL); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result
}

// IsAvailable reports true if any cached factory reports itself available,
// or if the cache holds no entries yet (nothing has been ruled out).
func (c *ServiceFactoryCache[Req, Rep]) IsAvailable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return true
	}
	for _, e := range c.items {
		if e.factory.IsAvailable() {
			return true
		}
	}
	return false
}

// Snapshot returns a point-in-time occupancy snapshot.
func (c *ServiceFactoryCache[Req, Rep]) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	live := 0
	for _, e := range c.items {
		if e.refcount.Load() > 0 {
			live++
		}
	}
	return Stats{
		Size:      len(c.items),
		Live:      live,
		Misses:    c.misses.Load(),
		Hits:      c.hits.Load(),
		Evictions: c.evictions.Load(),
	}
}

func (c *ServiceFactoryCache[Req, Rep]) recordStats() {
	if c.stats == nil {
		return
	}
	s := c.Snapshot()
	c.stats.Gauge("size").Update(float64(s.Size))
	c.stats.Gauge("live").Update(float64(s.Live))
	wlog.L().Sugar().Debugw("cache snapshot", "size", s.Size, "live", s.Live)
}

