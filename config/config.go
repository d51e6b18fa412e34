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

package config

import (
	"time"

	"dirpx.dev/wily/apis"
	"dirpx.dev/wily/evict"
)

const (
	// DefaultNameCacheCapacity bounds the name-keyed ServiceFactoryCache.
	DefaultNameCacheCapacity = 256
	// DefaultDTabCacheCapacity bounds the DTab-keyed ServiceFactoryCache.
	DefaultDTabCacheCapacity = 64
	// DefaultCacheStrategy is the eviction policy applied when none is given.
	DefaultCacheStrategy = evict.LRU
	// DefaultCacheIdleTTL is used when CacheStrategy is evict.TTL and no
	// explicit TTL is configured.
	DefaultCacheIdleTTL = 10 * time.Minute
	// DefaultCloseDeadline bounds how long Close waits for in-flight work.
	DefaultCloseDeadline = 5 * time.Second
	// DefaultMaxPathDepth caps NameTree Alt/Union nesting during normalization.
	DefaultMaxPathDepth = 32
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.NameCacheCapacity < 0 {
		cfg.NameCacheCapacity = DefaultNameCacheCapacity
	}
	if cfg.DTabCacheCapacity < 0 {
		cfg.DTabCacheCapacity = DefaultDTabCacheCapacity
	}
	if cfg.MaxPathDepth <= 0 {
		cfg.MaxPathDepth = DefaultMaxPathDepth
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		NameCacheCapacity: DefaultNameCacheCapacity,
		DTabCacheCapacity: DefaultDTabCacheCapacity,
		CacheStrategy:     DefaultCacheStrategy,
		CacheIdleTTL:      DefaultCacheIdleTTL,
		CloseDeadline:     DefaultCloseDeadline,
		MaxPathDepth:      DefaultMaxPathDepth,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithNameCacheCapacity sets the name-keyed cache capacity.
// A negative value resets to the default.
func WithNameCacheCapacity(n int) Option {
	return func(c *apis.Config) {
		if n < 0 {
			c.NameCacheCapacity = DefaultNameCacheCapacity
			return
		}
		c.NameCacheCapacity = n
	}
}

// WithDTabCacheCapacity sets the DTab-keyed cache capacity.
// A negative value resets to the default.
func WithDTabCacheCapacity(n int) Option {
	return func(c *apis.Config) {
		if n < 0 {
			c.DTabCacheCapacity = DefaultDTabCacheCapacity
			return
		}
		c.DTabCacheCapacity = n
	}
}

// WithCacheStrategy sets the eviction/expiration policy for both caches.
func WithCacheStrategy(s evict.Strategy) Option {
	return func(c *apis.Config) {
		c.CacheStrategy = s
	}
}

// WithCacheIdleTTL sets the idle duration after which a quiesced entry is
// evicted under evict.TTL.
func WithCacheIdleTTL(d time.Duration) Option {
	return func(c *apis.Config) {
		c.CacheIdleTTL = d
	}
}

// WithCloseDeadline sets how long Close waits for in-flight work.
func WithCloseDeadline(d time.Duration) Option {
	return func(c *apis.Config) {
		c.CloseDeadline = d
	}
}

// WithMaxPathDepth sets the NameTree nesting depth guard.
// A non-positive value resets to the default.
func WithMaxPathDepth(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxPathDepth = DefaultMaxPathDepth
			return
		}
		c.MaxPathDepth = max
	}
}
