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

package apis

import (
	"time"

	"dirpx.dev/wily/evict"
)

// Config carries read-only knobs that influence the naming and caching
// layers. It is passed by value and should be treated as immutable by
// implementations.
type Config struct {
	// NameCacheCapacity bounds the name-keyed ServiceFactoryCache.
	NameCacheCapacity int
	// DTabCacheCapacity bounds the DTab-keyed ServiceFactoryCache.
	DTabCacheCapacity int
	// CacheStrategy selects the eviction/expiration policy for both caches.
	CacheStrategy evict.Strategy
	// CacheIdleTTL is the idle duration after which a quiesced entry is
	// evicted when CacheStrategy is evict.TTL.
	CacheIdleTTL time.Duration
	// CloseDeadline bounds how long a Close waits for in-flight work.
	CloseDeadline time.Duration
	// MaxPathDepth caps path normalization depth, a safety guard against
	// pathological NameTree nesting (mirrors the old MaxUnwrap knob).
	MaxPathDepth int
}
