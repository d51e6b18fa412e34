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

// Package evict defines the small, format-agnostic eviction-policy enum
// consumed by cache.ServiceFactoryCache. It selects a broad class of
// behavior (LRU vs LFU vs TTL vs None); capacity limits and TTL durations
// are configured separately.
package evict

import (
	"fmt"
	"strings"
)

// Strategy controls the eviction and expiration policy of a
// ServiceFactoryCache.
type Strategy int

const (
	// LRU evicts the least-recently-used quiesced entry first. This is
	// the only policy the spec mandates (§4.1); it is the default.
	LRU Strategy = iota
	// LFU names least-frequently-used eviction. The cache package has no
	// LFU-specific path and no frequency counters: it evicts LFU caches
	// exactly as it evicts LRU ones.
	LFU
	// TTL layers an idle-expiry timer on top of LRU: entries unused for
	// longer than the configured TTL are evicted even under capacity.
	TTL
	// None disables the cache: apply always misses and builds fresh.
	None
)

func (s Strategy) String() string {
	switch s {
	case LRU:
		return "LRU"
	case LFU:
		return "LFU"
	case TTL:
		return "TTL"
	case None:
		return "None"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Parse parses the case-insensitive textual form produced by String.
func Parse(s string) (Strategy, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LRU":
		return LRU, nil
	case "LFU":
		return LFU, nil
	case "TTL":
		return TTL, nil
	case "NONE":
		return None, nil
	default:
		return None, fmt.Errorf("evict: unknown strategy %q", s)
	}
}
