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

package strategy

import (
	"sync"

	"dirpx.dev/wily/activity"
	"dirpx.dev/wily/apis"
	upath "dirpx.dev/wily/utils/path"
)

// NewPathNormalizingStrategy creates the universal fallback strategy: it
// normalizes tree via utils/path.Normalize (trimming empty segments,
// capping Alt/Union nesting at cfg.MaxPathDepth) and delegates the
// normalized tree to inner. It always handles, so it belongs last in a
// chain.
func NewPathNormalizingStrategy(inner apis.Namer) apis.Strategy {
	return &pathStrategy{inner: inner}
}

// pathStrategy memoizes normalization of single-Leaf trees, the common
// case, keyed by (path, MaxPathDepth); Alt/Union trees are normalized on
// every call since they are rarer and cheap relative to a map lookup.
type pathStrategy struct {
	inner apis.Namer
	cache sync.Map // key: leafCacheKey, val: apis.NameTree[apis.Path]
}

var _ apis.Strategy = (*pathStrategy)(nil)

type leafCacheKey struct {
	path     string
	maxDepth int
}

func (s *pathStrategy) TryBind(tree apis.NameTree[apis.Path], cfg apis.Config) (apis.Activity[apis.NameTree[apis.Bound]], bool) {
	if leaf, ok := tree.(apis.Leaf[apis.Path]); ok {
		key := leafCacheKey{path: leaf.Value.Key(), maxDepth: cfg.MaxPathDepth}
		if cached, ok := s.cache.Load(key); ok {
			return s.inner.Bind(cached.(apis.NameTree[apis.Path])), true
		}
		normalized, err := upath.Normalize(tree, cfg)
		if err != nil {
			return activity.StaticFailed[apis.NameTree[apis.Bound]](err), true
		}
		s.cache.Store(key, normalized)
		return s.inner.Bind(normalized), true
	}

	normalized, err := upath.Normalize(tree, cfg)
	if err != nil {
		return activity.StaticFailed[apis.NameTree[apis.Bound]](err), true
	}
	return s.inner.Bind(normalized), true
}
