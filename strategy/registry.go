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

import "dirpx.dev/wily/apis"

// NewRegistryStrategy creates a Strategy that consults an apis.Registry for
// explicit path-prefix overrides before anything else in the chain runs.
func NewRegistryStrategy(reg apis.Registry) apis.Strategy {
	return &registryStrategy{reg: reg}
}

// registryStrategy only handles trees that are a single concrete Leaf[Path]:
// the override registry is keyed by a literal path prefix, not by an
// arbitrary Alt/Union tree, so anything else falls through to the next
// strategy in the chain.
type registryStrategy struct {
	reg apis.Registry
}

var _ apis.Strategy = (*registryStrategy)(nil)

func (s *registryStrategy) TryBind(tree apis.NameTree[apis.Path], _ apis.Config) (apis.Activity[apis.NameTree[apis.Bound]], bool) {
	if s.reg == nil {
		return nil, false
	}
	leaf, ok := tree.(apis.Leaf[apis.Path])
	if !ok {
		return nil, false
	}
	n, ok := s.reg.Lookup(leaf.Value)
	if !ok {
		return nil, false
	}
	return n.Bind(tree), true
}
