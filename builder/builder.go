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

// Package builder supplies the default apis.Builder: a Registry plus a
// Namer chain of (explicit overrides -> path normalization -> base
// external Namer), rebuilt whenever the ambient Config or base Namer
// changes.
package builder

import (
	"dirpx.dev/wily/apis"
	"dirpx.dev/wily/registry"
	"dirpx.dev/wily/resolver"
	"dirpx.dev/wily/strategy"
)

// New creates and returns the default apis.Builder.
func New() apis.Builder {
	return &builder{}
}

type builder struct{}

// BuildRegistry builds a fresh override Registry, carrying over entries
// from prev if one is provided.
func (b *builder) BuildRegistry(_ apis.Config, prev apis.Registry, _ any) apis.Registry {
	nreg := registry.New()
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = nreg.Register(e.Prefix, e.Namer)
		}
	}
	return nreg
}

// BuildNamer builds the composed Namer: an explicit-override strategy
// backed by reg, then a path-normalizing strategy that delegates to base.
// prev is accepted for interface symmetry with BuildRegistry but unused:
// Namers here hold no migratable state of their own (the override data
// lives in reg, which the caller already migrated via BuildRegistry).
func (b *builder) BuildNamer(cfg apis.Config, reg apis.Registry, base apis.Namer, _ apis.Namer, _ any) apis.Namer {
	return resolver.New(cfg,
		strategy.NewRegistryStrategy(reg),
		strategy.NewPathNormalizingStrategy(base),
	)
}
