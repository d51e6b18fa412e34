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

package wily

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/wily/activity"
	"dirpx.dev/wily/apis"
	"dirpx.dev/wily/builder"
	"dirpx.dev/wily/config"
	"dirpx.dev/wily/dtab"
)

func init() {
	s := &state{cfg: config.DefaultConfig(), base: unconfiguredExternalNamer}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.namer = b.BuildNamer(s.cfg, s.reg, s.base, nil, nil)
	s.bld = b
	st.Store(s)
	empty := dtab.Empty
	baseDTab.Store(&empty)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("wily: builder returned nil registry")
	// ErrNilNamer is returned when a builder returns a nil composed Namer.
	ErrNilNamer = errors.New("wily: builder returned nil namer")
)

// unconfiguredExternalNamer is the zero-value external Namer: every
// application is expected to call SetExternalNamer with whatever naming
// system (DNS, a mesh control plane, ...) actually knows how to turn
// paths into endpoints. Until then, every lookup that falls through the
// override registry and path normalization fails explicitly instead of
// hanging.
var unconfiguredExternalNamer = apis.NamerFunc(func(apis.NameTree[apis.Path]) apis.Activity[apis.NameTree[apis.Bound]] {
	return activity.StaticFailed[apis.NameTree[apis.Bound]](&apis.NoBrokersAvailable{Name: "<no external namer configured>"})
})

// Namer returns the global composed Namer: explicit overrides, then path
// normalization, falling back to the configured external Namer. This is
// the "orElse Namer.global" fallback a BindingFactory's DTab-cache
// builder composes against (base ++ local) per request.
func Namer() apis.Namer {
	return st.Load().namer
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration, rebuilding unpinned layers.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	b := old.bld

	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(cfg, old.reg, old.ext)
	}
	nnamer := b.BuildNamer(cfg, nreg, old.base, old.namer, old.ext)

	mustBeNonNil(nreg, nnamer)
	st.Store(&state{cfg: cfg, ext: old.ext, reg: nreg, base: old.base, namer: nnamer, bld: b, preg: old.preg})
}

// Registry returns the global override Registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry pins reg as the global override Registry and rebuilds the
// composed Namer against it.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	nnamer := old.bld.BuildNamer(old.cfg, reg, old.base, old.namer, old.ext)
	mustBeNonNil(reg, nnamer)
	st.Store(&state{cfg: old.cfg, ext: old.ext, reg: reg, base: old.base, namer: nnamer, bld: old.bld, preg: true})
}

// ExternalNamer returns the currently configured external (base) Namer.
func ExternalNamer() apis.Namer {
	return st.Load().base
}

// SetExternalNamer plugs in the application's external naming system
// (DNS, a service mesh, ...) as the fallback the composed global Namer
// delegates to once overrides and path normalization have had their say.
func SetExternalNamer(n apis.Namer) {
	if n == nil {
		return
	}
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	nnamer := old.bld.BuildNamer(old.cfg, old.reg, n, old.namer, old.ext)
	mustBeNonNil(old.reg, nnamer)
	st.Store(&state{cfg: old.cfg, ext: old.ext, reg: old.reg, base: n, namer: nnamer, bld: old.bld, preg: old.preg})
}

// Builder returns the global Builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global Builder, rebuilding the unpinned Registry
// and the composed Namer through it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, old.ext)
	}
	nnamer := b.BuildNamer(old.cfg, nreg, old.base, old.namer, old.ext)
	mustBeNonNil(nreg, nnamer)
	st.Store(&state{cfg: old.cfg, ext: old.ext, reg: nreg, base: old.base, namer: nnamer, bld: b, preg: old.preg})
}

// SetAll explicitly replaces every global component in one atomic swap.
// Nil cfg, external and bld leave the corresponding component unchanged;
// ext is always replaced. A nil reg builds a fresh, unpinned Registry
// through the Builder; a non-nil reg is installed and pinned.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, external apis.Namer, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()

	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}
	nbase := old.base
	if external != nil {
		nbase = external
	}

	nreg := reg
	npreg := false
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg, ext)
	} else {
		npreg = true
	}
	nnamer := nbld.BuildNamer(ncfg, nreg, nbase, old.namer, ext)

	mustBeNonNil(nreg, nnamer)
	st.Store(&state{cfg: ncfg, ext: ext, reg: nreg, base: nbase, namer: nnamer, bld: nbld, preg: npreg})
}

// SetExt replaces the extension context and rebuilds unpinned layers.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	b := old.bld

	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, ext)
	}
	nnamer := b.BuildNamer(old.cfg, nreg, old.base, old.namer, ext)
	mustBeNonNil(nreg, nnamer)
	st.Store(&state{cfg: old.cfg, ext: ext, reg: nreg, base: old.base, namer: nnamer, bld: b, preg: old.preg})
}

// ExtAs returns the global extension context as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned reports whether the global Registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry makes the global Registry immune to rebuilds from SetConfig,
// SetBuilder, and SetExt.
func PinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()
	old := st.Load()
	st.Store(&state{cfg: old.cfg, ext: old.ext, reg: old.reg, base: old.base, namer: old.namer, bld: old.bld, preg: true})
}

// UnpinRegistry makes the global Registry mutable again.
func UnpinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()
	old := st.Load()
	st.Store(&state{cfg: old.cfg, ext: old.ext, reg: old.reg, base: old.base, namer: old.namer, bld: old.bld, preg: false})
}

func mustBeNonNil(reg apis.Registry, namer apis.Namer) {
	if reg == nil {
		panic(ErrNilRegistry)
	}
	if namer == nil {
		panic(ErrNilNamer)
	}
}

// buildMu serializes writers so we never publish a partially-built
// snapshot.
var buildMu sync.Mutex

// st is the global ambient state.
var st atomic.Pointer[state]

// state is an immutable snapshot published atomically via st.Store; never
// mutate the fields of a published state, only swap in a new one.
type state struct {
	cfg   apis.Config
	ext   any
	reg   apis.Registry
	base  apis.Namer
	namer apis.Namer
	bld   apis.Builder
	preg  bool
}

// baseDTab is the static, process-wide delegation table every request's
// ambient local DTab composes against (base ++ local).
var baseDTab atomic.Pointer[apis.DTab]

// BaseDTab returns the global static DTab.
func BaseDTab() apis.DTab {
	return *baseDTab.Load()
}

// SetBaseDTab replaces the global static DTab.
func SetBaseDTab(d apis.DTab) {
	baseDTab.Store(&d)
}

// localDTabKey is the context key under which the request-scoped local
// DTab travels. Unlike the base DTab, the local DTab is never global
// state: it is part of the call, not the process.
type localDTabKey struct{}

// WithLocalDTab returns a context carrying d as the ambient local DTab for
// the remainder of the call, composing with (not replacing) the global
// base DTab at the point a BindingFactory evaluates it.
func WithLocalDTab(ctx context.Context, d apis.DTab) context.Context {
	return context.WithValue(ctx, localDTabKey{}, d)
}

// LocalDTab returns the ambient local DTab carried by ctx, or the empty
// DTab if none was set.
func LocalDTab(ctx context.Context) apis.DTab {
	d, ok := ctx.Value(localDTabKey{}).(apis.DTab)
	if !ok {
		return dtab.Empty
	}
	return d
}
