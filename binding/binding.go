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

// Package binding implements Factory: the top-level, per-logical-path
// entry point of the naming core. A Factory owns one target Path, a
// caller-supplied endpoint constructor, and the two-level cache
// (DTab-keyed, then name-keyed) that makes repeated Apply calls for the
// same effective binding cheap while a rebind is in flight.
package binding

import (
	"context"
	"sync"
	"time"

	"dirpx.dev/wily"
	"dirpx.dev/wily/activity"
	"dirpx.dev/wily/apis"
	"dirpx.dev/wily/cache"
	"dirpx.dev/wily/dtab"
	"dirpx.dev/wily/dynname"
	"dirpx.dev/wily/nametree"
	"dirpx.dev/wily/tracer"
)

// NewFactory constructs the downstream apis.ServiceFactory for one bound
// name's endpoint set. Implementations live in transport packages this
// core does not know about; addr is the reactive endpoint-set cell they
// should track for connection pooling, health checks, etc.
type NewFactory[Req, Rep any] func(addr apis.Var[apis.Addr]) (apis.ServiceFactory[Req, Rep], error)

// Factory is the BindingFactory described by the naming core: it turns a
// fixed target Path plus the ambient (base, per-call local) DTab into a
// live, cached apis.ServiceFactory.
type Factory[Req, Rep any] struct {
	path       apis.Path
	newFactory NewFactory[Req, Rep]
	trace      apis.TraceFunc
	cfg        apis.Config

	nameCache *cache.ServiceFactoryCache[Req, Rep]
	dtabCache *cache.ServiceFactoryCache[Req, Rep]
}

// New builds a Factory targeting path, using newFactory to build the
// downstream apis.ServiceFactory once a name resolves. trace and stats
// may both be nil.
func New[Req, Rep any](path apis.Path, newFactory NewFactory[Req, Rep], cfg apis.Config, trace apis.TraceFunc, stats apis.StatsReceiver) *Factory[Req, Rep] {
	var nameStats, dtabStats apis.StatsReceiver
	if stats != nil {
		nameStats = stats.Scope("name")
		dtabStats = stats.Scope("dtab")
	}
	return &Factory[Req, Rep]{
		path:       path,
		newFactory: newFactory,
		trace:      trace,
		cfg:        cfg,
		nameCache:  cache.New[Req, Rep](cfg, cfg.NameCacheCapacity, nameStats),
		dtabCache:  cache.New[Req, Rep](cfg, cfg.DTabCacheCapacity, dtabStats),
	}
}

// Apply resolves the current binding for path (composing the ambient base
// DTab with the request-scoped local DTab carried on ctx, per
// wily.LocalDTab) and
// dispatches conn through the resulting Service.
//
// When the local DTab is non-empty, a NoBrokersAvailable failure is
// enriched with the local DTab's Show() form for diagnostics, per the
// binding boundary's local-DTab attachment rule; this never overwrites an
// already-attached LocalDTab from a nested BindingFactory.
func (f *Factory[Req, Rep]) Apply(ctx context.Context, conn apis.ClientConnection) (apis.Service[Req, Rep], error) {
	base := wily.BaseDTab()
	local := wily.LocalDTab(ctx)
	composed := base.Concat(local)

	dtabFactory, release, err := f.dtabCache.Apply(ctx, composed.Key(), func(ctx context.Context) (apis.ServiceFactory[Req, Rep], error) {
		return f.buildDTabEntry(base, local), nil
	})
	if err != nil {
		return nil, f.enrichWithLocalDTab(err, local)
	}

	svc, err := dtabFactory.Apply(ctx, conn)
	if err != nil {
		release()
		return nil, f.enrichWithLocalDTab(err, local)
	}
	return &releasingService[Req, Rep]{
		Service: svc,
		release: release,
		enrich:  func(err error) error { return f.enrichWithLocalDTab(err, local) },
	}, nil
}

// IsAvailable delegates to the DTab cache: true if any cached per-DTab
// binding reports itself available, or if nothing has been cached yet.
func (f *Factory[Req, Rep]) IsAvailable() bool {
	return f.dtabCache.IsAvailable()
}

// Close closes the DTab cache (and, transitively through it, every
// dynname.Factory it built), then the name cache, which closes the
// downstream ServiceFactories. If both fail, the DTab cache's error is
// returned.
func (f *Factory[Req, Rep]) Close(ctx context.Context, deadline time.Duration) error {
	err1 := f.dtabCache.Close(ctx)
	err2 := f.nameCache.Close(ctx)
	if err1 != nil {
		return err1
	}
	return err2
}

func (f *Factory[Req, Rep]) enrichWithLocalDTab(err error, local apis.DTab) error {
	if local.IsEmpty() {
		return err
	}
	if nb, ok := err.(*apis.NoBrokersAvailable); ok {
		return nb.WithLocalDTab(local.Show())
	}
	return err
}

// buildDTabEntry constructs the per-(base,local) composed Namer, the
// derived Activity[Bound], the NameTracer and a fresh dynname.Factory,
// then adapts it to apis.ServiceFactory.
func (f *Factory[Req, Rep]) buildDTabEntry(base, local apis.DTab) apis.ServiceFactory[Req, Rep] {
	composed := base.Concat(local)
	nt := tracer.New(f.trace, f.path, base, local)

	namer := apis.NamerFunc(func(tree apis.NameTree[apis.Path]) apis.Activity[apis.NameTree[apis.Bound]] {
		rewritten, err := dtab.Bind(composed, tree, f.cfg.MaxPathDepth)
		if err != nil {
			return activity.StaticFailed[apis.NameTree[apis.Bound]](err)
		}
		return wily.Namer().Bind(rewritten)
	})

	nt.Context()
	boundActivity := activity.Map[apis.NameTree[apis.Bound], apis.Bound](
		namer.Bind(apis.Leaf[apis.Path]{Value: f.path}),
		f.evalToBound,
	)

	newService := func(ctx context.Context, bound apis.Bound, conn apis.ClientConnection) (apis.Service[Req, Rep], error) {
		return f.newServiceFor(ctx, bound, conn)
	}
	dyn := dynname.New[Req, Rep](boundActivity, newService, nt)

	return &dynAdapter[Req, Rep]{dyn: dyn, mapped: boundActivity}
}

// evalToBound reduces a resolved NameTree[Bound] activity state through
// nametree.Eval: None or Some(∅) fails with NoBrokersAvailable; Some({b})
// resolves to b; Some(set) with more than one member merges them into one
// reactive union Bound.
func (f *Factory[Req, Rep]) evalToBound(s apis.ActivityState[apis.NameTree[apis.Bound]]) apis.ActivityState[apis.Bound] {
	if s.Pending() {
		return apis.ActivityState[apis.Bound]{}
	}
	if s.Failed {
		return apis.ActivityState[apis.Bound]{Failed: true, Err: s.Err}
	}
	result := nametree.Eval[apis.Bound](s.Value)
	if result.Negative || result.IsEmpty() {
		return apis.ActivityState[apis.Bound]{Failed: true, Err: &apis.NoBrokersAvailable{Name: f.path.Show()}}
	}
	set := result.Slice()
	if len(set) == 1 {
		return apis.ActivityState[apis.Bound]{Ok: true, Value: set[0]}
	}
	return apis.ActivityState[apis.Bound]{Ok: true, Value: mergeBound(set)}
}

// newServiceFor is the DynNameFactory NewService callback: it checks out
// (building on first miss) the downstream ServiceFactory for bound from
// the name cache, applies conn through it, and wraps the resulting
// Service so its eventual Close returns the cache checkout.
func (f *Factory[Req, Rep]) newServiceFor(ctx context.Context, bound apis.Bound, conn apis.ClientConnection) (apis.Service[Req, Rep], error) {
	factory, release, err := f.nameCache.Apply(ctx, bound.Key(), func(context.Context) (apis.ServiceFactory[Req, Rep], error) {
		return f.newFactory(bound.Addr)
	})
	if err != nil {
		return nil, err
	}
	svc, err := factory.Apply(ctx, conn)
	if err != nil {
		release()
		return nil, err
	}
	return &releasingService[Req, Rep]{Service: svc, release: release}, nil
}

// dynAdapter adapts a dynname.Factory (whose Apply returns a Promise) to
// apis.ServiceFactory (whose Apply blocks synchronously on ctx).
type dynAdapter[Req, Rep any] struct {
	dyn    *dynname.Factory[Req, Rep]
	mapped *activity.Mapped[apis.Bound]

	closeOnce sync.Once
}

func (a *dynAdapter[Req, Rep]) Apply(ctx context.Context, conn apis.ClientConnection) (apis.Service[Req, Rep], error) {
	return a.dyn.Apply(ctx, conn).Get(ctx)
}

func (a *dynAdapter[Req, Rep]) Close(context.Context, time.Duration) error {
	a.closeOnce.Do(func() {
		a.dyn.Close()
		a.mapped.Close()
	})
	return nil
}

func (a *dynAdapter[Req, Rep]) IsAvailable() bool { return a.dyn.IsAvailable() }

// releasingService wraps a downstream Service, returning its cache
// checkout to the owning ServiceFactoryCache exactly once, on Close. When
// enrich is non-nil, it rescues an error from every Serve call, not just
// from acquisition, giving a NoBrokersAvailable surfacing later (e.g. from
// a nested BindingFactory reached through the downstream Service) the same
// local-DTab diagnostic context as one seen at Apply time.
type releasingService[Req, Rep any] struct {
	apis.Service[Req, Rep]
	release   cache.Release
	enrich    func(error) error
	closeOnce sync.Once
}

func (s *releasingService[Req, Rep]) Serve(ctx context.Context, req Req) (Rep, error) {
	rep, err := s.Service.Serve(ctx, req)
	if err != nil && s.enrich != nil {
		err = s.enrich(err)
	}
	return rep, err
}

func (s *releasingService[Req, Rep]) Close(ctx context.Context) error {
	err := s.Service.Close(ctx)
	s.closeOnce.Do(s.release)
	return err
}
