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

package builder_test

import (
	"runtime"
	"sync"
	"testing"
	"time"

	"dirpx.dev/wily/activity"
	"dirpx.dev/wily/apis"
	"dirpx.dev/wily/builder"
	"dirpx.dev/wily/config"
	"dirpx.dev/wily/registry"
)

func current[T any](a apis.Activity[T]) apis.ActivityState[T] {
	ch := make(chan apis.ActivityState[T], 1)
	d := a.Respond(func(s apis.ActivityState[T]) {
		select {
		case ch <- s:
		default:
		}
	})
	defer d.Close()
	select {
	case s := <-ch:
		return s
	case <-time.After(time.Second):
		panic("activity never settled")
	}
}

func boundTree(id string) apis.NameTree[apis.Bound] {
	return apis.Leaf[apis.Bound]{Value: apis.Bound{ID: id, Addr: activity.NewVar(apis.Addr{State: apis.AddrBound})}}
}

func TestBuildRegistry_Basic(t *testing.T) {
	b := builder.New()
	reg := b.BuildRegistry(config.DefaultConfig(), nil, nil)
	if reg == nil {
		t.Fatal("BuildRegistry returned nil")
	}

	n := apis.NamerFunc(func(apis.NameTree[apis.Path]) apis.Activity[apis.NameTree[apis.Bound]] {
		return activity.StaticOk(boundTree("x"))
	})
	if err := reg.Register(apis.NewPath("svc"), n); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, ok := reg.Lookup(apis.NewPath("svc", "m")); !ok {
		t.Fatalf("Lookup mismatch")
	}
	if c := reg.Count(); c < 1 {
		t.Fatalf("Count too small: %d", c)
	}
}

func TestBuildRegistry_MigratesPrevEntries(t *testing.T) {
	b := builder.New()
	prev := registry.New()
	n := apis.NamerFunc(func(apis.NameTree[apis.Path]) apis.Activity[apis.NameTree[apis.Bound]] {
		return activity.StaticOk(boundTree("x"))
	})
	_ = prev.Register(apis.NewPath("svc"), n)

	next := b.BuildRegistry(config.DefaultConfig(), prev, nil)
	if next.Count() != 1 {
		t.Fatalf("expected migrated entry, count=%d", next.Count())
	}
	if _, ok := next.Lookup(apis.NewPath("svc")); !ok {
		t.Fatalf("expected migrated prefix to resolve")
	}
}

func TestBuildNamer_OverrideWinsOverBase(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	reg := b.BuildRegistry(cfg, nil, nil)
	override := apis.NamerFunc(func(apis.NameTree[apis.Path]) apis.Activity[apis.NameTree[apis.Bound]] {
		return activity.StaticOk(boundTree("override"))
	})
	_ = reg.Register(apis.NewPath("svc"), override)

	base := apis.NamerFunc(func(apis.NameTree[apis.Path]) apis.Activity[apis.NameTree[apis.Bound]] {
		return activity.StaticOk(boundTree("base"))
	})

	n := b.BuildNamer(cfg, reg, base, nil, nil)

	st := current(n.Bind(apis.Leaf[apis.Path]{Value: apis.NewPath("svc", "method")}))
	if !st.Ok || st.Value.(apis.Leaf[apis.Bound]).Value.ID != "override" {
		t.Fatalf("expected override to win, got %+v", st)
	}
}

func TestBuildNamer_FallsBackToBase(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	reg := b.BuildRegistry(cfg, nil, nil)

	base := apis.NamerFunc(func(apis.NameTree[apis.Path]) apis.Activity[apis.NameTree[apis.Bound]] {
		return activity.StaticOk(boundTree("base"))
	})

	n := b.BuildNamer(cfg, reg, base, nil, nil)
	st := current(n.Bind(apis.Leaf[apis.Path]{Value: apis.NewPath("unregistered")}))
	if !st.Ok || st.Value.(apis.Leaf[apis.Bound]).Value.ID != "base" {
		t.Fatalf("expected base fallback, got %+v", st)
	}
}

func TestBuildNamer_Concurrency_Smoke(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	reg := b.BuildRegistry(cfg, nil, nil)
	base := apis.NamerFunc(func(apis.NameTree[apis.Path]) apis.Activity[apis.NameTree[apis.Bound]] {
		return activity.StaticOk(boundTree("base"))
	})
	n := b.BuildNamer(cfg, reg, base, nil, nil)

	trees := []apis.NameTree[apis.Path]{
		apis.Leaf[apis.Path]{Value: apis.NewPath("a")},
		apis.Leaf[apis.Path]{Value: apis.NewPath("b", "c")},
	}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				_ = current(n.Bind(trees[(i+id)%len(trees)]))
			}
		}(w)
	}
	wg.Wait()
}

var _ apis.Builder = builder.New()
