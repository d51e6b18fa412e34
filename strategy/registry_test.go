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

package strategy_test

import (
	"testing"

	"dirpx.dev/wily/activity"
	"dirpx.dev/wily/apis"
	wregistry "dirpx.dev/wily/registry"
	"dirpx.dev/wily/strategy"
)

// current blocks until a's first state is delivered and returns it.
// Respond delivers on the subscription's own goroutine, so the state
// arrives asynchronously even for already-settled activities.
func current[T any](a apis.Activity[T]) apis.ActivityState[T] {
	ch := make(chan apis.ActivityState[T], 1)
	d := a.Respond(func(s apis.ActivityState[T]) {
		select {
		case ch <- s:
		default:
		}
	})
	defer d.Close()
	return <-ch
}

func boundTreeFor(id string) apis.NameTree[apis.Bound] {
	return apis.Leaf[apis.Bound]{Value: apis.Bound{ID: id, Addr: activity.NewVar(apis.Addr{State: apis.AddrBound})}}
}

func TestRegistryStrategy_HandlesRegisteredLeaf(t *testing.T) {
	reg := wregistry.New()
	inner := apis.NamerFunc(func(tree apis.NameTree[apis.Path]) apis.Activity[apis.NameTree[apis.Bound]] {
		return activity.StaticOk(boundTreeFor("from-override"))
	})
	if err := reg.Register(apis.NewPath("svc"), inner); err != nil {
		t.Fatalf("register: %v", err)
	}

	s := strategy.NewRegistryStrategy(reg)
	tree := apis.Leaf[apis.Path]{Value: apis.NewPath("svc", "method")}

	a, handled := s.TryBind(tree, apis.Config{})
	if !handled {
		t.Fatalf("expected handled=true")
	}
	st := current(a)
	if !st.Ok {
		t.Fatalf("expected Ok state, got %+v", st)
	}
}

func TestRegistryStrategy_FallsThroughOnMiss(t *testing.T) {
	reg := wregistry.New()
	s := strategy.NewRegistryStrategy(reg)

	tree := apis.Leaf[apis.Path]{Value: apis.NewPath("unregistered")}
	_, handled := s.TryBind(tree, apis.Config{})
	if handled {
		t.Fatalf("expected handled=false for unregistered prefix")
	}
}

func TestRegistryStrategy_FallsThroughOnNonLeaf(t *testing.T) {
	reg := wregistry.New()
	_ = reg.Register(apis.NewPath("svc"), apis.NamerFunc(func(apis.NameTree[apis.Path]) apis.Activity[apis.NameTree[apis.Bound]] {
		return activity.StaticOk(boundTreeFor("x"))
	}))

	s := strategy.NewRegistryStrategy(reg)
	tree := apis.Alt[apis.Path]{Children: []apis.NameTree[apis.Path]{
		apis.Leaf[apis.Path]{Value: apis.NewPath("svc")},
	}}
	_, handled := s.TryBind(tree, apis.Config{})
	if handled {
		t.Fatalf("expected handled=false for non-Leaf tree")
	}
}

func TestRegistryStrategy_NilRegistry(t *testing.T) {
	s := strategy.NewRegistryStrategy(nil)
	_, handled := s.TryBind(apis.Leaf[apis.Path]{Value: apis.NewPath("a")}, apis.Config{})
	if handled {
		t.Fatalf("expected handled=false for nil registry")
	}
}
