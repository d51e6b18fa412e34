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

// Package activity is the reactive Var[T]/Activity[T] primitive the spec
// allows implementing as "a library primitive": a lazy, observable value
// with push-subscription, idempotent-on-subscribe delivery, and per-
// subscription serialized handler invocation.
package activity

import (
	"sync"

	"dirpx.dev/wily/apis"
)

// Var is a reactive cell holding a value of type T that may change over
// time. It implements apis.Var[T].
type Var[T any] struct {
	mu   sync.Mutex
	val  T
	subs map[*subscription[T]]struct{}
}

// NewVar creates a Var holding initial.
func NewVar[T any](initial T) *Var[T] {
	return &Var[T]{val: initial, subs: make(map[*subscription[T]]struct{})}
}

// Get returns the current value.
func (v *Var[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.val
}

// Update publishes a new value to v and to every live subscriber, in the
// order Update is called (per-subscriber delivery is further serialized
// by that subscriber's own goroutine).
func (v *Var[T]) Update(next T) {
	v.mu.Lock()
	v.val = next
	subs := make([]*subscription[T], 0, len(v.subs))
	for s := range v.subs {
		subs = append(subs, s)
	}
	v.mu.Unlock()

	for _, s := range subs {
		s.push(next)
	}
}

// Observe subscribes handler to every future transition. The current
// value is delivered first (idempotent-on-subscribe), then every
// subsequent Update, each on the subscription's own goroutine, strictly
// in order.
func (v *Var[T]) Observe(handler func(T)) apis.Disposable {
	sub := newSubscription(handler)

	v.mu.Lock()
	v.subs[sub] = struct{}{}
	current := v.val
	v.mu.Unlock()

	sub.push(current)

	return disposeFunc(func() {
		v.mu.Lock()
		delete(v.subs, sub)
		v.mu.Unlock()
		sub.close()
	})
}

// subscription serializes delivery of a stream of values to one handler
// via an internal FIFO queue drained by a dedicated goroutine.
type subscription[T any] struct {
	handler func(T)

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []T
	closed bool
}

func newSubscription[T any](handler func(T)) *subscription[T] {
	s := &subscription[T]{handler: handler}
	s.cond = sync.NewCond(&s.mu)
	go s.run()
	return s
}

func (s *subscription[T]) push(v T) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, v)
	s.mu.Unlock()
	s.cond.Signal()
}

func (s *subscription[T]) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cond.Broadcast()
}

func (s *subscription[T]) run() {
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if len(s.queue) == 0 && s.closed {
			s.mu.Unlock()
			return
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.handler(next)
	}
}

type disposeFunc func()

func (f disposeFunc) Close() { f() }
