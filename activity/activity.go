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

package activity

import "dirpx.dev/wily/apis"

// Activity is a reactive value with states {Pending, Ok(T), Failed(e)},
// backed by a Var[apis.ActivityState[T]]. It implements apis.Activity[T].
type Activity[T any] struct {
	v *Var[apis.ActivityState[T]]
}

// New creates an Activity starting from initial.
func New[T any](initial apis.ActivityState[T]) *Activity[T] {
	return &Activity[T]{v: NewVar(initial)}
}

// Pending creates an Activity[T] in the Pending state.
func Pending[T any]() *Activity[T] {
	return New[T](apis.ActivityState[T]{})
}

// Respond subscribes handler to every state transition, delivering the
// current state immediately.
func (a *Activity[T]) Respond(handler func(apis.ActivityState[T])) apis.Disposable {
	return a.v.Observe(handler)
}

// Current returns the latest published state without subscribing.
func (a *Activity[T]) Current() apis.ActivityState[T] { return a.v.Get() }

// Ok transitions the activity to Ok(value).
func (a *Activity[T]) Ok(value T) { a.v.Update(apis.ActivityState[T]{Ok: true, Value: value}) }

// Fail transitions the activity to Failed(err).
func (a *Activity[T]) Fail(err error) { a.v.Update(apis.ActivityState[T]{Failed: true, Err: err}) }

// StaticOk returns an already-settled apis.Activity[T] in the Ok state.
// Useful for tests and for Namers that resolve synchronously.
func StaticOk[T any](value T) apis.Activity[T] {
	return New[T](apis.ActivityState[T]{Ok: true, Value: value})
}

// StaticFailed returns an already-settled apis.Activity[T] in the Failed state.
func StaticFailed[T any](err error) apis.Activity[T] {
	return New[T](apis.ActivityState[T]{Failed: true, Err: err})
}

// Mapped is a derived Activity[U] that republishes every state of src
// through f. It holds one upstream subscription to src for its whole
// lifetime; only Close disposes it (disposing observers of the result
// does not).
type Mapped[U any] struct {
	*Activity[U]
	upstream apis.Disposable
}

// Close disposes the upstream subscription driving this derived activity.
func (m *Mapped[U]) Close() {
	if m.upstream != nil {
		m.upstream.Close()
	}
}

// Map builds a Mapped[U] whose state tracks f(state) for every state src emits.
func Map[T, U any](src apis.Activity[T], f func(apis.ActivityState[T]) apis.ActivityState[U]) *Mapped[U] {
	out := Pending[U]()
	m := &Mapped[U]{Activity: out}
	m.upstream = src.Respond(func(s apis.ActivityState[T]) {
		out.v.Update(f(s))
	})
	return m
}
