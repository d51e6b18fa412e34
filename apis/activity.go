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

package apis

// Disposable is a cancellable subscription handle.
type Disposable interface {
	// Close disposes the subscription. Idempotent.
	Close()
}

// ActivityState is one snapshot of an Activity[T]: Pending (neither Ok nor
// Failed), Ok(Value), or Failed(Err).
type ActivityState[T any] struct {
	Ok     bool
	Failed bool
	Value  T
	Err    error
}

// Pending reports whether the state is neither Ok nor Failed.
func (s ActivityState[T]) Pending() bool { return !s.Ok && !s.Failed }

// Activity is a reactive value with states {Pending, Ok(T), Failed(e)}.
// Respond must be idempotent-on-subscribe: the current value is delivered
// to handler immediately upon subscription, and every subsequent state
// transition is delivered in order on some scheduler goroutine.
type Activity[T any] interface {
	Respond(handler func(ActivityState[T])) Disposable
}

// Var is a reactive cell holding a value of type T that may change over
// time. It has the same push-subscription shape as Activity but without
// Pending/Failed states: a Var always holds a current value.
type Var[T any] interface {
	Get() T
	Observe(handler func(T)) Disposable
}
