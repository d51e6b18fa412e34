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

import (
	"context"
	"sync"
)

// Promise is a write-once, interruptible result cell. It is the core's
// stand-in for the "Future<T>" values named throughout the spec: every
// apply() suspension point that must be cancellable (a queued request
// waiting on a pending name) is represented as a *Promise[T].
//
// Completion is first-completer-wins: whichever of Fulfill, Fail or
// Interrupt runs first determines the outcome; later calls are no-ops.
type Promise[T any] struct {
	once   sync.Once
	done   chan struct{}
	value  T
	err    error
	onIntr func(cause error) // removal hook installed by the owner (e.g. dequeue)
	mu     sync.Mutex
}

// NewPromise creates an unresolved Promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{done: make(chan struct{})}
}

// OnInterrupt installs the handler invoked when Interrupt completes this
// promise first. Used by owners (e.g. a pending queue) to atomically
// remove the entry. Must be called before the promise can race with
// Interrupt; it is not safe to call concurrently with itself.
func (p *Promise[T]) OnInterrupt(handler func(cause error)) {
	p.mu.Lock()
	p.onIntr = handler
	p.mu.Unlock()
}

// Fulfill completes the promise successfully. No-op if already completed.
// The bool reports whether this call won the race (false means someone
// else already completed the promise and v was discarded).
func (p *Promise[T]) Fulfill(v T) bool {
	won := false
	p.once.Do(func() {
		won = true
		p.value = v
		close(p.done)
	})
	return won
}

// Fail completes the promise with an error. No-op if already completed.
// The bool reports whether this call won the race.
func (p *Promise[T]) Fail(err error) bool {
	won := false
	p.once.Do(func() {
		won = true
		p.err = err
		close(p.done)
	})
	return won
}

// Done reports whether the promise has already completed (by Fulfill,
// Fail or Interrupt). Cheap, non-blocking check for callers deciding
// whether it is still worth doing work on this promise's behalf.
func (p *Promise[T]) Done() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Interrupt cancels the promise with CancelledConnection{cause}. If this
// call wins the race, the installed OnInterrupt handler (if any) runs
// synchronously before Interrupt returns. The promise is already
// completed when the handler runs, so waiters may observe completion
// first.
func (p *Promise[T]) Interrupt(cause error) {
	won := false
	p.once.Do(func() {
		won = true
		p.err = &CancelledConnection{Cause: cause}
		close(p.done)
	})
	if won {
		p.mu.Lock()
		h := p.onIntr
		p.mu.Unlock()
		if h != nil {
			h(cause)
		}
	}
}

// Get blocks until the promise completes or ctx is done, whichever comes
// first. A context cancellation does NOT itself interrupt the promise;
// callers that want cancellation to propagate should call Interrupt.
func (p *Promise[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
