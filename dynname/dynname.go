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

// Package dynname implements Factory: the per-bound-name state machine
// that sits between a single (DTab, path) binding's reactive Activity and
// the callers asking it for a Service. While the binding is unresolved,
// requests queue; once it resolves, queued and future requests delegate
// to the downstream ServiceFactory, re-running on every later rebinding.
package dynname

import (
	"context"
	"sync"

	"github.com/gammazero/channelqueue"

	"dirpx.dev/wily/apis"
	"dirpx.dev/wily/tracer"
	"dirpx.dev/wily/wlog"
)

// state is the sealed set of Factory states.
type state int

const (
	statePending state = iota
	stateNamed
	stateFailed
	stateClosed
)

// NewService builds a Service for a resolved bound name. Normally the
// caller plugs in a two-level cache's Apply (name cache keyed by
// bound.Key()).
type NewService[Req, Rep any] func(ctx context.Context, bound apis.Bound, conn apis.ClientConnection) (apis.Service[Req, Rep], error)

type pendingItem[Req, Rep any] struct {
	ctx     context.Context
	conn    apis.ClientConnection
	promise *apis.Promise[apis.Service[Req, Rep]]
}

// Factory is the per-(DTab,path) binding state machine described by the
// spec as DynNameFactory. It is safe for concurrent use.
type Factory[Req, Rep any] struct {
	mu    sync.Mutex
	st    state
	bound apis.Bound
	err   error

	queue *channelqueue.ChannelQueue[*pendingItem[Req, Rep]]

	newService NewService[Req, Rep]
	tracer     *tracer.NameTracer

	sub apis.Disposable
}

// New creates a Factory tracking activity, dispatching resolved requests
// through newService, and annotating nt on every request (nt may be nil:
// no tracing).
func New[Req, Rep any](activity apis.Activity[apis.Bound], newService NewService[Req, Rep], nt *tracer.NameTracer) *Factory[Req, Rep] {
	f := &Factory[Req, Rep]{
		queue:      channelqueue.New[*pendingItem[Req, Rep]](-1),
		newService: newService,
		tracer:     nt,
	}
	f.sub = activity.Respond(f.onState)
	return f
}

func (f *Factory[Req, Rep]) onState(s apis.ActivityState[apis.Bound]) {
	f.mu.Lock()
	if f.st == stateClosed {
		f.mu.Unlock()
		return
	}
	switch {
	case s.Ok:
		f.st = stateNamed
		f.bound = s.Value
		f.err = nil
	case s.Failed:
		f.st = stateFailed
		f.err = s.Err
	default:
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()

	switch {
	case s.Ok:
		f.drain()
	case s.Failed:
		f.drainFailed(s.Err)
	}
}

// drain re-applies every currently queued request now that the binding is
// Named. Each item is fulfilled by delegating to a fresh Apply, not by
// directly resolving the promise here: this keeps the tracer-wrapping and
// current-binding semantics identical to a request that arrives after the
// transition. Items leave the queue in FIFO order, but each is dispatched
// on its own goroutine, so the order in which dispatches run and promises
// complete is not defined. Items already completed (e.g. interrupted
// while queued) are skipped; a dispatch that races an interrupt and loses
// closes the
// otherwise-orphaned Service so its cache checkout is still released.
func (f *Factory[Req, Rep]) drain() {
	for {
		select {
		case item, ok := <-f.queue.Out():
			if !ok {
				return
			}
			if item.promise.Done() {
				continue
			}
			go func(it *pendingItem[Req, Rep]) {
				svc, err := f.dispatch(it.ctx, it.conn)
				if err != nil {
					it.promise.Fail(err)
					return
				}
				if !it.promise.Fulfill(svc) {
					_ = svc.Close(context.Background())
				}
			}(item)
		default:
			return
		}
	}
}

// drainFailed fails every currently queued request with err, the naming
// failure (unwrapped) that just took the binding to Failed, tracing each
// one.
func (f *Factory[Req, Rep]) drainFailed(err error) {
	for {
		select {
		case item, ok := <-f.queue.Out():
			if !ok {
				return
			}
			if f.tracer != nil {
				f.tracer.Failed(err)
			}
			item.promise.Fail(err)
		default:
			return
		}
	}
}

// IsAvailable reports whether the factory can still serve requests: false
// once Close has run, true otherwise (including while Pending, since a
// pending binding may yet resolve).
func (f *Factory[Req, Rep]) IsAvailable() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.st != stateClosed
}

// Apply returns a promise for a Service bound to conn, per the current (or
// next) resolution of the tracked binding.
func (f *Factory[Req, Rep]) Apply(ctx context.Context, conn apis.ClientConnection) *apis.Promise[apis.Service[Req, Rep]] {
	f.mu.Lock()
	st := f.st
	f.mu.Unlock()

	promise := apis.NewPromise[apis.Service[Req, Rep]]()

	switch st {
	case stateClosed:
		promise.Fail(apis.ErrServiceClosed)
		return promise
	case stateNamed:
		go func() {
			svc, err := f.dispatch(ctx, conn)
			if err != nil {
				promise.Fail(err)
				return
			}
			promise.Fulfill(svc)
		}()
		return promise
	case stateFailed:
		f.mu.Lock()
		err := f.err
		f.mu.Unlock()
		if f.tracer != nil {
			f.tracer.Failed(err)
		}
		promise.Fail(err)
		return promise
	default: // statePending
		item := &pendingItem[Req, Rep]{ctx: ctx, conn: conn, promise: promise}
		promise.OnInterrupt(func(cause error) {
			// The item still occupies a queue slot: channelqueue offers no
			// mid-queue removal. Fulfill/Fail on it is a safe no-op once
			// Interrupt has already completed the promise.
			wlog.L().Sugar().Debugw("dynname: pending request interrupted", "cause", cause)
		})
		f.queue.In() <- item
		return promise
	}
}

// dispatch records the current bound name on the tracer and invokes
// newService against it. The annotation is recorded once per dispatch,
// when the Service is acquired; the returned Service is not wrapped, so
// requests served through it later record nothing further.
func (f *Factory[Req, Rep]) dispatch(ctx context.Context, conn apis.ClientConnection) (apis.Service[Req, Rep], error) {
	f.mu.Lock()
	bound := f.bound
	f.mu.Unlock()

	if f.tracer != nil {
		f.tracer.Ok(bound)
	}
	return f.newService(ctx, bound, conn)
}

// Close transitions the factory to Closed: any queued requests fail with
// ServiceClosed, the Activity subscription is disposed, and subsequent
// Apply calls fail immediately.
func (f *Factory[Req, Rep]) Close() {
	f.mu.Lock()
	if f.st == stateClosed {
		f.mu.Unlock()
		return
	}
	f.st = stateClosed
	f.mu.Unlock()

	f.sub.Close()

	for {
		select {
		case item, ok := <-f.queue.Out():
			if !ok {
				return
			}
			item.promise.Fail(apis.ErrServiceClosed)
		default:
			return
		}
	}
}
