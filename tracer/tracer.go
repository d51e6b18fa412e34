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

// Package tracer implements NameTracer: a pure side-effect component that
// annotates the caller-injected apis.TraceFunc with naming outcomes. It
// owns no tracing backend of its own.
package tracer

import "dirpx.dev/wily/apis"

// NameTracer records path/dtab/outcome annotations against whatever trace
// context the injected apis.TraceFunc writes into.
type NameTracer struct {
	trace     apis.TraceFunc
	pathShow  string
	baseShow  string
	localShow string
}

// New builds a NameTracer fixed to one (path, base DTab, local DTab)
// triple. trace may be nil, in which case every method is a no-op.
func New(trace apis.TraceFunc, path apis.Path, base, local apis.DTab) *NameTracer {
	return &NameTracer{
		trace:     trace,
		pathShow:  path.Show(),
		baseShow:  base.Show(),
		localShow: local.Show(),
	}
}

// Context records the fixed path/dtab annotations. Callers emit this once
// per binding attempt, before the outcome (Ok/Failed) is known.
func (t *NameTracer) Context() {
	if t.trace == nil {
		return
	}
	t.trace("wily.path", t.pathShow)
	t.trace("wily.dtab.base", t.baseShow)
	t.trace("wily.dtab.local", t.localShow)
}

// Ok records a successful binding's identity.
func (t *NameTracer) Ok(bound apis.Bound) {
	if t.trace == nil {
		return
	}
	t.trace("wily.name", bound.ID)
}

// Failed records a binding failure's error kind.
func (t *NameTracer) Failed(err error) {
	if t.trace == nil {
		return
	}
	t.trace("wily.failure", errorKind(err))
}

func errorKind(err error) string {
	switch err.(type) {
	case *apis.NoBrokersAvailable:
		return "NoBrokersAvailable"
	case *apis.ServiceClosed:
		return "ServiceClosed"
	case *apis.CancelledConnection:
		return "CancelledConnection"
	default:
		return "NamingException"
	}
}
