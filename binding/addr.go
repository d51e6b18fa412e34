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

package binding

import (
	"sync"

	"github.com/gofrs/uuid"

	"dirpx.dev/wily/activity"
	"dirpx.dev/wily/apis"
)

// mergeBound combines several Bound values (the Union case of an Eval'd
// NameTree) into a single, anonymous Bound whose Addr reactively
// republishes the union of every constituent's endpoints. Unlike a
// single-member binding, a union has no one natural identity of its own,
// so a fresh random token names it, the same way the union case of
// Name.all needs a synthesized identity rather than a constituent's.
func mergeBound(bounds []apis.Bound) apis.Bound {
	if len(bounds) == 1 {
		return bounds[0]
	}
	sources := make([]apis.Var[apis.Addr], len(bounds))
	for i, b := range bounds {
		sources[i] = b.Addr
	}
	id := uuid.Must(uuid.NewV4())
	return apis.Bound{ID: id.String(), Addr: mergeAddr(sources)}
}

// mergeAddr returns a Var[Addr] that republishes the union of every
// source's endpoints whenever any one of them changes: Bound if any
// source is Bound (concatenating endpoints), else Pending if any source
// is still Pending, else Failed with the first observed failure, else Neg.
func mergeAddr(sources []apis.Var[apis.Addr]) apis.Var[apis.Addr] {
	combined := activity.NewVar[apis.Addr](apis.Addr{State: apis.AddrPending})

	var mu sync.Mutex
	latest := make([]apis.Addr, len(sources))
	for i, s := range sources {
		latest[i] = s.Get()
	}

	recompute := func() {
		mu.Lock()
		snapshot := make([]apis.Addr, len(latest))
		copy(snapshot, latest)
		mu.Unlock()

		var endpoints []apis.Endpoint
		pending := false
		var failedErr error
		for _, a := range snapshot {
			switch a.State {
			case apis.AddrBound:
				endpoints = append(endpoints, a.Endpoints...)
			case apis.AddrPending:
				pending = true
			case apis.AddrFailed:
				if failedErr == nil {
					failedErr = a.Err
				}
			}
		}
		switch {
		case len(endpoints) > 0:
			combined.Update(apis.Addr{State: apis.AddrBound, Endpoints: endpoints})
		case pending:
			combined.Update(apis.Addr{State: apis.AddrPending})
		case failedErr != nil:
			combined.Update(apis.Addr{State: apis.AddrFailed, Err: failedErr})
		default:
			combined.Update(apis.Addr{State: apis.AddrNeg})
		}
	}

	for i, s := range sources {
		idx := i
		s.Observe(func(a apis.Addr) {
			mu.Lock()
			latest[idx] = a
			mu.Unlock()
			recompute()
		})
	}

	return combined
}
