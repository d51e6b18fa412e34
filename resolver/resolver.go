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

// Package resolver composes a chain of apis.Strategy values into a single
// apis.Namer, trying each strategy in order until one handles the tree
// (registry override -> path normalization -> ...), the same
// try-in-order chain shape as before, now driving NameTree.Bind rather
// than a single Resolve call.
package resolver

import (
	"errors"
	"sync"

	"dirpx.dev/wily/activity"
	"dirpx.dev/wily/apis"
)

// ErrUnhandled is the failure delivered when no strategy in the chain
// handles a tree.
var ErrUnhandled = errors.New("resolver: no strategy handled the NameTree")

// New constructs an apis.Namer that tries strategies in order for cfg.
// Nil strategies are ignored. The returned Namer is safe for concurrent
// use provided strategies themselves are safe for concurrent TryBind calls.
func New(cfg apis.Config, strategies ...apis.Strategy) apis.Namer {
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out, cfg: cfg}
}

// chain is an immutable, order-preserving Namer over a set of strategies.
type chain struct {
	strats []apis.Strategy
	cfg    apis.Config
}

var _ apis.Namer = chain{}

// Bind runs strategies in order until one handles tree.
func (c chain) Bind(tree apis.NameTree[apis.Path]) apis.Activity[apis.NameTree[apis.Bound]] {
	for _, s := range c.strats {
		if a, ok := s.TryBind(tree, c.cfg); ok {
			return a
		}
	}
	return activity.StaticFailed[apis.NameTree[apis.Bound]](ErrUnhandled)
}

// OrElse returns a Namer that tries primary first, falling back to
// secondary for any tree primary's Activity resolves to Failed. Unlike a
// strategy chain (tried synchronously, before any binding begins),
// OrElse observes primary's resolved state and only consults secondary
// once primary has actually failed.
func OrElse(primary, secondary apis.Namer) apis.Namer {
	return orElse{primary: primary, secondary: secondary}
}

type orElse struct {
	primary, secondary apis.Namer
}

var _ apis.Namer = orElse{}

func (o orElse) Bind(tree apis.NameTree[apis.Path]) apis.Activity[apis.NameTree[apis.Bound]] {
	out := activity.Pending[apis.NameTree[apis.Bound]]()

	var (
		mu       sync.Mutex
		fellBack bool
	)

	o.primary.Bind(tree).Respond(func(s apis.ActivityState[apis.NameTree[apis.Bound]]) {
		if s.Failed {
			mu.Lock()
			already := fellBack
			fellBack = true
			mu.Unlock()
			if already {
				return
			}
			o.secondary.Bind(tree).Respond(func(s2 apis.ActivityState[apis.NameTree[apis.Bound]]) {
				if s2.Ok {
					out.Ok(s2.Value)
				} else if s2.Failed {
					out.Fail(s2.Err)
				}
			})
			return
		}
		if s.Ok {
			out.Ok(s.Value)
		}
	})

	return out
}
