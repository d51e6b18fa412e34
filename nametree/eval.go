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

// Package nametree implements evaluation of the NameTree[T] algebra: Eval
// reduces a tree to a set of terminals (or negative/empty), reported as a
// Result.
package nametree

import "dirpx.dev/wily/apis"

// Result is the outcome of Eval: Negative (None), or a (possibly empty)
// Set of terminals (Some(set)).
type Result[T comparable] struct {
	Negative bool
	Set      map[T]struct{}
}

// IsEmpty reports Some(∅): a definite, non-negative binding to nothing.
func (r Result[T]) IsEmpty() bool { return !r.Negative && len(r.Set) == 0 }

// Slice returns the terminals as a slice, order unspecified.
func (r Result[T]) Slice() []T {
	out := make([]T, 0, len(r.Set))
	for t := range r.Set {
		out = append(out, t)
	}
	return out
}

// Eval reduces tree to a Result: Leaf contributes its value; Alt takes the
// first child whose evaluation is neither Negative nor empty; Union merges
// all children's sets (weights are carried but do not affect membership -
// see the "order-independent combiner" open question); Neg is negative;
// Empty is Some(∅).
func Eval[T comparable](tree apis.NameTree[T]) Result[T] {
	switch n := tree.(type) {
	case apis.Leaf[T]:
		return Result[T]{Set: map[T]struct{}{n.Value: {}}}
	case apis.Neg[T]:
		return Result[T]{Negative: true}
	case apis.Empty[T]:
		return Result[T]{Set: map[T]struct{}{}}
	case apis.Alt[T]:
		for _, child := range n.Children {
			r := Eval(child)
			if !r.Negative && !r.IsEmpty() {
				return r
			}
		}
		// No alternative produced a usable binding.
		return Result[T]{Negative: true}
	case apis.Union[T]:
		merged := map[T]struct{}{}
		sawUsable := false
		for _, wc := range n.Children {
			r := Eval(wc.Tree)
			if r.Negative {
				continue
			}
			sawUsable = true
			for t := range r.Set {
				merged[t] = struct{}{}
			}
		}
		if !sawUsable {
			return Result[T]{Negative: true}
		}
		return Result[T]{Set: merged}
	default:
		return Result[T]{Negative: true}
	}
}
