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

package nametree_test

import (
	"testing"

	"dirpx.dev/wily/apis"
	"dirpx.dev/wily/nametree"
)

func TestEval_Leaf(t *testing.T) {
	r := nametree.Eval[string](apis.Leaf[string]{Value: "a"})
	if r.Negative || r.IsEmpty() {
		t.Fatalf("unexpected result: %+v", r)
	}
	if got := r.Slice(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("got %v, want [a]", got)
	}
}

func TestEval_Neg(t *testing.T) {
	r := nametree.Eval[string](apis.Neg[string]{})
	if !r.Negative {
		t.Fatalf("expected Negative")
	}
}

func TestEval_Empty(t *testing.T) {
	r := nametree.Eval[string](apis.Empty[string]{})
	if r.Negative {
		t.Fatalf("expected non-negative Some(empty)")
	}
	if !r.IsEmpty() {
		t.Fatalf("expected IsEmpty()")
	}
}

func TestEval_AltFirstUsableWins(t *testing.T) {
	tree := apis.Alt[string]{Children: []apis.NameTree[string]{
		apis.Neg[string]{},
		apis.Empty[string]{},
		apis.Leaf[string]{Value: "b"},
		apis.Leaf[string]{Value: "c"},
	}}
	r := nametree.Eval[string](tree)
	if got := r.Slice(); len(got) != 1 || got[0] != "b" {
		t.Fatalf("got %v, want [b] (first usable alternative)", got)
	}
}

func TestEval_AltAllUnusableIsNegative(t *testing.T) {
	tree := apis.Alt[string]{Children: []apis.NameTree[string]{
		apis.Neg[string]{},
		apis.Empty[string]{},
	}}
	r := nametree.Eval[string](tree)
	if !r.Negative {
		t.Fatalf("expected Negative when no alternative is usable")
	}
}

func TestEval_UnionMergesUsableChildren(t *testing.T) {
	tree := apis.Union[string]{Children: []apis.WeightedTree[string]{
		{Weight: 1, Tree: apis.Leaf[string]{Value: "a"}},
		{Weight: 1, Tree: apis.Leaf[string]{Value: "b"}},
		{Weight: 1, Tree: apis.Neg[string]{}},
	}}
	r := nametree.Eval[string](tree)
	if r.Negative {
		t.Fatalf("expected non-negative union")
	}
	got := r.Slice()
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 merged members", got)
	}
}

func TestEval_UnionAllNegativeIsNegative(t *testing.T) {
	tree := apis.Union[string]{Children: []apis.WeightedTree[string]{
		{Weight: 1, Tree: apis.Neg[string]{}},
		{Weight: 1, Tree: apis.Neg[string]{}},
	}}
	r := nametree.Eval[string](tree)
	if !r.Negative {
		t.Fatalf("expected Negative when every union child is negative")
	}
}

func TestEval_NestedAltAndUnion(t *testing.T) {
	tree := apis.Alt[string]{Children: []apis.NameTree[string]{
		apis.Neg[string]{},
		apis.Union[string]{Children: []apis.WeightedTree[string]{
			{Weight: 1, Tree: apis.Leaf[string]{Value: "x"}},
			{Weight: 1, Tree: apis.Leaf[string]{Value: "y"}},
		}},
	}}
	r := nametree.Eval[string](tree)
	got := r.Slice()
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 members from the nested union", got)
	}
}
