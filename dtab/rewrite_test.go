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

package dtab_test

import (
	"testing"

	"dirpx.dev/wily/apis"
	"dirpx.dev/wily/dtab"
	"dirpx.dev/wily/path"
)

func leafPath(p apis.Path) apis.NameTree[apis.Path] { return apis.Leaf[apis.Path]{Value: p} }

func mustLeaf(t *testing.T, tree apis.NameTree[apis.Path]) apis.Path {
	t.Helper()
	l, ok := tree.(apis.Leaf[apis.Path])
	if !ok {
		t.Fatalf("expected Leaf, got %#v", tree)
	}
	return l.Value
}

func TestBind_NoMatchIsIdentity(t *testing.T) {
	d := dtab.New(dtab.Rewrite(path.New("a"), path.New("x")))
	tree := leafPath(path.New("b", "c"))

	out, err := dtab.Bind(d, tree, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustLeaf(t, out); got.Show() != "/b/c" {
		t.Fatalf("got %v, want unchanged /b/c", got.Show())
	}
}

func TestBind_EmptyDTabIsIdentity(t *testing.T) {
	tree := leafPath(path.New("svc", "m"))
	out, err := dtab.Bind(dtab.Empty, tree, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustLeaf(t, out); got.Show() != "/svc/m" {
		t.Fatalf("got %v", got.Show())
	}
}

func TestBind_RewritesPrefixAndSplicesSuffix(t *testing.T) {
	d := dtab.New(dtab.Rewrite(path.New("s", "svc"), path.New("prod", "svc-1")))
	tree := leafPath(path.New("s", "svc", "method"))

	out, err := dtab.Bind(d, tree, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustLeaf(t, out); got.Show() != "/prod/svc-1/method" {
		t.Fatalf("got %v, want /prod/svc-1/method", got.Show())
	}
}

func TestBind_ExactMatchNoSuffix(t *testing.T) {
	d := dtab.New(dtab.Rewrite(path.New("s", "svc"), path.New("prod", "svc-1")))
	tree := leafPath(path.New("s", "svc"))

	out, err := dtab.Bind(d, tree, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustLeaf(t, out); got.Show() != "/prod/svc-1" {
		t.Fatalf("got %v", got.Show())
	}
}

func TestBind_EarlierRuleTakesPrecedence(t *testing.T) {
	d := dtab.New(
		dtab.Rewrite(path.New("s"), path.New("first")),
		dtab.Rewrite(path.New("s"), path.New("second")),
	)
	tree := leafPath(path.New("s", "svc"))

	out, err := dtab.Bind(d, tree, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustLeaf(t, out); got.Show() != "/first/svc" {
		t.Fatalf("got %v, want first rule to win", got.Show())
	}
}

func TestBind_ChainedRewriteRecurses(t *testing.T) {
	d := dtab.New(
		dtab.Rewrite(path.New("a"), path.New("b")),
		dtab.Rewrite(path.New("b"), path.New("c")),
	)
	tree := leafPath(path.New("a", "x"))

	out, err := dtab.Bind(d, tree, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustLeaf(t, out); got.Show() != "/c/x" {
		t.Fatalf("got %v, want /c/x after chained rewrite", got.Show())
	}
}

func TestBind_TooDeepReturnsError(t *testing.T) {
	// A self-referential loop: /a rewrites to /a, forcing unbounded recursion.
	d := dtab.New(dtab.Rewrite(path.New("a"), path.New("a")))
	tree := leafPath(path.New("a", "x"))

	_, err := dtab.Bind(d, tree, 4)
	if err != dtab.ErrTooDeep {
		t.Fatalf("err = %v, want ErrTooDeep", err)
	}
}

func TestBind_AltRecursesIntoChildren(t *testing.T) {
	d := dtab.New(dtab.Rewrite(path.New("a"), path.New("z")))
	tree := apis.Alt[apis.Path]{Children: []apis.NameTree[apis.Path]{
		apis.Neg[apis.Path]{},
		leafPath(path.New("a", "x")),
	}}

	out, err := dtab.Bind(d, tree, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	alt, ok := out.(apis.Alt[apis.Path])
	if !ok || len(alt.Children) != 2 {
		t.Fatalf("expected Alt with 2 children, got %#v", out)
	}
	if _, ok := alt.Children[0].(apis.Neg[apis.Path]); !ok {
		t.Fatalf("expected first child to remain Neg, got %#v", alt.Children[0])
	}
	if got := mustLeaf(t, alt.Children[1]); got.Show() != "/z/x" {
		t.Fatalf("got %v, want /z/x", got.Show())
	}
}

func TestBind_UnionRecursesIntoChildren(t *testing.T) {
	d := dtab.New(dtab.Rewrite(path.New("a"), path.New("z")))
	tree := apis.Union[apis.Path]{Children: []apis.WeightedTree[apis.Path]{
		{Weight: 1, Tree: leafPath(path.New("a", "x"))},
		{Weight: 1, Tree: leafPath(path.New("b"))},
	}}

	out, err := dtab.Bind(d, tree, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	union, ok := out.(apis.Union[apis.Path])
	if !ok || len(union.Children) != 2 {
		t.Fatalf("expected Union with 2 children, got %#v", out)
	}
	if got := mustLeaf(t, union.Children[0].Tree); got.Show() != "/z/x" {
		t.Fatalf("got %v, want /z/x", got.Show())
	}
	if got := mustLeaf(t, union.Children[1].Tree); got.Show() != "/b" {
		t.Fatalf("got %v, want unchanged /b", got.Show())
	}
}

func TestBind_NegAndEmptyPassThrough(t *testing.T) {
	d := dtab.New(dtab.Rewrite(path.New("a"), path.New("z")))

	neg, err := dtab.Bind(d, apis.Neg[apis.Path]{}, 8)
	if err != nil || neg == nil {
		t.Fatalf("Neg passthrough failed: %v, %#v", err, neg)
	}
	if _, ok := neg.(apis.Neg[apis.Path]); !ok {
		t.Fatalf("expected Neg, got %#v", neg)
	}

	empty, err := dtab.Bind(d, apis.Empty[apis.Path]{}, 8)
	if err != nil || empty == nil {
		t.Fatalf("Empty passthrough failed: %v, %#v", err, empty)
	}
	if _, ok := empty.(apis.Empty[apis.Path]); !ok {
		t.Fatalf("expected Empty, got %#v", empty)
	}
}
