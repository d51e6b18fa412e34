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

package dtab

import (
	"errors"

	"dirpx.dev/wily/apis"
)

// ErrTooDeep is returned when rewriting a tree through a DTab exceeds
// maxDepth levels of recursive substitution, the same pathological-
// nesting guard package path applies to normalization.
var ErrTooDeep = errors.New("dtab: rewrite exceeded max depth")

// Bind rewrites every Leaf(path) in tree through d: the first entry (in
// list order - earlier rules take precedence) whose Prefix is a prefix of
// the leaf's path replaces the matched prefix with the entry's Tree,
// re-splicing the unmatched suffix onto every one of that Tree's leaves,
// and the result is rewritten again (bounded by maxDepth) in case the
// substitution itself matched a further rule. A Leaf with no matching
// entry, or any non-Leaf node, passes through unchanged (Alt/Union recurse
// into children; Neg/Empty are terminal).
//
// An empty or non-matching DTab is therefore the identity rewrite: Bind
// only ever changes a tree where some rule actually applies.
func Bind(d apis.DTab, tree apis.NameTree[apis.Path], maxDepth int) (apis.NameTree[apis.Path], error) {
	return bind(d, tree, maxDepth, 0)
}

func bind(d apis.DTab, tree apis.NameTree[apis.Path], maxDepth, depth int) (apis.NameTree[apis.Path], error) {
	if depth > maxDepth {
		return nil, ErrTooDeep
	}
	switch n := tree.(type) {
	case apis.Leaf[apis.Path]:
		entry, ok := firstMatch(d, n.Value)
		if !ok {
			return n, nil
		}
		suffix := n.Value.Segments()[len(entry.Prefix.Segments()):]
		rewritten := spliceSuffix(entry.Tree, apis.NewPath(suffix...))
		return bind(d, rewritten, maxDepth, depth+1)
	case apis.Alt[apis.Path]:
		children := make([]apis.NameTree[apis.Path], len(n.Children))
		for i, c := range n.Children {
			r, err := bind(d, c, maxDepth, depth+1)
			if err != nil {
				return nil, err
			}
			children[i] = r
		}
		return apis.Alt[apis.Path]{Children: children}, nil
	case apis.Union[apis.Path]:
		children := make([]apis.WeightedTree[apis.Path], len(n.Children))
		for i, c := range n.Children {
			r, err := bind(d, c.Tree, maxDepth, depth+1)
			if err != nil {
				return nil, err
			}
			children[i] = apis.WeightedTree[apis.Path]{Weight: c.Weight, Tree: r}
		}
		return apis.Union[apis.Path]{Children: children}, nil
	default: // Neg, Empty
		return n, nil
	}
}

func firstMatch(d apis.DTab, p apis.Path) (apis.Dentry, bool) {
	for _, e := range d {
		if p.HasPrefix(e.Prefix) {
			return e, true
		}
	}
	return apis.Dentry{}, false
}

// spliceSuffix appends suffix to every Leaf in tree, the way a DTab rule
// "everything under /a goes to /b" plus a request for "/a/c" yields "/b/c".
func spliceSuffix(tree apis.NameTree[apis.Path], suffix apis.Path) apis.NameTree[apis.Path] {
	if suffix.IsEmpty() {
		return tree
	}
	switch n := tree.(type) {
	case apis.Leaf[apis.Path]:
		return apis.Leaf[apis.Path]{Value: n.Value.Concat(suffix)}
	case apis.Alt[apis.Path]:
		children := make([]apis.NameTree[apis.Path], len(n.Children))
		for i, c := range n.Children {
			children[i] = spliceSuffix(c, suffix)
		}
		return apis.Alt[apis.Path]{Children: children}
	case apis.Union[apis.Path]:
		children := make([]apis.WeightedTree[apis.Path], len(n.Children))
		for i, c := range n.Children {
			children[i] = apis.WeightedTree[apis.Path]{Weight: c.Weight, Tree: spliceSuffix(c.Tree, suffix)}
		}
		return apis.Union[apis.Path]{Children: children}
	default: // Neg, Empty: no leaf to extend
		return n
	}
}
