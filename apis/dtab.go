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

import "strings"

// Dentry is a single delegation-table rewrite rule: prefix => tree.
type Dentry struct {
	Prefix Path
	Tree   NameTree[Path]
}

// DTab is an ordered list of Dentry rewrite rules. Two DTabs compose by
// concatenation (base ++ local); composition is order-significant: rules
// earlier in the list take precedence.
type DTab []Dentry

// Concat returns a new DTab with other's entries appended after d's.
// d.Concat(other) corresponds to "base ++ local".
func (d DTab) Concat(other DTab) DTab {
	out := make(DTab, 0, len(d)+len(other))
	out = append(out, d...)
	out = append(out, other...)
	return out
}

// IsEmpty reports whether the table has no rewrite rules.
func (d DTab) IsEmpty() bool { return len(d) == 0 }

// Show renders the table deterministically as "prefix=>tree;prefix=>tree".
// Tree rendering is necessarily approximate (NameTree has no canonical
// Show of its own): Leaf paths are rendered, composite nodes by kind.
func (d DTab) Show() string {
	parts := make([]string, len(d))
	for i, e := range d {
		parts[i] = e.Prefix.Show() + "=>" + showTree(e.Tree)
	}
	return strings.Join(parts, ";")
}

// Key returns a comparable, hashable identity for d.
func (d DTab) Key() string { return d.Show() }

func showTree(t NameTree[Path]) string {
	switch n := t.(type) {
	case Leaf[Path]:
		return n.Value.Show()
	case Alt[Path]:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = showTree(c)
		}
		return "(" + strings.Join(parts, "|") + ")"
	case Union[Path]:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = showTree(c.Tree)
		}
		return "(" + strings.Join(parts, "&") + ")"
	case Neg[Path]:
		return "~"
	case Empty[Path]:
		return "!"
	default:
		return "?"
	}
}
