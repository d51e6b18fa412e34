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

// Package dtab constructs apis.DTab values, mirroring how the config
// package builds apis.Config from options.
package dtab

import "dirpx.dev/wily/apis"

// New builds a DTab from rewrite rules, in order (order is significant:
// earlier rules take precedence).
func New(entries ...apis.Dentry) apis.DTab {
	out := make(apis.DTab, len(entries))
	copy(out, entries)
	return out
}

// Rewrite is a convenience constructor for a single prefix => Leaf(target)
// rule, the common case of "everything under prefix goes to target".
func Rewrite(prefix, target apis.Path) apis.Dentry {
	return apis.Dentry{Prefix: prefix, Tree: apis.Leaf[apis.Path]{Value: target}}
}

// Empty is the DTab with no rewrite rules.
var Empty = apis.DTab{}
