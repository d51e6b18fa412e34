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

// Namer is the capability to bind a NameTree[Path] to a reactive
// NameTree[Bound]. It is the process's one escape hatch into whatever
// external naming system (DNS, a service mesh, a zookeeper-backed
// registry, ...) actually knows how to turn paths into endpoints; this
// core never implements that lookup itself.
type Namer interface {
	Bind(tree NameTree[Path]) Activity[NameTree[Bound]]
}

// NamerFunc adapts a plain function to a Namer.
type NamerFunc func(tree NameTree[Path]) Activity[NameTree[Bound]]

func (f NamerFunc) Bind(tree NameTree[Path]) Activity[NameTree[Bound]] { return f(tree) }
