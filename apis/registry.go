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

// Registry provides an explicit, longest-prefix-wins override lookup from
// Path prefixes to Namers. It lets operators pin a fixed Namer for
// important subtrees (test doubles, emergency overrides) without going
// through the full external naming system. Keep it minimal so
// implementations can be lock-free or sync.Map-backed.
type Registry interface {
	// Register associates prefix with an override Namer.
	// Implementations should be idempotent; conflicting re-registrations error.
	Register(prefix Path, n Namer) error
	// Lookup returns the override Namer for the longest registered prefix
	// of p, if any.
	Lookup(p Path) (n Namer, ok bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Entry is a single (prefix, Namer) association in a Registry snapshot.
type Entry struct {
	Prefix Path
	Namer  Namer
}
