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

// Strategy is a pluggable naming step. A chain of strategies is combined
// into a single Namer (see package resolver), tried in order until one
// handles the tree (e.g. RegistryStrategy -> PathNormalizingStrategy ->
// base external Namer).
type Strategy interface {
	// TryBind attempts to bind tree according to cfg. It returns
	// (activity, true) if this strategy handles the tree; otherwise
	// (nil, false) so the chain falls through to the next strategy.
	TryBind(tree NameTree[Path], cfg Config) (activity Activity[NameTree[Bound]], handled bool)
}
