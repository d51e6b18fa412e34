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

// Path is an immutable sequence of path components identifying a logical
// service, e.g. the segments of "/s/svc/foo" are ["s", "svc", "foo"].
//
// Path is displayable (Show), equatable (Equal) and hashable (Key); Key is
// what callers use as a comparable map key since a slice-backed struct
// cannot be used directly as one.
type Path struct {
	segments []string
}

// Empty is the zero-length path ("/").
var Empty = Path{}

// NewPath constructs a Path from already-split segments. Empty segments are
// dropped so "/s//foo" behaves like "/s/foo".
func NewPath(segments ...string) Path {
	out := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			out = append(out, s)
		}
	}
	return Path{segments: out}
}

// Segments returns a defensive copy of the path's components.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// Len returns the number of components.
func (p Path) Len() int { return len(p.segments) }

// IsEmpty reports whether the path has no components.
func (p Path) IsEmpty() bool { return len(p.segments) == 0 }

// Child returns a new Path with segment appended.
func (p Path) Child(segment string) Path {
	if segment == "" {
		return p
	}
	out := make([]string, len(p.segments)+1)
	copy(out, p.segments)
	out[len(p.segments)] = segment
	return Path{segments: out}
}

// Concat returns a new Path with other's segments appended after p's.
func (p Path) Concat(other Path) Path {
	out := make([]string, 0, len(p.segments)+len(other.segments))
	out = append(out, p.segments...)
	out = append(out, other.segments...)
	return Path{segments: out}
}

// HasPrefix reports whether prefix's segments are a leading subsequence of p's.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix.segments) > len(p.segments) {
		return false
	}
	for i, s := range prefix.segments {
		if p.segments[i] != s {
			return false
		}
	}
	return true
}

// Equal reports structural equality.
func (p Path) Equal(other Path) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i, s := range p.segments {
		if s != other.segments[i] {
			return false
		}
	}
	return true
}

// Show renders the path in "/a/b/c" form; the empty path renders as "/".
func (p Path) Show() string {
	if len(p.segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.segments, "/")
}

// Key returns a comparable, hashable identity for p, suitable for use as a
// map key (Path itself is not comparable because it wraps a slice).
func (p Path) Key() string { return p.Show() }

func (p Path) String() string { return p.Show() }
