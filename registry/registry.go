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

// Package registry holds explicit path-prefix overrides: Namers registered
// against a Path prefix that win over whatever a composed Namer chain
// would otherwise produce for paths under that prefix. Lookup resolves
// the longest matching prefix. This differs from dtab.Bind, which applies
// the first matching rule in list order.
package registry

import (
	"errors"
	"sync"
	"unsafe"

	"dirpx.dev/wily/apis"
)

var (
	// ErrEmptyPrefix is returned when an empty Path is registered.
	ErrEmptyPrefix = errors.New("wily(registry): empty prefix provided")
	// ErrNilNamer is returned when a nil Namer is registered.
	ErrNilNamer = errors.New("wily(registry): nil Namer provided")
	// ErrConflictingRegistration indicates an attempt to re-register a
	// prefix with a different Namer.
	ErrConflictingRegistration = errors.New("wily(registry): conflicting prefix registration")
)

// New constructs an empty path-prefix override Registry.
func New() apis.Registry {
	return &registry{}
}

type entry struct {
	prefix apis.Path
	namer  apis.Namer
}

// registry is a prefix-keyed Registry backed by sync.Map, mirroring the
// teacher registry's sync.Map-plus-mutex-counter shape.
type registry struct {
	mu    sync.Mutex
	m     sync.Map // map[string]entry, keyed by prefix.Key()
	count int
}

// Register associates prefix with n. Re-registering a prefix with the
// same Namer value is a no-op; re-registering it with a distinct Namer
// value is a conflict, matching the teacher's same-key-different-value
// policy.
func (r *registry) Register(prefix apis.Path, n apis.Namer) error {
	if prefix.IsEmpty() {
		return ErrEmptyPrefix
	}
	if n == nil {
		return ErrNilNamer
	}

	key := prefix.Key()

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.m.Load(key); ok {
		oe := old.(entry)
		if sameNamer(oe.namer, n) {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.m.Store(key, entry{prefix: prefix, namer: n})
	r.count++
	return nil
}

// sameNamer reports whether a and b hold the same Namer value. Comparable
// dynamic types use ==. For uncomparable ones (e.g. NamerFunc), where ==
// panics, it compares the two interface words instead: they are equal
// when the same stored value is passed again, and differ for distinct
// closures.
func sameNamer(a, b apis.Namer) (same bool) {
	defer func() {
		if recover() != nil {
			same = *(*[2]unsafe.Pointer)(unsafe.Pointer(&a)) == *(*[2]unsafe.Pointer)(unsafe.Pointer(&b))
		}
	}()
	return a == b
}

// Lookup returns the Namer registered against the longest prefix of p, if any.
func (r *registry) Lookup(p apis.Path) (apis.Namer, bool) {
	var (
		best    apis.Namer
		bestLen int = -1
		found   bool
	)
	r.m.Range(func(_, value any) bool {
		e := value.(entry)
		if p.HasPrefix(e.prefix) && e.prefix.Len() > bestLen {
			best = e.namer
			bestLen = e.prefix.Len()
			found = true
		}
		return true
	})
	return best, found
}

// Entries returns a snapshot for diagnostics (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(_, value any) bool {
		e := value.(entry)
		entries = append(entries, apis.Entry{Prefix: e.prefix, Namer: e.namer})
		return true
	})
	return entries
}

// Count returns the number of registered prefixes.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered prefixes.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = sync.Map{}
	r.count = 0
}
