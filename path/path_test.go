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

package path_test

import (
	"testing"

	"dirpx.dev/wily/apis"
	"dirpx.dev/wily/path"
)

func TestNew_BuildsPath(t *testing.T) {
	p := path.New("s", "svc", "method")
	if p.Show() != "/s/svc/method" {
		t.Fatalf("Show() = %q", p.Show())
	}
	if p.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", p.Len())
	}
}

func TestParse_TrimsSlashes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/a/b/c", "/a/b/c"},
		{"a/b/c", "/a/b/c"},
		{"/a/b/c/", "/a/b/c"},
		{"/", "/"},
		{"", "/"},
	}
	for _, tc := range tests {
		if got := path.Parse(tc.in).Show(); got != tc.want {
			t.Fatalf("Parse(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParse_EmptyIsApisEmpty(t *testing.T) {
	if !path.Parse("").Equal(apis.Empty) {
		t.Fatalf("Parse(\"\") did not equal apis.Empty")
	}
	if !path.Parse("/").Equal(apis.Empty) {
		t.Fatalf("Parse(\"/\") did not equal apis.Empty")
	}
}

func TestPath_HasPrefixAndConcat(t *testing.T) {
	p := path.New("s", "svc", "method")
	if !p.HasPrefix(path.New("s", "svc")) {
		t.Fatalf("expected HasPrefix to hold")
	}
	if p.HasPrefix(path.New("s", "other")) {
		t.Fatalf("expected HasPrefix to fail on mismatch")
	}
	if p.HasPrefix(path.New("s", "svc", "method", "extra")) {
		t.Fatalf("expected HasPrefix to fail when prefix is longer")
	}

	child := path.New("a").Concat(path.New("b", "c"))
	if child.Show() != "/a/b/c" {
		t.Fatalf("Concat: got %q", child.Show())
	}
}

func TestPath_Child(t *testing.T) {
	p := path.New("a").Child("b").Child("")
	if p.Show() != "/a/b" {
		t.Fatalf("Child: got %q, want /a/b (empty segment ignored)", p.Show())
	}
}

func TestPath_KeyAndEqual(t *testing.T) {
	a := path.New("a", "b")
	b := path.New("a", "b")
	c := path.New("a", "c")

	if a.Key() != b.Key() {
		t.Fatalf("expected equal paths to share a Key()")
	}
	if !a.Equal(b) {
		t.Fatalf("expected a.Equal(b)")
	}
	if a.Equal(c) {
		t.Fatalf("expected a not to equal c")
	}
}

func TestPath_EmptySegmentsDropped(t *testing.T) {
	p := apis.NewPath("a", "", "b", "")
	if p.Show() != "/a/b" {
		t.Fatalf("got %q, want /a/b", p.Show())
	}
}
