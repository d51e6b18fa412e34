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

// Package path constructs and parses apis.Path values, the way the
// config package builds apis.Config: apis holds the plain data type,
// path holds the constructors and options.
package path

import (
	"strings"

	"dirpx.dev/wily/apis"
)

// New is an alias for apis.NewPath, kept here so callers building paths
// programmatically don't need to import apis directly.
func New(segments ...string) apis.Path {
	return apis.NewPath(segments...)
}

// Parse splits a "/a/b/c" string into an apis.Path. Leading/trailing/
// duplicate slashes are tolerated; "/" and "" both parse to apis.Empty.
func Parse(s string) apis.Path {
	trimmed := strings.Trim(s, "/")
	if trimmed == "" {
		return apis.Empty
	}
	return apis.NewPath(strings.Split(trimmed, "/")...)
}
