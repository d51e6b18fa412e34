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

// Package wlog holds the process-wide *zap.Logger used across wily's
// packages, published behind an atomic pointer the same way the rest of
// this module publishes global snapshots (see the root package). Callers
// embedding wily swap it once at startup with Set; components read it
// with L() on every log call, never caching a stale reference.
package wlog

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var global atomic.Pointer[zap.Logger]

func init() {
	global.Store(zap.NewNop())
}

// L returns the current process-wide logger.
func L() *zap.Logger {
	return global.Load()
}

// Set replaces the process-wide logger. Passing nil restores a no-op logger.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	global.Store(l)
}
