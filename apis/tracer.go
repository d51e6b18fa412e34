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

// TraceFunc is the injected tracing callback: (key, value) -> annotate
// the current trace context. The core never owns the tracing backend; it
// only calls this function.
type TraceFunc func(key string, value any)

// StatsReceiver is the injected stats sink. scope(name) narrows to a
// sub-scope the same way tally.Scope.SubScope does; Counter/Gauge return
// live, mutable handles.
type StatsReceiver interface {
	Scope(name string) StatsReceiver
	Counter(name string) Counter
	Gauge(name string) Gauge
}

// Counter is a monotonically increasing named counter.
type Counter interface {
	Inc(delta int64)
}

// Gauge is a named point-in-time value.
type Gauge interface {
	Update(value float64)
}
