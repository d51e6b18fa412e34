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

// Package wstats adapts a tally.Scope to apis.StatsReceiver, the stats
// sink contract named in spec §6. tally's own Scope/Counter/Gauge shapes
// already line up with StatsReceiver/Counter/Gauge, so this is a thin
// wrapper rather than a reimplementation.
package wstats

import (
	"github.com/uber-go/tally/v4"

	"dirpx.dev/wily/apis"
)

// Receiver adapts a tally.Scope to apis.StatsReceiver.
type Receiver struct {
	scope tally.Scope
}

// New wraps scope as an apis.StatsReceiver.
func New(scope tally.Scope) apis.StatsReceiver {
	return &Receiver{scope: scope}
}

// NoOp returns a Receiver backed by tally's no-op scope, for callers that
// don't want to wire a real stats backend.
func NoOp() apis.StatsReceiver {
	return &Receiver{scope: tally.NoopScope}
}

func (r *Receiver) Scope(name string) apis.StatsReceiver {
	return &Receiver{scope: r.scope.SubScope(name)}
}

func (r *Receiver) Counter(name string) apis.Counter {
	return &counter{c: r.scope.Counter(name)}
}

func (r *Receiver) Gauge(name string) apis.Gauge {
	return &gauge{g: r.scope.Gauge(name)}
}

type counter struct{ c tally.Counter }

func (c *counter) Inc(delta int64) { c.c.Inc(delta) }

type gauge struct{ g tally.Gauge }

func (g *gauge) Update(value float64) { g.g.Update(value) }
