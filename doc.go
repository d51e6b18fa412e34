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

// Package wily provides the dynamic name-binding and service-factory
// caching core of an RPC client: turning a logical Path, rewritten
// through a delegation table, into a live, cached ServiceFactory.
//
// wily does not speak any wire protocol and does not implement DNS,
// service-mesh lookups, or load balancing. It is the binding plumbing
// between a caller's Path and whatever external apis.Namer a host
// application plugs in (see SetExternalNamer), plus the reactive
// caching and request-queueing discipline that makes repeated binds to
// the same name cheap and pending binds non-blocking.
//
// # Design
//
// The package holds a read-mostly global snapshot (state), mirroring
// the shape of a process-wide service registry:
//
//   - Config: capacities, eviction strategy, and path-normalization
//     limits governing the two ServiceFactoryCache instances a
//     binding.Factory builds (see package config).
//
//   - Registry: a process-wide mapping from Path prefixes to explicit
//     apis.Namer overrides, for forcing a particular resolution for an
//     important prefix regardless of what the external Namer would say.
//
//   - external Namer: the host-supplied capability that actually knows
//     how to turn a NameTree[Path] into endpoints (DNS, a mesh control
//     plane, a static table, ...). wily never implements this lookup;
//     SetExternalNamer plugs it in.
//
//   - the composed, global Namer: Registry overrides, then path
//     normalization, falling back to the external Namer. A
//     binding.Factory's DTab-cache builder first rewrites the path
//     through the request's (base ++ local) DTab (dtab.Bind) and then
//     binds the result with this Namer.
//
//   - Builder: a pluggable factory (package builder) that knows how to
//     construct a Registry and the composed Namer for a given Config.
//
// All of these live inside a single immutable struct. The package holds
// an atomic pointer to the current snapshot; readers load it lock-free,
// writers build a new snapshot under a short build mutex and swap it in.
//
// # DTabs: base and local
//
// Two delegation tables are ambient, but at different scopes:
//
//   - the base DTab (BaseDTab/SetBaseDTab) is process-wide, global
//     state, set once at startup (or occasionally, by an operator tool).
//
//   - the local DTab (WithLocalDTab/LocalDTab) is request-scoped,
//     carried on a context.Context, the way a deadline or a trace span
//     is. It never leaks between unrelated requests.
//
// A binding.Factory composes them per request as base.Concat(local)
// before evaluating a path against the global Namer.
//
// # Pinning
//
// Calling SetRegistry pins that exact Registry as the process-wide
// override table; further SetConfig/SetBuilder/SetExt calls will not
// rebuild a new Registry until UnpinRegistry. This lets an operator lock
// a carefully curated override table in place while other layers (the
// external Namer, cache sizing) keep evolving.
//
// # Usage pattern in a binary
//
//  1. Let wily init with the default Config and Builder.
//  2. Call wily.SetExternalNamer(myDNSOrMeshNamer) once at startup.
//  3. Optionally register prefix overrides:
//     wily.Registry().Register(path.New("payments"), pinnedNamer)
//  4. Build one or more binding.Factory values against wily.Namer() and
//     wily.Config(), one per logical service path an application calls.
//  5. In tests, call wily.SetAll(...) for a deterministic snapshot.
package wily
