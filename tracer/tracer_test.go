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

package tracer_test

import (
	"errors"
	"testing"

	"dirpx.dev/wily/apis"
	"dirpx.dev/wily/dtab"
	"dirpx.dev/wily/path"
	"dirpx.dev/wily/tracer"
)

func TestContext_RecordsPathAndDTabs(t *testing.T) {
	got := map[string]any{}
	trace := func(key string, value any) { got[key] = value }

	base := dtab.New(dtab.Rewrite(path.New("a"), path.New("b")))
	local := dtab.Empty
	nt := tracer.New(trace, path.New("svc", "method"), base, local)
	nt.Context()

	if got["wily.path"] != "/svc/method" {
		t.Fatalf("wily.path = %v", got["wily.path"])
	}
	if got["wily.dtab.base"] != base.Show() {
		t.Fatalf("wily.dtab.base = %v, want %v", got["wily.dtab.base"], base.Show())
	}
	if got["wily.dtab.local"] != local.Show() {
		t.Fatalf("wily.dtab.local = %v, want %v", got["wily.dtab.local"], local.Show())
	}
}

func TestOk_RecordsBoundID(t *testing.T) {
	got := map[string]any{}
	trace := func(key string, value any) { got[key] = value }

	nt := tracer.New(trace, path.New("svc"), dtab.Empty, dtab.Empty)
	nt.Ok(apis.Bound{ID: "ep-123"})

	if got["wily.name"] != "ep-123" {
		t.Fatalf("wily.name = %v", got["wily.name"])
	}
}

func TestFailed_RecordsErrorKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"no brokers", &apis.NoBrokersAvailable{Name: "/svc"}, "NoBrokersAvailable"},
		{"service closed", apis.ErrServiceClosed, "ServiceClosed"},
		{"cancelled", &apis.CancelledConnection{Cause: errors.New("x")}, "CancelledConnection"},
		{"generic", errors.New("boom"), "NamingException"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := map[string]any{}
			trace := func(key string, value any) { got[key] = value }
			nt := tracer.New(trace, path.New("svc"), dtab.Empty, dtab.Empty)
			nt.Failed(tc.err)
			if got["wily.failure"] != tc.want {
				t.Fatalf("wily.failure = %v, want %v", got["wily.failure"], tc.want)
			}
		})
	}
}

func TestNilTraceFunc_IsNoOp(t *testing.T) {
	nt := tracer.New(nil, path.New("svc"), dtab.Empty, dtab.Empty)
	nt.Context()
	nt.Ok(apis.Bound{ID: "x"})
	nt.Failed(errors.New("x"))
}
