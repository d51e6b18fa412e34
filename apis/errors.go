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

import "fmt"

// NoBrokersAvailable is surfaced when a name evaluates to no usable
// endpoints (a negative or empty NameTree binding).
type NoBrokersAvailable struct {
	// Name is the path or bound-name identity that produced no brokers.
	Name string
	// LocalDTab is attached at the BindingFactory boundary when the
	// ambient local DTab is non-empty, for diagnostic context.
	LocalDTab *string
}

func (e *NoBrokersAvailable) Error() string {
	if e.LocalDTab != nil {
		return fmt.Sprintf("no brokers available for name: %s, localDtab: %s", e.Name, *e.LocalDTab)
	}
	return fmt.Sprintf("no brokers available for name: %s", e.Name)
}

// WithLocalDTab returns a copy of e enriched with local DTab context.
// It never overwrites an already-attached LocalDTab.
func (e *NoBrokersAvailable) WithLocalDTab(show string) *NoBrokersAvailable {
	if e.LocalDTab != nil {
		return e
	}
	return &NoBrokersAvailable{Name: e.Name, LocalDTab: &show}
}

// ServiceClosed is returned by apply calls made after, or concurrent
// with, a close.
type ServiceClosed struct{}

func (*ServiceClosed) Error() string { return "service factory closed" }

// ErrServiceClosed is the canonical, comparable ServiceClosed instance.
var ErrServiceClosed = &ServiceClosed{}

// CancelledConnection wraps the caller-supplied cause of an interrupted
// pending apply.
type CancelledConnection struct {
	Cause error
}

func (e *CancelledConnection) Error() string {
	if e.Cause == nil {
		return "connection attempt cancelled"
	}
	return fmt.Sprintf("connection attempt cancelled: %v", e.Cause)
}

func (e *CancelledConnection) Unwrap() error { return e.Cause }
