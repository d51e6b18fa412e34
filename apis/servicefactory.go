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

import (
	"context"
	"time"
)

// ClientConnection is the caller-side handle passed into ServiceFactory.
// Wire-level connection details are out of scope for this core; it is
// carried opaquely so downstream ServiceFactory implementations (owned by
// transport packages this core does not know about) can use it.
type ClientConnection struct {
	RemoteAddr string
	Meta       map[string]string
}

// Service is a request-processing handle produced by a ServiceFactory.
type Service[Req, Rep any] interface {
	// Serve processes one request.
	Serve(ctx context.Context, req Req) (Rep, error)
	// Close releases this Service's resources. Idempotent.
	Close(ctx context.Context) error
	// IsAvailable reports whether this Service can currently serve requests.
	IsAvailable() bool
}

// ServiceFactory produces Service handles on demand and may itself come
// and go as the naming layer rebinds.
type ServiceFactory[Req, Rep any] interface {
	Apply(ctx context.Context, conn ClientConnection) (Service[Req, Rep], error)
	Close(ctx context.Context, deadline time.Duration) error
	IsAvailable() bool
}

// ServiceFactoryFunc adapts a plain apply function plus close/available
// callbacks into a ServiceFactory, mirroring the factory-from-function
// idiom used throughout the corpus for small, composable capabilities.
type ServiceFactoryFunc[Req, Rep any] struct {
	ApplyFunc     func(ctx context.Context, conn ClientConnection) (Service[Req, Rep], error)
	CloseFunc     func(ctx context.Context, deadline time.Duration) error
	AvailableFunc func() bool
}

func (f ServiceFactoryFunc[Req, Rep]) Apply(ctx context.Context, conn ClientConnection) (Service[Req, Rep], error) {
	return f.ApplyFunc(ctx, conn)
}

func (f ServiceFactoryFunc[Req, Rep]) Close(ctx context.Context, deadline time.Duration) error {
	if f.CloseFunc == nil {
		return nil
	}
	return f.CloseFunc(ctx, deadline)
}

func (f ServiceFactoryFunc[Req, Rep]) IsAvailable() bool {
	if f.AvailableFunc == nil {
		return true
	}
	return f.AvailableFunc()
}
