// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dispatch

import (
	"context"
	"sync"
)

// ErrorFunc handles an error raised by a handler invocation.
type ErrorFunc func(ctx context.Context, msg *Message, err error)

// Resolver maps a handler error to the function that handles it. A nil
// result means the resolver does not claim the error and the search moves
// on to the next one.
type Resolver interface {
	Resolve(err error) ErrorFunc
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(err error) ErrorFunc

func (f ResolverFunc) Resolve(err error) ErrorFunc { return f(err) }

// ResolverFactory lazily builds the error resolver owned by a handler
// bean. It is consulted once per bean; the result is cached.
type ResolverFactory func(bean string) Resolver

// resolverCache caches per-bean resolvers. Two goroutines racing to
// resolve the same bean may both invoke the factory; the first stored
// result wins and the duplicate is discarded.
type resolverCache struct {
	factory ResolverFactory
	cache   sync.Map // bean string -> Resolver
}

// resolve returns the bean's error resolver, or nil when no factory is
// configured or the factory declines the bean.
func (c *resolverCache) resolve(bean string) Resolver {
	if c.factory == nil {
		return nil
	}
	if cached, ok := c.cache.Load(bean); ok {
		return cached.(Resolver)
	}
	r := c.factory(bean)
	if r == nil {
		return nil
	}
	actual, _ := c.cache.LoadOrStore(bean, r)
	return actual.(Resolver)
}
