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

package mapping

import (
	"fmt"
	"strings"

	"rivaas.dev/mapping/condition"
)

// Option configures an Info under construction.
type Option func(*builder)

// builder accumulates the raw expressions for every dimension before they
// are parsed in one pass by New.
type builder struct {
	name     string
	paths    []string
	methods  []string
	params   []string
	headers  []string
	consumes []string
	produces []string
	custom   condition.Custom
}

// Name sets the mapping name.
func Name(name string) Option {
	return func(b *builder) { b.name = name }
}

// Paths adds path patterns, e.g. "/users/:id" or "/files/**".
func Paths(patterns ...string) Option {
	return func(b *builder) { b.paths = append(b.paths, patterns...) }
}

// Methods adds HTTP methods, e.g. http.MethodGet.
func Methods(methods ...string) Option {
	return func(b *builder) { b.methods = append(b.methods, methods...) }
}

// Params adds query parameter expressions: "name", "!name", "name=value",
// "name!=value".
func Params(exprs ...string) Option {
	return func(b *builder) { b.params = append(b.params, exprs...) }
}

// Headers adds header expressions. Accept and Content-Type expressions
// are not kept as plain header checks: they are folded into the produces
// and consumes dimensions, where media type semantics apply.
func Headers(exprs ...string) Option {
	return func(b *builder) { b.headers = append(b.headers, exprs...) }
}

// Consumes adds consumable media type expressions, e.g. "application/json"
// or "!multipart/form-data".
func Consumes(exprs ...string) Option {
	return func(b *builder) { b.consumes = append(b.consumes, exprs...) }
}

// Produces adds producible media type expressions, e.g. "application/json"
// or "text/html;q=0.8".
func Produces(exprs ...string) Option {
	return func(b *builder) { b.produces = append(b.produces, exprs...) }
}

// Custom sets the custom condition.
func Custom(c condition.Custom) Option {
	return func(b *builder) { b.custom = c }
}

// New builds an immutable Info from the given options. Pattern and media
// type parse errors are returned immediately; nothing about an Info is
// validated lazily at request time.
func New(opts ...Option) (*Info, error) {
	var b builder
	for _, opt := range opts {
		opt(&b)
	}

	// Divert content negotiation headers into their own dimensions.
	var plainHeaders, acceptExprs []string
	for _, h := range b.headers {
		name := headerExprName(h)
		switch {
		case strings.EqualFold(name, "Accept"):
			acceptExprs = append(acceptExprs, h)
		case strings.EqualFold(name, "Content-Type"):
			// A Content-Type header expression is a consumes constraint.
			b.consumes = append(b.consumes, contentTypeToConsumes(h)...)
		default:
			plainHeaders = append(plainHeaders, h)
		}
	}

	info := &Info{name: b.name, custom: b.custom}
	var err error
	if info.patterns, err = condition.NewPatterns(b.paths...); err != nil {
		return nil, fmt.Errorf("mapping: %w", err)
	}
	if info.methods, err = condition.NewMethods(b.methods...); err != nil {
		return nil, fmt.Errorf("mapping: %w", err)
	}
	if info.params, err = condition.NewParams(b.params...); err != nil {
		return nil, fmt.Errorf("mapping: %w", err)
	}
	if info.headers, err = condition.NewHeaders(plainHeaders...); err != nil {
		return nil, fmt.Errorf("mapping: %w", err)
	}
	if info.consumes, err = condition.NewConsumes(b.consumes...); err != nil {
		return nil, fmt.Errorf("mapping: %w", err)
	}
	if info.produces, err = condition.NewProduces(b.produces, acceptExprs...); err != nil {
		return nil, fmt.Errorf("mapping: %w", err)
	}
	return info, nil
}

// MustNew is like New but panics on error. Intended for registration
// tables built from literals.
func MustNew(opts ...Option) *Info {
	info, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("mapping.MustNew: %v", err))
	}
	return info
}

// headerExprName extracts the header name from an expression such as
// "X-Key", "!X-Key", "X-Key=v" or "X-Key!=v".
func headerExprName(expr string) string {
	name := strings.TrimPrefix(expr, "!")
	if i := strings.IndexAny(name, "!="); i >= 0 {
		name = name[:i]
	}
	return name
}

// contentTypeToConsumes rewrites a Content-Type header expression as a
// consumes expression: "Content-Type=application/json" constrains the
// request body type, "Content-Type!=text/plain" excludes it. Presence
// checks without a value carry no media type and are dropped.
func contentTypeToConsumes(expr string) []string {
	var value string
	var negated bool
	if i := strings.Index(expr, "!="); i >= 0 {
		value, negated = expr[i+2:], true
	} else if i := strings.Index(expr, "="); i >= 0 {
		value = expr[i+1:]
	} else {
		return nil
	}
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			if negated {
				part = "!" + part
			}
			out = append(out, part)
		}
	}
	return out
}
