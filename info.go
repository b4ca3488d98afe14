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
	"net/http"
	"reflect"
	"strings"

	"rivaas.dev/mapping/condition"
)

// NameSeparator joins the names of two combined Infos.
const NameSeparator = "#"

// Info is the composite mapping key for one handler method: exactly one
// instance of every condition dimension, an optional name, and an optional
// custom condition. Infos are immutable; per-request matched copies are
// produced by MatchingInfo and discarded after dispatch.
type Info struct {
	name     string
	patterns condition.Patterns
	methods  condition.Methods
	params   condition.Params
	headers  condition.Headers
	consumes condition.Consumes
	produces condition.Produces
	custom   condition.Custom
}

// Name returns the mapping name, or "".
func (i *Info) Name() string { return i.name }

// Patterns returns the path pattern condition.
func (i *Info) Patterns() condition.Patterns { return i.patterns }

// Methods returns the HTTP method condition.
func (i *Info) Methods() condition.Methods { return i.methods }

// Params returns the query parameter condition.
func (i *Info) Params() condition.Params { return i.params }

// Headers returns the header condition.
func (i *Info) Headers() condition.Headers { return i.headers }

// Consumes returns the request media type condition.
func (i *Info) Consumes() condition.Consumes { return i.consumes }

// Produces returns the response media type condition.
func (i *Info) Produces() condition.Produces { return i.produces }

// CustomCondition returns the custom condition, or nil.
func (i *Info) CustomCondition() condition.Custom { return i.custom }

// DirectPaths returns the mapping's patterns that are free of wildcards
// and captures, usable as direct-lookup keys.
func (i *Info) DirectPaths() []string { return i.patterns.DirectPaths() }

// Combine merges a type-level Info (the receiver) with a method-level
// Info. Every dimension combines pairwise: patterns by cross-product
// concatenation, methods/params/headers/consumes by union, produces by
// method-level override. Names are concatenated with NameSeparator when
// both are present.
func (i *Info) Combine(other *Info) *Info {
	combined := &Info{
		name:     combineNames(i.name, other.name),
		patterns: i.patterns.Combine(other.patterns),
		methods:  i.methods.Combine(other.methods),
		params:   i.params.Combine(other.params),
		headers:  i.headers.Combine(other.headers),
		consumes: i.consumes.Combine(other.consumes),
		produces: i.produces.Combine(other.produces),
	}
	switch {
	case i.custom == nil:
		combined.custom = other.custom
	case other.custom == nil:
		combined.custom = i.custom
	default:
		combined.custom = i.custom.Combine(other.custom)
	}
	return combined
}

func combineNames(a, b string) string {
	switch {
	case a != "" && b != "":
		return a + NameSeparator + b
	case a != "":
		return a
	default:
		return b
	}
}

// MatchingInfo projects the Info against a request, returning a matched
// copy whose conditions hold only the matching expressions, or nil when
// any dimension rejects the request. The cheap dimensions are checked
// first; patterns are matched last since pattern matching is the most
// expensive check. CORS pre-flight requests are matched against the
// method they are probing rather than vetoed outright.
func (i *Info) MatchingInfo(r *http.Request) *Info {
	methods, ok := i.methods.MatchingCondition(r)
	if !ok {
		return nil
	}
	params, ok := i.params.MatchingCondition(r)
	if !ok {
		return nil
	}
	headers, ok := i.headers.MatchingCondition(r)
	if !ok {
		return nil
	}
	consumes, ok := i.consumes.MatchingCondition(r)
	if !ok {
		return nil
	}
	produces, ok := i.produces.MatchingCondition(r)
	if !ok {
		return nil
	}
	patterns, ok := i.patterns.MatchingCondition(r)
	if !ok {
		return nil
	}

	matched := &Info{
		name:     i.name,
		patterns: patterns,
		methods:  methods,
		params:   params,
		headers:  headers,
		consumes: consumes,
		produces: produces,
	}
	if i.custom != nil {
		custom, ok := i.custom.MatchingCondition(r)
		if !ok {
			return nil
		}
		matched.custom = custom
	}
	return matched
}

// CompareTo ranks two matched Infos for the same request using a fixed
// dimension precedence: patterns, params, headers, consumes, produces,
// methods, and finally the custom condition. The first dimension to
// produce a non-zero result decides; URL specificity therefore dominates,
// and the custom condition is the last tie-break.
func (i *Info) CompareTo(other *Info, r *http.Request) int {
	if result := i.patterns.CompareTo(other.patterns, r); result != 0 {
		return result
	}
	if result := i.params.CompareTo(other.params, r); result != 0 {
		return result
	}
	if result := i.headers.CompareTo(other.headers, r); result != 0 {
		return result
	}
	if result := i.consumes.CompareTo(other.consumes, r); result != 0 {
		return result
	}
	if result := i.produces.CompareTo(other.produces, r); result != 0 {
		return result
	}
	if result := i.methods.CompareTo(other.methods, r); result != 0 {
		return result
	}
	if i.custom != nil && other.custom != nil {
		return i.custom.CompareTo(other.custom, r)
	}
	return 0
}

// Equal reports whether every component condition is equal. Two handlers
// registered under equal Infos are in conflict.
func (i *Info) Equal(other *Info) bool {
	if i == other {
		return true
	}
	if !i.patterns.Equal(other.patterns) ||
		!i.methods.Equal(other.methods) ||
		!i.params.Equal(other.params) ||
		!i.headers.Equal(other.headers) ||
		!i.consumes.Equal(other.consumes) ||
		!i.produces.Equal(other.produces) {
		return false
	}
	return customEqual(i.custom, other.custom)
}

// customEqual compares custom conditions by identity. Conditions of a
// non-comparable dynamic type (a value type holding a slice or map) never
// compare equal; this keeps Equal from panicking on them.
func customEqual(a, b condition.Custom) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// String renders the mapping in a compact diagnostic form, e.g.
// {[/users/:id] [GET] produces=[application/json]}.
func (i *Info) String() string {
	var b strings.Builder
	b.WriteByte('{')
	b.WriteString(i.patterns.String())
	b.WriteByte(' ')
	b.WriteString(i.methods.String())
	if !i.params.IsEmpty() {
		b.WriteString(" params=")
		b.WriteString(i.params.String())
	}
	if !i.headers.IsEmpty() {
		b.WriteString(" headers=")
		b.WriteString(i.headers.String())
	}
	if !i.consumes.IsEmpty() {
		b.WriteString(" consumes=")
		b.WriteString(i.consumes.String())
	}
	if !i.produces.IsEmpty() {
		b.WriteString(" produces=")
		b.WriteString(i.produces.String())
	}
	b.WriteByte('}')
	return b.String()
}
