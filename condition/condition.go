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

package condition

import "net/http"

// Condition is the capability interface implemented by every matching
// dimension. T is the concrete condition type itself; implementations are
// immutable values.
type Condition[T any] interface {
	// Combine merges this condition (typically type-level) with another
	// (typically method-level) into a single condition.
	Combine(other T) T

	// MatchingCondition projects the condition against the request.
	// It returns a narrowed condition containing only the matching
	// expressions and true, or the zero value and false when the
	// dimension rejects the request.
	MatchingCondition(r *http.Request) (T, bool)

	// CompareTo ranks this condition against another matched condition
	// for the same request. Negative means this condition is more
	// specific and sorts first. Valid only on conditions returned by
	// MatchingCondition for the same request.
	CompareTo(other T, r *http.Request) int
}

// Custom is the extension point for application-defined condition
// dimensions. A custom condition participates in combine, match, and
// compare after all built-in dimensions.
//
// Implementations must tolerate Combine and CompareTo being invoked with
// a Custom of their own concrete type only; mixing custom condition types
// across combined mappings is a configuration error.
//
// Mapping equality compares custom conditions by identity, so
// implementations should use pointer receivers. Conditions of a
// non-comparable value type never compare equal.
type Custom interface {
	Combine(other Custom) Custom
	MatchingCondition(r *http.Request) (Custom, bool)
	CompareTo(other Custom, r *http.Request) int
}

// IsPreFlight reports whether the request is a CORS pre-flight request:
// an OPTIONS request carrying both an Origin and an
// Access-Control-Request-Method header.
func IsPreFlight(r *http.Request) bool {
	return r.Method == http.MethodOptions &&
		r.Header.Get("Origin") != "" &&
		r.Header.Get("Access-Control-Request-Method") != ""
}

// Compile-time checks that every variant satisfies the condition contract.
var (
	_ Condition[Patterns] = Patterns{}
	_ Condition[Methods]  = Methods{}
	_ Condition[Params]   = Params{}
	_ Condition[Headers]  = Headers{}
	_ Condition[Consumes] = Consumes{}
	_ Condition[Produces] = Produces{}
)
