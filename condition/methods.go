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

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// Methods is the HTTP method dimension of a mapping. An empty condition
// matches every method. A mapping declaring GET also matches HEAD requests.
type Methods struct {
	methods []string
}

// NewMethods builds a method condition from HTTP method tokens
// (case-insensitive; stored upper-case, duplicates dropped).
func NewMethods(methods ...string) (Methods, error) {
	var c Methods
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" || !isToken(m) {
			return Methods{}, fmt.Errorf("%w: %q", ErrInvalidMethod, m)
		}
		if !slices.Contains(c.methods, m) {
			c.methods = append(c.methods, m)
		}
	}
	return c, nil
}

// isToken reports whether s is a valid RFC 7230 token.
func isToken(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case strings.IndexByte("!#$%&'*+-.^_`|~", c) != -1:
		default:
			return false
		}
	}
	return len(s) > 0
}

// Values returns the method tokens in declaration order.
func (c Methods) Values() []string {
	return slices.Clone(c.methods)
}

// IsEmpty reports whether the condition declares no methods.
func (c Methods) IsEmpty() bool { return len(c.methods) == 0 }

// Combine merges two method conditions by union.
func (c Methods) Combine(other Methods) Methods {
	merged := c
	merged.methods = slices.Clone(c.methods)
	for _, m := range other.methods {
		if !slices.Contains(merged.methods, m) {
			merged.methods = append(merged.methods, m)
		}
	}
	return merged
}

// MatchingCondition matches the request method. For a CORS pre-flight
// request the probed method from Access-Control-Request-Method is matched
// instead of OPTIONS, so pre-flights reach the mapping they are probing.
// The matched condition contains exactly the matching method, or stays
// empty for the match-all condition.
func (c Methods) MatchingCondition(r *http.Request) (Methods, bool) {
	method := r.Method
	if IsPreFlight(r) {
		method = r.Header.Get("Access-Control-Request-Method")
	}
	return c.matchMethod(method)
}

func (c Methods) matchMethod(method string) (Methods, bool) {
	if len(c.methods) == 0 {
		return c, true
	}
	method = strings.ToUpper(method)
	if slices.Contains(c.methods, method) {
		return Methods{methods: []string{method}}, true
	}
	// HEAD is served by GET mappings.
	if method == http.MethodHead && slices.Contains(c.methods, http.MethodGet) {
		return Methods{methods: []string{http.MethodGet}}, true
	}
	return Methods{}, false
}

// CompareTo ranks an explicit method match above the match-all condition.
// For HEAD requests an explicit HEAD declaration beats the implicit GET
// fallback.
func (c Methods) CompareTo(other Methods, r *http.Request) int {
	if d := len(other.methods) - len(c.methods); d != 0 {
		return d
	}
	if r.Method == http.MethodHead && len(c.methods) == 1 {
		switch {
		case c.methods[0] == http.MethodHead && other.methods[0] == http.MethodGet:
			return -1
		case c.methods[0] == http.MethodGet && other.methods[0] == http.MethodHead:
			return 1
		}
	}
	return 0
}

// Equal reports whether both conditions declare the same method set.
func (c Methods) Equal(other Methods) bool {
	if len(c.methods) != len(other.methods) {
		return false
	}
	for _, m := range c.methods {
		if !slices.Contains(other.methods, m) {
			return false
		}
	}
	return true
}

// String renders the condition as its method set, e.g. [GET HEAD].
func (c Methods) String() string {
	return "[" + strings.Join(c.methods, " ") + "]"
}
