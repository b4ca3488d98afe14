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
	"net/http"
	"slices"
	"strings"
)

// Patterns is the path-pattern dimension of a mapping. The condition holds
// a set of patterns; it matches a request when at least one pattern matches
// the request path. A condition with no patterns matches every path.
//
// Matching narrows the condition to the matching patterns, sorted
// most-specific-first, so the first pattern of a matched condition is the
// best match for the request.
type Patterns struct {
	patterns []*pattern
}

// NewPatterns compiles the given path patterns into a condition.
// Non-empty patterns are normalized to a leading '/'. Duplicates are
// dropped, keeping first declaration order.
func NewPatterns(patterns ...string) (Patterns, error) {
	var c Patterns
	for _, raw := range patterns {
		if raw != "" && !strings.HasPrefix(raw, "/") {
			raw = "/" + raw
		}
		if slices.ContainsFunc(c.patterns, func(p *pattern) bool { return p.raw == raw }) {
			continue
		}
		p, err := compilePattern(raw)
		if err != nil {
			return Patterns{}, err
		}
		c.patterns = append(c.patterns, p)
	}
	return c, nil
}

// Values returns the raw pattern strings in declaration order.
func (c Patterns) Values() []string {
	out := make([]string, len(c.patterns))
	for i, p := range c.patterns {
		out[i] = p.raw
	}
	return out
}

// IsEmpty reports whether the condition holds no patterns.
func (c Patterns) IsEmpty() bool { return len(c.patterns) == 0 }

// DirectPaths returns the patterns free of wildcards and captures. These
// match exactly one request path and can serve as direct-lookup keys.
func (c Patterns) DirectPaths() []string {
	var out []string
	for _, p := range c.patterns {
		if p.raw != "" && p.isDirect() {
			out = append(out, p.raw)
		}
	}
	return out
}

// Combine merges type-level and method-level patterns by cross-product
// path concatenation. When one side is empty the other side is used as is;
// when both are empty the result is the single empty-string pattern, which
// matches only the root path.
func (c Patterns) Combine(other Patterns) Patterns {
	switch {
	case len(c.patterns) == 0 && len(other.patterns) == 0:
		combined, _ := NewPatterns("")
		return combined
	case len(other.patterns) == 0:
		return c
	case len(c.patterns) == 0:
		return other
	}

	raws := make([]string, 0, len(c.patterns)*len(other.patterns))
	for _, a := range c.patterns {
		for _, b := range other.patterns {
			raws = append(raws, joinPaths(a.raw, b.raw))
		}
	}
	// Inputs compiled cleanly, so their concatenation does too.
	combined, _ := NewPatterns(raws...)
	return combined
}

// joinPaths concatenates two pattern strings with a single '/' boundary.
func joinPaths(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return strings.TrimSuffix(a, "/") + "/" + strings.TrimPrefix(b, "/")
}

// MatchingCondition returns the patterns matching the request path, sorted
// most-specific-first. An empty condition matches every path and is
// returned unchanged.
func (c Patterns) MatchingCondition(r *http.Request) (Patterns, bool) {
	if len(c.patterns) == 0 {
		return c, true
	}
	path := r.URL.Path
	var matched []*pattern
	for _, p := range c.patterns {
		if _, ok := p.match(path); ok {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		return Patterns{}, false
	}
	slices.SortStableFunc(matched, func(a, b *pattern) int {
		return comparePatterns(a, b, path)
	})
	return Patterns{patterns: matched}, true
}

// BestMatch returns the most specific pattern matching the given path and
// its captured variables. On a matched condition the patterns are already
// sorted, so the first match wins.
func (c Patterns) BestMatch(path string) (string, map[string]string, bool) {
	for _, p := range c.patterns {
		if vars, ok := p.match(path); ok {
			return p.raw, vars, true
		}
	}
	return "", nil, false
}

// CompareTo orders two matched pattern conditions for the same request by
// comparing their sorted patterns pairwise; if one condition runs out of
// patterns first, the one with more patterns ranks higher.
func (c Patterns) CompareTo(other Patterns, r *http.Request) int {
	path := r.URL.Path
	n := min(len(c.patterns), len(other.patterns))
	for i := range n {
		if result := comparePatterns(c.patterns[i], other.patterns[i], path); result != 0 {
			return result
		}
	}
	switch {
	case len(c.patterns) > n:
		return -1
	case len(other.patterns) > n:
		return 1
	default:
		return 0
	}
}

// Equal reports whether both conditions hold the same pattern set,
// regardless of order.
func (c Patterns) Equal(other Patterns) bool {
	if len(c.patterns) != len(other.patterns) {
		return false
	}
	for _, p := range c.patterns {
		if !slices.ContainsFunc(other.patterns, func(o *pattern) bool { return o.raw == p.raw }) {
			return false
		}
	}
	return true
}

// String renders the condition as its pattern set, e.g. ["/users/:id"].
func (c Patterns) String() string {
	return "[" + strings.Join(c.Values(), " || ") + "]"
}
