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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		path    string
		matches bool
		vars    map[string]string
	}{
		{name: "literal", pattern: "/users", path: "/users", matches: true},
		{name: "literal mismatch", pattern: "/users", path: "/orders", matches: false},
		{name: "trailing slash tolerated", pattern: "/users", path: "/users/", matches: true},
		{name: "capture", pattern: "/users/:id", path: "/users/42", matches: true, vars: map[string]string{"id": "42"}},
		{name: "capture does not span segments", pattern: "/users/:id", path: "/users/42/orders", matches: false},
		{name: "two captures", pattern: "/users/:id/orders/:oid", path: "/users/1/orders/2", matches: true, vars: map[string]string{"id": "1", "oid": "2"}},
		{name: "single wildcard", pattern: "/foo/*", path: "/foo/bar", matches: true},
		{name: "single wildcard one segment only", pattern: "/foo/*", path: "/foo/bar/baz", matches: false},
		{name: "in-segment suffix wildcard", pattern: "/files/*.json", path: "/files/report.json", matches: true},
		{name: "in-segment suffix wildcard mismatch", pattern: "/files/*.json", path: "/files/report.xml", matches: false},
		{name: "in-segment prefix wildcard", pattern: "/files/report-*", path: "/files/report-2024", matches: true},
		{name: "trailing catch-all", pattern: "/static/**", path: "/static/css/site.css", matches: true},
		{name: "trailing catch-all matches zero segments", pattern: "/static/**", path: "/static", matches: true},
		{name: "mid catch-all", pattern: "/a/**/z", path: "/a/b/c/z", matches: true},
		{name: "mid catch-all zero segments", pattern: "/a/**/z", path: "/a/z", matches: true},
		{name: "mid catch-all mismatch", pattern: "/a/**/z", path: "/a/b/c", matches: false},
		{name: "empty pattern matches root", pattern: "", path: "/", matches: true},
		{name: "empty pattern rejects non-root", pattern: "", path: "/users", matches: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := compilePattern(tt.pattern)
			require.NoError(t, err)
			vars, ok := p.match(tt.path)
			assert.Equal(t, tt.matches, ok)
			if tt.vars != nil {
				assert.Equal(t, tt.vars, vars)
			}
		})
	}
}

func TestCompilePatternErrors(t *testing.T) {
	t.Parallel()

	_, err := compilePattern("/users/:")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyCaptureName)
}

func TestComparePatterns(t *testing.T) {
	t.Parallel()

	const path = "/users/42"

	compile := func(raw string) *pattern {
		p, err := compilePattern(raw)
		require.NoError(t, err)
		return p
	}

	tests := []struct {
		name   string
		more   string // the more specific pattern, expected to sort first
		less   string
	}{
		{name: "exact beats capture", more: "/users/42", less: "/users/:id"},
		{name: "capture beats catch-all", more: "/users/:id", less: "/users/**"},
		{name: "fewer captures beat more", more: "/users/:id", less: "/:any/:id"},
		{name: "longer literal beats shorter", more: "/users/:id", less: "/u/:id"},
		{name: "wildcard beats catch-all", more: "/users/*", less: "/**"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			more, less := compile(tt.more), compile(tt.less)
			assert.Negative(t, comparePatterns(more, less, path))
			assert.Positive(t, comparePatterns(less, more, path))
		})
	}

	t.Run("equally specific patterns tie", func(t *testing.T) {
		t.Parallel()

		a, b := compile("/data/:a/b"), compile("/data/a/:b")
		assert.Zero(t, comparePatterns(a, b, "/data/a/b"))
	})
}
