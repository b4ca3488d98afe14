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
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPatterns(t *testing.T, patterns ...string) Patterns {
	t.Helper()
	c, err := NewPatterns(patterns...)
	require.NoError(t, err)
	return c
}

func TestPatternsCombine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		left     []string
		right    []string
		expected []string
	}{
		{
			name:     "cross product",
			left:     []string{"/api", "/v2"},
			right:    []string{"/users", "/orders"},
			expected: []string{"/api/users", "/api/orders", "/v2/users", "/v2/orders"},
		},
		{
			name:     "left empty uses right",
			left:     nil,
			right:    []string{"/users"},
			expected: []string{"/users"},
		},
		{
			name:     "right empty uses left",
			left:     []string{"/api"},
			right:    nil,
			expected: []string{"/api"},
		},
		{
			name:     "both empty yields empty-string pattern",
			left:     nil,
			right:    nil,
			expected: []string{""},
		},
		{
			name:     "slash boundaries normalized",
			left:     []string{"/api/"},
			right:    []string{"users"},
			expected: []string{"/api/users"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			combined := mustPatterns(t, tt.left...).Combine(mustPatterns(t, tt.right...))
			assert.Equal(t, tt.expected, combined.Values())
		})
	}
}

func TestPatternsMatchingCondition(t *testing.T) {
	t.Parallel()

	t.Run("wildcard matches and narrows", func(t *testing.T) {
		t.Parallel()

		c := mustPatterns(t, "/foo/*", "/bar")
		req := httptest.NewRequest("GET", "/foo/bar", nil)

		matched, ok := c.MatchingCondition(req)
		require.True(t, ok)
		assert.Equal(t, []string{"/foo/*"}, matched.Values())

		pattern, _, found := matched.BestMatch("/foo/bar")
		require.True(t, found)
		assert.Equal(t, "/foo/*", pattern)
	})

	t.Run("matched patterns sorted most specific first", func(t *testing.T) {
		t.Parallel()

		c := mustPatterns(t, "/**", "/users/:id", "/users/42")
		req := httptest.NewRequest("GET", "/users/42", nil)

		matched, ok := c.MatchingCondition(req)
		require.True(t, ok)
		assert.Equal(t, []string{"/users/42", "/users/:id", "/**"}, matched.Values())
	})

	t.Run("no pattern matches", func(t *testing.T) {
		t.Parallel()

		c := mustPatterns(t, "/users")
		req := httptest.NewRequest("GET", "/orders", nil)

		_, ok := c.MatchingCondition(req)
		assert.False(t, ok)
	})

	t.Run("empty condition matches everything", func(t *testing.T) {
		t.Parallel()

		var c Patterns
		req := httptest.NewRequest("GET", "/anything", nil)

		matched, ok := c.MatchingCondition(req)
		require.True(t, ok)
		assert.True(t, matched.IsEmpty())
	})
}

func TestPatternsCompareTo(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/users/42", nil)

	exact, ok := mustPatterns(t, "/users/42").MatchingCondition(req)
	require.True(t, ok)
	capture, ok := mustPatterns(t, "/users/:id").MatchingCondition(req)
	require.True(t, ok)
	catchAll, ok := mustPatterns(t, "/**").MatchingCondition(req)
	require.True(t, ok)

	assert.Negative(t, exact.CompareTo(capture, req))
	assert.Negative(t, capture.CompareTo(catchAll, req))
	assert.Positive(t, catchAll.CompareTo(exact, req))
	assert.Zero(t, capture.CompareTo(capture, req))
}

func TestPatternsDirectPaths(t *testing.T) {
	t.Parallel()

	c := mustPatterns(t, "/users", "/users/:id", "/static/**", "/health")
	assert.Equal(t, []string{"/users", "/health"}, c.DirectPaths())
}

func TestPatternsEqual(t *testing.T) {
	t.Parallel()

	a := mustPatterns(t, "/a", "/b")
	b := mustPatterns(t, "/b", "/a")
	c := mustPatterns(t, "/a")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
