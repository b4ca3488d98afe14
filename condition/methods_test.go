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
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMethods(t *testing.T, methods ...string) Methods {
	t.Helper()
	c, err := NewMethods(methods...)
	require.NoError(t, err)
	return c
}

func TestMethodsMatchingCondition(t *testing.T) {
	t.Parallel()

	t.Run("declared method matches and narrows", func(t *testing.T) {
		t.Parallel()

		c := mustMethods(t, "GET", "POST")
		req := httptest.NewRequest(http.MethodPost, "/x", nil)

		matched, ok := c.MatchingCondition(req)
		require.True(t, ok)
		assert.Equal(t, []string{"POST"}, matched.Values())
	})

	t.Run("undeclared method rejects", func(t *testing.T) {
		t.Parallel()

		c := mustMethods(t, "GET")
		req := httptest.NewRequest(http.MethodDelete, "/x", nil)

		_, ok := c.MatchingCondition(req)
		assert.False(t, ok)
	})

	t.Run("empty condition matches any method", func(t *testing.T) {
		t.Parallel()

		var c Methods
		req := httptest.NewRequest(http.MethodPatch, "/x", nil)

		matched, ok := c.MatchingCondition(req)
		require.True(t, ok)
		assert.True(t, matched.IsEmpty())
	})

	t.Run("HEAD is served by GET mapping", func(t *testing.T) {
		t.Parallel()

		c := mustMethods(t, "GET")
		req := httptest.NewRequest(http.MethodHead, "/x", nil)

		matched, ok := c.MatchingCondition(req)
		require.True(t, ok)
		assert.Equal(t, []string{"GET"}, matched.Values())
	})

	t.Run("pre-flight matches the probed method", func(t *testing.T) {
		t.Parallel()

		c := mustMethods(t, "PUT")
		req := httptest.NewRequest(http.MethodOptions, "/x", nil)
		req.Header.Set("Origin", "https://example.com")
		req.Header.Set("Access-Control-Request-Method", "PUT")

		matched, ok := c.MatchingCondition(req)
		require.True(t, ok)
		assert.Equal(t, []string{"PUT"}, matched.Values())
	})

	t.Run("pre-flight for undeclared method rejects", func(t *testing.T) {
		t.Parallel()

		c := mustMethods(t, "GET")
		req := httptest.NewRequest(http.MethodOptions, "/x", nil)
		req.Header.Set("Origin", "https://example.com")
		req.Header.Set("Access-Control-Request-Method", "DELETE")

		_, ok := c.MatchingCondition(req)
		assert.False(t, ok)
	})
}

func TestMethodsCombineUnionIdentity(t *testing.T) {
	t.Parallel()

	c := mustMethods(t, "GET", "POST")
	var empty Methods

	assert.True(t, c.Combine(empty).Equal(c))
	assert.True(t, empty.Combine(c).Equal(c))

	union := mustMethods(t, "GET").Combine(mustMethods(t, "POST", "GET"))
	assert.Equal(t, []string{"GET", "POST"}, union.Values())
}

func TestMethodsCompareTo(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	explicit := mustMethods(t, "GET")
	var empty Methods

	assert.Negative(t, explicit.CompareTo(empty, req))
	assert.Positive(t, empty.CompareTo(explicit, req))

	headReq := httptest.NewRequest(http.MethodHead, "/x", nil)
	head := mustMethods(t, "HEAD")
	get := mustMethods(t, "GET")
	assert.Negative(t, head.CompareTo(get, headReq))
	assert.Positive(t, get.CompareTo(head, headReq))
}

func TestNewMethodsValidation(t *testing.T) {
	t.Parallel()

	_, err := NewMethods("GE T")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidMethod)

	c := mustMethods(t, "get", "GET", "post")
	assert.Equal(t, []string{"GET", "POST"}, c.Values())
}
