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

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/mapping"
)

func noop(http.ResponseWriter, *http.Request) {}

func method(bean, name string) HandlerMethod {
	return HandlerMethod{Bean: bean, Name: name, Func: noop}
}

func TestHandlerMethodString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "UserHandler#Get", method("UserHandler", "Get").String())
	assert.Equal(t, "Get", method("", "Get").String())
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	t.Run("rejects nil handler func", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		err := reg.Register(mapping.MustNew(mapping.Paths("/a")), HandlerMethod{Bean: "B", Name: "M"})
		require.ErrorIs(t, err, ErrNilHandler)
	})

	t.Run("rejects duplicate mapping naming both methods", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		info := mapping.MustNew(mapping.Paths("/users"), mapping.Methods(http.MethodGet))
		require.NoError(t, reg.Register(info, method("UserHandler", "List")))

		same := mapping.MustNew(mapping.Paths("/users"), mapping.Methods(http.MethodGet))
		err := reg.Register(same, method("AccountHandler", "List"))
		require.ErrorIs(t, err, ErrDuplicateMapping)
		assert.Contains(t, err.Error(), "UserHandler#List")
		assert.Contains(t, err.Error(), "AccountHandler#List")
	})

	t.Run("rejects registration after freeze", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		reg.Freeze()
		err := reg.Register(mapping.MustNew(mapping.Paths("/a")), method("B", "M"))
		require.ErrorIs(t, err, ErrFrozen)
	})
}

func TestRegistryUnregister(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	info := mapping.MustNew(mapping.Paths("/users"), mapping.Methods(http.MethodGet))
	require.NoError(t, reg.Register(info, method("UserHandler", "List")))
	require.Equal(t, 1, reg.Len())

	assert.True(t, reg.Unregister(mapping.MustNew(mapping.Paths("/users"), mapping.Methods(http.MethodGet))))
	assert.False(t, reg.Unregister(info))
	assert.Equal(t, 0, reg.Len())

	m, err := reg.Lookup(httptest.NewRequest(http.MethodGet, "/users", nil))
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestRegistryLookup(t *testing.T) {
	t.Parallel()

	t.Run("resolves direct path", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		require.NoError(t, reg.Register(
			mapping.MustNew(mapping.Paths("/users"), mapping.Methods(http.MethodGet)),
			method("UserHandler", "List")))
		require.NoError(t, reg.Register(
			mapping.MustNew(mapping.Paths("/users"), mapping.Methods(http.MethodPost)),
			method("UserHandler", "Create")))

		m, err := reg.Lookup(httptest.NewRequest(http.MethodPost, "/users", nil))
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, "UserHandler#Create", m.Handler.String())
		assert.Equal(t, "/users", m.Pattern)
	})

	t.Run("captures path variables", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		require.NoError(t, reg.Register(
			mapping.MustNew(mapping.Paths("/users/:id/orders/:order")),
			method("OrderHandler", "Get")))

		m, err := reg.Lookup(httptest.NewRequest(http.MethodGet, "/users/42/orders/7", nil))
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, "/users/:id/orders/:order", m.Pattern)
		assert.Equal(t, map[string]string{"id": "42", "order": "7"}, m.Vars)
	})

	t.Run("prefers exact pattern over wildcard", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		require.NoError(t, reg.Register(
			mapping.MustNew(mapping.Paths("/files/**")), method("FileHandler", "Any")))
		require.NoError(t, reg.Register(
			mapping.MustNew(mapping.Paths("/files/latest")), method("FileHandler", "Latest")))

		m, err := reg.Lookup(httptest.NewRequest(http.MethodGet, "/files/latest", nil))
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, "FileHandler#Latest", m.Handler.String())

		m, err = reg.Lookup(httptest.NewRequest(http.MethodGet, "/files/a/b", nil))
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, "FileHandler#Any", m.Handler.String())
	})

	t.Run("no match is not an error", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		require.NoError(t, reg.Register(
			mapping.MustNew(mapping.Paths("/users")), method("UserHandler", "List")))

		m, err := reg.Lookup(httptest.NewRequest(http.MethodGet, "/missing", nil))
		require.NoError(t, err)
		assert.Nil(t, m)
	})

	t.Run("equally good matches are ambiguous", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		require.NoError(t, reg.Register(
			mapping.MustNew(mapping.Paths("/data/:a/b")), method("DataHandler", "ByA")))
		require.NoError(t, reg.Register(
			mapping.MustNew(mapping.Paths("/data/a/:b")), method("DataHandler", "ByB")))

		_, err := reg.Lookup(httptest.NewRequest(http.MethodGet, "/data/a/b", nil))
		require.ErrorIs(t, err, ErrAmbiguousMapping)
		assert.Contains(t, err.Error(), "DataHandler#ByA")
		assert.Contains(t, err.Error(), "DataHandler#ByB")
	})

	t.Run("pre-flight tolerates ties", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		require.NoError(t, reg.Register(
			mapping.MustNew(mapping.Paths("/data/:a/b")), method("DataHandler", "ByA")))
		require.NoError(t, reg.Register(
			mapping.MustNew(mapping.Paths("/data/a/:b")), method("DataHandler", "ByB")))

		r := httptest.NewRequest(http.MethodOptions, "/data/a/b", nil)
		r.Header.Set("Origin", "https://example.com")
		r.Header.Set("Access-Control-Request-Method", "GET")

		m, err := reg.Lookup(r)
		require.NoError(t, err)
		assert.NotNil(t, m)
	})

	t.Run("content negotiation selects by accept preference", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		require.NoError(t, reg.Register(
			mapping.MustNew(mapping.Paths("/report"), mapping.Produces("application/json")),
			method("ReportHandler", "JSON")))
		require.NoError(t, reg.Register(
			mapping.MustNew(mapping.Paths("/report"), mapping.Produces("text/html")),
			method("ReportHandler", "HTML")))

		r := httptest.NewRequest(http.MethodGet, "/report", nil)
		r.Header.Set("Accept", "text/html, application/json;q=0.5")
		m, err := reg.Lookup(r)
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, "ReportHandler#HTML", m.Handler.String())

		r.Header.Set("Accept", "application/json")
		m, err = reg.Lookup(r)
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, "ReportHandler#JSON", m.Handler.String())
	})

	t.Run("head request served by get mapping", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		require.NoError(t, reg.Register(
			mapping.MustNew(mapping.Paths("/users"), mapping.Methods(http.MethodGet)),
			method("UserHandler", "List")))

		m, err := reg.Lookup(httptest.NewRequest(http.MethodHead, "/users", nil))
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, "UserHandler#List", m.Handler.String())
	})
}

type countingRecorder struct {
	mu       sync.Mutex
	outcomes map[Outcome]int
}

func (c *countingRecorder) RecordLookup(_ context.Context, outcome Outcome, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.outcomes == nil {
		c.outcomes = make(map[Outcome]int)
	}
	c.outcomes[outcome]++
}

func TestRegistryRecorder(t *testing.T) {
	t.Parallel()

	rec := &countingRecorder{}
	reg := NewRegistry(WithRecorder(rec))
	require.NoError(t, reg.Register(
		mapping.MustNew(mapping.Paths("/users")), method("UserHandler", "List")))

	_, err := reg.Lookup(httptest.NewRequest(http.MethodGet, "/users", nil))
	require.NoError(t, err)
	_, err = reg.Lookup(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)

	assert.Equal(t, 1, rec.outcomes[OutcomeMatched])
	assert.Equal(t, 1, rec.outcomes[OutcomeUnmatched])
}

func TestRegistryConcurrentLookup(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	require.NoError(t, reg.Register(
		mapping.MustNew(mapping.Paths("/users/:id")), method("UserHandler", "Get")))

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				m, err := reg.Lookup(httptest.NewRequest(http.MethodGet, "/users/1", nil))
				assert.NoError(t, err)
				assert.NotNil(t, m)
			}
		}()
	}
	wg.Wait()
}
