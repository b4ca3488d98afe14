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

package web

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/mapping"
	"rivaas.dev/mapping/handler"
)

func newRegistry(t *testing.T) *handler.Registry {
	t.Helper()

	reg := handler.NewRegistry()
	require.NoError(t, reg.Register(
		mapping.MustNew(mapping.Paths("/users/:id"), mapping.Methods(http.MethodGet)),
		handler.HandlerMethod{Bean: "UserHandler", Name: "Get", Func: func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "user %s", Vars(r)["id"])
		}}))
	return reg
}

func TestNewRequiresRegistry(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	require.ErrorIs(t, err, ErrNilRegistry)
	assert.Panics(t, func() { MustNew(nil) })
}

func TestDispatcherServeHTTP(t *testing.T) {
	t.Parallel()

	t.Run("dispatches to the matched handler with vars", func(t *testing.T) {
		t.Parallel()

		d := MustNew(newRegistry(t))
		w := httptest.NewRecorder()
		d.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/42", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user 42", w.Body.String())
	})

	t.Run("exposes the match via context", func(t *testing.T) {
		t.Parallel()

		reg := handler.NewRegistry()
		require.NoError(t, reg.Register(
			mapping.MustNew(mapping.Paths("/ping")),
			handler.HandlerMethod{Bean: "Ping", Name: "Do", Func: func(w http.ResponseWriter, r *http.Request) {
				match, ok := MatchFromContext(r.Context())
				require.True(t, ok)
				assert.Equal(t, "/ping", match.Pattern)
				assert.Equal(t, "Ping#Do", match.Handler.String())
			}}))

		MustNew(reg).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	})

	t.Run("no match answers 404 by default", func(t *testing.T) {
		t.Parallel()

		d := MustNew(newRegistry(t))
		w := httptest.NewRecorder()
		d.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("no match runs the configured no-route handler", func(t *testing.T) {
		t.Parallel()

		d := MustNew(newRegistry(t), WithNoRoute(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		w := httptest.NewRecorder()
		d.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusTeapot, w.Code)
	})

	t.Run("ambiguous mapping answers 500", func(t *testing.T) {
		t.Parallel()

		reg := handler.NewRegistry()
		require.NoError(t, reg.Register(
			mapping.MustNew(mapping.Paths("/data/:a/b")),
			handler.HandlerMethod{Bean: "H", Name: "A", Func: func(http.ResponseWriter, *http.Request) {}}))
		require.NoError(t, reg.Register(
			mapping.MustNew(mapping.Paths("/data/a/:b")),
			handler.HandlerMethod{Bean: "H", Name: "B", Func: func(http.ResponseWriter, *http.Request) {}}))

		w := httptest.NewRecorder()
		MustNew(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/data/a/b", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestVarsOutsideDispatch(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Vars(httptest.NewRequest(http.MethodGet, "/x", nil)))
}
