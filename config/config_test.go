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

package config

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const table = `
mappings:
  - name: users.get
    paths: ["/users/:id"]
    methods: [GET]
    produces: ["application/json"]
  - name: users.create
    paths: ["/users"]
    methods: [POST]
    consumes: ["application/json"]
    headers: ["X-Api-Key"]
`

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("compiles every entry", func(t *testing.T) {
		t.Parallel()

		infos, err := Load([]byte(table))
		require.NoError(t, err)
		require.Len(t, infos, 2)

		assert.Equal(t, "users.get", infos[0].Name())
		assert.Equal(t, []string{"/users/:id"}, infos[0].Patterns().Values())
		assert.Equal(t, []string{"application/json"}, infos[0].Produces().Values())

		assert.Equal(t, "users.create", infos[1].Name())
		assert.Equal(t, []string{"POST"}, infos[1].Methods().Values())
		assert.Equal(t, []string{"X-Api-Key"}, infos[1].Headers().Values())

		r := httptest.NewRequest(http.MethodGet, "/users/42", nil)
		assert.NotNil(t, infos[0].MatchingInfo(r))
	})

	t.Run("empty table loads empty", func(t *testing.T) {
		t.Parallel()

		infos, err := Load([]byte("mappings: []"))
		require.NoError(t, err)
		assert.Empty(t, infos)
	})

	t.Run("yaml errors are reported", func(t *testing.T) {
		t.Parallel()

		_, err := Load([]byte("mappings: {not a list"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing mapping table")
	})

	t.Run("entry errors carry position and name", func(t *testing.T) {
		t.Parallel()

		_, err := Load([]byte(`
mappings:
  - name: ok
    paths: ["/a"]
  - name: broken
    produces: ["not-a-media-type"]
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "entry 1")
		assert.Contains(t, err.Error(), "broken")
	})
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mappings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(table), 0o600))

	infos, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, infos, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
