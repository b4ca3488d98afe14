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

// Package config loads declarative mapping tables from YAML.
//
// A mapping table is a list of entries, each naming the dimensions of one
// mapping:
//
//	mappings:
//	  - name: users.get
//	    paths: ["/users/:id"]
//	    methods: [GET]
//	    produces: ["application/json"]
//	  - name: users.create
//	    paths: ["/users"]
//	    methods: [POST]
//	    consumes: ["application/json"]
//
// Load compiles each entry through mapping.New, so pattern and media type
// errors surface at load time with the entry's name and position.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"rivaas.dev/mapping"
)

// Entry is one mapping in a declarative table.
type Entry struct {
	Name     string   `yaml:"name"`
	Paths    []string `yaml:"paths"`
	Methods  []string `yaml:"methods"`
	Params   []string `yaml:"params"`
	Headers  []string `yaml:"headers"`
	Consumes []string `yaml:"consumes"`
	Produces []string `yaml:"produces"`
}

// Table is the top-level document shape.
type Table struct {
	Mappings []Entry `yaml:"mappings"`
}

// Compile turns the entry into a mapping.
func (e Entry) Compile() (*mapping.Info, error) {
	return mapping.New(
		mapping.Name(e.Name),
		mapping.Paths(e.Paths...),
		mapping.Methods(e.Methods...),
		mapping.Params(e.Params...),
		mapping.Headers(e.Headers...),
		mapping.Consumes(e.Consumes...),
		mapping.Produces(e.Produces...),
	)
}

// Load parses a YAML mapping table and compiles every entry. Errors carry
// the failing entry's position and name.
func Load(data []byte) ([]*mapping.Info, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("config: parsing mapping table: %w", err)
	}

	infos := make([]*mapping.Info, 0, len(table.Mappings))
	for i, entry := range table.Mappings {
		info, err := entry.Compile()
		if err != nil {
			return nil, fmt.Errorf("config: entry %d (%s): %w", i, entryLabel(entry), err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// LoadFile reads and loads a YAML mapping table from disk.
func LoadFile(path string) ([]*mapping.Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return Load(data)
}

func entryLabel(e Entry) string {
	if e.Name != "" {
		return e.Name
	}
	return "unnamed"
}
