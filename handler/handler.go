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
	"net/http"

	"rivaas.dev/mapping"
)

// HandlerMethod identifies a registered handler function together with the
// component it belongs to. Bean and Name exist for diagnostics: duplicate
// and ambiguity errors name the colliding methods.
type HandlerMethod struct {
	// Bean is the owning component, e.g. "UserHandler".
	Bean string

	// Name is the method name within the bean, e.g. "Get".
	Name string

	// Func handles the request once Lookup selects this method.
	Func http.HandlerFunc
}

// String renders the method as "Bean#Name".
func (h HandlerMethod) String() string {
	if h.Bean == "" {
		return h.Name
	}
	return h.Bean + "#" + h.Name
}

// Match is the result of a successful lookup.
type Match struct {
	// Info is the registered mapping narrowed to the request: only the
	// patterns, methods and media types that actually matched remain.
	Info *mapping.Info

	// Handler is the method registered under the mapping.
	Handler HandlerMethod

	// Pattern is the most specific pattern that matched the request path.
	Pattern string

	// Vars holds the values captured by the pattern, e.g. {"id": "42"}
	// for "/users/:id" against "/users/42".
	Vars map[string]string
}
