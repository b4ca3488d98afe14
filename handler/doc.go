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

// Package handler maps HTTP requests to handler methods registered under
// mapping metadata.
//
// A Registry holds (mapping.Info, HandlerMethod) pairs. Lookup finds the
// single best handler for a request: every registered mapping is matched
// and narrowed against the request, candidates are sorted by specificity,
// and a tie between two distinct top candidates is reported as an
// ambiguity error. No matching mapping is not an error; Lookup returns a
// nil Match so callers can decide how to answer.
//
//	reg := handler.MustNewRegistry()
//	err := reg.Register(
//	    mapping.MustNew(mapping.Paths("/users/:id"), mapping.Methods(http.MethodGet)),
//	    handler.HandlerMethod{Bean: "UserHandler", Name: "Get", Func: getUser},
//	)
//	match, err := reg.Lookup(r)
package handler
