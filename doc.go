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

// Package mapping aggregates the condition dimensions into a single
// composite mapping key, the Info. An Info describes everything a handler
// requires of a request: path patterns, HTTP methods, query parameters,
// headers, consumable and producible media types, and an optional custom
// condition.
//
// Infos are immutable values built once at registration time:
//
//	info, err := mapping.New(
//	    mapping.Paths("/users/:id"),
//	    mapping.Methods(http.MethodGet),
//	    mapping.Produces("application/json"),
//	)
//
// A type-level Info combines with a method-level Info via Combine, a
// request projects a transient matched copy via MatchingInfo, and matched
// copies are ranked with CompareTo.
package mapping
