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

// Package condition implements the request condition family: one value
// type per matching dimension (path patterns, HTTP methods, query
// parameters, headers, consumes, produces), each implementing the same
// three operations.
//
//   - Combine merges a type-level and a method-level condition into one.
//   - MatchingCondition projects the condition against a concrete request,
//     returning a narrowed condition holding only the matching expressions,
//     or reporting no match.
//   - CompareTo ranks two conditions for the same request.
//
// An empty condition matches every request and is the identity element for
// Combine on Methods, Params, Headers, and Consumes.
//
// CompareTo is only meaningful for conditions obtained from
// MatchingCondition for the same request. Conditions as registered carry
// unrelated expressions and produce arbitrary orderings; this precondition
// is documented, not enforced.
package condition
