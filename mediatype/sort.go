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

package mediatype

import (
	"cmp"
	"slices"
	"strings"
)

// CompareSpecificity orders two media types most-specific-first:
//
//  1. A concrete type sorts before a wildcard type:
//     audio/basic < */*
//  2. For equal types, a concrete subtype sorts before a wildcard subtype:
//     audio/basic < audio/*
//  3. For equal type and subtype, a higher quality value sorts first:
//     audio/basic < audio/basic;q=0.7
//  4. Then more parameters sort first:
//     audio/basic;level=1 < audio/basic
//
// Media types with different concrete types (or subtypes) are equally
// specific and compare as 0; use a stable sort to preserve their
// declaration order.
func CompareSpecificity(a, b MediaType) int {
	switch {
	case a.IsWildcardType() && !b.IsWildcardType():
		return 1
	case b.IsWildcardType() && !a.IsWildcardType():
		return -1
	case a.typ != b.typ:
		return 0
	}
	switch {
	case a.IsWildcardSubtype() && !b.IsWildcardSubtype():
		return 1
	case b.IsWildcardSubtype() && !a.IsWildcardSubtype():
		return -1
	case a.subtype != b.subtype:
		return 0
	}
	if d := cmp.Compare(b.Quality(), a.Quality()); d != 0 {
		return d
	}
	return len(b.params) - len(a.params)
}

// SortBySpecificity sorts the given media types in place,
// most-specific-first, using CompareSpecificity. The sort is stable:
// equally specific entries keep their declaration order, which preserves
// client preference order within Accept headers.
func SortBySpecificity(types []MediaType) {
	slices.SortStableFunc(types, CompareSpecificity)
}

// Compare is a deterministic total order over media types used as a final
// tie-break: type, then subtype, then parameter count, then the canonical
// rendering. It carries no specificity semantics.
func Compare(a, b MediaType) int {
	if c := strings.Compare(a.typ, b.typ); c != 0 {
		return c
	}
	if c := strings.Compare(a.subtype, b.subtype); c != 0 {
		return c
	}
	if c := len(a.params) - len(b.params); c != 0 {
		return c
	}
	return strings.Compare(a.String(), b.String())
}
