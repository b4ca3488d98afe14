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
	"slices"
	"strings"

	"rivaas.dev/mapping/mediatype"
)

// mediaTypeExpr is a possibly negated media type expression, as used by
// the Consumes ("!multipart/form-data") and Produces dimensions.
type mediaTypeExpr struct {
	mediaType mediatype.MediaType
	negated   bool
}

// parseMediaTypeExpr parses one expression, honoring a leading '!'.
func parseMediaTypeExpr(s string) (mediaTypeExpr, error) {
	s = strings.TrimSpace(s)
	negated := strings.HasPrefix(s, "!")
	if negated {
		s = s[1:]
	}
	mt, err := mediatype.Parse(s)
	if err != nil {
		return mediaTypeExpr{}, err
	}
	return mediaTypeExpr{mediaType: mt, negated: negated}, nil
}

// parseMediaTypeExprs parses and sorts a set of expressions
// most-specific-first (stable, so declaration order breaks ties) and
// drops duplicates.
func parseMediaTypeExprs(exprs []string) ([]mediaTypeExpr, error) {
	var out []mediaTypeExpr
	for _, s := range exprs {
		e, err := parseMediaTypeExpr(s)
		if err != nil {
			return nil, err
		}
		if !slices.ContainsFunc(out, e.equal) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b mediaTypeExpr) int {
		return mediatype.CompareSpecificity(a.mediaType, b.mediaType)
	})
	return out, nil
}

func (e mediaTypeExpr) equal(other mediaTypeExpr) bool {
	return e.negated == other.negated && e.mediaType.Equal(other.mediaType)
}

// compare is the negation-aware expression order used for tie-breaks:
// a positive expression ranks above a negated one, then the declared
// quality decides.
func (e mediaTypeExpr) compare(other mediaTypeExpr) int {
	switch {
	case !e.negated && other.negated:
		return -1
	case e.negated && !other.negated:
		return 1
	}
	switch q, oq := e.mediaType.Quality(), other.mediaType.Quality(); {
	case q > oq:
		return -1
	case q < oq:
		return 1
	default:
		return 0
	}
}

func (e mediaTypeExpr) String() string {
	if e.negated {
		return "!" + e.mediaType.String()
	}
	return e.mediaType.String()
}

func mediaTypeExprsEqual(a, b []mediaTypeExpr) bool {
	if len(a) != len(b) {
		return false
	}
	for _, e := range a {
		if !slices.ContainsFunc(b, e.equal) {
			return false
		}
	}
	return true
}

func mediaTypeExprStrings(exprs []mediaTypeExpr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, " || ") + "]"
}
