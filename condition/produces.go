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
	"net/http"
	"slices"
	"strings"

	"rivaas.dev/mapping/mediatype"
)

// Produces is the response media type dimension of a mapping, matched
// against the request's Accept header. An empty condition matches every
// request and behaves like "*/*" when ranked against siblings.
type Produces struct {
	exprs []mediaTypeExpr
}

// exprsAll stands in for an empty condition during CompareTo.
var exprsAll = []mediaTypeExpr{{mediaType: mediatype.All}}

// NewProduces parses producible media type expressions
// ("application/json", "!text/plain") together with Accept-named header
// expressions into one uniform expression list, kept
// most-specific-first. A negated header expression such as
// "accept!=text/html" becomes a negated media type expression.
func NewProduces(exprs []string, headerExprs ...string) (Produces, error) {
	all := slices.Clone(exprs)
	for _, h := range headerExprs {
		e, err := parseNameValueExpr(h)
		if err != nil {
			return Produces{}, err
		}
		if !strings.EqualFold(e.name, "Accept") || !e.hasValue {
			continue
		}
		for part := range strings.SplitSeq(e.value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				if e.negated {
					part = "!" + part
				}
				all = append(all, part)
			}
		}
	}
	parsed, err := parseMediaTypeExprs(all)
	if err != nil {
		return Produces{}, err
	}
	return Produces{exprs: parsed}, nil
}

// Values returns the expressions in declaration form.
func (c Produces) Values() []string {
	out := make([]string, len(c.exprs))
	for i, e := range c.exprs {
		out[i] = e.String()
	}
	return out
}

// IsEmpty reports whether the condition holds no expressions.
func (c Produces) IsEmpty() bool { return len(c.exprs) == 0 }

// Combine keeps the method-level condition when it declares anything and
// falls back to the type-level condition otherwise. Unlike the other
// dimensions this is an override, not a union: a method declaring its own
// produces replaces the class-wide default rather than widening it.
func (c Produces) Combine(other Produces) Produces {
	if len(other.exprs) > 0 {
		return other
	}
	return c
}

// MatchingCondition narrows the condition to the expressions compatible
// with the request's acceptable media types. Malformed Accept entries are
// skipped; a request without usable Accept values accepts everything.
// CORS pre-flight requests match with the empty condition.
func (c Produces) MatchingCondition(r *http.Request) (Produces, bool) {
	if IsPreFlight(r) {
		return Produces{}, true
	}
	if len(c.exprs) == 0 {
		return c, true
	}

	accepted := acceptedMediaTypes(r)
	var matched []mediaTypeExpr
	for _, e := range c.exprs {
		if e.matchAccepted(accepted) {
			matched = append(matched, e)
		}
	}
	if len(matched) == 0 {
		return Produces{}, false
	}
	return Produces{exprs: matched}, true
}

// matchAccepted reports whether the expression is satisfied by any of the
// acceptable media types; a zero quality value means "explicitly refused".
func (e mediaTypeExpr) matchAccepted(accepted []mediatype.MediaType) bool {
	for _, mt := range accepted {
		if mt.Quality() > 0 && mt.IsCompatibleWith(e.mediaType) {
			if e.negated {
				return false
			}
			return true
		}
	}
	return e.negated
}

// CompareTo ranks two matched produces conditions by walking the client's
// acceptable media types in preference order. For each acceptable type the
// candidate declaring an exact type/subtype match at the lower index wins;
// failing that, the candidate declaring an inclusion match (wildcard
// covering the acceptable type) at the lower index wins. Equal indexes are
// broken by the expression's negation-aware order, then by the
// deterministic media type order.
func (c Produces) CompareTo(other Produces, r *http.Request) int {
	accepted := acceptedMediaTypes(r)
	thisExprs := c.exprsToCompare()
	otherExprs := other.exprsToCompare()

	for _, mt := range accepted {
		thisIdx, otherIdx := indexOfEqual(thisExprs, mt), indexOfEqual(otherExprs, mt)
		if result := compareMatchedIndexes(thisExprs, thisIdx, otherExprs, otherIdx); result != 0 {
			return result
		}
		thisIdx, otherIdx = indexOfIncluded(thisExprs, mt), indexOfIncluded(otherExprs, mt)
		if result := compareMatchedIndexes(thisExprs, thisIdx, otherExprs, otherIdx); result != 0 {
			return result
		}
	}
	return 0
}

// exprsToCompare substitutes "*/*" for the empty condition so that a
// mapping with no produces ranks like a wildcard producer.
func (c Produces) exprsToCompare() []mediaTypeExpr {
	if len(c.exprs) == 0 {
		return exprsAll
	}
	return c.exprs
}

// indexOfEqual returns the first index whose media type matches exactly by
// type and subtype, or -1.
func indexOfEqual(exprs []mediaTypeExpr, mt mediatype.MediaType) int {
	for i, e := range exprs {
		if e.mediaType.EqualTypeAndSubtype(mt) {
			return i
		}
	}
	return -1
}

// indexOfIncluded returns the first index whose media type is included by
// the acceptable media type, or -1.
func indexOfIncluded(exprs []mediaTypeExpr, mt mediatype.MediaType) int {
	for i, e := range exprs {
		if mt.Includes(e.mediaType) {
			return i
		}
	}
	return -1
}

// compareMatchedIndexes prefers the candidate that matched at all, then
// the one that matched at the lower (more specific, earlier declared)
// index, then falls through to per-expression tie-breaks.
func compareMatchedIndexes(aExprs []mediaTypeExpr, aIdx int, bExprs []mediaTypeExpr, bIdx int) int {
	switch {
	case aIdx == -1 && bIdx == -1:
		return 0
	case aIdx == -1:
		return 1
	case bIdx == -1:
		return -1
	case aIdx != bIdx:
		return aIdx - bIdx
	}
	a, b := aExprs[aIdx], bExprs[bIdx]
	if result := a.compare(b); result != 0 {
		return result
	}
	return mediatype.Compare(a.mediaType, b.mediaType)
}

// acceptedMediaTypes parses the request's Accept values, skipping
// malformed entries, and sorts them by declared quality (descending),
// then specificity. No usable entries means the client accepts anything.
func acceptedMediaTypes(r *http.Request) []mediatype.MediaType {
	var accepted []mediatype.MediaType
	for _, value := range r.Header.Values("Accept") {
		for part := range strings.SplitSeq(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			mt, err := mediatype.Parse(part)
			if err != nil {
				continue
			}
			accepted = append(accepted, mt)
		}
	}
	if len(accepted) == 0 {
		return []mediatype.MediaType{mediatype.All}
	}
	slices.SortStableFunc(accepted, func(a, b mediatype.MediaType) int {
		switch aq, bq := a.Quality(), b.Quality(); {
		case aq > bq:
			return -1
		case aq < bq:
			return 1
		}
		return mediatype.CompareSpecificity(a, b)
	})
	return accepted
}

// Equal reports whether both conditions hold the same expression set.
func (c Produces) Equal(other Produces) bool {
	return mediaTypeExprsEqual(c.exprs, other.exprs)
}

// String renders the condition, e.g. [application/json || text/html;q=0.5].
func (c Produces) String() string {
	return mediaTypeExprStrings(c.exprs)
}
