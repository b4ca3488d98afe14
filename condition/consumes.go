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

	"rivaas.dev/mapping/mediatype"
)

// Consumes is the request-body media type dimension of a mapping, matched
// against the Content-Type header. A request without a Content-Type is
// treated as application/octet-stream. An empty condition matches every
// request.
type Consumes struct {
	exprs []mediaTypeExpr
}

// NewConsumes parses media type expressions such as "application/json" or
// "!multipart/form-data". Expressions are kept most-specific-first.
func NewConsumes(exprs ...string) (Consumes, error) {
	parsed, err := parseMediaTypeExprs(exprs)
	if err != nil {
		return Consumes{}, err
	}
	return Consumes{exprs: parsed}, nil
}

// Values returns the expressions in declaration form.
func (c Consumes) Values() []string {
	out := make([]string, len(c.exprs))
	for i, e := range c.exprs {
		out[i] = e.String()
	}
	return out
}

// IsEmpty reports whether the condition holds no expressions.
func (c Consumes) IsEmpty() bool { return len(c.exprs) == 0 }

// Combine merges two consumes conditions by union; the empty condition is
// the identity.
func (c Consumes) Combine(other Consumes) Consumes {
	merged := make([]mediaTypeExpr, len(c.exprs), len(c.exprs)+len(other.exprs))
	copy(merged, c.exprs)
	for _, e := range other.exprs {
		dup := false
		for _, m := range merged {
			if m.equal(e) {
				dup = true
				break
			}
		}
		if !dup {
			merged = append(merged, e)
		}
	}
	return Consumes{exprs: merged}
}

// MatchingCondition narrows the condition to the expressions matching the
// request's Content-Type. A malformed Content-Type rejects the dimension.
// CORS pre-flight requests carry no body of their own, so they match with
// the empty condition.
func (c Consumes) MatchingCondition(r *http.Request) (Consumes, bool) {
	if IsPreFlight(r) {
		return Consumes{}, true
	}
	if len(c.exprs) == 0 {
		return c, true
	}

	contentType := mediatype.ApplicationOctetStream
	if raw := r.Header.Get("Content-Type"); raw != "" {
		parsed, err := mediatype.Parse(raw)
		if err != nil {
			return Consumes{}, false
		}
		contentType = parsed
	}

	var matched []mediaTypeExpr
	for _, e := range c.exprs {
		if e.mediaType.Includes(contentType) != e.negated {
			matched = append(matched, e)
		}
	}
	if len(matched) == 0 {
		return Consumes{}, false
	}
	return Consumes{exprs: matched}, true
}

// CompareTo ranks a constrained condition above the empty one, then the
// condition whose most specific expression is the more specific media type.
func (c Consumes) CompareTo(other Consumes, _ *http.Request) int {
	switch {
	case len(c.exprs) == 0 && len(other.exprs) == 0:
		return 0
	case len(c.exprs) == 0:
		return 1
	case len(other.exprs) == 0:
		return -1
	}
	return mediatype.CompareSpecificity(c.exprs[0].mediaType, other.exprs[0].mediaType)
}

// Equal reports whether both conditions hold the same expression set.
func (c Consumes) Equal(other Consumes) bool {
	return mediaTypeExprsEqual(c.exprs, other.exprs)
}

// String renders the condition, e.g. [application/json || text/xml].
func (c Consumes) String() string {
	return mediaTypeExprStrings(c.exprs)
}
