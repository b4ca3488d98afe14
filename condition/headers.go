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
	"strings"
)

// Headers is the request-header dimension of a mapping. Header names are
// case-insensitive. All expressions must hold for the condition to match.
// An empty condition matches every request.
//
// Accept and Content-Type expressions do not belong here: the mapping
// layer routes them into the Produces and Consumes dimensions, where
// media type semantics (wildcards, quality values) apply.
type Headers struct {
	exprs []nameValueExpr
}

// NewHeaders parses header expressions: "name", "!name", "name=value",
// "name!=value". Names are normalized to their canonical MIME form.
func NewHeaders(exprs ...string) (Headers, error) {
	var c Headers
	for _, s := range exprs {
		e, err := parseNameValueExpr(s)
		if err != nil {
			return Headers{}, err
		}
		e.name = http.CanonicalHeaderKey(e.name)
		c.exprs = append(c.exprs, e)
	}
	return c, nil
}

// Values returns the expressions in declaration form.
func (c Headers) Values() []string {
	out := make([]string, len(c.exprs))
	for i, e := range c.exprs {
		out[i] = e.String()
	}
	return out
}

// IsEmpty reports whether the condition holds no expressions.
func (c Headers) IsEmpty() bool { return len(c.exprs) == 0 }

// Combine merges two header conditions by union; the empty condition is
// the identity.
func (c Headers) Combine(other Headers) Headers {
	return Headers{exprs: unionExprs(c.exprs, other.exprs)}
}

// MatchingCondition returns the condition unchanged when every expression
// holds against the request headers.
func (c Headers) MatchingCondition(r *http.Request) (Headers, bool) {
	if len(c.exprs) == 0 {
		return c, true
	}
	for _, e := range c.exprs {
		if !e.matchValues(r.Header.Values(e.name)) {
			return Headers{}, false
		}
	}
	return c, true
}

// CompareTo ranks the condition with more expressions first.
func (c Headers) CompareTo(other Headers, _ *http.Request) int {
	return len(other.exprs) - len(c.exprs)
}

// Equal reports whether both conditions hold the same expression set.
func (c Headers) Equal(other Headers) bool {
	return exprsEqual(c.exprs, other.exprs)
}

// String renders the condition, e.g. [X-Api-Key && X-Stage!=canary].
func (c Headers) String() string {
	return exprStrings(c.exprs)
}

// IsContentNegotiationHeader reports whether the expression name is Accept
// or Content-Type; the mapping layer folds those into produces/consumes.
func IsContentNegotiationHeader(name string) bool {
	return strings.EqualFold(name, "Accept") || strings.EqualFold(name, "Content-Type")
}
