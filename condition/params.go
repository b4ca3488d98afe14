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

import "net/http"

// Params is the query-parameter dimension of a mapping. All expressions
// must hold for the condition to match (logical AND). An empty condition
// matches every request.
type Params struct {
	exprs []nameValueExpr
}

// NewParams parses query parameter expressions: "name", "!name",
// "name=value", "name!=value".
func NewParams(exprs ...string) (Params, error) {
	var c Params
	for _, s := range exprs {
		e, err := parseNameValueExpr(s)
		if err != nil {
			return Params{}, err
		}
		c.exprs = append(c.exprs, e)
	}
	return c, nil
}

// Values returns the expressions in declaration form.
func (c Params) Values() []string {
	out := make([]string, len(c.exprs))
	for i, e := range c.exprs {
		out[i] = e.String()
	}
	return out
}

// IsEmpty reports whether the condition holds no expressions.
func (c Params) IsEmpty() bool { return len(c.exprs) == 0 }

// Combine merges two param conditions by union; the empty condition is
// the identity.
func (c Params) Combine(other Params) Params {
	return Params{exprs: unionExprs(c.exprs, other.exprs)}
}

// MatchingCondition returns the condition unchanged when every expression
// holds against the request's query parameters. The expressions are ANDed,
// so there is no partial narrowing for this dimension.
func (c Params) MatchingCondition(r *http.Request) (Params, bool) {
	if len(c.exprs) == 0 {
		return c, true
	}
	query := r.URL.Query()
	for _, e := range c.exprs {
		if !e.matchValues(query[e.name]) {
			return Params{}, false
		}
	}
	return c, true
}

// CompareTo ranks the condition with more expressions first: a mapping
// constrained on more parameters is the more specific match.
func (c Params) CompareTo(other Params, _ *http.Request) int {
	return len(other.exprs) - len(c.exprs)
}

// Equal reports whether both conditions hold the same expression set.
func (c Params) Equal(other Params) bool {
	return exprsEqual(c.exprs, other.exprs)
}

// String renders the condition, e.g. [version=2 && !draft].
func (c Params) String() string {
	return exprStrings(c.exprs)
}
