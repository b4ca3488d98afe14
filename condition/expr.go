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
	"fmt"
	"strings"
)

// nameValueExpr is a single parsed name/value expression for the Params
// and Headers dimensions. Supported forms:
//
//	"name"         the entry must be present
//	"!name"        the entry must be absent
//	"name=value"   the entry must equal value
//	"name!=value"  the entry must not equal value
type nameValueExpr struct {
	name     string
	value    string
	hasValue bool
	negated  bool
}

// parseNameValueExpr parses one expression string.
func parseNameValueExpr(s string) (nameValueExpr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nameValueExpr{}, ErrEmptyExpression
	}

	var e nameValueExpr
	if idx := strings.Index(s, "!="); idx != -1 {
		e.name = s[:idx]
		e.value = s[idx+2:]
		e.hasValue = true
		e.negated = true
	} else if idx := strings.IndexByte(s, '='); idx != -1 {
		e.name = s[:idx]
		e.value = s[idx+1:]
		e.hasValue = true
	} else if strings.HasPrefix(s, "!") {
		e.name = s[1:]
		e.negated = true
	} else {
		e.name = s
	}

	e.name = strings.TrimSpace(e.name)
	e.value = strings.TrimSpace(e.value)
	if e.name == "" {
		return nameValueExpr{}, fmt.Errorf("%w: %q", ErrEmptyExpressionName, s)
	}
	return e, nil
}

// matchValues evaluates the expression against the values present for the
// name (nil or empty means the entry is absent).
func (e nameValueExpr) matchValues(values []string) bool {
	if e.hasValue {
		found := false
		for _, v := range values {
			if v == e.value {
				found = true
				break
			}
		}
		return found != e.negated
	}
	present := len(values) > 0
	return present != e.negated
}

// equal reports structural equality; header expression names compare
// case-insensitively at the condition level by normalizing on parse.
func (e nameValueExpr) equal(other nameValueExpr) bool {
	return e.name == other.name &&
		e.value == other.value &&
		e.hasValue == other.hasValue &&
		e.negated == other.negated
}

// String renders the expression in its declaration form.
func (e nameValueExpr) String() string {
	switch {
	case e.hasValue && e.negated:
		return e.name + "!=" + e.value
	case e.hasValue:
		return e.name + "=" + e.value
	case e.negated:
		return "!" + e.name
	default:
		return e.name
	}
}

// exprsEqual compares two expression sets regardless of order.
func exprsEqual(a, b []nameValueExpr) bool {
	if len(a) != len(b) {
		return false
	}
	for _, e := range a {
		found := false
		for _, o := range b {
			if e.equal(o) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// unionExprs merges two expression sets, dropping duplicates.
func unionExprs(a, b []nameValueExpr) []nameValueExpr {
	merged := make([]nameValueExpr, len(a), len(a)+len(b))
	copy(merged, a)
	for _, e := range b {
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
	return merged
}

// exprStrings renders a set of expressions for String() methods.
func exprStrings(exprs []nameValueExpr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, " && ") + "]"
}
