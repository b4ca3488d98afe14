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
	"fmt"
	"strconv"
	"strings"
)

// Param is a single media type parameter. Names are case-insensitive and
// stored lowercased; values keep their original case.
type Param struct {
	Name  string
	Value string
}

// MediaType is an immutable media type value: a type/subtype pair plus an
// ordered list of parameters. The wildcard "*" may appear as the type
// (only together with a wildcard subtype) or as the subtype, including the
// structured-suffix form "*+xml".
//
// MediaType values are safe to copy and to share between goroutines.
type MediaType struct {
	typ     string
	subtype string
	params  []Param
	quality float64
}

// Common media types.
var (
	// All is the "*/*" wildcard media type.
	All = MediaType{typ: "*", subtype: "*", quality: 1}

	// ApplicationJSON is "application/json".
	ApplicationJSON = MediaType{typ: "application", subtype: "json", quality: 1}

	// ApplicationXML is "application/xml".
	ApplicationXML = MediaType{typ: "application", subtype: "xml", quality: 1}

	// ApplicationOctetStream is "application/octet-stream", the default
	// content type for requests that do not declare one.
	ApplicationOctetStream = MediaType{typ: "application", subtype: "octet-stream", quality: 1}

	// TextPlain is "text/plain".
	TextPlain = MediaType{typ: "text", subtype: "plain", quality: 1}

	// TextHTML is "text/html".
	TextHTML = MediaType{typ: "text", subtype: "html", quality: 1}
)

// New constructs a MediaType from a type, subtype, and optional parameters.
// Type and subtype are lowercased; parameter names are lowercased. Returns
// an error for empty or non-token components, for the illegal "*/concrete"
// wildcard combination, and for an out-of-range "q" parameter.
func New(typ, subtype string, params ...Param) (MediaType, error) {
	typ = strings.ToLower(strings.TrimSpace(typ))
	subtype = strings.ToLower(strings.TrimSpace(subtype))

	if typ == "" {
		return MediaType{}, ErrEmptyType
	}
	if subtype == "" {
		return MediaType{}, ErrEmptySubtype
	}
	if typ == "*" && subtype != "*" {
		return MediaType{}, fmt.Errorf("%w: %q", ErrWildcardType, typ+"/"+subtype)
	}
	if err := checkToken(typ); err != nil {
		return MediaType{}, err
	}
	if err := checkToken(subtype); err != nil {
		return MediaType{}, err
	}

	mt := MediaType{typ: typ, subtype: subtype, quality: 1}
	for _, p := range params {
		name := strings.ToLower(strings.TrimSpace(p.Name))
		value := strings.TrimSpace(p.Value)
		if name == "" || value == "" {
			return MediaType{}, fmt.Errorf("%w: %q", ErrMalformedParameter, p.Name+"="+p.Value)
		}
		if name == "q" {
			q, err := parseQuality(value)
			if err != nil {
				return MediaType{}, err
			}
			mt.quality = q
		}
		mt.params = append(mt.params, Param{Name: name, Value: value})
	}
	return mt, nil
}

// MustNew is like New but panics on error. Intended for package-level
// declarations of well-known media types.
func MustNew(typ, subtype string, params ...Param) MediaType {
	mt, err := New(typ, subtype, params...)
	if err != nil {
		panic(fmt.Sprintf("mediatype.MustNew: %v", err))
	}
	return mt
}

// Parse parses a single media type string such as
// "application/json;charset=utf-8;q=0.8".
//
// The bare wildcard "*" is accepted as shorthand for "*/*" (some clients
// send it in Accept headers). Parse fails for empty input, for a missing
// '/' separator, for empty or non-token type/subtype, for parameters
// without a value, and for malformed quality values.
func Parse(s string) (MediaType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return MediaType{}, ErrEmptyMediaType
	}

	fullType := s
	rest := ""
	if semi := strings.IndexByte(s, ';'); semi != -1 {
		fullType = strings.TrimSpace(s[:semi])
		rest = s[semi+1:]
	}

	if fullType == "*" {
		fullType = "*/*"
	}
	slash := strings.IndexByte(fullType, '/')
	if slash == -1 {
		return MediaType{}, fmt.Errorf("%w: %q", ErrMissingSlash, s)
	}

	var params []Param
	for rest != "" {
		part := rest
		if semi := strings.IndexByte(rest, ';'); semi != -1 {
			part = rest[:semi]
			rest = rest[semi+1:]
		} else {
			rest = ""
		}
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		eq := strings.IndexByte(part, '=')
		if eq == -1 {
			return MediaType{}, fmt.Errorf("%w: %q", ErrMalformedParameter, part)
		}
		name := strings.TrimSpace(part[:eq])
		value := unquote(strings.TrimSpace(part[eq+1:]))
		params = append(params, Param{Name: name, Value: value})
	}

	mt, err := New(fullType[:slash], fullType[slash+1:], params...)
	if err != nil {
		return MediaType{}, fmt.Errorf("%w (in %q)", err, s)
	}
	return mt, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) MediaType {
	mt, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("mediatype.MustParse: %v", err))
	}
	return mt
}

// ParseList parses a comma-separated list of media types, as found in
// Accept headers. Empty list entries are skipped; the first malformed
// entry fails the whole parse.
func ParseList(s string) ([]MediaType, error) {
	var out []MediaType
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		mt, err := Parse(part)
		if err != nil {
			return nil, err
		}
		out = append(out, mt)
	}
	return out, nil
}

// Type returns the lowercased type, e.g. "application".
func (m MediaType) Type() string { return m.typ }

// Subtype returns the lowercased subtype, e.g. "json".
func (m MediaType) Subtype() string { return m.subtype }

// IsWildcardType reports whether the type is the wildcard "*".
func (m MediaType) IsWildcardType() bool { return m.typ == "*" }

// IsWildcardSubtype reports whether the subtype is the wildcard "*" or a
// structured-suffix wildcard such as "*+xml".
func (m MediaType) IsWildcardSubtype() bool {
	return m.subtype == "*" || strings.HasPrefix(m.subtype, "*+")
}

// IsConcrete reports whether neither type nor subtype is a wildcard.
func (m MediaType) IsConcrete() bool {
	return !m.IsWildcardType() && !m.IsWildcardSubtype()
}

// SubtypeSuffix returns the structured syntax suffix of the subtype (the
// portion after the last '+'), or "" if there is none. For
// "application/soap+xml" it returns "xml".
func (m MediaType) SubtypeSuffix() string {
	if plus := strings.LastIndexByte(m.subtype, '+'); plus != -1 {
		return m.subtype[plus+1:]
	}
	return ""
}

// Parameter returns the value of the named parameter and whether it is present.
// Names are case-insensitive.
func (m MediaType) Parameter(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, p := range m.params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Params returns a copy of the parameter list in declaration order.
func (m MediaType) Params() []Param {
	if len(m.params) == 0 {
		return nil
	}
	out := make([]Param, len(m.params))
	copy(out, m.params)
	return out
}

// ParamCount returns the number of parameters.
func (m MediaType) ParamCount() int { return len(m.params) }

// Quality returns the declared quality value (the "q" parameter), or 1.0
// if none was declared. Malformed quality values are rejected at parse time.
func (m MediaType) Quality() float64 {
	if m.quality == 0 {
		if _, ok := m.Parameter("q"); !ok {
			return 1
		}
	}
	return m.quality
}

// WithQuality returns a copy of the media type with the given quality value.
func (m MediaType) WithQuality(q float64) MediaType {
	out := m
	out.params = nil
	qs := strconv.FormatFloat(q, 'g', 3, 64)
	for _, p := range m.params {
		if p.Name == "q" {
			continue
		}
		out.params = append(out.params, p)
	}
	out.params = append(out.params, Param{Name: "q", Value: qs})
	out.quality = q
	return out
}

// WithoutQuality returns a copy of the media type with any "q" parameter removed.
func (m MediaType) WithoutQuality() MediaType {
	out := m
	out.params = nil
	for _, p := range m.params {
		if p.Name == "q" {
			continue
		}
		out.params = append(out.params, p)
	}
	out.quality = 1
	return out
}

// Includes reports whether this media type includes the other. Inclusion is
// asymmetric: "*/*" includes everything, "text/*" includes "text/html", and
// the structured-suffix wildcard "application/*+xml" includes
// "application/soap+xml", but not the other way around. Parameters are not
// considered.
func (m MediaType) Includes(other MediaType) bool {
	if m.IsWildcardType() {
		// */* includes anything
		return true
	}
	if m.typ != other.typ {
		return false
	}
	if m.subtype == other.subtype {
		return true
	}
	if !m.IsWildcardSubtype() {
		return false
	}
	plus := strings.LastIndexByte(m.subtype, '+')
	if plus == -1 {
		// type/* includes any subtype
		return true
	}
	// type/*+suffix includes type/anything+suffix
	otherPlus := strings.LastIndexByte(other.subtype, '+')
	if otherPlus == -1 {
		return false
	}
	return m.subtype[:plus] == "*" && m.subtype[plus+1:] == other.subtype[otherPlus+1:]
}

// IsCompatibleWith reports whether the two media types match in either
// direction of Includes. This is the symmetric check used during
// content negotiation.
func (m MediaType) IsCompatibleWith(other MediaType) bool {
	return m.Includes(other) || other.Includes(m)
}

// EqualTypeAndSubtype reports whether type and subtype match exactly,
// ignoring parameters.
func (m MediaType) EqualTypeAndSubtype(other MediaType) bool {
	return m.typ == other.typ && m.subtype == other.subtype
}

// Equal reports whether the two media types are equal: same type and
// subtype, and the same parameters regardless of order. Charset values
// compare case-insensitively; quality values compare numerically.
func (m MediaType) Equal(other MediaType) bool {
	if !m.EqualTypeAndSubtype(other) || len(m.params) != len(other.params) {
		return false
	}
	for _, p := range m.params {
		ov, ok := other.Parameter(p.Name)
		if !ok {
			return false
		}
		switch p.Name {
		case "charset":
			if !strings.EqualFold(p.Value, ov) {
				return false
			}
		case "q":
			if m.Quality() != other.Quality() {
				return false
			}
		default:
			if p.Value != ov {
				return false
			}
		}
	}
	return true
}

// String renders the media type in canonical form:
// "type/subtype;name=value;...". Parameter values containing non-token
// characters are quoted.
func (m MediaType) String() string {
	var b strings.Builder
	b.Grow(len(m.typ) + len(m.subtype) + 1 + len(m.params)*16)
	b.WriteString(m.typ)
	b.WriteByte('/')
	b.WriteString(m.subtype)
	for _, p := range m.params {
		b.WriteByte(';')
		b.WriteString(p.Name)
		b.WriteByte('=')
		if isToken(p.Value) {
			b.WriteString(p.Value)
		} else {
			b.WriteString(strconv.Quote(p.Value))
		}
	}
	return b.String()
}

// parseQuality validates and parses a quality value: a number between
// 0.0 and 1.0. RFC 7231 Section 5.3.1 limits qvalues to three decimal
// digits, but extra precision is tolerated here.
func parseQuality(s string) (float64, error) {
	q, err := strconv.ParseFloat(s, 64)
	if err != nil || q < 0 || q > 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuality, s)
	}
	return q, nil
}

// unquote strips surrounding double quotes, if present.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// checkToken validates a type or subtype against the RFC 7230 token
// character set, with '*' permitted for wildcards.
func checkToken(s string) error {
	for i := 0; i < len(s); i++ {
		if !isTokenChar(s[i]) {
			return fmt.Errorf("%w: %q in %q", ErrIllegalCharacter, string(s[i]), s)
		}
	}
	return nil
}

func isToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isTokenChar(s[i]) {
			return false
		}
	}
	return true
}

func isTokenChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}
