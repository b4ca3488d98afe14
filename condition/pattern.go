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

// segKind identifies how a single pattern segment matches a path segment.
type segKind uint8

const (
	segLiteral    segKind = iota // exact text
	segCapture                   // ":name", matches one segment and captures it
	segWildcard                  // "*", matches any single segment
	segMixed                     // contains '*', e.g. "*.json" or "report-*"
	segCatchAll                  // "**", matches zero or more segments
)

// segment is one '/'-delimited element of a compiled pattern.
type segment struct {
	kind   segKind
	text   string // literal text, or capture name
	prefix string // for segMixed: text before the '*'
	suffix string // for segMixed: text after the '*'
}

// pattern is a compiled path pattern. Patterns support literal segments,
// ":name" captures, "*" single-segment wildcards, in-segment wildcards
// such as "*.json", and "**" matching any number of segments.
type pattern struct {
	raw      string
	segments []segment

	// Specificity inputs, precomputed at compile time.
	captures   int
	wildcards  int // single and in-segment wildcards
	catchAlls  int
	literalLen int
}

// compilePattern parses a raw pattern. The empty pattern is legal (it is
// the combine identity) and matches only "" and "/".
func compilePattern(raw string) (*pattern, error) {
	p := &pattern{raw: raw}
	if raw == "" {
		return p, nil
	}

	for seg := range strings.SplitSeq(strings.Trim(raw, "/"), "/") {
		switch {
		case seg == "**":
			p.segments = append(p.segments, segment{kind: segCatchAll})
			p.catchAlls++
		case seg == "*":
			p.segments = append(p.segments, segment{kind: segWildcard})
			p.wildcards++
		case strings.HasPrefix(seg, ":"):
			name := seg[1:]
			if name == "" {
				return nil, fmt.Errorf("%w: %q", ErrEmptyCaptureName, raw)
			}
			p.segments = append(p.segments, segment{kind: segCapture, text: name})
			p.captures++
		case strings.ContainsRune(seg, '*'):
			star := strings.IndexByte(seg, '*')
			p.segments = append(p.segments, segment{
				kind:   segMixed,
				prefix: seg[:star],
				suffix: seg[star+1:],
			})
			p.wildcards++
			p.literalLen += len(seg) - 1
		default:
			p.segments = append(p.segments, segment{kind: segLiteral, text: seg})
			p.literalLen += len(seg)
		}
	}
	return p, nil
}

// match reports whether the pattern matches the given request path and
// returns the captured variables, if any.
func (p *pattern) match(path string) (map[string]string, bool) {
	if p.raw == "" {
		return nil, path == "" || path == "/"
	}

	var parts []string
	trimmed := strings.Trim(path, "/")
	if trimmed != "" {
		parts = strings.Split(trimmed, "/")
	}

	var vars map[string]string
	capture := func(name, value string) {
		if vars == nil {
			vars = make(map[string]string, p.captures)
		}
		vars[name] = value
	}
	if matchSegments(p.segments, parts, capture) {
		return vars, true
	}
	return nil, false
}

// matchSegments matches pattern segments against path segments, recursing
// at "**" so the catch-all may consume zero or more path segments.
func matchSegments(segs []segment, parts []string, capture func(name, value string)) bool {
	for i, seg := range segs {
		if seg.kind == segCatchAll {
			rest := segs[i+1:]
			if len(rest) == 0 {
				return true
			}
			remaining := parts[min(i, len(parts)):]
			for skip := 0; skip <= len(remaining); skip++ {
				if matchSegments(rest, remaining[skip:], capture) {
					return true
				}
			}
			return false
		}
		if i >= len(parts) {
			return false
		}
		if !matchSegment(seg, parts[i], capture) {
			return false
		}
	}
	return len(segs) == len(parts)
}

func matchSegment(seg segment, part string, capture func(name, value string)) bool {
	switch seg.kind {
	case segLiteral:
		return seg.text == part
	case segCapture:
		capture(seg.text, part)
		return true
	case segWildcard:
		return true
	case segMixed:
		return len(part) >= len(seg.prefix)+len(seg.suffix) &&
			strings.HasPrefix(part, seg.prefix) &&
			strings.HasSuffix(part, seg.suffix)
	default:
		return false
	}
}

// isDirect reports whether the pattern contains no wildcards or captures
// and is therefore usable as a direct-lookup key.
func (p *pattern) isDirect() bool {
	return p.captures == 0 && p.wildcards == 0 && p.catchAlls == 0
}

// comparePatterns orders two patterns most-specific-first relative to the
// matched path: an exact match beats everything, then patterns with fewer
// catch-alls, then fewer wildcards and captures, then a longer literal
// portion, then the longer pattern. Equally specific patterns compare as
// equal; that tie is what surfaces ambiguous mappings.
func comparePatterns(a, b *pattern, path string) int {
	aExact, bExact := a.raw == path, b.raw == path
	switch {
	case aExact && !bExact:
		return -1
	case bExact && !aExact:
		return 1
	}
	if d := a.catchAlls - b.catchAlls; d != 0 {
		return d
	}
	if d := (a.wildcards + a.captures) - (b.wildcards + b.captures); d != 0 {
		return d
	}
	if d := b.literalLen - a.literalLen; d != 0 {
		return d
	}
	return len(b.raw) - len(a.raw)
}
