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

// Package mediatype provides an immutable media type value with parsing,
// wildcard inclusion checks, and quality-value aware specificity ordering
// per RFC 2616 Section 14.1 and RFC 7231 Section 5.3.2.
//
// A MediaType is a type/subtype pair plus an ordered set of parameters
// with case-insensitive names. The zero value is not a valid media type;
// use Parse, MustParse, or New.
//
// Example:
//
//	mt := mediatype.MustParse("application/json;q=0.8")
//	mt.Type()     // "application"
//	mt.Subtype()  // "json"
//	mt.Quality()  // 0.8
//
// SortBySpecificity orders a list most-specific-first, so that
// "audio/basic" sorts before "audio/*", which sorts before "*/*".
package mediatype
