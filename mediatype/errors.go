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

import "errors"

var (
	// ErrEmptyMediaType indicates that an empty string was given where a
	// media type was expected.
	ErrEmptyMediaType = errors.New("media type must not be empty")

	// ErrMissingSlash indicates that a media type string does not contain
	// a '/' separating type and subtype.
	ErrMissingSlash = errors.New("media type must contain '/'")

	// ErrEmptyType indicates that the type portion of a media type is empty.
	ErrEmptyType = errors.New("media type has an empty type")

	// ErrEmptySubtype indicates that the subtype portion of a media type is empty.
	ErrEmptySubtype = errors.New("media type has an empty subtype")

	// ErrWildcardType indicates an illegal wildcard combination such as "*/json".
	ErrWildcardType = errors.New("wildcard type is legal only in '*/*' or 'type/*'")

	// ErrIllegalCharacter indicates that a media type token contains a
	// character outside the RFC 7230 token set.
	ErrIllegalCharacter = errors.New("media type contains an illegal character")

	// ErrMalformedParameter indicates a media type parameter without a value.
	ErrMalformedParameter = errors.New("media type parameter must be of the form name=value")

	// ErrInvalidQuality indicates a quality value that is not a number
	// between 0.0 and 1.0.
	ErrInvalidQuality = errors.New("quality value must be a number between 0.0 and 1.0")
)
