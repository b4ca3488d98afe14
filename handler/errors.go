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

package handler

import "errors"

var (
	// ErrDuplicateMapping is returned by Register when a mapping equal to
	// an already registered one is submitted for a different handler.
	ErrDuplicateMapping = errors.New("duplicate mapping")

	// ErrAmbiguousMapping is returned by Lookup when two distinct mappings
	// match a request equally well.
	ErrAmbiguousMapping = errors.New("ambiguous mapping")

	// ErrNilHandler is returned by Register when the handler method has no
	// function attached.
	ErrNilHandler = errors.New("nil handler func")

	// ErrFrozen is returned by Register after Freeze has been called.
	ErrFrozen = errors.New("registry is frozen")
)
