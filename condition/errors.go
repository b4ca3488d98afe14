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

import "errors"

var (
	// ErrEmptyExpression indicates an empty name/value expression.
	ErrEmptyExpression = errors.New("expression must not be empty")

	// ErrEmptyExpressionName indicates an expression with an empty name,
	// such as "!" or "=value".
	ErrEmptyExpressionName = errors.New("expression name must not be empty")

	// ErrEmptyCaptureName indicates a pattern capture segment without a
	// name, such as "/users/:".
	ErrEmptyCaptureName = errors.New("capture segment must have a name")

	// ErrInvalidMethod indicates an HTTP method that is not a valid token.
	ErrInvalidMethod = errors.New("invalid HTTP method")
)
