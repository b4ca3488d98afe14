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

// Package dispatch routes messages to handler methods registered under a
// host-defined mapping key.
//
// Unlike package handler, which is fixed to HTTP requests and
// mapping.Info, the Dispatcher is generic: the host supplies a
// Protocol[T] telling it how to extract a destination from a message,
// which destinations a mapping answers directly, and how mappings match,
// rank and compare for equality. The Dispatcher contributes the shared
// machinery: the registration table, the direct-lookup index, best-match
// selection with ambiguity detection, asynchronous invocation and
// error resolution.
//
// HandleMessage never blocks on the handler: the invocation runs on its
// own goroutine and the returned channel carries at most one error before
// closing. Handler errors are resolved locally, first by the handler
// bean's own error resolver, then by registered advice; an error no
// resolver claims is logged and swallowed.
package dispatch
