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

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"rivaas.dev/mapping"
	"rivaas.dev/mapping/condition"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Outcome labels a lookup result for metrics.
type Outcome string

const (
	OutcomeMatched   Outcome = "matched"
	OutcomeUnmatched Outcome = "unmatched"
	OutcomeAmbiguous Outcome = "ambiguous"
)

// Recorder receives lookup outcomes and timings. The metrics package
// provides OpenTelemetry-backed implementations.
type Recorder interface {
	RecordLookup(ctx context.Context, outcome Outcome, elapsed time.Duration)
}

// Registry holds mapping registrations and resolves requests to the single
// best handler method. Registrations and lookups may interleave from
// multiple goroutines; Freeze makes the registry read-only once startup
// registration is done.
type Registry struct {
	mu     sync.RWMutex
	all    []*entry
	direct map[string][]*entry
	frozen bool

	logger   *slog.Logger
	recorder Recorder
}

// entry pairs a registered mapping with its handler method.
type entry struct {
	info    *mapping.Info
	handler HandlerMethod
}

// match is a mapping that survived narrowing against a request.
type match struct {
	info  *mapping.Info
	entry *entry
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger for registration and lookup diagnostics.
// The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(reg *Registry) {
		if logger != nil {
			reg.logger = logger
		}
	}
}

// WithRecorder sets the lookup metrics recorder. The default records
// nothing.
func WithRecorder(recorder Recorder) Option {
	return func(reg *Registry) {
		if recorder != nil {
			reg.recorder = recorder
		}
	}
}

// NewRegistry builds an empty registry.
func NewRegistry(opts ...Option) *Registry {
	reg := &Registry{
		direct: make(map[string][]*entry),
		logger: noopLogger,
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg
}

// Register adds a mapping for a handler method. Registering a mapping
// equal to an existing one is rejected with ErrDuplicateMapping naming
// both methods, so a configuration mistake surfaces at startup rather
// than as a runtime ambiguity.
func (reg *Registry) Register(info *mapping.Info, h HandlerMethod) error {
	if h.Func == nil {
		return fmt.Errorf("%w: %s", ErrNilHandler, h)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.frozen {
		return fmt.Errorf("%w: cannot register %s", ErrFrozen, h)
	}
	for _, e := range reg.all {
		if e.info.Equal(info) {
			return fmt.Errorf("%w: %s: %s already mapped to %s",
				ErrDuplicateMapping, h, info, e.handler)
		}
	}

	e := &entry{info: info, handler: h}
	reg.all = append(reg.all, e)
	for _, path := range info.DirectPaths() {
		reg.direct[path] = append(reg.direct[path], e)
	}
	reg.logger.Debug("mapping registered", "mapping", info.String(), "handler", h.String())
	return nil
}

// Unregister removes the mapping equal to info. It reports whether a
// registration was removed.
func (reg *Registry) Unregister(info *mapping.Info) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	idx := slices.IndexFunc(reg.all, func(e *entry) bool { return e.info.Equal(info) })
	if idx == -1 {
		return false
	}
	e := reg.all[idx]
	reg.all = slices.Delete(reg.all, idx, idx+1)
	for _, path := range e.info.DirectPaths() {
		reg.direct[path] = slices.DeleteFunc(reg.direct[path], func(c *entry) bool { return c == e })
		if len(reg.direct[path]) == 0 {
			delete(reg.direct, path)
		}
	}
	return true
}

// Freeze makes the registry read-only. Subsequent Register calls fail
// with ErrFrozen; lookups proceed without registration interleaving.
func (reg *Registry) Freeze() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.frozen = true
}

// Len returns the number of registered mappings.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.all)
}

// Lookup resolves the request to its best matching handler. Direct path
// registrations are consulted first; only when none of them match is the
// whole registry scanned, so wildcard-free lookups stay cheap. A request
// no mapping matches yields (nil, nil). Two distinct mappings matching
// equally well yield ErrAmbiguousMapping, except during a CORS pre-flight
// where any of the tied candidates answers the probe equally well.
func (reg *Registry) Lookup(r *http.Request) (*Match, error) {
	start := time.Now()
	m, err := reg.lookup(r)
	switch {
	case err != nil:
		reg.record(r, OutcomeAmbiguous, start)
	case m == nil:
		reg.record(r, OutcomeUnmatched, start)
	default:
		reg.record(r, OutcomeMatched, start)
	}
	return m, err
}

func (reg *Registry) lookup(r *http.Request) (*Match, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	matches := collectMatches(reg.direct[r.URL.Path], r)
	if len(matches) == 0 {
		matches = collectMatches(reg.all, r)
	}
	if len(matches) == 0 {
		return nil, nil
	}

	slices.SortStableFunc(matches, func(a, b match) int {
		return a.info.CompareTo(b.info, r)
	})
	best := matches[0]
	if len(matches) > 1 {
		second := matches[1]
		if best.info.CompareTo(second.info, r) == 0 && !condition.IsPreFlight(r) {
			return nil, fmt.Errorf("%w: %s %s: %s mapped to %s and %s mapped to %s",
				ErrAmbiguousMapping, r.Method, r.URL.Path,
				best.info, best.entry.handler, second.info, second.entry.handler)
		}
	}

	pattern, vars, _ := best.info.Patterns().BestMatch(r.URL.Path)
	reg.logger.Debug("mapping matched",
		"method", r.Method, "path", r.URL.Path, "handler", best.entry.handler.String())
	return &Match{
		Info:    best.info,
		Handler: best.entry.handler,
		Pattern: pattern,
		Vars:    vars,
	}, nil
}

// collectMatches narrows each candidate mapping against the request and
// keeps the survivors.
func collectMatches(candidates []*entry, r *http.Request) []match {
	var matches []match
	for _, e := range candidates {
		if info := e.info.MatchingInfo(r); info != nil {
			matches = append(matches, match{info: info, entry: e})
		}
	}
	return matches
}

func (reg *Registry) record(r *http.Request, outcome Outcome, start time.Time) {
	if reg.recorder != nil {
		reg.recorder.RecordLookup(r.Context(), outcome, time.Since(start))
	}
}
