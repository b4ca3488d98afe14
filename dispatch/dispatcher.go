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

package dispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Handler is a message handler function. A non-nil error enters error
// resolution; it does not reach the completion channel.
type Handler func(ctx context.Context, msg *Message) error

// HandlerMethod identifies a registered handler function together with
// the component it belongs to.
type HandlerMethod struct {
	Bean string
	Name string
	Func Handler
}

// String renders the method as "Bean#Name".
func (h HandlerMethod) String() string {
	if h.Bean == "" {
		return h.Name
	}
	return h.Bean + "#" + h.Name
}

// Protocol supplies the mapping semantics the Dispatcher is generic over.
type Protocol[T any] interface {
	// Destination extracts the lookup key from a message.
	Destination(msg *Message) string

	// DirectLookup lists the destinations the mapping answers without a
	// full scan, or nil when the mapping only matches via Match.
	DirectLookup(m T) []string

	// Match narrows the mapping against a message. False vetoes the
	// candidate.
	Match(m T, msg *Message) (T, bool)

	// Compare ranks two matched mappings for the same message,
	// most specific first.
	Compare(a, b T, msg *Message) int

	// Equal reports whether two mappings are interchangeable; registering
	// both is a configuration error.
	Equal(a, b T) bool
}

// Outcome labels a dispatch result for metrics.
type Outcome string

const (
	OutcomeDispatched Outcome = "dispatched"
	OutcomeUnmatched  Outcome = "unmatched"
	OutcomeAmbiguous  Outcome = "ambiguous"
)

// Recorder receives dispatch outcomes and timings. The metrics package
// provides OpenTelemetry-backed implementations.
type Recorder interface {
	RecordDispatch(ctx context.Context, outcome Outcome, elapsed time.Duration)
}

// Dispatcher routes messages to the best-matching registered handler.
// Registration happens at startup; HandleMessage may then be called from
// any number of goroutines.
type Dispatcher[T any] struct {
	protocol Protocol[T]

	mu     sync.RWMutex
	all    []*entry[T]
	direct map[string][]*entry[T]

	resolvers resolverCache
	advice    []Resolver

	logger   *slog.Logger
	recorder Recorder
}

type entry[T any] struct {
	mapping T
	handler HandlerMethod
}

// Option configures a Dispatcher.
type Option[T any] func(*Dispatcher[T])

// WithLogger sets the logger for dispatch diagnostics. The default
// discards everything.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(d *Dispatcher[T]) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithRecorder sets the dispatch metrics recorder.
func WithRecorder[T any](recorder Recorder) Option[T] {
	return func(d *Dispatcher[T]) {
		if recorder != nil {
			d.recorder = recorder
		}
	}
}

// WithResolverFactory sets the factory building each handler bean's own
// error resolver. The factory result is cached per bean.
func WithResolverFactory[T any](factory ResolverFactory) Option[T] {
	return func(d *Dispatcher[T]) { d.resolvers.factory = factory }
}

// WithAdvice appends cross-cutting error resolvers consulted, in order,
// after the handler bean's own resolver.
func WithAdvice[T any](advice ...Resolver) Option[T] {
	return func(d *Dispatcher[T]) { d.advice = append(d.advice, advice...) }
}

// NewDispatcher builds a dispatcher around the given protocol.
func NewDispatcher[T any](protocol Protocol[T], opts ...Option[T]) *Dispatcher[T] {
	d := &Dispatcher[T]{
		protocol: protocol,
		direct:   make(map[string][]*entry[T]),
		logger:   noopLogger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register adds a mapping for a handler method. A mapping equal to an
// already registered one is rejected with ErrDuplicateMapping naming both
// methods.
func (d *Dispatcher[T]) Register(m T, h HandlerMethod) error {
	if h.Func == nil {
		return fmt.Errorf("%w: %s", ErrNilHandler, h)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, e := range d.all {
		if d.protocol.Equal(e.mapping, m) {
			return fmt.Errorf("%w: %s: already mapped to %s", ErrDuplicateMapping, h, e.handler)
		}
	}

	e := &entry[T]{mapping: m, handler: h}
	d.all = append(d.all, e)
	for _, dest := range d.protocol.DirectLookup(m) {
		d.direct[dest] = append(d.direct[dest], e)
	}
	d.logger.Debug("mapping registered", "handler", h.String())
	return nil
}

// Len returns the number of registered mappings.
func (d *Dispatcher[T]) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.all)
}

// HandleMessage resolves the message to its best-matching handler and
// invokes it on its own goroutine. The returned channel carries at most
// one error and is closed on completion:
//
//   - zero matching mappings complete empty; no match is not an error
//   - an ambiguous match delivers ErrAmbiguousMapping naming both methods
//   - a handler error is resolved locally and never reaches the channel;
//     an error no resolver claims is logged and swallowed
func (d *Dispatcher[T]) HandleMessage(ctx context.Context, msg *Message) <-chan error {
	done := make(chan error, 1)
	start := time.Now()

	best, err := d.bestMatch(msg)
	if err != nil {
		d.record(ctx, OutcomeAmbiguous, start)
		done <- err
		close(done)
		return done
	}
	if best == nil {
		d.record(ctx, OutcomeUnmatched, start)
		d.logger.Debug("no mapping for message",
			"message_id", msg.ID, "destination", d.protocol.Destination(msg))
		close(done)
		return done
	}

	go func() {
		defer close(done)
		d.invoke(ctx, best, msg)
		d.record(ctx, OutcomeDispatched, start)
	}()
	return done
}

// bestMatch finds the single best mapping for the message, or nil when
// nothing matches.
func (d *Dispatcher[T]) bestMatch(msg *Message) (*entry[T], error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	type match struct {
		narrowed T
		entry    *entry[T]
	}
	collect := func(candidates []*entry[T]) []match {
		var matches []match
		for _, e := range candidates {
			if narrowed, ok := d.protocol.Match(e.mapping, msg); ok {
				matches = append(matches, match{narrowed: narrowed, entry: e})
			}
		}
		return matches
	}

	matches := collect(d.direct[d.protocol.Destination(msg)])
	if len(matches) == 0 {
		matches = collect(d.all)
	}
	if len(matches) == 0 {
		return nil, nil
	}

	slices.SortStableFunc(matches, func(a, b match) int {
		return d.protocol.Compare(a.narrowed, b.narrowed, msg)
	})
	best := matches[0]
	if len(matches) > 1 {
		second := matches[1]
		if d.protocol.Compare(best.narrowed, second.narrowed, msg) == 0 {
			return nil, fmt.Errorf("%w: message %s to %q: %s and %s match equally",
				ErrAmbiguousMapping, msg.ID, d.protocol.Destination(msg),
				best.entry.handler, second.entry.handler)
		}
	}
	return best.entry, nil
}

// invoke runs the handler and routes a failure through error resolution.
func (d *Dispatcher[T]) invoke(ctx context.Context, e *entry[T], msg *Message) {
	err := e.handler.Func(ctx, msg)
	if err == nil {
		return
	}
	if fn := d.resolveError(e.handler.Bean, err); fn != nil {
		fn(ctx, msg, err)
		return
	}
	d.logger.Error("unhandled dispatch error",
		"message_id", msg.ID, "handler", e.handler.String(), "error", err)
}

// resolveError searches the bean's own resolver first, then the advice
// chain in registration order. The first resolver claiming the error wins.
func (d *Dispatcher[T]) resolveError(bean string, err error) ErrorFunc {
	if r := d.resolvers.resolve(bean); r != nil {
		if fn := r.Resolve(err); fn != nil {
			return fn
		}
	}
	for _, r := range d.advice {
		if fn := r.Resolve(err); fn != nil {
			return fn
		}
	}
	return nil
}

func (d *Dispatcher[T]) record(ctx context.Context, outcome Outcome, start time.Time) {
	if d.recorder != nil {
		d.recorder.RecordDispatch(ctx, outcome, time.Since(start))
	}
}
