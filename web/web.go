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

// Package web serves a handler.Registry over HTTP.
//
// Dispatcher is a front controller: every request goes through the
// registry's best-match lookup and the selected handler method answers it.
// The matched mapping, pattern and path variables travel in the request
// context:
//
//	d := web.MustNew(reg)
//	// inside a handler:
//	match, _ := web.MatchFromContext(r.Context())
//	id := web.Vars(r)["id"]
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"rivaas.dev/mapping/handler"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// ErrNilRegistry is returned by New when no registry is supplied.
var ErrNilRegistry = errors.New("web: nil registry")

// ctxKey keys the dispatch match in the request context.
type ctxKey struct{}

// serverTimeouts bundles the http.Server timeout knobs.
type serverTimeouts struct {
	readHeader time.Duration
	read       time.Duration
	write      time.Duration
	idle       time.Duration
}

func defaultServerTimeouts() *serverTimeouts {
	return &serverTimeouts{
		readHeader: 5 * time.Second,
		read:       15 * time.Second,
		write:      30 * time.Second,
		idle:       60 * time.Second,
	}
}

// Dispatcher is the http.Handler front controller over a registry.
type Dispatcher struct {
	registry *handler.Registry
	noRoute  http.HandlerFunc
	logger   *slog.Logger

	enableH2C bool
	timeouts  *serverTimeouts

	serverMu sync.Mutex
	server   *http.Server
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithNoRoute sets the handler invoked when no mapping matches. The
// default replies 404.
func WithNoRoute(h http.HandlerFunc) Option {
	return func(d *Dispatcher) {
		if h != nil {
			d.noRoute = h
		}
	}
}

// WithLogger sets the logger for dispatch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithH2C enables HTTP/2 cleartext upgrades on Serve. Use only in
// development or behind a trusted load balancer.
func WithH2C(enable bool) Option {
	return func(d *Dispatcher) { d.enableH2C = enable }
}

// WithServerTimeouts overrides the production-safe server timeout
// defaults used by Serve and ServeTLS.
func WithServerTimeouts(readHeader, read, write, idle time.Duration) Option {
	return func(d *Dispatcher) {
		d.timeouts = &serverTimeouts{
			readHeader: readHeader,
			read:       read,
			write:      write,
			idle:       idle,
		}
	}
}

// New builds a dispatcher over the registry.
func New(registry *handler.Registry, opts ...Option) (*Dispatcher, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	d := &Dispatcher{
		registry: registry,
		noRoute:  func(w http.ResponseWriter, r *http.Request) { http.NotFound(w, r) },
		logger:   noopLogger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// MustNew is like New but panics on error.
func MustNew(registry *handler.Registry, opts ...Option) *Dispatcher {
	d, err := New(registry, opts...)
	if err != nil {
		panic(fmt.Sprintf("web.MustNew: %v", err))
	}
	return d
}

// ServeHTTP resolves the request through the registry. An ambiguous
// mapping is a server-side configuration error and answers 500; no match
// falls through to the no-route handler.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	match, err := d.registry.Lookup(r)
	if err != nil {
		d.logger.Error("ambiguous mapping", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if match == nil {
		d.noRoute(w, r)
		return
	}

	ctx := context.WithValue(r.Context(), ctxKey{}, match)
	match.Handler.Func(w, r.WithContext(ctx))
}

// MatchFromContext returns the dispatch match stored by ServeHTTP.
func MatchFromContext(ctx context.Context) (*handler.Match, bool) {
	match, ok := ctx.Value(ctxKey{}).(*handler.Match)
	return match, ok
}

// Vars returns the path variables captured for the request, or nil when
// the request was not dispatched through a Dispatcher.
func Vars(r *http.Request) map[string]string {
	if match, ok := MatchFromContext(r.Context()); ok {
		return match.Vars
	}
	return nil
}

// Serve starts the HTTP server on the specified address. It blocks until
// the server exits; use Shutdown from another goroutine for graceful
// shutdown. H2C is enabled when configured via WithH2C.
func (d *Dispatcher) Serve(addr string) error {
	h := http.Handler(d)
	if d.enableH2C {
		h = h2c.NewHandler(h, &http2.Server{})
		d.logger.Warn("h2c enabled; use only in dev or behind a trusted LB")
	}

	timeouts := d.timeouts
	if timeouts == nil {
		timeouts = defaultServerTimeouts()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: timeouts.readHeader,
		ReadTimeout:       timeouts.read,
		WriteTimeout:      timeouts.write,
		IdleTimeout:       timeouts.idle,
	}

	d.serverMu.Lock()
	d.server = srv
	d.serverMu.Unlock()

	return srv.ListenAndServe()
}

// ServeTLS starts the HTTPS server. HTTP/2 is negotiated via ALPN.
func (d *Dispatcher) ServeTLS(addr, certFile, keyFile string) error {
	timeouts := d.timeouts
	if timeouts == nil {
		timeouts = defaultServerTimeouts()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           d,
		ReadHeaderTimeout: timeouts.readHeader,
		ReadTimeout:       timeouts.read,
		WriteTimeout:      timeouts.write,
		IdleTimeout:       timeouts.idle,
	}

	d.serverMu.Lock()
	d.server = srv
	d.serverMu.Unlock()

	return srv.ListenAndServeTLS(certFile, keyFile)
}

// Shutdown gracefully stops a running server. It is a no-op when no
// server is running.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.serverMu.Lock()
	srv := d.server
	d.server = nil
	d.serverMu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
