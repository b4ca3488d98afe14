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

// Package metrics instruments mapping lookups and message dispatches with
// OpenTelemetry. The Recorder satisfies both handler.Recorder and
// dispatch.Recorder, so one instance serves a registry and a dispatcher:
//
//	rec, err := metrics.New(metrics.WithServiceName("orders"))
//	reg := handler.NewRegistry(handler.WithRecorder(rec))
//
// The Prometheus provider is the default; Handler exposes the scrape
// endpoint. The stdout provider periodically dumps readings for
// development.
package metrics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"rivaas.dev/mapping/dispatch"
	"rivaas.dev/mapping/handler"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Provider selects the metrics export backend.
type Provider string

const (
	// PrometheusProvider exports via a pull-based Prometheus registry.
	PrometheusProvider Provider = "prometheus"

	// StdoutProvider periodically writes readings to stdout.
	StdoutProvider Provider = "stdout"
)

// Recorder records lookup and dispatch outcomes as OpenTelemetry counters
// and duration histograms.
type Recorder struct {
	provider       Provider
	serviceName    string
	serviceVersion string
	exportInterval time.Duration
	logger         *slog.Logger

	meterProvider      metric.MeterProvider
	sdkProvider        *sdkmetric.MeterProvider
	prometheusRegistry *promclient.Registry
	prometheusHandler  http.Handler

	serviceAttrs []attribute.KeyValue

	lookupCount      metric.Int64Counter
	lookupDuration   metric.Float64Histogram
	dispatchCount    metric.Int64Counter
	dispatchDuration metric.Float64Histogram
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithProvider selects the export backend. Prometheus is the default.
func WithProvider(p Provider) Option {
	return func(r *Recorder) { r.provider = p }
}

// WithServiceName sets the service.name attribute on every measurement.
func WithServiceName(name string) Option {
	return func(r *Recorder) { r.serviceName = name }
}

// WithServiceVersion sets the service.version attribute on every
// measurement.
func WithServiceVersion(version string) Option {
	return func(r *Recorder) { r.serviceVersion = version }
}

// WithExportInterval sets the reader interval for push-based providers.
func WithExportInterval(interval time.Duration) Option {
	return func(r *Recorder) {
		if interval > 0 {
			r.exportInterval = interval
		}
	}
}

// WithMeterProvider supplies an external meter provider; the built-in
// provider setup is skipped and Handler returns no scrape endpoint.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(r *Recorder) { r.meterProvider = mp }
}

// WithLogger sets the logger for provider lifecycle diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New builds a recorder and initializes its provider and instruments.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		provider:       PrometheusProvider,
		serviceName:    "mapping",
		exportInterval: 30 * time.Second,
		logger:         noopLogger,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.serviceAttrs = []attribute.KeyValue{attribute.String("service.name", r.serviceName)}
	if r.serviceVersion != "" {
		r.serviceAttrs = append(r.serviceAttrs, attribute.String("service.version", r.serviceVersion))
	}

	if r.meterProvider == nil {
		if err := r.initProvider(); err != nil {
			return nil, err
		}
	}
	if err := r.initInstruments(); err != nil {
		return nil, err
	}
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("metrics.MustNew: %v", err))
	}
	return r
}

func (r *Recorder) initProvider() error {
	switch r.provider {
	case PrometheusProvider:
		r.prometheusRegistry = promclient.NewRegistry()
		exporter, err := prometheus.New(prometheus.WithRegisterer(r.prometheusRegistry))
		if err != nil {
			return fmt.Errorf("metrics: creating prometheus exporter: %w", err)
		}
		r.sdkProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
		r.prometheusHandler = promhttp.HandlerFor(r.prometheusRegistry, promhttp.HandlerOpts{})
	case StdoutProvider:
		exporter, err := stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("metrics: creating stdout exporter: %w", err)
		}
		reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(r.exportInterval))
		r.sdkProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	default:
		return fmt.Errorf("metrics: unsupported provider %q", r.provider)
	}
	r.meterProvider = r.sdkProvider
	r.logger.Debug("metrics provider initialized", "provider", string(r.provider))
	return nil
}

func (r *Recorder) initInstruments() error {
	meter := r.meterProvider.Meter("rivaas.dev/mapping/metrics")

	var err error
	r.lookupCount, err = meter.Int64Counter("mapping_lookups_total",
		metric.WithDescription("Mapping lookups by outcome"))
	if err != nil {
		return fmt.Errorf("metrics: creating lookup counter: %w", err)
	}
	r.lookupDuration, err = meter.Float64Histogram("mapping_lookup_duration_seconds",
		metric.WithDescription("Mapping lookup duration in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return fmt.Errorf("metrics: creating lookup histogram: %w", err)
	}
	r.dispatchCount, err = meter.Int64Counter("mapping_dispatches_total",
		metric.WithDescription("Message dispatches by outcome"))
	if err != nil {
		return fmt.Errorf("metrics: creating dispatch counter: %w", err)
	}
	r.dispatchDuration, err = meter.Float64Histogram("mapping_dispatch_duration_seconds",
		metric.WithDescription("Message dispatch duration in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return fmt.Errorf("metrics: creating dispatch histogram: %w", err)
	}
	return nil
}

// RecordLookup records one registry lookup.
func (r *Recorder) RecordLookup(ctx context.Context, outcome handler.Outcome, elapsed time.Duration) {
	attrs := metric.WithAttributes(append(r.serviceAttrs,
		attribute.String("outcome", string(outcome)))...)
	r.lookupCount.Add(ctx, 1, attrs)
	r.lookupDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordDispatch records one message dispatch.
func (r *Recorder) RecordDispatch(ctx context.Context, outcome dispatch.Outcome, elapsed time.Duration) {
	attrs := metric.WithAttributes(append(r.serviceAttrs,
		attribute.String("outcome", string(outcome)))...)
	r.dispatchCount.Add(ctx, 1, attrs)
	r.dispatchDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// Handler returns the Prometheus scrape handler, or an error for
// providers without a pull endpoint.
func (r *Recorder) Handler() (http.Handler, error) {
	if r.prometheusHandler == nil {
		return nil, fmt.Errorf("metrics: no scrape endpoint for provider %q", r.provider)
	}
	return r.prometheusHandler, nil
}

// ForceFlush pushes pending readings through the exporter.
func (r *Recorder) ForceFlush(ctx context.Context) error {
	if r.sdkProvider == nil {
		return nil
	}
	return r.sdkProvider.ForceFlush(ctx)
}

// Shutdown flushes and stops the built-in provider. Externally supplied
// meter providers are the caller's to shut down.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r.sdkProvider == nil {
		return nil
	}
	r.logger.Debug("shutting down metrics provider", "provider", string(r.provider))
	return r.sdkProvider.Shutdown(ctx)
}

// Interface guards: one recorder serves both the registry and the
// dispatcher.
var (
	_ handler.Recorder  = (*Recorder)(nil)
	_ dispatch.Recorder = (*Recorder)(nil)
)
