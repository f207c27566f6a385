// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package telemetry configures the global OpenTelemetry providers.
package telemetry

import (
	"context"
	"io"

	"github.com/z5labs/parsec/internal/app"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Config controls whether and how telemetry is exported.
type Config struct {
	// Enabled turns on exporting of traces and metrics.
	Enabled     bool   `config:"enabled"`
	ServiceName string `config:"serviceName"`
}

// Init installs tracer and meter providers which export to w and
// returns the hook which flushes and shuts them down. If telemetry is
// not enabled, the global no-op providers are left in place.
func Init(ctx context.Context, cfg Config, w io.Writer) (app.LifecycleHook, error) {
	if !cfg.Enabled {
		return app.LifecycleHookFunc(func(context.Context) error { return nil }), nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName)),
	)
	if err != nil {
		return nil, err
	}

	spanExporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, err
	}

	metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(spanExporter),
	)
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	shutdown := app.ComposeLifecycleHooks(
		app.LifecycleHookFunc(tp.Shutdown),
		app.LifecycleHookFunc(mp.Shutdown),
	)
	return shutdown, nil
}
