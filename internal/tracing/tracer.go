// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var _ TracingInterface = (*Tracer)(nil)

type Tracer struct {
	tracer trace.Tracer
}

func (t *Tracer) Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, spanName, opts...)
}

// NewTracer sets the global otel tracer provider up and returns a Tracer
// backed by it. With tracing disabled or no endpoint configured, spans are
// no-ops.
func NewTracer(c *Config) *Tracer {
	t := new(Tracer)

	if !c.Enabled || (c.OtelGRPCEndpoint == "" && c.OtelHTTPEndpoint == "") {
		t.tracer = noop.NewTracerProvider().Tracer("warehouseqr")
		return t
	}

	var client otlptrace.Client
	if c.OtelGRPCEndpoint != "" {
		client = otlptracegrpc.NewClient(
			otlptracegrpc.WithEndpoint(c.OtelGRPCEndpoint),
			otlptracegrpc.WithInsecure(),
		)
	} else {
		client = otlptracehttp.NewClient(
			otlptracehttp.WithEndpoint(c.OtelHTTPEndpoint),
			otlptracehttp.WithInsecure(),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exporter, err := otlptrace.New(ctx, client)
	if err != nil {
		c.Logger.Errorf("failed to create otlp exporter, tracing disabled: %v", err)
		t.tracer = noop.NewTracerProvider().Tracer("warehouseqr")
		return t
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	t.tracer = provider.Tracer("warehouseqr")

	return t
}

// NewNoopTracer returns a tracer that records nothing, for tests.
func NewNoopTracer() *Tracer {
	return &Tracer{
		tracer: noop.NewTracerProvider().Tracer("warehouseqr"),
	}
}
