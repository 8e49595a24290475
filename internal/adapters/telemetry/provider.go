// Package telemetry adapts OpenTelemetry to the ports.Tracer interface and bridges
// finished spans to a ports.Renderer.
package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/recheck/internal/core/ports"
)

// KindAttribute is the span attribute carrying ports.SpanConfig.Kind.
const KindAttribute = "recheck.kind"

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
type OTelTracer struct {
	name string

	mu       sync.RWMutex
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
	renderer ports.Renderer
}

// NewOTelTracer creates a new OTelTracer with the given instrumentation name.
// Until a renderer is attached spans go to the global provider.
func NewOTelTracer(name string) *OTelTracer {
	return &OTelTracer{
		name:   name,
		tracer: otel.Tracer(name),
	}
}

// WithRenderer routes span lifecycle events and plans to renderer.
// A previously attached renderer is detached.
func (t *OTelTracer) WithRenderer(renderer ports.Renderer) *OTelTracer {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewBridge(renderer)))

	t.mu.Lock()
	old := t.provider
	t.provider = tp
	t.tracer = tp.Tracer(t.name)
	t.renderer = renderer
	t.mu.Unlock()

	if old != nil {
		_ = old.Shutdown(context.Background())
	}
	return t
}

// Shutdown detaches the renderer and flushes the span pipeline.
func (t *OTelTracer) Shutdown(ctx context.Context) error {
	t.mu.Lock()
	tp := t.provider
	t.provider = nil
	t.renderer = nil
	t.tracer = otel.Tracer(t.name)
	t.mu.Unlock()

	if tp == nil {
		return nil
	}
	return tp.Shutdown(ctx)
}

// Start creates a new span tagged with the configured kind.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var startOpts []trace.SpanStartOption
	if cfg.Kind != "" {
		startOpts = append(startOpts, trace.WithAttributes(attribute.String(KindAttribute, cfg.Kind)))
	}

	t.mu.RLock()
	tracer := t.tracer
	t.mu.RUnlock()

	ctx, span := tracer.Start(ctx, name, startOpts...)
	return ctx, &OTelSpan{span: span}
}

// EmitPlan records the planned ticket keys on the current span and hands them to the renderer.
func (t *OTelTracer) EmitPlan(ctx context.Context, ticketKeys []string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("tickets", ticketKeys),
		))
	}

	t.mu.RLock()
	renderer := t.renderer
	t.mu.RUnlock()

	if renderer != nil {
		renderer.OnPlan(ticketKeys)
	}
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span trace.Span
}

// End completes the span.
func (s *OTelSpan) End() {
	s.span.End()
}

// RecordError records an error for the span and marks it failed.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	case fmt.Stringer:
		s.span.SetAttributes(attribute.String(key, v.String()))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}
