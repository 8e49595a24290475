package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/recheck/internal/adapters/telemetry"
	"go.trai.ch/recheck/internal/core/ports"
	"go.trai.ch/recheck/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func setupMonitor(t *testing.T) (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr, tp
}

func TestOTelTracer_EmitPlanAddsEvent(t *testing.T) {
	sr, tp := setupMonitor(t)
	tracer := telemetry.NewOTelTracer("test-tracer")

	// No span in context: nothing is recorded.
	tracer.EmitPlan(context.Background(), []string{"PROJ-1"})

	ctx, span := tp.Tracer("test").Start(context.Background(), "root")
	tracer.EmitPlan(ctx, []string{"PROJ-1", "PROJ-2"})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "plan_emitted", events[0].Name)
	assert.Equal(t, []string{"PROJ-1", "PROJ-2"}, events[0].Attributes[0].Value.AsStringSlice())
}

func TestOTelTracer_StartSetsKind(t *testing.T) {
	sr, _ := setupMonitor(t)
	tracer := telemetry.NewOTelTracer("test-tracer")

	_, span := tracer.Start(context.Background(), "PROJ-1", ports.WithKind(telemetry.SpanKindTicket))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "PROJ-1", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String(telemetry.KindAttribute, "ticket"))
}

func TestOTelSpan_SetAttribute(t *testing.T) {
	sr, _ := setupMonitor(t)
	tracer := telemetry.NewOTelTracer("test-tracer")

	_, span := tracer.Start(context.Background(), "attr-test")
	span.SetAttribute("str", "val")
	span.SetAttribute("int", 123)
	span.SetAttribute("int64", int64(456))
	span.SetAttribute("float", 3.14)
	span.SetAttribute("bool", true)
	span.SetAttribute("slice", []string{"a", "b"})
	span.SetAttribute("duration", 2*time.Second)
	span.SetAttribute("unknown", struct{}{})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	attrs := map[string]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value
	}

	assert.Equal(t, "val", attrs["str"].AsString())
	assert.Equal(t, int64(123), attrs["int"].AsInt64())
	assert.Equal(t, int64(456), attrs["int64"].AsInt64())
	assert.InEpsilon(t, 3.14, attrs["float"].AsFloat64(), 0.001)
	assert.True(t, attrs["bool"].AsBool())
	assert.Equal(t, []string{"a", "b"}, attrs["slice"].AsStringSlice())
	assert.Equal(t, "2s", attrs["duration"].AsString())
	assert.Equal(t, "{}", attrs["unknown"].AsString())
}

func TestOTelSpan_RecordError(t *testing.T) {
	sr, _ := setupMonitor(t)
	tracer := telemetry.NewOTelTracer("test-tracer")

	_, span := tracer.Start(context.Background(), "failing")
	span.RecordError(errors.New("boom"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "boom", spans[0].Status().Description)
}

func TestOTelTracer_WithRenderer(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	tracer := telemetry.NewOTelTracer("test-tracer").WithRenderer(renderer)

	gomock.InOrder(
		renderer.EXPECT().OnPlan([]string{"PROJ-1", "PROJ-2"}),
		renderer.EXPECT().OnTicketStart(gomock.Any(), "PROJ-1", gomock.Any()),
		renderer.EXPECT().OnTicketComplete(gomock.Any(), gomock.Any(), nil),
		renderer.EXPECT().OnTicketStart(gomock.Any(), "PROJ-2", gomock.Any()),
		renderer.EXPECT().OnTicketComplete(gomock.Any(), gomock.Any(), gomock.Any()).
			Do(func(_ string, _ time.Time, err error) {
				assert.EqualError(t, err, "store unavailable")
			}),
	)

	ctx := context.Background()
	tracer.EmitPlan(ctx, []string{"PROJ-1", "PROJ-2"})

	ctx1, ticket := tracer.Start(ctx, "PROJ-1", ports.WithKind(telemetry.SpanKindTicket))
	_, field := tracer.Start(ctx1, "PROJ-1/title", ports.WithKind("field"))
	field.End()
	ticket.End()

	_, failing := tracer.Start(ctx, "PROJ-2", ports.WithKind(telemetry.SpanKindTicket))
	failing.RecordError(errors.New("store unavailable"))
	failing.End()

	require.NoError(t, tracer.Shutdown(ctx))

	// Detached: nothing more reaches the renderer.
	tracer.EmitPlan(ctx, []string{"PROJ-3"})
	_, after := tracer.Start(ctx, "PROJ-3", ports.WithKind(telemetry.SpanKindTicket))
	after.End()
}

func TestOTelTracer_ShutdownWithoutRenderer(t *testing.T) {
	tracer := telemetry.NewOTelTracer("test-tracer")
	require.NoError(t, tracer.Shutdown(context.Background()))
}
