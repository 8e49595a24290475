package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/recheck/internal/core/ports"
)

// SpanKindTicket is the kind of span forwarded to the renderer.
const SpanKindTicket = "ticket"

// Bridge implements sdktrace.SpanProcessor to forward ticket spans to a Renderer.
// Spans of any other kind are ignored.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a new Bridge.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if !b.forwards(s) {
		return
	}
	b.renderer.OnTicketStart(s.SpanContext().SpanID().String(), s.Name(), s.StartTime())
}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if !b.forwards(s) {
		return
	}

	var err error
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "ticket failed"
		}
		err = errors.New(desc)
	}

	b.renderer.OnTicketComplete(s.SpanContext().SpanID().String(), s.EndTime(), err)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

func (b *Bridge) forwards(s sdktrace.ReadOnlySpan) bool {
	if b.renderer == nil || !s.SpanContext().IsValid() {
		return false
	}
	for _, kv := range s.Attributes() {
		if string(kv.Key) == KindAttribute {
			return kv.Value.AsString() == SpanKindTicket
		}
	}
	return false
}
