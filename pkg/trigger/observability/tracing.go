package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "trigger"

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartDispatchSpan starts a span covering one trigger call.
	StartDispatchSpan(ctx context.Context, fullName, eventID string, subscribers int) (context.Context, trace.Span)

	// StartHandlerSpan starts a child span for one subscriber invocation.
	StartHandlerSpan(ctx context.Context, fullName string, index int, handler string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

type otelSpanManager struct {
	tracer trace.Tracer
}

// NewSpanManager returns a SpanManager that uses the global OTel tracer
// provider. Configure it first:
//
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return NewSpanManagerWithProvider(otel.GetTracerProvider())
}

// NewSpanManagerWithProvider returns a SpanManager bound to tp.
func NewSpanManagerWithProvider(tp trace.TracerProvider) SpanManager {
	return &otelSpanManager{tracer: tp.Tracer(instrumentationName)}
}

func (m *otelSpanManager) StartDispatchSpan(ctx context.Context, fullName, eventID string, subscribers int) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "trigger.dispatch",
		trace.WithAttributes(
			attribute.String("event.name", fullName),
			attribute.String("event.id", eventID),
			attribute.Int("event.subscribers", subscribers),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (m *otelSpanManager) StartHandlerSpan(ctx context.Context, fullName string, index int, handler string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "trigger.handler",
		trace.WithAttributes(
			attribute.String("event.name", fullName),
			attribute.Int("handler.index", index),
			attribute.String("handler.type", handler),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
