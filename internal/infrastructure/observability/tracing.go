package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "hr-server/chatbot-api"
)

// GetTracer returns the tracer for the chatbot-api service.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartTurnSpan starts a new span for one chat turn.
func StartTurnSpan(ctx context.Context, sessionID, intent string) (context.Context, trace.Span) {
	ctx, span := GetTracer().Start(ctx, "chat.turn",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("chat.session_id", sessionID),
			attribute.String("chat.intent", intent),
		),
	)
	return ctx, span
}

// StartPushSpan starts a new span for one consumed push frame.
func StartPushSpan(ctx context.Context, frameType string) (context.Context, trace.Span) {
	ctx, span := GetTracer().Start(ctx, "push."+frameType,
		trace.WithSpanKind(trace.SpanKindConsumer),
	)
	return ctx, span
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
