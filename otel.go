package transit

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// startDispatchSpan creates the span covering one dispatch attempt.
// Uses the global tracer; the caller is responsible for ending the span.
//
//nolint:spancheck // Span lifecycle managed by caller (factory pattern)
func startDispatchSpan[T any](ctx context.Context, e *Engine[T], target string) (context.Context, trace.Span) {
	tracer := otel.Tracer("transit")

	ctx, span := tracer.Start(ctx, "transit.dispatch")
	span.SetAttributes(
		attribute.String("machine", sanitizeMachine(e.name)),
		attribute.String("engine_id", e.id),
		attribute.String("from_state", e.current),
		attribute.String("to_state", target),
	)

	return ctx, span
}

// endDispatchSpan records the dispatch outcome and ends the span.
func endDispatchSpan(span trace.Span, ok bool, err error) {
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case !ok:
		span.SetStatus(codes.Error, "transition rejected")
	default:
		span.SetStatus(codes.Ok, "completed")
	}

	span.End()
}
