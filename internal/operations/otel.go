package operations

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	TracerName = "idpflow.operations"
)

// startProcedureSpan opens the span covering a whole procedure run
func startProcedureSpan(ctx context.Context, tracer trace.Tracer, runID string, p Procedure) (context.Context, trace.Span) {
	return tracer.Start(ctx, "procedure."+string(p.ID()),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("procedure.id", string(p.ID())),
			attribute.StringSlice("procedure.inputs", p.Inputs()),
			attribute.String("procedure.output", p.Output()),
		),
	)
}

// traceStep runs fn in a child span of the current procedure span
func traceStep(ctx context.Context, name string, fn func(context.Context) error) error {
	tracer := trace.SpanFromContext(ctx).TracerProvider().Tracer(TracerName)
	ctx, span := tracer.Start(ctx, name)
	defer span.End()

	if err := fn(ctx); err != nil {
		recordSpanError(span, err)
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
