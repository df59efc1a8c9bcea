package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

// Instrumentation traces and measures client calls.
type Instrumentation struct {
	tracer  trace.Tracer
	metrics *Metrics
}

// Outcome describes how a call ended.
type Outcome struct {
	Status    int
	ErrorCode string
	RequestID string
	Err       error
}

// NewInstrumentation builds instruments on the given providers. Nil
// providers fall back to the global ones.
func NewInstrumentation(tp trace.TracerProvider, mp metric.MeterProvider) *Instrumentation {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	metrics, err := NewMetrics(mp.Meter(InstrumentationName))
	if err != nil {
		metrics, _ = NewMetrics(noop.NewMeterProvider().Meter(InstrumentationName))
	}
	return &Instrumentation{
		tracer:  tp.Tracer(InstrumentationName),
		metrics: metrics,
	}
}

// Start opens a client span for one call. The returned function must be
// called exactly once with the outcome.
func (i *Instrumentation) Start(ctx context.Context, method, path string) (context.Context, func(Outcome)) {
	start := time.Now()
	ctx, span := i.tracer.Start(ctx, SpanSend,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(AttrMethod, method),
			attribute.String(AttrPath, path),
		),
	)
	i.metrics.RecordStart(ctx)

	return ctx, func(o Outcome) {
		if o.Status > 0 {
			span.SetAttributes(attribute.Int(AttrStatus, o.Status))
		}
		if o.RequestID != "" {
			span.SetAttributes(attribute.String(AttrRequestID, o.RequestID))
		}
		if o.Err != nil {
			span.RecordError(o.Err)
			span.SetAttributes(attribute.String(AttrErrorCode, o.ErrorCode))
			span.SetStatus(codes.Error, o.ErrorCode)
		}
		span.End()
		i.metrics.RecordEnd(ctx, method, o.Status, o.ErrorCode, time.Since(start))
	}
}
