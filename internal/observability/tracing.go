package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer wraps an OpenTelemetry tracer with parse-specific span creation methods.
type Tracer struct {
	tracer      trace.Tracer
	serviceName string
}

// NewTracer creates a new Tracer using the given TracerProvider.
func NewTracer(tp trace.TracerProvider, serviceName string) *Tracer {
	return &Tracer{
		tracer:      tp.Tracer(TracerName),
		serviceName: serviceName,
	}
}

// StartSpan starts a new span with the given name and attributes.
func (t *Tracer) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartParse starts a span for parsing one query option, or OptionAll for a whole query.
func (t *Tracer) StartParse(ctx context.Context, option string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "odata.query.parse", trace.WithAttributes(
		QueryOptionAttr(option),
	))
}

// StartDBQuery starts a span for a database query.
func (t *Tracer) StartDBQuery(ctx context.Context, operation string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "db.query", trace.WithAttributes(
		attribute.String("db.operation", operation),
	))
}

// RecordError records an error on the span.
func (t *Tracer) RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// AddQueryOptions adds the raw query option values to a span. Empty values are skipped.
func (t *Tracer) AddQueryOptions(span trace.Span, filter, selectOpt, orderby, top, skip string) {
	var attrs []attribute.KeyValue
	if filter != "" {
		attrs = append(attrs, QueryFilterAttr(filter))
	}
	if selectOpt != "" {
		attrs = append(attrs, QuerySelectAttr(selectOpt))
	}
	if orderby != "" {
		attrs = append(attrs, QueryOrderByAttr(orderby))
	}
	if top != "" {
		attrs = append(attrs, QueryTopAttr(top))
	}
	if skip != "" {
		attrs = append(attrs, QuerySkipAttr(skip))
	}
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
}

// LoggerWithTrace returns a logger enriched with trace context.
func LoggerWithTrace(ctx context.Context, logger *slog.Logger) *slog.Logger {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return logger
	}
	return logger.With(
		slog.String(LogFieldTraceID, span.SpanContext().TraceID().String()),
		slog.String(LogFieldSpanID, span.SpanContext().SpanID().String()),
	)
}
