package observability

import (
	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// NewNoopTracer creates a tracer that does nothing.
func NewNoopTracer() *Tracer {
	return &Tracer{
		tracer:      tracenoop.NewTracerProvider().Tracer(""),
		serviceName: "",
	}
}

// NewNoopMetrics creates metrics that do nothing.
func NewNoopMetrics() *Metrics {
	meter := noop.NewMeterProvider().Meter("")
	m := &Metrics{}

	// The noop meter never returns errors.
	m.parseDuration, _ = meter.Float64Histogram("odata.query.parse.duration")
	m.parseCount, _ = meter.Int64Counter("odata.query.parse.count")
	m.errorCount, _ = meter.Int64Counter("odata.query.parse.error.count")
	m.dbQueryDuration, _ = meter.Float64Histogram("odata.db.query.duration")

	return m
}
