package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the parse metric instruments.
type Metrics struct {
	parseDuration   metric.Float64Histogram
	parseCount      metric.Int64Counter
	errorCount      metric.Int64Counter
	dbQueryDuration metric.Float64Histogram
}

// NewMetrics creates a new Metrics instance with the given MeterProvider.
func NewMetrics(mp metric.MeterProvider) *Metrics {
	meter := mp.Meter(MeterName)
	m := &Metrics{}

	// Instrument creation only fails on invalid parameters; fall back to a bare
	// instrument so recording never has to nil-check.
	var err error

	m.parseDuration, err = meter.Float64Histogram(
		"odata.query.parse.duration",
		metric.WithDescription("Duration of query option parsing in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		m.parseDuration, _ = meter.Float64Histogram("odata.query.parse.duration")
	}

	m.parseCount, err = meter.Int64Counter(
		"odata.query.parse.count",
		metric.WithDescription("Total number of parsed query options"),
		metric.WithUnit("{option}"),
	)
	if err != nil {
		m.parseCount, _ = meter.Int64Counter("odata.query.parse.count")
	}

	m.errorCount, err = meter.Int64Counter(
		"odata.query.parse.error.count",
		metric.WithDescription("Total number of rejected query options"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		m.errorCount, _ = meter.Int64Counter("odata.query.parse.error.count")
	}

	m.dbQueryDuration, err = meter.Float64Histogram(
		"odata.db.query.duration",
		metric.WithDescription("Duration of database queries in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		m.dbQueryDuration, _ = meter.Float64Histogram("odata.db.query.duration")
	}

	return m
}

// RecordParse records one parse of the given option. errorKind is empty on success.
func (m *Metrics) RecordParse(ctx context.Context, option string, duration time.Duration, errorKind string) {
	attrs := metric.WithAttributes(QueryOptionAttr(option))
	m.parseDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	m.parseCount.Add(ctx, 1, attrs)
	if errorKind != "" {
		m.errorCount.Add(ctx, 1, metric.WithAttributes(
			QueryOptionAttr(option),
			ErrorKindAttr(errorKind),
		))
	}
}

// RecordDBQuery records metrics for a database query.
func (m *Metrics) RecordDBQuery(ctx context.Context, operation string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("db.operation", operation))
	m.dbQueryDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
}
