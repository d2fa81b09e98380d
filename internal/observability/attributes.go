// Package observability provides OpenTelemetry-based instrumentation for query option parsing.
//
// It supports distributed tracing, metrics collection, and enhanced structured logging.
//
// All observability features are opt-in. When not configured, no-op implementations
// are used with zero performance overhead.
package observability

import "go.opentelemetry.io/otel/attribute"

// Instrumentation identity constants
const (
	// TracerName is the instrumentation name for tracing.
	TracerName = "github.com/nlstn/go-odata-query"
	// MeterName is the instrumentation name for metrics.
	MeterName = "github.com/nlstn/go-odata-query"
)

// Semantic attribute keys following OpenTelemetry conventions.
const (
	AttrQueryOption = "odata.query.option"

	// Query option attributes
	AttrQueryFilter  = "odata.query.filter"
	AttrQuerySelect  = "odata.query.select"
	AttrQueryOrderBy = "odata.query.orderby"
	AttrQueryTop     = "odata.query.top"
	AttrQuerySkip    = "odata.query.skip"

	// Error attributes
	AttrErrorKind = "odata.error.kind"
)

// Query option names for the odata.query.option attribute.
const (
	OptionFilter  = "$filter"
	OptionOrderBy = "$orderby"
	OptionSelect  = "$select"
	OptionPage    = "$top/$skip"
	OptionAll     = "all"
)

// Log field keys for structured logging with trace context.
const (
	LogFieldOption    = "odata.query.option"
	LogFieldInput     = "input"
	LogFieldTraceID   = "trace_id"
	LogFieldSpanID    = "span_id"
	LogFieldRequestID = "request_id"
	LogFieldDuration  = "duration_ms"
	LogFieldError     = "error"
)

// QueryOptionAttr creates an attribute naming the parsed query option.
func QueryOptionAttr(option string) attribute.KeyValue {
	return attribute.String(AttrQueryOption, option)
}

// QueryFilterAttr creates an attribute for the $filter expression.
func QueryFilterAttr(filter string) attribute.KeyValue {
	return attribute.String(AttrQueryFilter, filter)
}

// QuerySelectAttr creates an attribute for the $select expression.
func QuerySelectAttr(selectExpr string) attribute.KeyValue {
	return attribute.String(AttrQuerySelect, selectExpr)
}

// QueryOrderByAttr creates an attribute for the $orderby expression.
func QueryOrderByAttr(orderby string) attribute.KeyValue {
	return attribute.String(AttrQueryOrderBy, orderby)
}

// QueryTopAttr creates an attribute for the raw $top value.
func QueryTopAttr(top string) attribute.KeyValue {
	return attribute.String(AttrQueryTop, top)
}

// QuerySkipAttr creates an attribute for the raw $skip value.
func QuerySkipAttr(skip string) attribute.KeyValue {
	return attribute.String(AttrQuerySkip, skip)
}

// ErrorKindAttr creates an attribute for the error kind.
func ErrorKindAttr(kind string) attribute.KeyValue {
	return attribute.String(AttrErrorKind, kind)
}
