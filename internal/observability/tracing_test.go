package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/codes"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func newRecordingTracer() (*Tracer, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return NewTracer(tp, "test-service"), recorder
}

func TestNewTracer(t *testing.T) {
	tracer := NewTracer(tracenoop.NewTracerProvider(), "test-service")

	if tracer == nil {
		t.Fatal("NewTracer() should return non-nil tracer")
	}
	if tracer.serviceName != "test-service" {
		t.Errorf("serviceName = %q, want %q", tracer.serviceName, "test-service")
	}
}

func TestTracer_StartParse(t *testing.T) {
	tracer, recorder := newRecordingTracer()

	ctx, span := tracer.StartParse(context.Background(), OptionFilter)
	span.End()

	if ctx == nil {
		t.Error("StartParse() should return non-nil context")
	}

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 ended span, got %d", len(ended))
	}
	if ended[0].Name() != "odata.query.parse" {
		t.Errorf("span name = %q, want %q", ended[0].Name(), "odata.query.parse")
	}

	var option string
	for _, attr := range ended[0].Attributes() {
		if string(attr.Key) == AttrQueryOption {
			option = attr.Value.AsString()
		}
	}
	if option != OptionFilter {
		t.Errorf("%s = %q, want %q", AttrQueryOption, option, OptionFilter)
	}
}

func TestTracer_StartDBQuery(t *testing.T) {
	tracer := NewTracer(tracenoop.NewTracerProvider(), "test-service")

	ctx, span := tracer.StartDBQuery(context.Background(), "SELECT")
	defer span.End()

	if ctx == nil {
		t.Error("StartDBQuery() should return non-nil context")
	}
}

func TestTracer_RecordError(t *testing.T) {
	tracer, recorder := newRecordingTracer()

	_, ok := tracer.StartSpan(context.Background(), "ok")
	tracer.RecordError(ok, nil)
	ok.End()

	_, failed := tracer.StartSpan(context.Background(), "failed")
	tracer.RecordError(failed, errors.New("missing operand"))
	failed.End()

	for _, span := range recorder.Ended() {
		switch span.Name() {
		case "ok":
			if span.Status().Code == codes.Error {
				t.Error("expected no error status for nil error")
			}
		case "failed":
			if span.Status().Code != codes.Error {
				t.Errorf("status = %v, want %v", span.Status().Code, codes.Error)
			}
			if span.Status().Description != "missing operand" {
				t.Errorf("status description = %q, want %q", span.Status().Description, "missing operand")
			}
		}
	}
}

func TestTracer_AddQueryOptions_All(t *testing.T) {
	tracer, recorder := newRecordingTracer()

	_, span := tracer.StartSpan(context.Background(), "test")
	tracer.AddQueryOptions(span, "Price gt 100", "Name,Price", "Name asc", "10", "20")
	span.End()

	got := map[string]string{}
	for _, attr := range recorder.Ended()[0].Attributes() {
		got[string(attr.Key)] = attr.Value.AsString()
	}

	want := map[string]string{
		AttrQueryFilter:  "Price gt 100",
		AttrQuerySelect:  "Name,Price",
		AttrQueryOrderBy: "Name asc",
		AttrQueryTop:     "10",
		AttrQuerySkip:    "20",
	}
	for key, value := range want {
		if got[key] != value {
			t.Errorf("%s = %q, want %q", key, got[key], value)
		}
	}
}

func TestTracer_AddQueryOptions_None(t *testing.T) {
	tracer, recorder := newRecordingTracer()

	_, span := tracer.StartSpan(context.Background(), "test")
	tracer.AddQueryOptions(span, "", "", "", "", "")
	span.End()

	if attrs := recorder.Ended()[0].Attributes(); len(attrs) != 0 {
		t.Errorf("expected no attributes, got %v", attrs)
	}
}

func TestLoggerWithTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	// Without valid trace context the logger is returned unchanged
	if got := LoggerWithTrace(context.Background(), logger); got != logger {
		t.Error("LoggerWithTrace() should return the same logger without a span")
	}

	tracer, _ := newRecordingTracer()
	ctx, span := tracer.StartSpan(context.Background(), "test")
	defer span.End()

	LoggerWithTrace(ctx, logger).Info("parsed")

	out := buf.String()
	if !strings.Contains(out, LogFieldTraceID+"="+span.SpanContext().TraceID().String()) {
		t.Errorf("expected trace id in log output, got %q", out)
	}
	if !strings.Contains(out, LogFieldSpanID+"="+span.SpanContext().SpanID().String()) {
		t.Errorf("expected span id in log output, got %q", out)
	}
}

func TestNewMetrics(t *testing.T) {
	metrics := NewMetrics(noopmetric.NewMeterProvider())

	if metrics == nil {
		t.Fatal("NewMetrics() should return non-nil metrics")
	}
}

func TestConfig_Tracer_Nil(t *testing.T) {
	var cfg *Config
	if cfg.Tracer() == nil {
		t.Error("Tracer() on nil config should return noop tracer")
	}
}

func TestConfig_Metrics_Nil(t *testing.T) {
	var cfg *Config
	if cfg.Metrics() == nil {
		t.Error("Metrics() on nil config should return noop metrics")
	}
}

func TestConfig_Tracer_NotInitialized(t *testing.T) {
	cfg := &Config{}
	if cfg.Tracer() == nil {
		t.Error("Tracer() on uninitialized config should return noop tracer")
	}
}

func TestMetrics_RecordParse(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	metrics := NewMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))

	ctx := context.Background()
	metrics.RecordParse(ctx, OptionFilter, time.Millisecond, "")
	metrics.RecordParse(ctx, OptionFilter, time.Millisecond, "MissingOperand")
	metrics.RecordParse(ctx, OptionSelect, time.Millisecond, "")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	totals := map[string]int64{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				totals[m.Name] += dp.Value
			}
		}
	}

	if totals["odata.query.parse.count"] != 3 {
		t.Errorf("parse count = %d, want 3", totals["odata.query.parse.count"])
	}
	if totals["odata.query.parse.error.count"] != 1 {
		t.Errorf("error count = %d, want 1", totals["odata.query.parse.error.count"])
	}
}

func TestMetrics_RecordDBQuery(t *testing.T) {
	metrics := NewMetrics(noopmetric.NewMeterProvider())
	metrics.RecordDBQuery(context.Background(), "SELECT", 100*time.Millisecond)
}

func TestNoopTracer_AllOperations(t *testing.T) {
	tracer := NewNoopTracer()
	ctx := context.Background()

	ctx, span := tracer.StartSpan(ctx, "test")
	span.End()

	ctx, span = tracer.StartParse(ctx, OptionAll)
	tracer.AddQueryOptions(span, "a eq 1", "", "", "", "")
	tracer.RecordError(span, context.Canceled)
	span.End()

	_, span = tracer.StartDBQuery(ctx, "SELECT")
	span.End()
}

func TestNoopMetrics(t *testing.T) {
	metrics := NewNoopMetrics()
	ctx := context.Background()

	// Should not panic
	metrics.RecordParse(ctx, OptionOrderBy, time.Second, "UnexpectedToken")
	metrics.RecordDBQuery(ctx, "SELECT", 100*time.Millisecond)
}
