package odataquery

import (
	"log/slog"

	"github.com/nlstn/go-odata-query/internal/observability"
	"github.com/nlstn/go-odata-query/internal/query"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a Parser.
type Option func(*Parser)

// ObservabilityConfig configures OpenTelemetry instrumentation of a Parser.
// Nil providers disable the corresponding signal.
type ObservabilityConfig struct {
	// TracerProvider supplies the tracer for parse spans.
	TracerProvider trace.TracerProvider

	// MeterProvider supplies the meter for parse duration and error metrics.
	MeterProvider metric.MeterProvider

	// ServiceName identifies this service in traces and metrics.
	ServiceName string

	// RecordQueryOptions adds the raw query option values to parse spans.
	// Leave it off when queries may carry sensitive data.
	RecordQueryOptions bool
}

// WithFieldMap maps logical field names used in queries to column names.
// Unmapped names pass through unchanged.
func WithFieldMap(columns map[string]string) Option {
	return func(p *Parser) {
		p.fields = query.MapFields(columns)
	}
}

// WithFieldResolver installs a custom FieldMap.
func WithFieldResolver(fields FieldMap) Option {
	return func(p *Parser) {
		p.fields = fields
	}
}

// WithLogger sets the logger used for rejected query options.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithObservability enables tracing and metrics.
func WithObservability(cfg ObservabilityConfig) Option {
	return func(p *Parser) {
		opts := []observability.Option{
			observability.WithTracerProvider(cfg.TracerProvider),
			observability.WithMeterProvider(cfg.MeterProvider),
		}
		if cfg.ServiceName != "" {
			opts = append(opts, observability.WithServiceName(cfg.ServiceName))
		}
		if cfg.RecordQueryOptions {
			opts = append(opts, observability.WithQueryOptionTracing())
		}
		p.obs = observability.NewConfig(opts...)
	}
}

// WithMaxQueryLength rejects any query option longer than n bytes with
// ErrQueryTooLong. Zero or a negative n means no limit.
func WithMaxQueryLength(n int) Option {
	return func(p *Parser) {
		p.maxLength = n
	}
}
