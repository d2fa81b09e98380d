package observability

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Config holds the observability configuration for a parser.
type Config struct {
	// TracerProvider is the OpenTelemetry tracer provider.
	// If nil, tracing is disabled.
	TracerProvider trace.TracerProvider

	// MeterProvider is the OpenTelemetry meter provider.
	// If nil, metrics collection is disabled.
	MeterProvider metric.MeterProvider

	// ServiceName is used to identify this service in traces and metrics.
	ServiceName string

	// EnableDetailedDBTracing enables tracing for individual database queries
	// issued through GORM callbacks.
	EnableDetailedDBTracing bool

	// EnableQueryOptionTracing adds the raw query options ($filter, $select, etc.)
	// as span attributes. Off by default since the values may contain user data.
	EnableQueryOptionTracing bool

	// tracer is the configured tracer instance.
	tracer *Tracer

	// metrics is the configured metrics instance.
	metrics *Metrics
}

// Option is a functional option for configuring observability.
type Option func(*Config)

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.TracerProvider = tp
	}
}

// WithMeterProvider sets the meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Config) {
		c.MeterProvider = mp
	}
}

// WithServiceName sets the service name for identification.
func WithServiceName(name string) Option {
	return func(c *Config) {
		c.ServiceName = name
	}
}

// WithDetailedDBTracing enables detailed database query tracing.
func WithDetailedDBTracing() Option {
	return func(c *Config) {
		c.EnableDetailedDBTracing = true
	}
}

// WithQueryOptionTracing enables query option attributes on spans.
func WithQueryOptionTracing() Option {
	return func(c *Config) {
		c.EnableQueryOptionTracing = true
	}
}

// NewConfig creates a new observability configuration with the given options.
// The returned config is initialized and ready to use.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		ServiceName: "odata-query",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	cfg.Initialize()
	return cfg
}

// Initialize sets up the tracer and metrics based on configuration.
func (c *Config) Initialize() {
	if c.TracerProvider != nil {
		c.tracer = NewTracer(c.TracerProvider, c.ServiceName)
	} else {
		c.tracer = NewNoopTracer()
	}

	if c.MeterProvider != nil {
		c.metrics = NewMetrics(c.MeterProvider)
	} else {
		c.metrics = NewNoopMetrics()
	}
}

// Tracer returns the configured tracer, or a no-op tracer if not configured.
func (c *Config) Tracer() *Tracer {
	if c == nil || c.tracer == nil {
		return NewNoopTracer()
	}
	return c.tracer
}

// Metrics returns the configured metrics, or a no-op metrics if not configured.
func (c *Config) Metrics() *Metrics {
	if c == nil || c.metrics == nil {
		return NewNoopMetrics()
	}
	return c.metrics
}

// IsEnabled returns true if any observability features are configured.
func (c *Config) IsEnabled() bool {
	return c != nil && (c.TracerProvider != nil || c.MeterProvider != nil)
}

// QueryOptionTracingEnabled returns true if raw query options may be recorded on spans.
func (c *Config) QueryOptionTracingEnabled() bool {
	return c != nil && c.EnableQueryOptionTracing
}
