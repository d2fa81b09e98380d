package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	gormSpanKey      = "odataquery:gorm:span"
	gormStartTimeKey = "odataquery:gorm:start"
)

// RegisterGORMCallbacks registers GORM callbacks that trace and time queries.
// It does nothing unless detailed DB tracing is enabled.
func RegisterGORMCallbacks(db *gorm.DB, cfg *Config) error {
	if cfg == nil || !cfg.EnableDetailedDBTracing {
		return nil
	}

	tracer := cfg.Tracer()
	metrics := cfg.Metrics()

	if err := db.Callback().Query().Before("gorm:query").Register("odataquery:before_query", func(db *gorm.DB) {
		startSpan(db, tracer, "SELECT")
	}); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("odataquery:after_query", func(db *gorm.DB) {
		endSpan(db, tracer, metrics, "SELECT")
	}); err != nil {
		return err
	}

	if err := db.Callback().Create().Before("gorm:create").Register("odataquery:before_create", func(db *gorm.DB) {
		startSpan(db, tracer, "INSERT")
	}); err != nil {
		return err
	}
	return db.Callback().Create().After("gorm:create").Register("odataquery:after_create", func(db *gorm.DB) {
		endSpan(db, tracer, metrics, "INSERT")
	})
}

func startSpan(db *gorm.DB, tracer *Tracer, operation string) {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := tracer.StartDBQuery(ctx, operation)

	db.Statement.Context = ctx
	db.InstanceSet(gormSpanKey, span)
	db.InstanceSet(gormStartTimeKey, time.Now())
}

func endSpan(db *gorm.DB, tracer *Tracer, metrics *Metrics, operation string) {
	spanVal, ok := db.InstanceGet(gormSpanKey)
	if !ok {
		return
	}

	span, ok := spanVal.(trace.Span)
	if !ok {
		return
	}
	defer span.End()

	if db.Statement != nil {
		if tableName := db.Statement.Table; tableName != "" {
			span.SetAttributes(attribute.String("db.sql.table", tableName))
		}
		span.SetAttributes(attribute.Int64("db.rows_affected", db.RowsAffected))
	}

	tracer.RecordError(span, db.Error)

	if startTimeVal, ok := db.InstanceGet(gormStartTimeKey); ok {
		if startTime, ok := startTimeVal.(time.Time); ok {
			metrics.RecordDBQuery(db.Statement.Context, operation, time.Since(startTime))
		}
	}
}
