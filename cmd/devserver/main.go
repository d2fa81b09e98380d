// Command devserver serves a small product catalogue and applies OData query
// options ($filter, $orderby, $select, $top and $skip) to it.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	odataquery "github.com/nlstn/go-odata-query"
	"github.com/nlstn/go-odata-query/internal/observability"
	"go.opentelemetry.io/otel"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const serviceName = "odata-query-devserver"

func main() {
	dbType := flag.String("db", "sqlite", "Database type: sqlite or postgres")
	dbDSN := flag.String("dsn", "", "Database DSN (connection string). For postgres, use postgresql://... format. For sqlite, use file path or :memory:")
	port := flag.String("port", "8080", "Port to listen on")
	maxQueryLength := flag.Int("max-query-length", 4096, "Maximum length of a single query option in bytes, 0 disables the limit")
	traceDB := flag.Bool("trace-db", false, "Trace individual database queries")
	verbose := flag.Bool("verbose", false, "Log rejected query options")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	db, err := openDatabase(*dbType, *dbDSN)
	if err != nil {
		logger.Error("failed to connect to database", slog.String(observability.LogFieldError, err.Error()))
		os.Exit(1)
	}

	obsOpts := []observability.Option{
		observability.WithTracerProvider(otel.GetTracerProvider()),
		observability.WithMeterProvider(otel.GetMeterProvider()),
		observability.WithServiceName(serviceName),
	}
	if *traceDB {
		obsOpts = append(obsOpts, observability.WithDetailedDBTracing())
	}
	if err := observability.RegisterGORMCallbacks(db, observability.NewConfig(obsOpts...)); err != nil {
		logger.Error("failed to register database callbacks", slog.String(observability.LogFieldError, err.Error()))
		os.Exit(1)
	}

	if err := db.AutoMigrate(&Product{}); err != nil {
		logger.Error("failed to migrate database", slog.String(observability.LogFieldError, err.Error()))
		os.Exit(1)
	}
	if err := seedDatabase(db); err != nil {
		logger.Error("failed to seed database", slog.String(observability.LogFieldError, err.Error()))
		os.Exit(1)
	}

	parser := odataquery.New(
		odataquery.WithFieldMap(productColumns),
		odataquery.WithLogger(logger),
		odataquery.WithMaxQueryLength(*maxQueryLength),
		odataquery.WithObservability(odataquery.ObservabilityConfig{
			TracerProvider: otel.GetTracerProvider(),
			MeterProvider:  otel.GetMeterProvider(),
			ServiceName:    serviceName,
		}),
	)

	server := &http.Server{
		Addr:              ":" + *port,
		Handler:           newServer(db, parser, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("Development server listening on http://localhost:%s\n", *port)
	fmt.Printf("  Products:  http://localhost:%s/products\n", *port)
	fmt.Printf("  Example:   http://localhost:%s/products?$filter=Price gt 100&$orderby=Price desc&$top=2\n", *port)

	if err := server.ListenAndServe(); err != nil {
		logger.Error("server failed", slog.String(observability.LogFieldError, err.Error()))
		os.Exit(1)
	}
}

// newServer wires the product handler behind the request ID and timing middleware.
func newServer(db *gorm.DB, parser *odataquery.Parser, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/products", newProductsHandler(db, parser, logger))
	return requestIDMiddleware(logger, timingMiddleware(mux))
}

func openDatabase(dbType, dsn string) (*gorm.DB, error) {
	switch dbType {
	case "sqlite":
		if dsn == "" {
			dsn = ":memory:"
		}
		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		// every connection to :memory: opens its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil

	case "postgres":
		if dsn == "" {
			dsn = os.Getenv("DATABASE_URL")
			if dsn == "" {
				return nil, fmt.Errorf("PostgreSQL DSN required, use -dsn or set DATABASE_URL")
			}
		}
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})

	default:
		return nil, fmt.Errorf("unsupported database type: %s, use 'sqlite' or 'postgres'", dbType)
	}
}
