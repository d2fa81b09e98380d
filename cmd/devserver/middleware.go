package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/nlstn/go-odata-query/internal/observability"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// requestIDContextKey is the key used to store the request ID in the request context
	requestIDContextKey contextKey = "requestID"

	headerRequestID = "X-Request-ID"
)

// requestIDMiddleware reuses a valid incoming X-Request-ID or assigns a new one,
// echoes it on the response and logs the request when it completes.
func requestIDMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		w.Header().Set(headerRequestID, requestID)
		ctx := context.WithValue(r.Context(), requestIDContextKey, requestID)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))

		logger.Info("request handled",
			slog.String(observability.LogFieldRequestID, requestID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Float64(observability.LogFieldDuration, float64(time.Since(start).Microseconds())/1000),
		)
	})
}

func requestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDContextKey).(string)
	return requestID
}

// timingMiddleware adds a Server-Timing header with the metrics recorded while
// handling the request.
func timingMiddleware(next http.Handler) http.Handler {
	return servertiming.Middleware(next, nil)
}
