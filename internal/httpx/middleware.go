package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const RequestIDHeader = "X-Request-Id"

type ctxKey struct{}

// RequestID returns the id the Logger middleware attached to ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Logger tags every request with an id and logs it once served.
func Logger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)
			ctx := context.WithValue(r.Context(), ctxKey{}, id)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r.WithContext(ctx))

			slog.InfoContext(ctx, "HTTP request",
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}

// Recovery turns a panic into a 500 response.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					slog.ErrorContext(r.Context(), "Panic recovered",
						"request_id", RequestID(r.Context()),
						"panic", p,
						"stack", string(debug.Stack()),
					)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// MetricsMiddleware counts requests and records their latency.
func MetricsMiddleware(next http.Handler) http.Handler {
	meter := Meter()
	requests, err := meter.Int64Counter("http.server.requests",
		metric.WithDescription("HTTP requests by method and status"))
	if err != nil {
		slog.Warn("http.server.requests counter unavailable", "err", err)
	}
	latency, err := meter.Float64Histogram("http.server.latency",
		metric.WithUnit("ms"),
		metric.WithDescription("HTTP request latency"))
	if err != nil {
		slog.Warn("http.server.latency histogram unavailable", "err", err)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		attrs := metric.WithAttributes(
			attribute.String("method", r.Method),
			attribute.Int("status", rec.status),
		)
		if requests != nil {
			requests.Add(r.Context(), 1, attrs)
		}
		if latency != nil {
			latency.Record(r.Context(), float64(time.Since(start).Microseconds())/1000, attrs)
		}
	})
}
