// Package middleware holds the HTTP middleware chain: request logging,
// metrics, CORS.
package middleware

import (
	"net/http"
	"time"

	"github.com/gamotph/adr-intelligence/internal/infrastructure/monitoring/logging"
)

// LoggingConfig controls the request logging middleware.
type LoggingConfig struct {
	// SkipPaths are not logged; health probes and scrapes are noise.
	SkipPaths []string

	// SlowThreshold promotes a request log to Warn.
	SlowThreshold time.Duration
}

// DefaultLoggingConfig returns the standard settings.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		SkipPaths:     []string{"/healthz", "/readyz", "/metrics"},
		SlowThreshold: 3 * time.Second,
	}
}

// wrappedResponseWriter captures status code and bytes written.
type wrappedResponseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
	wroteHeader  bool
}

func newWrappedResponseWriter(w http.ResponseWriter) *wrappedResponseWriter {
	return &wrappedResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (w *wrappedResponseWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.statusCode = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *wrappedResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytesWritten += int64(n)
	return n, err
}

// RequestLogging logs one line per request: method, path, status, duration.
// 5xx logs at Error, 4xx and slow requests at Warn.
func RequestLogging(log logging.Logger, cfg LoggingConfig) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ww := newWrappedResponseWriter(w)
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)

			fields := []logging.Field{
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", ww.statusCode),
				logging.Duration("duration", elapsed),
				logging.Int64("bytes", ww.bytesWritten),
				logging.String("remote", r.RemoteAddr),
			}

			switch {
			case ww.statusCode >= 500:
				log.Error("request failed", fields...)
			case ww.statusCode >= 400:
				log.Warn("request rejected", fields...)
			case cfg.SlowThreshold > 0 && elapsed > cfg.SlowThreshold:
				log.Warn("slow request", fields...)
			default:
				log.Info("request served", fields...)
			}
		})
	}
}
