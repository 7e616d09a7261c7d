package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gamotph/adr-intelligence/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request count and latency per route pattern. The chi
// route pattern keeps label cardinality bounded; raw paths would not.
func Metrics(m *prometheus.AppMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			active := m.HTTPActiveRequests.WithLabelValues(r.Method)
			active.Inc()
			defer active.Dec()

			start := time.Now()
			ww := newWrappedResponseWriter(w)
			next.ServeHTTP(ww, r)

			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = "unmatched"
			}
			m.ObserveHTTPRequest(r.Method, pattern, strconv.Itoa(ww.statusCode), time.Since(start))
		})
	}
}
