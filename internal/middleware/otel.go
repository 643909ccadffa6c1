package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"draftpulse/internal/infrastructure"
)

// Metrics records request count and latency into the pipeline meter. No-op
// when metrics is nil.
func Metrics(metrics *infrastructure.PipelineMetrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if metrics == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			attrs := metric.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", r.URL.Path),
				attribute.String("http.status_code", strconv.Itoa(ww.Status())),
			)
			ctx := r.Context()
			metrics.HTTPRequestsTotal.Add(ctx, 1, attrs)
			metrics.HTTPDuration.Record(ctx, time.Since(start).Seconds(), attrs)
		})
	}
}
