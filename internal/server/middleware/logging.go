package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/platform/metrics"
)

// RequestLogger logs each request through zap and records HTTP metrics
func RequestLogger(logger *zap.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			elapsed := time.Since(start)

			m.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(elapsed.Seconds())

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Duration("duration", elapsed),
				zap.Int("bytes", ww.BytesWritten()),
				zap.String("request_id", chimw.GetReqID(r.Context())),
				zap.String("remote_ip", ClientIP(r)),
			}
			switch {
			case status >= 500:
				logger.Error("request failed", fields...)
			case status >= 400:
				logger.Warn("request rejected", fields...)
			default:
				logger.Info("request handled", fields...)
			}
		})
	}
}
