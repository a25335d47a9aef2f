package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"aceh-poverty-dashboard/utils"
)

// requestLogger logs one line per request with status, size and latency.
func requestLogger(logger *utils.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			msg := "%s %s %d %dB %s from %s"
			args := []interface{}{r.Method, r.URL.Path, status, ww.BytesWritten(), time.Since(start).Round(time.Microsecond), r.RemoteAddr}
			if status >= http.StatusInternalServerError {
				logger.Error(msg, args...)
				return
			}
			logger.Debug(msg, args...)
		})
	}
}
