package middleware

import (
	"net/http"
	"time"

	"cat-registry/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLog loguea una línea por request. Usa el request id de chimw.RequestID
// si está antes en la cadena.
func AccessLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				fields := map[string]any{
					"method":      r.Method,
					"path":        r.URL.Path,
					"status":      ww.Status(),
					"bytes":       ww.BytesWritten(),
					"duration_ms": time.Since(start).Milliseconds(),
				}
				if id := chimw.GetReqID(r.Context()); id != "" {
					fields["request_id"] = id
				}
				log.Info("http request", fields)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
