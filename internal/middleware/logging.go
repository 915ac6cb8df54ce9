package middleware

import (
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"TODOLIST_BACK-END/internal/utils"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an id, exposes a request-scoped
// logger through the context and writes one access log line per request.
func RequestLogger(logger log.FieldLogger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			entry := logger.WithFields(log.Fields{
				"request_id": id,
				"method":     r.Method,
				"path":       r.URL.Path,
			})
			r = r.WithContext(utils.WithLogger(r.Context(), entry))

			m := httpsnoop.CaptureMetrics(next, w, r)

			fields := entry.WithFields(log.Fields{
				"status":      m.Code,
				"bytes":       m.Written,
				"duration_ms": m.Duration.Milliseconds(),
				"remote_addr": r.RemoteAddr,
			})
			if m.Code >= http.StatusInternalServerError {
				fields.Error("request failed")
				return
			}
			fields.Info("request completed")
		})
	}
}
