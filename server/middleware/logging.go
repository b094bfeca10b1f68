package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/registry-api/logger"
)

// HeaderRequestID carries the request identifier on requests and responses.
const HeaderRequestID = "X-Request-Id"

// RequestLogger logs one line per request with method, path, status, size
// and duration. Health and metrics scrapes are skipped. Events carry the
// request context so trace identifiers are attached.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isProbeEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rw := newRecordingWriter(w)
			next.ServeHTTP(rw, r)
			duration := time.Since(start)

			// RequestID sets the header on the response before the handler runs.
			id := rw.Header().Get(HeaderRequestID)
			if id == "" {
				id = r.Header.Get(HeaderRequestID)
			}
			fields := logger.RequestFields(r.Method, r.URL.Path, rw.status, rw.bytes, duration, id)

			logByStatus(log.WithContext(r.Context()), fields, rw.status)
		})
	}
}

func isProbeEndpoint(path string) bool {
	switch path {
	case "/health", "/metrics":
		return true
	}
	return false
}

// logByStatus logs request fields at the level matching the status code.
func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Debug("Request completed", fields)
	}
}
