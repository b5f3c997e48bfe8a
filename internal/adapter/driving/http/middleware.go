package httphandler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// responseRecorder captures what a handler wrote so the request log can
// report status and payload size.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// usernameFromPath extracts the profiled username from the API paths so
// request logs can be filtered per user. Returns "" for non-user routes.
func usernameFromPath(path string) string {
	rest, ok := strings.CutPrefix(path, "/api/v1/users/")
	if !ok {
		return ""
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// withRequestLog emits one log line per request: method, path, status,
// response size, elapsed time, and the profiled username where the route
// carries one.
func withRequestLog(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, req)

		attrs := []any{
			"method", req.Method,
			"path", req.URL.Path,
			"status", rec.status,
			"bytes", rec.bytes,
			"elapsed", time.Since(start).Round(time.Microsecond),
		}
		if username := usernameFromPath(req.URL.Path); username != "" {
			attrs = append(attrs, "username", username)
		}
		logger.Info("request served", attrs...)
	})
}

// withRecovery turns a handler panic into a JSON 500 so one bad request
// cannot take the server down mid-response.
func withRecovery(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				logger.Error("handler panic",
					"panic", v,
					"method", req.Method,
					"path", req.URL.Path,
				)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		next.ServeHTTP(w, req)
	})
}
