package webserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/spboyer/cotboard/internal/webapi"
)

// newHandler wires the page and API routes, then wraps them with CORS and
// request logging.
func newHandler(cfg Config) http.Handler {
	mux := http.NewServeMux()
	webapi.RegisterRoutes(mux, cfg.Viewer)

	var h http.Handler = mux
	h = webapi.CORSMiddleware(h, cfg.CORSOrigins...)
	return logRequests(cfg.Logger, h)
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
