package web

import (
	"net/http"
	"time"

	"github.com/Sternrassler/pokedex-catalog/pkg/logging"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLog emits one structured log event per request.
func AccessLog(next http.Handler) http.Handler {
	logger := logging.NewLogger(logging.ComponentHTTP)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		event := logger.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Warn()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("remote_ip", r.RemoteAddr).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}
