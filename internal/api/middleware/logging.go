package middleware

import (
	"fmt"
	"net/http"
	"time"

	"restaurant-api/internal/logger"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) code() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func Logging(log logger.LoggerService, enabled bool, next http.Handler) http.Handler {
	if !enabled || log == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		status := sw.code()
		duration := time.Since(start).Truncate(time.Millisecond)
		msg := fmt.Sprintf("%s %s %d %s", r.Method, r.URL.Path, status, duration)
		if id := RequestIDFrom(r.Context()); id != "" {
			msg += " id=" + id
		}
		switch {
		case status >= http.StatusInternalServerError:
			log.Error(msg, nil)
		case status >= http.StatusBadRequest:
			log.Warn(msg)
		default:
			log.Info(msg)
		}
	})
}
