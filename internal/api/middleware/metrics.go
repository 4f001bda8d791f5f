package middleware

import (
	"net/http"
	"time"
)

type HTTPObserver interface {
	ObserveHTTP(route, method string, status int, elapsed time.Duration)
}

// Metrics must wrap the ServeMux directly so the matched pattern is visible
// on the request once the mux returns.
func Metrics(obs HTTPObserver, next http.Handler) http.Handler {
	if obs == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		obs.ObserveHTTP(route, r.Method, sw.code(), time.Since(start))
	})
}
