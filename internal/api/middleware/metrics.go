package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Metrics пишет длительность и код ответа по шаблону маршрута
func Metrics(m HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			m.ObserveHTTPRequest(r.Method, routeTemplate(r), sw.status, time.Since(start))
		})
	}
}

// routeTemplate шаблон маршрута mux, чтобы не плодить метки по ID
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
