package middleware

import (
	"net/http"
	"strconv"

	"github.com/SharangSharma09/Draftly/internal/metrics"
)

// knownRoutes bounds the path label; anything else is counted as "other".
var knownRoutes = map[string]bool{
	"/api/transform": true,
	"/api/models":    true,
	"/api/health":    true,
	"/api/history":   true,
	"/metrics":       true,
}

// Metrics counts requests by method, route and status code.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.RequestsTotal.WithLabelValues(r.Method, routeLabel(r.URL.Path), strconv.Itoa(rec.status)).Inc()
	})
}

func routeLabel(path string) string {
	if knownRoutes[path] {
		return path
	}
	return "other"
}
