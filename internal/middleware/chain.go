package middleware

import (
	"net/http"
	"time"
)

// MaxBodyBytes caps request bodies for every route.
const MaxBodyBytes = 64 * 1024

// Chain wraps the handler with the full middleware stack.
// Order: CORS → RequestID → Logging → Metrics → RateLimit → APIKey → MaxBytes → Timeout → mux
//
// timeout should exceed the transform deadline so the orchestrator, not the
// TimeoutHandler, reports slow providers.
func Chain(handler http.Handler, rl *RateLimiter, apiKey string, timeout time.Duration) http.Handler {
	h := handler
	h = http.TimeoutHandler(h, timeout, `{"error":"timeout","message":"request timeout"}`)
	h = MaxBytes(MaxBodyBytes)(h)
	h = APIKey(apiKey)(h)
	h = RateLimit(rl)(h)
	h = Metrics(h)
	h = Logging(h)
	h = RequestID(h)
	h = CORS(h)
	return h
}
