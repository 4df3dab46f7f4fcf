package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/userhub/userhub/internal/ratelimit"
)

// RateLimit returns an HTTP middleware that applies the fixed-window limiter
// per client address. Rejected requests get a 429 with a Retry-After header.
// Mounted after chi's RealIP so RemoteAddr reflects the originating client.
func RateLimit(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, retryAfter := limiter.Allow(clientKey(r))
			if !ok {
				seconds := int(retryAfter / time.Second)
				if retryAfter%time.Second > 0 {
					seconds++ // round up so clients never retry early
				}
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey derives the limiter key from the request's originating address.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
