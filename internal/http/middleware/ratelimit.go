// Package middleware holds the HTTP middleware wrapping the public API.
package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/skysearch/flightagg/cache"
)

// RateLimit enforces a fixed-window request budget per (client IP, path),
// counting in the shared TTL store. The counter key is created with the
// window as its TTL and expires with it; there is no explicit reset. The
// count uses the store's atomic increment, so concurrent requests at the
// boundary cannot both slip through.
func RateLimit(store cache.Store, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := cache.Key("rl", clientIP(r), r.URL.Path)
			count, err := store.Incr(r.Context(), key, window)
			// A store failure fails open: better to serve than to 429 on
			// an outage.
			if err == nil && count > int64(limit) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error":          "rate_limit_exceeded",
					"limit":          limit,
					"window_seconds": int(window.Seconds()),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP trusts RemoteAddr; chi's RealIP middleware runs earlier and has
// already folded X-Forwarded-For into it.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
