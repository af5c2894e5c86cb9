package http

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// RateLimitHook is told about every rejected request.
type RateLimitHook func(route string)

// RateLimitMiddleware rejects clients that exceed the limiter's budget with
// 429 and a Retry-After header. Budgets are per route and remote IP, so
// routes sharing a limiter do not drain each other.
func RateLimitMiddleware(
	limiter *RateLimiter,
	route string,
	logger *zap.Logger,
	hook RateLimitHook,
	next http.Handler,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		allowed, wait := limiter.Allow(route + "|" + ip)
		if !allowed {
			logger.Warn("rate limit exceeded",
				zap.String("op", "http.RateLimitMiddleware"),
				zap.String("route", route),
				zap.String("client", ip),
			)
			if hook != nil {
				hook(route)
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			respondError(logger, w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
