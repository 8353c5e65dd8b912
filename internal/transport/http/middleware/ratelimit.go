package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/unais-08/blogs-fullstack/internal/apperror"
	"github.com/unais-08/blogs-fullstack/internal/logging"
	"github.com/unais-08/blogs-fullstack/internal/ratelimit"
	"github.com/unais-08/blogs-fullstack/internal/transport/http/response"
	"go.uber.org/zap"
)

type RateLimitOptions struct {
	Message string
	// SkipSuccessful refunds hits whose response status is below 400.
	SkipSuccessful bool
}

// RateLimit counts requests per client IP and rejects those over the limit
// with 429. Counter store failures let the request through.
func RateLimit(l *ratelimit.Limiter, opts RateLimitOptions, errs *response.Writer, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := l.Allow(r.Context(), clientIP(r))
			if err != nil {
				logging.FromContext(r.Context(), log).Warn("rate limit store unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			reset := int(time.Until(res.ResetAt).Seconds() + 0.5)
			if reset < 0 {
				reset = 0
			}

			h := w.Header()
			h.Set("RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("RateLimit-Remaining", strconv.Itoa(res.Remaining))
			h.Set("RateLimit-Reset", strconv.Itoa(reset))

			if !res.Allowed {
				h.Set("Retry-After", strconv.Itoa(reset))
				errs.Error(w, r, apperror.TooManyRequests(opts.Message))
				return
			}

			if !opts.SkipSuccessful {
				next.ServeHTTP(w, r)
				return
			}

			rec := newRecorder(w)
			next.ServeHTTP(rec, r)

			if rec.status < http.StatusBadRequest {
				if err := l.Refund(r.Context(), res); err != nil {
					logging.FromContext(r.Context(), log).Warn("rate limit refund failed", zap.Error(err))
				}
			}
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
