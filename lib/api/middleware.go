package api

import (
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/ulule/limiter"
	"github.com/ulule/limiter/drivers/store/memory"

	"github.com/agoranet/agora/lib/api/httputils"
	"github.com/agoranet/agora/lib/common"
)

func RecoverMiddleware(logger logging.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", rec)
					}
					logger.Error("recover a panic", "err", err)
					httputils.WriteJSON(w, http.StatusInternalServerError, httputils.NewStatusProblem(http.StatusInternalServerError))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware throttles requests per remote address. Addresses found
// in rule.ByIPAddress use their own rate instead of the default; a rule with
// neither a default limit nor per-address rates disables throttling.
func RateLimitMiddleware(logger logging.Logger, rule common.RateLimitRule) mux.MiddlewareFunc {
	limiters := map[string]*limiter.Limiter{
		"": limiter.New(memory.NewStore(), rule.Default),
	}
	for ip, rate := range rule.ByIPAddress {
		limiters[ip] = limiter.New(memory.NewStore(), rate)
	}

	return func(next http.Handler) http.Handler {
		if rule.Default.Limit < 1 && len(rule.ByIPAddress) < 1 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			l, found := limiters[ip]
			if !found {
				l = limiters[""]
			}

			lctx, err := l.Get(r.Context(), ip)
			if err != nil {
				logger.Error("rate limit check failed", "err", err, "ip", ip)
				httputils.WriteJSON(w, http.StatusInternalServerError, httputils.NewStatusProblem(http.StatusInternalServerError))
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

			if lctx.Reached {
				logger.Warn("rate limit reached", "ip", ip)
				httputils.WriteJSON(w, http.StatusTooManyRequests, httputils.NewStatusProblem(http.StatusTooManyRequests))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
