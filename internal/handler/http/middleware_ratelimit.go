// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"math"
	"net"
	"net/http"
	"strconv"
)

const (
	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"
	headerRetryAfter         = "Retry-After"
)

// withRateLimit counts every request against the fixed window of the client
// IP. Over the limit the request ends with 429 and a Retry-After header.
// The client IP is the socket peer unless the server trusts a proxy, in which
// case middleware.RealIP has already rewritten RemoteAddr.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	if h.limiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := h.limiter.Allow(clientIP(r))

		w.Header().Set(headerRateLimitLimit, strconv.Itoa(res.Limit))
		w.Header().Set(headerRateLimitRemaining, strconv.Itoa(res.Remaining))
		w.Header().Set(headerRateLimitReset, strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			h.metrics.RateLimitedTotal.Inc()
			w.Header().Set(headerRetryAfter, strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
			respondError(w, r, ErrTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP returns the host part of RemoteAddr, or RemoteAddr itself when it
// carries no port (as set by middleware.RealIP).
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
