// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/respond"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter holds one token bucket per client IP.
type ipLimiter struct {
	limit rate.Limit
	burst int

	mutex    sync.Mutex
	visitors map[string]*visitor
}

func newIPLimiter(limit rate.Limit, burst int) *ipLimiter {
	return &ipLimiter{limit: limit, burst: burst, visitors: make(map[string]*visitor)}
}

func (l *ipLimiter) allow(ip string, now time.Time) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	entry, ok := l.visitors[ip]
	if !ok {
		entry = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// sweep forgets clients idle for longer than ttl.
func (l *ipLimiter) sweep(now time.Time, ttl time.Duration) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	for ip, entry := range l.visitors {
		if now.Sub(entry.lastSeen) > ttl {
			delete(l.visitors, ip)
		}
	}
}

/*
RateLimit applies a per-IP token bucket of [constants.DefaultRateLimitRPS]
with bursts of [constants.DefaultRateLimitBurst].

Rejected requests get 429 RATE_LIMITED and a Retry-After header. Idle
clients are swept every [constants.RateLimitCleanupInterval] until context
is cancelled.
*/
func RateLimit(context context.Context) func(http.Handler) http.Handler {
	limiter := newIPLimiter(rate.Limit(constants.DefaultRateLimitRPS), constants.DefaultRateLimitBurst)
	retryAfter := max(1, int(math.Ceil(1/constants.DefaultRateLimitRPS)))

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				limiter.sweep(now, constants.RateLimitClientTTL)
			case <-context.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !limiter.allow(RealIP(request), time.Now()) {
				writer.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				respond.Error(writer, request, apperr.RateLimited(retryAfter))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
