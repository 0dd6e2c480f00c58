package api

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/shekel-labs/shekel-settlement/internal/observability/metrics"
	"github.com/shekel-labs/shekel-settlement/internal/observability/tracing"
	"github.com/shekel-labs/shekel-settlement/internal/types"
)

const (
	SignerHeader    = "X-Signer"
	RequestIDHeader = "X-Request-ID"
)

type signerKey struct{}

func signerFromContext(ctx context.Context) types.Address {
	signer, _ := ctx.Value(signerKey{}).(types.Address)
	return signer
}

// requireSigner parses the identity the gateway authenticated.
func requireSigner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(SignerHeader)
		if raw == "" {
			writeError(r.Context(), w, types.NewErrorWithMsg(http.StatusUnauthorized, types.Unauthorized, "missing "+SignerHeader+" header"))
			return
		}
		signer, err := types.ParseAddress(raw)
		if err != nil {
			writeError(r.Context(), w, types.NewError(http.StatusUnauthorized, types.Unauthorized, err))
			return
		}

		ctx := context.WithValue(r.Context(), signerKey{}, signer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ctx context.Context
		if id := r.Header.Get(RequestIDHeader); id != "" {
			ctx = tracing.WithTraceID(r.Context(), id)
		} else {
			ctx = tracing.InjectTraceID(r.Context())
		}
		w.Header().Set(RequestIDHeader, tracing.TraceID(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		// the route pattern is only known once chi has matched it
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.StartHttpRequestDurationTimer(route, r.Method)(status)
	})
}

// RateLimiter keeps one token bucket per caller. Signed requests are keyed on
// the authenticated signer, everything else on the client IP. Buckets idle
// for longer than the cleanup ttl are dropped.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(requestsPerSecond int, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		now:      time.Now,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.limiters[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = rl.now()
	return entry.limiter
}

// Cleanup drops buckets not used within maxIdle and returns how many it
// dropped.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-maxIdle)
	removed := 0
	for key, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
			removed++
		}
	}
	return removed
}

// StartCleanup runs Cleanup every interval until the returned func is called.
func (rl *RateLimiter) StartCleanup(interval, maxIdle time.Duration) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := rl.Cleanup(maxIdle); n > 0 {
					log.Debug().Int("removed", n).Msg("dropped idle rate limiters")
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := limiterKey(r)

		if !rl.getLimiter(key).Allow() {
			log.Ctx(r.Context()).Warn().
				Str("key", key).
				Str("path", r.URL.Path).
				Msg("rate limit exceeded")
			writeError(r.Context(), w, types.NewErrorWithMsg(http.StatusTooManyRequests, types.TooManyRequests, "rate limit exceeded"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// limiterKey only trusts a signer requireSigner has already parsed. The raw
// header is ignored so rotating it does not buy a fresh bucket.
func limiterKey(r *http.Request) string {
	if signer, ok := r.Context().Value(signerKey{}).(types.Address); ok {
		return "signer:" + signer.String()
	}
	return "ip:" + clientIP(r)
}

// clientIP strips the port from RemoteAddr. Behind middleware.RealIP the
// address is already a bare IP.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
