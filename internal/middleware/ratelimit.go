package middleware

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter counts attempts per key within a window
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// RedisLimiter is a fixed-window limiter shared by every API instance
type RedisLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
	prefix      string
}

// NewRedisLimiter creates a limiter backed by client
func NewRedisLimiter(client *redis.Client, maxAttempts int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
		prefix:      "ratelimit:auth:",
	}
}

// Allow records an attempt for key and reports whether it is within the limit
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	redisKey := l.prefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to count attempt: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to set window: %w", err)
		}
	}
	if count <= int64(l.maxAttempts) {
		return true, 0, nil
	}

	ttl, err := l.client.PTTL(ctx, redisKey).Result()
	if err != nil || ttl < 0 {
		ttl = l.window
	}
	return false, ttl, nil
}

// MemoryLimiter is a sliding-window limiter for a single instance
type MemoryLimiter struct {
	attempts    map[string][]time.Time
	mutex       sync.Mutex
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

// sweepThreshold is the key count above which stale keys are dropped
const sweepThreshold = 1024

// NewMemoryLimiter creates an in-process limiter
func NewMemoryLimiter(maxAttempts int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		attempts:    make(map[string][]time.Time),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

// Allow records an attempt for key and reports whether it is within the limit
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	if len(l.attempts) > sweepThreshold {
		for k, attempts := range l.attempts {
			if len(attempts) == 0 || !attempts[len(attempts)-1].After(cutoff) {
				delete(l.attempts, k)
			}
		}
	}

	valid := recentAttempts(l.attempts[key], cutoff)
	if len(valid) >= l.maxAttempts {
		l.attempts[key] = valid
		return false, valid[0].Add(l.window).Sub(now), nil
	}

	l.attempts[key] = append(valid, now)
	return true, 0, nil
}

func recentAttempts(attempts []time.Time, cutoff time.Time) []time.Time {
	for i, attempt := range attempts {
		if attempt.After(cutoff) {
			return attempts[i:]
		}
	}
	return nil
}

// RateLimit rejects clients that exceed limiter with 429. A failing limiter lets requests through.
func RateLimit(limiter Limiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			allowed, retryAfter, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				logger.Warn("rate limiter unavailable", zap.String("ip", ip), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				WriteJSON(w, http.StatusTooManyRequests, ErrorResponse{Msg: "Too many requests, please try again later"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the host part of RemoteAddr, which chi's RealIP has already resolved
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
