package ratelimit

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"busgo/internal/shared/config"
	"busgo/internal/shared/constants"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

type RateLimitType string

const (
	RateLimitTypeDefault RateLimitType = "default"
	RateLimitTypePublic  RateLimitType = "public"
	RateLimitTypeAuth    RateLimitType = "auth"
	RateLimitTypeBooking RateLimitType = "booking"
	RateLimitTypeSearch  RateLimitType = "search"
	RateLimitTypeHealth  RateLimitType = "health"
)

// Result represents rate limit check result
type Result struct {
	Allowed   bool  `json:"allowed"`
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"reset_time"`
}

// Store counts requests for one key within a window.
type Store interface {
	Take(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}

// RateLimiter applies per-client limits that vary by route type
type RateLimiter struct {
	store  Store
	config config.RateLimitConfig
}

// NewRateLimiter uses a Redis sliding window so limits hold across instances.
func NewRateLimiter(client *redis.Client, cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{store: &redisStore{client: client}, config: cfg}
}

// NewLocalRateLimiter keeps token buckets in process. Used when Redis is not
// configured.
func NewLocalRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{store: newLocalStore(), config: cfg}
}

// IsAllowed checks if request is allowed
func (r *RateLimiter) IsAllowed(ctx context.Context, clientIP string, limitType RateLimitType) (*Result, error) {
	limit := r.getLimit(limitType)
	if !r.config.Enabled || limitType == RateLimitTypeHealth || r.isWhitelisted(clientIP) {
		return &Result{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit,
			ResetTime: time.Now().Add(r.config.WindowDuration).Unix(),
		}, nil
	}

	key := constants.BuildRateLimitKey(string(limitType), clientIP)
	return r.store.Take(ctx, key, limit, r.config.WindowDuration)
}

func (r *RateLimiter) getLimit(limitType RateLimitType) int {
	switch limitType {
	case RateLimitTypePublic:
		return r.config.PublicRequests
	case RateLimitTypeAuth:
		return r.config.AuthRequests
	case RateLimitTypeBooking:
		return r.config.BookingRequests
	case RateLimitTypeSearch:
		return r.config.SearchRequests
	default:
		return r.config.DefaultRequests
	}
}

func (r *RateLimiter) isWhitelisted(ip string) bool {
	return slices.Contains(r.config.WhitelistedIPs, ip)
}

// Lua script for atomic sliding window rate limiting
const slidingWindowScript = `
	local key = KEYS[1]
	local window_start = tonumber(ARGV[1])
	local now = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local window_ms = tonumber(ARGV[4])
	local member = ARGV[5]

	-- Remove old entries
	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

	local current_count = redis.call('ZCARD', key)
	if current_count >= limit then
		redis.call('PEXPIRE', key, window_ms)
		return {current_count + 1, 0}
	end

	redis.call('ZADD', key, now, member)
	redis.call('PEXPIRE', key, window_ms)

	return {current_count + 1, limit - current_count - 1}
`

type redisStore struct {
	client *redis.Client
	seq    uint64
	mu     sync.Mutex
}

func (s *redisStore) Take(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	now := time.Now()
	windowStart := now.Add(-window)

	// members must be unique or requests in the same millisecond collapse
	s.mu.Lock()
	s.seq++
	member := strconv.FormatInt(now.UnixNano(), 10) + "-" + strconv.FormatUint(s.seq, 10)
	s.mu.Unlock()

	result, err := s.client.Eval(ctx, slidingWindowScript, []string{key},
		windowStart.UnixMilli(),
		now.UnixMilli(),
		limit,
		window.Milliseconds(),
		member).Result()
	if err != nil {
		return nil, fmt.Errorf("redis eval failed: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 2 {
		return nil, fmt.Errorf("unexpected redis response")
	}

	currentCount, _ := values[0].(int64)
	remaining, _ := values[1].(int64)

	return &Result{
		Allowed:   int(currentCount) <= limit,
		Limit:     limit,
		Remaining: int(remaining),
		ResetTime: now.Add(window).Unix(),
	}, nil
}

type localStore struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newLocalStore() *localStore {
	return &localStore{limiters: make(map[string]*rate.Limiter)}
}

func (s *localStore) getLimiter(key string, limit int, window time.Duration) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rate.Every(window/time.Duration(limit)), limit)
		s.limiters[key] = limiter
	}
	return limiter
}

func (s *localStore) Take(_ context.Context, key string, limit int, window time.Duration) (*Result, error) {
	now := time.Now()
	if limit <= 0 {
		return &Result{Allowed: false, Limit: limit, ResetTime: now.Add(window).Unix()}, nil
	}

	limiter := s.getLimiter(key, limit, window)
	allowed := limiter.AllowN(now, 1)
	remaining := int(limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: remaining,
		ResetTime: now.Add(window).Unix(),
	}, nil
}
