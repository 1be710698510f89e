package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"outreach-server/internal/clients/redis"
	"outreach-server/internal/observability"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const window = time.Minute

// Result is the outcome of one rate limit check
type Result struct {
	Allowed      bool      `json:"allowed"`
	Limit        int       `json:"limit"`
	Remaining    int       `json:"remaining"`
	ResetAt      time.Time `json:"reset_at"`
	RetryAfterMs int       `json:"retry_after_ms,omitempty"`
}

// Window counts hits for a key inside the trailing one-minute window
type Window interface {
	Hit(ctx context.Context, key string, limit int, now time.Time) (Result, error)
}

// Service limits requests per signed-in user
type Service struct {
	window Window
	limit  int
	logger *observability.Logger
}

// NewService builds a limiter over Redis. When Redis is disabled or limit is
// not positive every request is allowed.
func NewService(client *redis.Client, limit int, logger *observability.Logger) *Service {
	var w Window
	if client.IsEnabled() {
		w = &redisWindow{client: client.GetClient()}
	}
	return NewWithWindow(w, limit, logger)
}

func NewWithWindow(w Window, limit int, logger *observability.Logger) *Service {
	return &Service{window: w, limit: limit, logger: logger}
}

// Check records a request for id and reports whether it is allowed
func (s *Service) Check(ctx context.Context, id string) (Result, error) {
	now := time.Now()
	if s.window == nil || s.limit <= 0 {
		return Result{Allowed: true, Limit: s.limit, Remaining: s.limit, ResetAt: now.Add(window)}, nil
	}
	return s.window.Hit(ctx, fmt.Sprintf("rl:%s", id), s.limit, now)
}

// redisWindow is a sliding window over a sorted set of request timestamps
type redisWindow struct {
	client *goredis.Client
}

func (w *redisWindow) Hit(ctx context.Context, key string, limit int, now time.Time) (Result, error) {
	nowMs := now.UnixMilli()
	windowStartMs := now.Add(-window).UnixMilli()

	if err := w.client.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStartMs, 10)).Err(); err != nil {
		return Result{}, fmt.Errorf("failed to remove old entries: %w", err)
	}

	count, err := w.client.ZCard(ctx, key).Result()
	if err != nil {
		return Result{}, fmt.Errorf("failed to count requests: %w", err)
	}

	if int(count) >= limit {
		oldest, err := w.client.ZRangeWithScores(ctx, key, 0, 0).Result()
		if err != nil || len(oldest) == 0 {
			return Result{
				Limit:        limit,
				ResetAt:      now.Add(window),
				RetryAfterMs: int(window.Milliseconds()),
			}, nil
		}
		resetAt := time.UnixMilli(int64(oldest[0].Score)).Add(window)
		retryAfter := resetAt.Sub(now)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return Result{
			Limit:        limit,
			ResetAt:      resetAt,
			RetryAfterMs: int(retryAfter.Milliseconds()),
		}, nil
	}

	member := requestMember(nowMs)
	if err := w.client.ZAdd(ctx, key, goredis.Z{Score: float64(nowMs), Member: member}).Err(); err != nil {
		return Result{}, fmt.Errorf("failed to add request: %w", err)
	}
	// expiry failures only leave a stale key behind
	_ = w.client.Expire(ctx, key, 2*window).Err()

	return Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - int(count) - 1,
		ResetAt:   now.Add(window),
	}, nil
}

// requestMember is unique per request so hits in the same millisecond are
// all counted
func requestMember(nowMs int64) string {
	return fmt.Sprintf("%d-%s", nowMs, uuid.NewString())
}
