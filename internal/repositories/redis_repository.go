package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Muppalavinisree/vibecommerce/internal/config"
	"github.com/Muppalavinisree/vibecommerce/internal/logging"
	"github.com/redis/go-redis/v9"
)

const adminFailuresKeyPrefix = "admin_failures"

func NewRedisClient(cfg *config.RedisConnect) (*redis.Client, error) {
	redisURL := cfg.GetDSN()
	slog.Info("Connecting to Redis", slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.Username, cfg.Host, cfg.Port)))

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Error("Failed to parse Redis URL", slog.Any("error", err))
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.DB = cfg.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")

	return client, nil
}

// RateLimitRepository tracks failed admin authorization attempts per client.
type RateLimitRepository interface {
	Blocked(ctx context.Context, client string) (bool, int, error)
	RecordFailure(ctx context.Context, client string) (bool, int, error)
}

type RateLimitOption func(*rateLimitRepository)

// WithClock overrides the time source used for window bookkeeping.
func WithClock(now func() time.Time) RateLimitOption {
	return func(r *rateLimitRepository) {
		r.now = now
	}
}

// rateLimitRepository keeps one sorted set per client. Each failed admin
// attempt is a member scored by its unix timestamp.
type rateLimitRepository struct {
	client *redis.Client
	cfg    *config.RateConfig
	now    func() time.Time
}

func NewRateLimitRepo(client *redis.Client, cfg *config.RateConfig, opts ...RateLimitOption) RateLimitRepository {
	r := &rateLimitRepository{client: client, cfg: cfg, now: time.Now}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *rateLimitRepository) key(client string) string {
	return adminFailuresKeyPrefix + ":" + client
}

// Blocked reports whether client has used up its failure budget and, if so,
// how many seconds remain until the oldest failure leaves the window.
func (r *rateLimitRepository) Blocked(ctx context.Context, client string) (bool, int, error) {
	key := r.key(client)
	now := r.now().Unix()
	windowStart := now - int64(r.cfg.WindowSize.Seconds())

	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	count := pipe.ZCard(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	if count.Val() < r.cfg.MaxAttempts {
		return false, 0, nil
	}

	retryAfter, err := r.retryAfter(ctx, key, now)

	return true, retryAfter, err
}

// RecordFailure counts one failed attempt and reports whether client is
// still under the limit afterwards.
func (r *rateLimitRepository) RecordFailure(ctx context.Context, client string) (bool, int, error) {
	logger := logging.FromContext(ctx)

	key := r.key(client)
	current := r.now()
	now := current.Unix()
	windowStart := now - int64(r.cfg.WindowSize.Seconds())

	pipe := r.client.Pipeline()

	// drop failures that fell out of the window
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: current.UnixNano()})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Redis pipeline execution failed for rate limit", slog.String("key", key), slog.Any("error", err))
		return false, 0, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()

	if attempts >= r.cfg.MaxAttempts {
		retryAfter, err := r.retryAfter(ctx, key, now)
		if err != nil {
			return false, retryAfter, err
		}

		logger.Warn("Admin rate limit exceeded", slog.String("client", client), slog.Int64("attempts", attempts))

		return false, retryAfter, nil
	}

	logger.Debug("Admin failure recorded", slog.String("client", client), slog.Int64("attempts", attempts))

	return true, 0, nil
}

func (r *rateLimitRepository) retryAfter(ctx context.Context, key string, now int64) (int, error) {
	window := int64(r.cfg.WindowSize.Seconds())

	scores, err := r.client.ZRangeArgsWithScores(ctx, redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).Result()
	if err != nil || len(scores) == 0 {
		if err == nil {
			err = fmt.Errorf("no attempts recorded for %s", key)
		}

		return int(window), fmt.Errorf("failed to get oldest attempt time: %w", err)
	}

	oldest := int64(scores[0].Score)

	return int(max(oldest+window-now, 1)), nil
}
