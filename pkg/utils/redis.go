package utils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"resume-extract/internal/config"
	"resume-extract/internal/logging"
)

// RedisClient wraps the Redis client used as the parse-result cache. Keys are
// content fingerprints of normalized text, so identical documents across
// different requests share an entry.
type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

// CacheKey builds the cache key for a normalized-text fingerprint.
func CacheKey(fingerprint string) string {
	return "resume_parse_" + fingerprint
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(cfg *config.Config) *RedisClient {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		// Fallback to default configuration
		opts = &redis.Options{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		}
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}

	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return &RedisClient{
		client: redis.NewClient(opts),
		ttl:    cfg.Redis.TTL,
		logger: logging.GetGlobalLogger(),
	}
}

// Ping tests the Redis connection
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// Get returns the cached value for a key. The second return value reports
// whether the key was present.
func (r *RedisClient) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set stores a value under a key. A zero ttl falls back to the configured
// default expiration.
func (r *RedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.ttl
	}
	return r.client.Set(ctx, key, value, ttl).Err()
}

// IsHealthy checks if Redis is connected and healthy
func (r *RedisClient) IsHealthy(ctx context.Context) error {
	return r.Ping(ctx)
}
