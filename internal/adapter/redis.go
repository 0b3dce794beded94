package adapter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient defines the interface for Redis operations to enable mocking
//
//go:generate mockgen -source=redis.go -destination=../mocks/redis.go -package=mocks -mock_names=RedisClient=MockRedisClient
type RedisClient interface {
	// Get fetches a key. Returns redis.Nil via the error when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a key with a TTL (0 = no expiry)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes keys
	Del(ctx context.Context, keys ...string) error

	// Ping checks if Redis is reachable
	Ping(ctx context.Context) error

	// Close closes the Redis connection
	Close() error
}

// IsNil reports whether the error is the redis key-missing sentinel.
func IsNil(err error) bool {
	return err == redis.Nil
}

// RealRedisClient wraps the actual Redis client
type RealRedisClient struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis client
func NewRedisClient(addr, password string, db int) RedisClient {
	return &RealRedisClient{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// Get fetches a key
func (r *RealRedisClient) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

// Set stores a key with a TTL
func (r *RealRedisClient) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Del removes keys
func (r *RealRedisClient) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

// Ping checks if Redis is reachable
func (r *RealRedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RealRedisClient) Close() error {
	return r.client.Close()
}
