package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheKey holds the raw catalog JSON.
const CacheKey = "catalog:breeds"

// RedisConfig describes the cache connection.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// NewRedisClient opens a client with the pool settings used across services.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
}

// Cache stores the last good catalog payload in redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache wraps client. A zero ttl keeps the entry until overwritten.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Ping tests the redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Get returns the cached payload; ok is false on a miss.
func (c *Cache) Get(ctx context.Context) (data []byte, ok bool, err error) {
	data, err = c.client.Get(ctx, CacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set replaces the cached payload.
func (c *Cache) Set(ctx context.Context, data []byte) error {
	return c.client.Set(ctx, CacheKey, data, c.ttl).Err()
}

// Invalidate drops the cached payload.
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, CacheKey).Err()
}

// Close releases the connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}
