package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ResponseCache stores serialized response payloads in Redis. Expiry is
// enforced by the per-entry TTL passed to Set.
type ResponseCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewResponseCache(addr string, logger *zap.Logger) *ResponseCache {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DB:           1,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		MaxRetries:   3,
	})

	ctx := context.Background()
	for i := range 3 {
		_, err := client.Ping(ctx).Result()
		if err == nil {
			logger.Info("Connected to Redis response cache", zap.String("addr", addr))
			break
		}
		logger.Warn("Failed to connect to Redis, retrying...", zap.Error(err), zap.Int("attempt", i+1))
		time.Sleep(2 * time.Second)
	}
	return &ResponseCache{client: client, logger: logger}
}

// Get returns nil on a miss.
func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (c *ResponseCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *ResponseCache) Close() error {
	if err := c.client.Close(); err != nil {
		c.logger.Error("Failed to close Redis client", zap.Error(err))
		return err
	}
	return nil
}
