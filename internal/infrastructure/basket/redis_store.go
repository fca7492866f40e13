package basket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain/model"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "basket:"

// Store keeps baskets in Redis as JSON documents keyed by basket id.
type Store struct {
	client *redis.Client
	logger *zap.Logger
}

func NewStore(addr string, logger *zap.Logger) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		MaxRetries:   3,
	})

	ctx := context.Background()
	for i := range 3 {
		_, err := client.Ping(ctx).Result()
		if err == nil {
			logger.Info("Connected to Redis basket store", zap.String("addr", addr))
			break
		}
		logger.Warn("Failed to connect to Redis, retrying...", zap.Error(err), zap.Int("attempt", i+1))
		time.Sleep(2 * time.Second)
	}
	return &Store{client: client, logger: logger}
}

// Get returns nil when the basket does not exist.
func (s *Store) Get(ctx context.Context, basketID string) (*model.Basket, error) {
	data, err := s.client.Get(ctx, keyPrefix+basketID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var basket model.Basket
	if err := json.Unmarshal(data, &basket); err != nil {
		return nil, fmt.Errorf("failed to unmarshal basket: %w", err)
	}
	return &basket, nil
}

func (s *Store) Set(ctx context.Context, basket *model.Basket) error {
	data, err := json.Marshal(basket)
	if err != nil {
		return fmt.Errorf("failed to marshal basket: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+basket.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, basketID string) error {
	if err := s.client.Del(ctx, keyPrefix+basketID).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if err := s.client.Close(); err != nil {
		s.logger.Error("Failed to close Redis client", zap.Error(err))
		return err
	}
	return nil
}
