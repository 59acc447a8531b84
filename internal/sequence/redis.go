package sequence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const keyPrefix = "invoice:seq:"

// RedisSequencer uses INCR, which is atomic across every API instance sharing
// the Redis server. A number taken by an order that later rolls back is not reused.
type RedisSequencer struct {
	client *redis.Client
}

func NewRedisSequencer(redisURL string) (*RedisSequencer, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisSequencer{client: client}, nil
}

func (s *RedisSequencer) Close() error {
	return s.client.Close()
}

func (s *RedisSequencer) Next(ctx context.Context, _ *gorm.DB, period string) (int64, error) {
	n, err := s.client.Incr(ctx, keyPrefix+period).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to advance invoice sequence: %w", err)
	}
	return n, nil
}
